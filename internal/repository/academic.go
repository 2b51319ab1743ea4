package repository

import (
	"context"

	"github.com/eslsoft/studydesk/internal/entity"
)

// AcademicRecordRepository stores historical academic records.
type AcademicRecordRepository interface {
	Collection[entity.AcademicRecord]
	ListByTerm(ctx context.Context, owner *OwnerFilter, term string) ([]entity.AcademicRecord, error)
}

// StudySessionRepository stores study sessions.
type StudySessionRepository interface {
	Collection[entity.StudySession]
	ListByCourse(ctx context.Context, courseID string) ([]entity.StudySession, error)
}

// UserRepository stores profiles keyed by display name.
type UserRepository interface {
	Get(ctx context.Context, name string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Remove(ctx context.Context, name string) error
}

// OwnerDataRepository covers operations that span every owner-scoped collection.
type OwnerDataRepository interface {
	UserHasData(ctx context.Context, ownerID string) (bool, error)
	CopyOwnerData(ctx context.Context, fromOwner, toOwner string) error
}

// ThemeFlag is the lightweight theme preference readable before the store opens.
type ThemeFlag interface {
	// Load returns entity.ThemeUnspecified when no preference was saved yet.
	Load() (entity.Theme, error)
	Save(theme entity.Theme) error
}
