package repository

import (
	"context"

	"github.com/eslsoft/studydesk/internal/entity"
)

// CourseRepository stores courses and owns the cascade over their dependents.
type CourseRepository interface {
	Collection[entity.Course]
	// CascadeDelete removes the course and every unit, note, flashcard and task that
	// references it in one atomic unit of work.
	CascadeDelete(ctx context.Context, courseID string) error
}

// UnitRepository stores course units.
type UnitRepository interface {
	Collection[entity.Unit]
	ListByCourse(ctx context.Context, courseID string) ([]entity.Unit, error)
}

// NoteRepository stores notes.
type NoteRepository interface {
	Collection[entity.Note]
	ListByCourse(ctx context.Context, courseID string) ([]entity.Note, error)
	ListByUnit(ctx context.Context, unitID string) ([]entity.Note, error)
	ListByCourseUnit(ctx context.Context, courseID, unitID string) ([]entity.Note, error)
}

// FlashcardRepository stores flashcards.
type FlashcardRepository interface {
	Collection[entity.Flashcard]
	ListByCourse(ctx context.Context, courseID string) ([]entity.Flashcard, error)
	ListByUnit(ctx context.Context, unitID string) ([]entity.Flashcard, error)
	ListByCourseUnit(ctx context.Context, courseID, unitID string) ([]entity.Flashcard, error)
}
