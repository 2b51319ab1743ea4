package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/grade"
	"github.com/eslsoft/studydesk/internal/repository"
)

// AcademicUsecase manages historical academic records and the GPA derived from them.
type AcademicUsecase interface {
	AddRecord(ctx context.Context, ownerID string, record *entity.AcademicRecord) (*entity.AcademicRecord, error)
	ListRecords(ctx context.Context, ownerID, term string) ([]entity.AcademicRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	GPA(ctx context.Context, ownerID, term string) (float64, error)
}

// NewAcademicUsecase wires the repository with default behaviour.
func NewAcademicUsecase(repo repository.AcademicRecordRepository) AcademicUsecase {
	return &academicUsecase{
		repo:  repo,
		clock: time.Now,
	}
}

type academicUsecase struct {
	repo  repository.AcademicRecordRepository
	clock func() time.Time
}

func (u *academicUsecase) AddRecord(ctx context.Context, ownerID string, record *entity.AcademicRecord) (*entity.AcademicRecord, error) {
	if record == nil {
		return nil, errors.New("academic record payload required")
	}
	item := *record
	item.CreatedAt = time.Time{}
	if owner := strings.TrimSpace(ownerID); owner != "" {
		item.OwnerID = owner
	}
	item.Normalize(u.clock())
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Add(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListRecords returns the owner's records, narrowed to one term when given,
// ordered by term then name.
func (u *academicUsecase) ListRecords(ctx context.Context, ownerID, term string) ([]entity.AcademicRecord, error) {
	var (
		records []entity.AcademicRecord
		err     error
	)
	if term = strings.TrimSpace(term); term != "" {
		records, err = u.repo.ListByTerm(ctx, ownerScope(ownerID), term)
	} else {
		records, err = u.repo.GetAll(ctx, ownerScope(ownerID))
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Term != records[j].Term {
			return records[i].Term < records[j].Term
		}
		return records[i].Name < records[j].Name
	})
	return records, nil
}

func (u *academicUsecase) DeleteRecord(ctx context.Context, id string) error {
	id, err := requireID(id)
	if err != nil {
		return err
	}
	return u.repo.Remove(ctx, id)
}

// GPA is the credit-weighted 4.0-scale average of the graded records.
func (u *academicUsecase) GPA(ctx context.Context, ownerID, term string) (float64, error) {
	records, err := u.ListRecords(ctx, ownerID, term)
	if err != nil {
		return 0, err
	}
	return grade.CalculateGPA(lo.Map(records, func(r entity.AcademicRecord, _ int) grade.Graded {
		return grade.Graded{Credits: r.Credits, Percentage: r.GradePercentage()}
	})), nil
}
