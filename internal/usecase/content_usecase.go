package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

// ContentUsecase manages the units of a course and the notes filed under them.
type ContentUsecase interface {
	CreateUnit(ctx context.Context, ownerID string, unit *entity.Unit) (*entity.Unit, error)
	ListUnits(ctx context.Context, courseID string) ([]entity.Unit, error)
	DeleteUnit(ctx context.Context, id string) error
	CreateNote(ctx context.Context, ownerID string, note *entity.Note) (*entity.Note, error)
	UpdateNote(ctx context.Context, note *entity.Note) (*entity.Note, error)
	ListNotes(ctx context.Context, courseID, unitID string) ([]entity.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// NewContentUsecase wires the repositories with default behaviour.
func NewContentUsecase(courses repository.CourseRepository, units repository.UnitRepository, notes repository.NoteRepository, cards repository.FlashcardRepository) ContentUsecase {
	return &contentUsecase{
		courses: courses,
		units:   units,
		notes:   notes,
		cards:   cards,
		clock:   time.Now,
	}
}

type contentUsecase struct {
	courses repository.CourseRepository
	units   repository.UnitRepository
	notes   repository.NoteRepository
	cards   repository.FlashcardRepository
	clock   func() time.Time
}

func (u *contentUsecase) CreateUnit(ctx context.Context, ownerID string, unit *entity.Unit) (*entity.Unit, error) {
	if unit == nil {
		return nil, errors.New("unit payload required")
	}
	courseID, err := requireID(unit.CourseID)
	if err != nil {
		return nil, err
	}
	if _, err := activeCourse(ctx, u.courses, courseID); err != nil {
		return nil, err
	}
	item := *unit
	item.CourseID = courseID
	item.CreatedAt = time.Time{}
	if owner := strings.TrimSpace(ownerID); owner != "" {
		item.OwnerID = owner
	}
	item.Normalize(u.clock())
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := u.units.Add(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListUnits returns the course's units by order index, then name.
func (u *contentUsecase) ListUnits(ctx context.Context, courseID string) ([]entity.Unit, error) {
	courseID, err := requireID(courseID)
	if err != nil {
		return nil, err
	}
	units, err := u.units.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].OrderIndex != units[j].OrderIndex {
			return units[i].OrderIndex < units[j].OrderIndex
		}
		return units[i].Name < units[j].Name
	})
	return units, nil
}

// DeleteUnit removes the unit after the notes and flashcards filed under it.
func (u *contentUsecase) DeleteUnit(ctx context.Context, id string) error {
	id, err := requireID(id)
	if err != nil {
		return err
	}
	notes, err := u.notes.ListByUnit(ctx, id)
	if err != nil {
		return err
	}
	for _, n := range notes {
		if err := u.notes.Remove(ctx, n.ID); err != nil {
			return err
		}
	}
	cards, err := u.cards.ListByUnit(ctx, id)
	if err != nil {
		return err
	}
	for _, c := range cards {
		if err := u.cards.Remove(ctx, c.ID); err != nil {
			return err
		}
	}
	return u.units.Remove(ctx, id)
}

func (u *contentUsecase) CreateNote(ctx context.Context, ownerID string, note *entity.Note) (*entity.Note, error) {
	if note == nil {
		return nil, errors.New("note payload required")
	}
	unit, err := lookupUnit(ctx, u.units, note.CourseID, note.UnitID)
	if err != nil {
		return nil, err
	}
	if _, err := activeCourse(ctx, u.courses, unit.CourseID); err != nil {
		return nil, err
	}
	item := *note
	item.CourseID = unit.CourseID
	item.UnitID = unit.ID
	item.CreatedAt = time.Time{}
	if owner := strings.TrimSpace(ownerID); owner != "" {
		item.OwnerID = owner
	}
	item.Normalize(u.clock())
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := u.notes.Add(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (u *contentUsecase) UpdateNote(ctx context.Context, note *entity.Note) (*entity.Note, error) {
	if note == nil {
		return nil, errors.New("note payload required")
	}
	id, err := requireID(note.ID)
	if err != nil {
		return nil, err
	}
	existing, err := u.notes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, entity.ErrNotFound
	}
	item := *note
	item.ID = id
	item.CourseID = existing.CourseID
	item.UnitID = existing.UnitID
	item.OwnerID = existing.OwnerID
	item.CreatedAt = existing.CreatedAt
	item.Normalize(u.clock())
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := u.notes.Update(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListNotes lists notes by course, by unit or by both; at least one is required.
func (u *contentUsecase) ListNotes(ctx context.Context, courseID, unitID string) ([]entity.Note, error) {
	courseID = strings.TrimSpace(courseID)
	unitID = strings.TrimSpace(unitID)
	var (
		notes []entity.Note
		err   error
	)
	switch {
	case courseID != "" && unitID != "":
		notes, err = u.notes.ListByCourseUnit(ctx, courseID, unitID)
	case unitID != "":
		notes, err = u.notes.ListByUnit(ctx, unitID)
	case courseID != "":
		notes, err = u.notes.ListByCourse(ctx, courseID)
	default:
		return nil, entity.ErrInvalidID
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].UpdatedAt.After(notes[j].UpdatedAt) })
	return notes, nil
}

func (u *contentUsecase) DeleteNote(ctx context.Context, id string) error {
	id, err := requireID(id)
	if err != nil {
		return err
	}
	return u.notes.Remove(ctx, id)
}

// lookupUnit loads the unit and checks it belongs to courseID when one is given.
func lookupUnit(ctx context.Context, units repository.UnitRepository, courseID, unitID string) (*entity.Unit, error) {
	unitID, err := requireID(unitID)
	if err != nil {
		return nil, err
	}
	unit, err := units.Get(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, entity.ErrNotFound
	}
	if courseID = strings.TrimSpace(courseID); courseID != "" && courseID != unit.CourseID {
		return nil, &entity.ValidationError{Entity: "unit", Fields: []string{"CourseID(mismatch)"}}
	}
	return unit, nil
}
