package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

// CourseUsecase manages courses and the removal of everything filed under them.
type CourseUsecase interface {
	Create(ctx context.Context, ownerID string, course *entity.Course) (*entity.Course, error)
	Update(ctx context.Context, course *entity.Course) (*entity.Course, error)
	Archive(ctx context.Context, id string, archived bool) (*entity.Course, error)
	Get(ctx context.Context, id string) (*entity.Course, error)
	List(ctx context.Context, ownerID string, includeArchived bool) ([]entity.Course, error)
	Delete(ctx context.Context, id string) error
}

// NewCourseUsecase wires the repository with default behaviour.
func NewCourseUsecase(repo repository.CourseRepository) CourseUsecase {
	return &courseUsecase{
		repo:  repo,
		clock: time.Now,
	}
}

type courseUsecase struct {
	repo  repository.CourseRepository
	clock func() time.Time
}

func (u *courseUsecase) Create(ctx context.Context, ownerID string, course *entity.Course) (*entity.Course, error) {
	if course == nil {
		return nil, errors.New("course payload required")
	}
	c := *course
	c.CreatedAt = time.Time{}
	if owner := strings.TrimSpace(ownerID); owner != "" {
		c.OwnerID = owner
	}
	c.Normalize(u.clock())
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Add(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (u *courseUsecase) Update(ctx context.Context, course *entity.Course) (*entity.Course, error) {
	if course == nil {
		return nil, errors.New("course payload required")
	}
	existing, err := u.Get(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	c := *course
	c.CreatedAt = existing.CreatedAt
	if c.OwnerID == "" {
		c.OwnerID = existing.OwnerID
	}
	c.Normalize(u.clock())
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (u *courseUsecase) Archive(ctx context.Context, id string, archived bool) (*entity.Course, error) {
	c, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Archived == archived {
		return c, nil
	}
	c.Archived = archived
	c.Normalize(u.clock())
	if err := u.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *courseUsecase) Get(ctx context.Context, id string) (*entity.Course, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}
	c, err := u.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, entity.ErrNotFound
	}
	return c, nil
}

// List returns the owner's courses ordered by name.
func (u *courseUsecase) List(ctx context.Context, ownerID string, includeArchived bool) ([]entity.Course, error) {
	courses, err := u.repo.GetAll(ctx, ownerScope(ownerID))
	if err != nil {
		return nil, err
	}
	if !includeArchived {
		courses = lo.Filter(courses, func(c entity.Course, _ int) bool { return !c.Archived })
	}
	sort.SliceStable(courses, func(i, j int) bool {
		return strings.ToLower(courses[i].Name) < strings.ToLower(courses[j].Name)
	})
	return courses, nil
}

// Delete removes the course together with its units, notes, flashcards and tasks.
func (u *courseUsecase) Delete(ctx context.Context, id string) error {
	id, err := requireID(id)
	if err != nil {
		return err
	}
	return u.repo.CascadeDelete(ctx, id)
}

// activeCourse loads a course that new content can be filed under.
func activeCourse(ctx context.Context, repo repository.Collection[entity.Course], id string) (*entity.Course, error) {
	c, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, entity.ErrNotFound
	}
	if c.Archived {
		return nil, entity.ErrCourseArchived
	}
	return c, nil
}
