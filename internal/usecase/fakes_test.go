package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

// fakeCollection is an in-memory repository.Collection keyed by id.
type fakeCollection[T any] struct {
	mu    sync.RWMutex
	id    func(*T) string
	owner func(*T) string
	items map[string]T
}

func newFakeCollection[T any](id, owner func(*T) string) *fakeCollection[T] {
	return &fakeCollection[T]{id: id, owner: owner, items: make(map[string]T)}
}

func (c *fakeCollection[T]) Add(ctx context.Context, item *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[c.id(item)]; ok {
		return entity.ErrDuplicateID
	}
	c.items[c.id(item)] = *item
	return nil
}

func (c *fakeCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (c *fakeCollection[T]) GetAll(ctx context.Context, owner *repository.OwnerFilter) ([]T, error) {
	return c.filter(ctx, func(item *T) bool {
		if owner == nil {
			return true
		}
		o := c.owner(item)
		return o == owner.OwnerID || (owner.IncludeLegacy && o == "")
	})
}

func (c *fakeCollection[T]) Update(ctx context.Context, item *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.id(item)] = *item
	return nil
}

func (c *fakeCollection[T]) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}

// filter returns matching items ordered by id.
func (c *fakeCollection[T]) filter(ctx context.Context, match func(*T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if match(&item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return c.id(&out[i]) < c.id(&out[j]) })
	return out, nil
}

type fakeCourseRepo struct {
	*fakeCollection[entity.Course]
	cascaded []string
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{fakeCollection: newFakeCollection(
		func(c *entity.Course) string { return c.ID },
		func(c *entity.Course) string { return c.OwnerID },
	)}
}

func (r *fakeCourseRepo) CascadeDelete(ctx context.Context, courseID string) error {
	r.cascaded = append(r.cascaded, courseID)
	return r.Remove(ctx, courseID)
}

type fakeUnitRepo struct {
	*fakeCollection[entity.Unit]
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{newFakeCollection(
		func(u *entity.Unit) string { return u.ID },
		func(u *entity.Unit) string { return u.OwnerID },
	)}
}

func (r *fakeUnitRepo) ListByCourse(ctx context.Context, courseID string) ([]entity.Unit, error) {
	return r.filter(ctx, func(u *entity.Unit) bool { return u.CourseID == courseID })
}

type fakeNoteRepo struct {
	*fakeCollection[entity.Note]
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{newFakeCollection(
		func(n *entity.Note) string { return n.ID },
		func(n *entity.Note) string { return n.OwnerID },
	)}
}

func (r *fakeNoteRepo) ListByCourse(ctx context.Context, courseID string) ([]entity.Note, error) {
	return r.filter(ctx, func(n *entity.Note) bool { return n.CourseID == courseID })
}

func (r *fakeNoteRepo) ListByUnit(ctx context.Context, unitID string) ([]entity.Note, error) {
	return r.filter(ctx, func(n *entity.Note) bool { return n.UnitID == unitID })
}

func (r *fakeNoteRepo) ListByCourseUnit(ctx context.Context, courseID, unitID string) ([]entity.Note, error) {
	return r.filter(ctx, func(n *entity.Note) bool { return n.CourseID == courseID && n.UnitID == unitID })
}

type fakeFlashcardRepo struct {
	*fakeCollection[entity.Flashcard]
}

func newFakeFlashcardRepo() *fakeFlashcardRepo {
	return &fakeFlashcardRepo{newFakeCollection(
		func(f *entity.Flashcard) string { return f.ID },
		func(f *entity.Flashcard) string { return f.OwnerID },
	)}
}

func (r *fakeFlashcardRepo) ListByCourse(ctx context.Context, courseID string) ([]entity.Flashcard, error) {
	return r.filter(ctx, func(f *entity.Flashcard) bool { return f.CourseID == courseID })
}

func (r *fakeFlashcardRepo) ListByUnit(ctx context.Context, unitID string) ([]entity.Flashcard, error) {
	return r.filter(ctx, func(f *entity.Flashcard) bool { return f.UnitID == unitID })
}

func (r *fakeFlashcardRepo) ListByCourseUnit(ctx context.Context, courseID, unitID string) ([]entity.Flashcard, error) {
	return r.filter(ctx, func(f *entity.Flashcard) bool { return f.CourseID == courseID && f.UnitID == unitID })
}

type fakeTaskRepo struct {
	*fakeCollection[entity.Task]
	lastQuery *repository.ListTaskQuery
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{fakeCollection: newFakeCollection(
		func(t *entity.Task) string { return t.ID },
		func(t *entity.Task) string { return t.OwnerID },
	)}
}

func (r *fakeTaskRepo) ListByCourse(ctx context.Context, courseID string) ([]entity.Task, error) {
	return r.filter(ctx, func(t *entity.Task) bool { return t.CourseID == courseID })
}

func (r *fakeTaskRepo) ListByDueRange(ctx context.Context, owner *repository.OwnerFilter, from, to time.Time) ([]entity.Task, error) {
	all, err := r.GetAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Task, 0, len(all))
	for _, t := range all {
		if !t.DueDate.Before(from) && !t.DueDate.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

// List ignores the CEL filter and returns the stored state of the owner's tasks.
func (r *fakeTaskRepo) List(ctx context.Context, query *repository.ListTaskQuery) ([]entity.Task, int64, error) {
	if query == nil {
		return nil, 0, errors.New("list query required")
	}
	r.lastQuery = query
	all, err := r.GetAll(ctx, query.Owner)
	if err != nil {
		return nil, 0, err
	}
	return all, int64(len(all)), nil
}

type fakeAcademicRecordRepo struct {
	*fakeCollection[entity.AcademicRecord]
}

func newFakeAcademicRecordRepo() *fakeAcademicRecordRepo {
	return &fakeAcademicRecordRepo{newFakeCollection(
		func(r *entity.AcademicRecord) string { return r.ID },
		func(r *entity.AcademicRecord) string { return r.OwnerID },
	)}
}

func (r *fakeAcademicRecordRepo) ListByTerm(ctx context.Context, owner *repository.OwnerFilter, term string) ([]entity.AcademicRecord, error) {
	all, err := r.GetAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]entity.AcademicRecord, 0, len(all))
	for _, rec := range all {
		if rec.Term == term {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeStudySessionRepo struct {
	*fakeCollection[entity.StudySession]
}

func newFakeStudySessionRepo() *fakeStudySessionRepo {
	return &fakeStudySessionRepo{newFakeCollection(
		func(s *entity.StudySession) string { return s.ID },
		func(s *entity.StudySession) string { return s.OwnerID },
	)}
}

func (r *fakeStudySessionRepo) ListByCourse(ctx context.Context, courseID string) ([]entity.StudySession, error) {
	return r.filter(ctx, func(s *entity.StudySession) bool { return s.CourseID == courseID })
}

type fakeUserRepo struct {
	users *fakeCollection[entity.User]
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: newFakeCollection(
		func(u *entity.User) string { return u.Name },
		func(*entity.User) string { return "" },
	)}
}

func (r *fakeUserRepo) Get(ctx context.Context, name string) (*entity.User, error) {
	return r.users.Get(ctx, name)
}

func (r *fakeUserRepo) GetAll(ctx context.Context) ([]entity.User, error) {
	return r.users.GetAll(ctx, nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.users.Update(ctx, user)
}

func (r *fakeUserRepo) Remove(ctx context.Context, name string) error {
	return r.users.Remove(ctx, name)
}

type fakeThemeFlag struct {
	theme entity.Theme
	saves int
}

func (f *fakeThemeFlag) Load() (entity.Theme, error) { return f.theme, nil }

func (f *fakeThemeFlag) Save(theme entity.Theme) error {
	f.theme = theme
	f.saves++
	return nil
}

type fakeOwnerDataRepo struct {
	copies [][2]string
}

func (r *fakeOwnerDataRepo) UserHasData(_ context.Context, ownerID string) (bool, error) {
	return ownerID == "alice", nil
}

func (r *fakeOwnerDataRepo) CopyOwnerData(_ context.Context, fromOwner, toOwner string) error {
	r.copies = append(r.copies, [2]string{fromOwner, toOwner})
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
