package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/grade"
	"github.com/eslsoft/studydesk/internal/repository"
)

// CourseGradeSummary is the running grade of a course derived from its tasks.
type CourseGradeSummary struct {
	CourseID   string        `json:"courseId"`
	Percentage *float64      `json:"percentage,omitempty"`
	Letter     grade.Letter  `json:"letter,omitempty"`
	Color      grade.Color   `json:"color"`
	Graded     int           `json:"graded"`
	Weight     WeightSummary `json:"weight"`
}

// TaskUsecase manages tasks, their derived status and course grades.
type TaskUsecase interface {
	Create(ctx context.Context, ownerID string, task *entity.Task) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) (*entity.Task, error)
	Complete(ctx context.Context, id string, score *float64) (*entity.Task, error)
	Get(ctx context.Context, id string) (*entity.Task, error)
	List(ctx context.Context, ownerID string) ([]entity.Task, error)
	Today(ctx context.Context, ownerID string) ([]entity.Task, error)
	Week(ctx context.Context, ownerID string) ([]entity.Task, error)
	Filter(ctx context.Context, ownerID string, query *repository.ListTaskQuery) ([]entity.Task, int64, error)
	Delete(ctx context.Context, id string) error
	GradeSummary(ctx context.Context, courseID string) (*CourseGradeSummary, error)
}

// NewTaskUsecase wires the repositories with default behaviour.
func NewTaskUsecase(courses repository.CourseRepository, tasks repository.TaskRepository) TaskUsecase {
	return &taskUsecase{
		courses: courses,
		tasks:   tasks,
		clock:   time.Now,
	}
}

type taskUsecase struct {
	courses repository.CourseRepository
	tasks   repository.TaskRepository
	clock   func() time.Time
}

func (u *taskUsecase) Create(ctx context.Context, ownerID string, task *entity.Task) (*entity.Task, error) {
	if task == nil {
		return nil, errors.New("task payload required")
	}
	item := *task
	item.CourseID = strings.TrimSpace(item.CourseID)
	if item.CourseID != "" {
		if _, err := activeCourse(ctx, u.courses, item.CourseID); err != nil {
			return nil, err
		}
	}
	if err := checkScore(item.Grade); err != nil {
		return nil, err
	}
	item.CreatedAt = time.Time{}
	if owner := strings.TrimSpace(ownerID); owner != "" {
		item.OwnerID = owner
	}
	now := u.clock()
	item.Status = storedStatus(item.Status)
	item.Normalize(now)
	if item.Status == entity.TaskStatusCompleted && item.CompletedAt == nil {
		item.CompletedAt = &now
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := u.tasks.Add(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (u *taskUsecase) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if task == nil {
		return nil, errors.New("task payload required")
	}
	existing, err := u.Get(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if err := checkScore(task.Grade); err != nil {
		return nil, err
	}
	item := *task
	item.ID = existing.ID
	item.OwnerID = existing.OwnerID
	item.CreatedAt = existing.CreatedAt
	if item.CourseID != existing.CourseID && item.CourseID != "" {
		if _, err := activeCourse(ctx, u.courses, item.CourseID); err != nil {
			return nil, err
		}
	}
	now := u.clock()
	item.Status = storedStatus(item.Status)
	item.Normalize(now)
	switch {
	case item.Status != entity.TaskStatusCompleted:
		item.CompletedAt = nil
	case item.CompletedAt == nil:
		item.CompletedAt = &now
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := u.tasks.Update(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Complete marks the task completed, optionally recording its score.
func (u *taskUsecase) Complete(ctx context.Context, id string, score *float64) (*entity.Task, error) {
	task, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkScore(score); err != nil {
		return nil, err
	}
	now := u.clock()
	task.Status = entity.TaskStatusCompleted
	task.CompletedAt = &now
	if score != nil {
		s := *score
		task.Grade = &s
	}
	task.Normalize(now)
	if err := u.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) Get(ctx context.Context, id string) (*entity.Task, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}
	task, err := u.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrNotFound
	}
	derived, _ := UpdateTaskStatus(*task, u.clock())
	return &derived, nil
}

// List returns every task of the owner with derived statuses, overdue first.
func (u *taskUsecase) List(ctx context.Context, ownerID string) ([]entity.Task, error) {
	tasks, err := u.tasks.GetAll(ctx, ownerScope(ownerID))
	if err != nil {
		return nil, err
	}
	return SortTasks(tasks, u.clock()), nil
}

func (u *taskUsecase) Today(ctx context.Context, ownerID string) ([]entity.Task, error) {
	now := u.clock()
	from, to := TodayWindow(now)
	tasks, err := u.tasks.ListByDueRange(ctx, ownerScope(ownerID), from, to)
	if err != nil {
		return nil, err
	}
	return SortTasks(TodayTasks(tasks, now), now), nil
}

func (u *taskUsecase) Week(ctx context.Context, ownerID string) ([]entity.Task, error) {
	now := u.clock()
	from, to := WeekWindow(now)
	tasks, err := u.tasks.ListByDueRange(ctx, ownerScope(ownerID), from, to)
	if err != nil {
		return nil, err
	}
	return SortTasks(WeekTasks(tasks, now), now), nil
}

// Filter runs a CEL filter over stored tasks. Status filters match the derived
// status at the usecase clock and the returned tasks carry it.
func (u *taskUsecase) Filter(ctx context.Context, ownerID string, query *repository.ListTaskQuery) ([]entity.Task, int64, error) {
	q := repository.ListTaskQuery{}
	if query != nil {
		q = *query
	}
	if q.Owner == nil {
		q.Owner = ownerScope(ownerID)
	}
	now := u.clock()
	q.Now = now
	clampPagination(&q.Pagination)
	tasks, total, err := u.tasks.List(ctx, &q)
	if err != nil {
		return nil, 0, err
	}
	for i := range tasks {
		tasks[i], _ = UpdateTaskStatus(tasks[i], now)
	}
	return tasks, total, nil
}

func (u *taskUsecase) Delete(ctx context.Context, id string) error {
	id, err := requireID(id)
	if err != nil {
		return err
	}
	return u.tasks.Remove(ctx, id)
}

// GradeSummary derives the course grade from its completed graded tasks and
// reports whether the assigned weights add up past 100.
func (u *taskUsecase) GradeSummary(ctx context.Context, courseID string) (*CourseGradeSummary, error) {
	courseID, err := requireID(courseID)
	if err != nil {
		return nil, err
	}
	course, err := u.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, entity.ErrNotFound
	}
	tasks, err := u.tasks.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	summary := &CourseGradeSummary{
		CourseID: courseID,
		Color:    grade.ColorOf(grade.NotAvailable),
		Weight:   WeightSummary{CourseID: courseID},
	}
	for _, t := range tasks {
		if t.IsGraded() {
			summary.Graded++
		}
	}
	if w, ok := WeightOverflow(tasks)[courseID]; ok {
		summary.Weight = w
	}
	if pct := CourseGrade(tasks); pct != nil {
		summary.Percentage = pct
		summary.Letter = grade.PercentageToLetter(*pct)
		summary.Color = grade.ColorOf(summary.Letter)
	}
	return summary, nil
}

// storedStatus is the status written to the store. Overdue is only ever
// derived, so a task read back as overdue is saved as pending.
func storedStatus(s entity.TaskStatus) entity.TaskStatus {
	if s == entity.TaskStatusOverdue {
		return entity.TaskStatusPending
	}
	return s
}

func checkScore(score *float64) error {
	if score != nil && *score < 0 {
		return entity.ErrInvalidGrade
	}
	return nil
}
