package repository

import (
	"context"
	"time"

	"github.com/eslsoft/studydesk/internal/entity"
)

// ListTaskQuery holds parameters for listing tasks with a CEL filter and order_by.
type ListTaskQuery struct {
	Pagination
	FilterOrder

	Owner *OwnerFilter

	// Now is the reference time for the derived overdue status. Zero means time.Now.
	Now time.Time
}

// TaskRepository stores tasks.
type TaskRepository interface {
	Collection[entity.Task]
	ListByCourse(ctx context.Context, courseID string) ([]entity.Task, error)
	// ListByDueRange returns tasks with from <= due date <= to.
	ListByDueRange(ctx context.Context, owner *OwnerFilter, from, to time.Time) ([]entity.Task, error)
	List(ctx context.Context, query *ListTaskQuery) ([]entity.Task, int64, error)
}
