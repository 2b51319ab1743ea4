package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
	"github.com/eslsoft/studydesk/pkg/filterexpr"
)

type taskRepository struct {
	collection[entity.Task]
}

// NewTaskRepository constructs the task repository.
func NewTaskRepository(s *Store) repository.TaskRepository {
	return &taskRepository{collection[entity.Task]{t: taskTable(s)}}
}

func (r *taskRepository) ListByCourse(ctx context.Context, courseID string) ([]entity.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.indexed(ctx, "list by course", "task_course_id",
		entsql.EQ("course_id", courseID),
		func(t *entity.Task) bool { return t.CourseID == courseID })
}

func (r *taskRepository) ListByDueRange(ctx context.Context, owner *repository.OwnerFilter, from, to time.Time) ([]entity.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	from, to = from.UTC(), to.UTC()
	preds := []*entsql.Predicate{
		entsql.GTE("due_date", from),
		entsql.LTE("due_date", to),
	}
	if p := r.t.ownerPredicate(owner); p != nil {
		preds = append(preds, p)
	}
	ownerOK := r.t.ownerMatch(owner)
	return r.t.indexed(ctx, "list by due range", "task_due_date",
		entsql.And(preds...),
		func(t *entity.Task) bool {
			return ownerOK(t) && !t.DueDate.Before(from) && !t.DueDate.After(to)
		})
}

// listTasksParams receives the bound filter and order_by of a task listing.
type listTasksParams struct {
	Status      *string
	Statuses    []string
	Type        *string
	Types       []string
	CourseID    *string
	TitlePrefix *string
	Priority    *int
	PriorityMax *int
	DueFrom     *time.Time
	DueTo       *time.Time
	DueAfter    *time.Time
	DueBefore   *time.Time

	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func (p *listTasksParams) predicates(now time.Time) []*entsql.Predicate {
	var preds []*entsql.Predicate
	if p.Status != nil {
		preds = append(preds, statusPredicate(*p.Status, now))
	}
	if statuses := lowerSet(p.Statuses); len(statuses) > 0 {
		preds = append(preds, entsql.Or(lo.Map(statuses, func(s string, _ int) *entsql.Predicate {
			return statusPredicate(s, now)
		})...))
	}
	if p.Type != nil {
		preds = append(preds, entsql.EQ("type", *p.Type))
	}
	if types := lowerSet(p.Types); len(types) > 0 {
		preds = append(preds, entsql.In("type", lo.ToAnySlice(types)...))
	}
	if p.CourseID != nil {
		preds = append(preds, entsql.EQ("course_id", *p.CourseID))
	}
	if p.TitlePrefix != nil {
		preds = append(preds, entsql.HasPrefix("title", *p.TitlePrefix))
	}
	if p.Priority != nil {
		preds = append(preds, entsql.EQ("priority", *p.Priority))
	}
	if p.PriorityMax != nil {
		preds = append(preds, entsql.LTE("priority", *p.PriorityMax))
	}
	if p.DueFrom != nil {
		preds = append(preds, entsql.GTE("due_date", p.DueFrom.UTC()))
	}
	if p.DueTo != nil {
		preds = append(preds, entsql.LTE("due_date", p.DueTo.UTC()))
	}
	if p.DueAfter != nil {
		preds = append(preds, entsql.GT("due_date", p.DueAfter.UTC()))
	}
	if p.DueBefore != nil {
		preds = append(preds, entsql.LT("due_date", p.DueBefore.UTC()))
	}
	return preds
}

// statusPredicate matches the status a task reads as at now: a pending task
// past its due date is overdue, without that ever being written back.
func statusPredicate(status string, now time.Time) *entsql.Predicate {
	status = strings.ToLower(strings.TrimSpace(status))
	pending := entsql.EQ("status", string(entity.TaskStatusPending))
	switch entity.TaskStatus(status) {
	case entity.TaskStatusPending:
		return entsql.And(pending, entsql.GTE("due_date", now))
	case entity.TaskStatusOverdue:
		return entsql.Or(
			entsql.EQ("status", status),
			entsql.And(pending, entsql.LT("due_date", now)),
		)
	default:
		return entsql.EQ("status", status)
	}
}

func (r *taskRepository) orderBy(sel *entsql.Selector, key string, desc bool) error {
	term, err := listTasksSchema.Order.Term(key, desc)
	if err != nil {
		return err
	}
	sel.OrderExprFunc(func(b *entsql.Builder) {
		b.Ident(term.Expr)
		if term.Desc {
			b.WriteString(" DESC")
		}
		switch term.Nulls {
		case "first":
			b.WriteString(" NULLS FIRST")
		case "last":
			b.WriteString(" NULLS LAST")
		}
	})
	return nil
}

func (r *taskRepository) List(ctx context.Context, query *repository.ListTaskQuery) ([]entity.Task, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var p listTasksParams
	if err := filterexpr.Bind(query, &p, listTasksSchema); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	where := func() []*entsql.Predicate {
		preds := p.predicates(now)
		if owner := r.t.ownerPredicate(query.Owner); owner != nil {
			preds = append(preds, owner)
		}
		return preds
	}

	sel := r.t.selector()
	count := r.t.builder().Select(entsql.Count("*")).From(entsql.Table(r.t.name()))
	if preds := where(); len(preds) > 0 {
		sel.Where(entsql.And(preds...))
		count.Where(entsql.And(where()...))
	}
	if err := r.orderBy(sel, p.PrimaryKey, p.PrimaryDesc); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}
	if err := r.orderBy(sel, p.SecondaryKey, p.SecondaryDesc); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}
	if query.PageSize > 0 {
		sel.Limit(int(query.PageSize)).Offset(int(query.Offset()))
	}

	tasks, err := r.t.query(ctx, r.t.s.drv, sel)
	if err != nil {
		return nil, 0, r.t.s.fail("list", r.t.name(), err)
	}

	total, err := countRows(ctx, r.t.s, count)
	if err != nil {
		return nil, 0, r.t.s.fail("count", r.t.name(), err)
	}
	return tasks, total, nil
}

// lowerSet lowercases and dedupes filter values, dropping blanks.
func lowerSet(in []string) []string {
	return lo.Uniq(lo.FilterMap(in, func(v string, _ int) (string, bool) {
		v = strings.ToLower(strings.TrimSpace(v))
		return v, v != ""
	}))
}

func countRows(ctx context.Context, s *Store, sel *entsql.Selector) (int64, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := s.drv.Query(ctx, query, args, rows); err != nil {
		return 0, err
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}
