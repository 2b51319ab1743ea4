package repository

import (
	"context"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/samber/lo"

	"github.com/eslsoft/studydesk/internal/repository"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// table binds an entity type to its schema table. values must follow the
// table's column order, scan reads the same order back.
type table[T any] struct {
	s      *Store
	schema *schema.Table
	id     func(*T) string
	owner  func(*T) string
	values func(*T) ([]any, error)
	scan   func(rowScanner) (*T, error)
}

func (t *table[T]) name() string { return t.schema.Name }

func (t *table[T]) columns() []string {
	return lo.Map(t.schema.Columns, func(c *schema.Column, _ int) string { return c.Name })
}

func (t *table[T]) pk() string { return t.schema.PrimaryKey[0].Name }

func (t *table[T]) builder() *entsql.DialectBuilder { return entsql.Dialect(t.s.drv.Dialect()) }

func (t *table[T]) selector() *entsql.Selector {
	return t.builder().Select(t.columns()...).From(entsql.Table(t.name()))
}

func (t *table[T]) insert(ctx context.Context, q dialect.ExecQuerier, item *T, opts ...entsql.ConflictOption) error {
	vals, err := t.values(item)
	if err != nil {
		return err
	}
	ins := t.builder().Insert(t.name()).Columns(t.columns()...).Values(vals...)
	if len(opts) > 0 {
		ins = ins.OnConflict(opts...)
	}
	query, args := ins.Query()
	return q.Exec(ctx, query, args, nil)
}

func (t *table[T]) upsert(ctx context.Context, q dialect.ExecQuerier, item *T) error {
	return t.insert(ctx, q, item, entsql.ConflictColumns(t.pk()), entsql.ResolveWithNewValues())
}

func (t *table[T]) delete(ctx context.Context, q dialect.ExecQuerier, pred *entsql.Predicate) error {
	del := t.builder().Delete(t.name())
	if pred != nil {
		del = del.Where(pred)
	}
	query, args := del.Query()
	return q.Exec(ctx, query, args, nil)
}

func (t *table[T]) query(ctx context.Context, q dialect.ExecQuerier, sel *entsql.Selector) ([]T, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (t *table[T]) where(ctx context.Context, q dialect.ExecQuerier, pred *entsql.Predicate) ([]T, error) {
	sel := t.selector().OrderBy(t.pk())
	if pred != nil {
		sel = sel.Where(pred)
	}
	return t.query(ctx, q, sel)
}

// ownerPredicate returns nil when f does not narrow the result.
func (t *table[T]) ownerPredicate(f *repository.OwnerFilter) *entsql.Predicate {
	if f == nil || f.OwnerID == "" || t.owner == nil {
		return nil
	}
	if f.IncludeLegacy && t.s.legacyVisible {
		return entsql.Or(
			entsql.EQ("owner_id", f.OwnerID),
			entsql.IsNull("owner_id"),
			entsql.EQ("owner_id", ""),
		)
	}
	return entsql.EQ("owner_id", f.OwnerID)
}

func (t *table[T]) ownerMatch(f *repository.OwnerFilter) func(*T) bool {
	if f == nil || f.OwnerID == "" || t.owner == nil {
		return func(*T) bool { return true }
	}
	legacy := f.IncludeLegacy && t.s.legacyVisible
	return func(item *T) bool {
		owner := t.owner(item)
		return owner == f.OwnerID || (legacy && owner == "")
	}
}

// indexed runs pred through SQL when index exists in the live database and
// otherwise scans the whole table, keeping rows for which match holds. Both
// paths return rows in primary key order.
func (t *table[T]) indexed(ctx context.Context, op, index string, pred *entsql.Predicate, match func(*T) bool) ([]T, error) {
	if t.s.hasIndex(index) {
		items, err := t.where(ctx, t.s.drv, pred)
		return items, t.s.fail(op, t.name(), err)
	}

	t.s.log.WithField("index", index).Debug("index missing, scanning table")
	all, err := t.where(ctx, t.s.drv, nil)
	if err != nil {
		return nil, t.s.fail(op, t.name(), err)
	}
	return lo.Filter(all, func(item T, _ int) bool { return match(&item) }), nil
}

// collection exposes a table as a repository.Collection.
type collection[T any] struct {
	t *table[T]
}

func (c *collection[T]) Add(ctx context.Context, item *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.t.s.fail("add", c.t.name(), c.t.insert(ctx, c.t.s.drv, item))
}

func (c *collection[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := c.t.where(ctx, c.t.s.drv, entsql.EQ(c.t.pk(), id))
	if err != nil {
		return nil, c.t.s.fail("get", c.t.name(), err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (c *collection[T]) GetAll(ctx context.Context, owner *repository.OwnerFilter) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := c.t.where(ctx, c.t.s.drv, c.t.ownerPredicate(owner))
	return items, c.t.s.fail("get all", c.t.name(), err)
}

func (c *collection[T]) Update(ctx context.Context, item *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.t.s.fail("update", c.t.name(), c.t.upsert(ctx, c.t.s.drv, item))
}

func (c *collection[T]) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.t.s.fail("remove", c.t.name(), c.t.delete(ctx, c.t.s.drv, entsql.EQ(c.t.pk(), id)))
}
