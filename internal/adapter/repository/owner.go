package repository

import (
	"context"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/infrastructure/database/migrate"
	"github.com/eslsoft/studydesk/internal/repository"
)

type ownerDataRepository struct {
	s *Store
}

// NewOwnerDataRepository constructs the repository for cross-collection owner operations.
func NewOwnerDataRepository(s *Store) repository.OwnerDataRepository {
	return &ownerDataRepository{s: s}
}

// UserHasData reports whether any collection holds a record owned by ownerID.
// Legacy records without an owner do not count.
func (r *ownerDataRepository) UserHasData(ctx context.Context, ownerID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if ownerID == "" {
		return false, nil
	}
	for _, t := range migrate.OwnedTables() {
		found, err := r.hasOwned(ctx, t, ownerID)
		if err != nil {
			return false, r.s.fail("has data", t.Name, err)
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

func (r *ownerDataRepository) hasOwned(ctx context.Context, t *schema.Table, ownerID string) (bool, error) {
	sel := entsql.Dialect(r.s.drv.Dialect()).
		Select("id").
		From(entsql.Table(t.Name)).
		Where(entsql.EQ("owner_id", ownerID)).
		Limit(1)
	ids, err := queryStrings(ctx, r.s.drv, sel)
	return len(ids) > 0, err
}

// CopyOwnerData duplicates every record of fromOwner for toOwner in one
// transaction. Copies get the id "<id>_copy_<toOwner>" and references between
// copied records point at the copies. Running it twice refreshes the copies.
func (r *ownerDataRepository) CopyOwnerData(ctx context.Context, fromOwner, toOwner string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if fromOwner == "" || toOwner == "" || fromOwner == toOwner {
		return entity.ErrInvalidOwner
	}

	s := r.s
	ids := map[string]string{}
	remap := func(id string) string {
		if copied, ok := ids[id]; ok {
			return copied
		}
		return id
	}

	err := s.withTx(ctx, func(tx dialect.Tx) error {
		if err := copyOwned(ctx, tx, courseTable(s), fromOwner, toOwner, ids, func(c *entity.Course, id string) {
			c.ID, c.OwnerID = id, toOwner
		}); err != nil {
			return err
		}
		if err := copyOwned(ctx, tx, unitTable(s), fromOwner, toOwner, ids, func(u *entity.Unit, id string) {
			u.ID, u.OwnerID = id, toOwner
			u.CourseID = remap(u.CourseID)
		}); err != nil {
			return err
		}
		if err := copyOwned(ctx, tx, noteTable(s), fromOwner, toOwner, ids, func(n *entity.Note, id string) {
			n.ID, n.OwnerID = id, toOwner
			n.CourseID, n.UnitID = remap(n.CourseID), remap(n.UnitID)
		}); err != nil {
			return err
		}
		if err := copyOwned(ctx, tx, flashcardTable(s), fromOwner, toOwner, ids, func(f *entity.Flashcard, id string) {
			f.ID, f.OwnerID = id, toOwner
			f.CourseID, f.UnitID = remap(f.CourseID), remap(f.UnitID)
		}); err != nil {
			return err
		}
		if err := copyOwned(ctx, tx, taskTable(s), fromOwner, toOwner, ids, func(t *entity.Task, id string) {
			t.ID, t.OwnerID = id, toOwner
			if t.CourseID != "" {
				t.CourseID = remap(t.CourseID)
			}
		}); err != nil {
			return err
		}
		if err := copyOwned(ctx, tx, academicRecordTable(s), fromOwner, toOwner, ids, func(rec *entity.AcademicRecord, id string) {
			rec.ID, rec.OwnerID = id, toOwner
		}); err != nil {
			return err
		}
		return copyOwned(ctx, tx, studySessionTable(s), fromOwner, toOwner, ids, func(ss *entity.StudySession, id string) {
			ss.ID, ss.OwnerID = id, toOwner
			if ss.CourseID != "" {
				ss.CourseID = remap(ss.CourseID)
			}
		})
	})
	return s.fail("copy owner data", "", err)
}

// CopyID is the id a record receives when copied to another owner.
func CopyID(id, toOwner string) string {
	return id + "_copy_" + toOwner
}

func copyOwned[T any](ctx context.Context, q dialect.ExecQuerier, t *table[T], from, to string, ids map[string]string, rekey func(item *T, id string)) error {
	items, err := t.where(ctx, q, entsql.EQ("owner_id", from))
	if err != nil {
		return err
	}
	for i := range items {
		item := &items[i]
		original := t.id(item)
		copied := CopyID(original, to)
		ids[original] = copied
		rekey(item, copied)
		if err := t.upsert(ctx, q, item); err != nil {
			return err
		}
	}
	return nil
}
