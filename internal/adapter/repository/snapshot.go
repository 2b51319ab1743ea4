package repository

import (
	"context"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

type snapshotRepository struct {
	s *Store
}

// NewSnapshotRepository constructs the bulk dump and restore repository.
func NewSnapshotRepository(s *Store) repository.SnapshotRepository {
	return &snapshotRepository{s: s}
}

func (r *snapshotRepository) Dump(ctx context.Context, scope repository.SnapshotScope) (*repository.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.s
	var owner *repository.OwnerFilter
	if scope.OwnerID != "" {
		owner = repository.ForOwner(scope.OwnerID)
	}

	snap := &repository.Snapshot{}
	err := s.withTx(ctx, func(tx dialect.Tx) error {
		var err error
		if snap.Courses, err = dumpTable(ctx, tx, courseTable(s), scope, repository.CollectionCourses, owner); err != nil {
			return err
		}
		if snap.Units, err = dumpTable(ctx, tx, unitTable(s), scope, repository.CollectionUnits, owner); err != nil {
			return err
		}
		if snap.Notes, err = dumpTable(ctx, tx, noteTable(s), scope, repository.CollectionNotes, owner); err != nil {
			return err
		}
		if snap.Flashcards, err = dumpTable(ctx, tx, flashcardTable(s), scope, repository.CollectionFlashcards, owner); err != nil {
			return err
		}
		if snap.Tasks, err = dumpTable(ctx, tx, taskTable(s), scope, repository.CollectionTasks, owner); err != nil {
			return err
		}
		if snap.AcademicRecords, err = dumpTable(ctx, tx, academicRecordTable(s), scope, repository.CollectionAcademicRecords, owner); err != nil {
			return err
		}
		if snap.StudySessions, err = dumpTable(ctx, tx, studySessionTable(s), scope, repository.CollectionStudySessions, owner); err != nil {
			return err
		}
		snap.User, err = dumpTable(ctx, tx, userTable(s), scope, repository.CollectionUser, nil)
		return err
	})
	if err != nil {
		return nil, s.fail("dump", "", err)
	}
	return snap, nil
}

func dumpTable[T any](ctx context.Context, q dialect.ExecQuerier, t *table[T], scope repository.SnapshotScope, name string, owner *repository.OwnerFilter) ([]T, error) {
	if !scope.Includes(name) {
		return []T{}, nil
	}
	return t.where(ctx, q, t.ownerPredicate(owner))
}

func (r *snapshotRepository) Restore(ctx context.Context, snap *repository.Snapshot, scope repository.SnapshotScope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap == nil {
		snap = &repository.Snapshot{}
	}
	s := r.s
	owner := scope.OwnerID

	err := s.withTx(ctx, func(tx dialect.Tx) error {
		var cleared []string
		if scope.Includes(repository.CollectionCourses) {
			existing, err := courseTable(s).where(ctx, tx, ownedBy(owner))
			if err != nil {
				return err
			}
			cleared = lo.Map(existing, func(c entity.Course, _ int) string { return c.ID })
		}

		// children first
		steps := []struct {
			name  string
			clear func() error
		}{
			{repository.CollectionStudySessions, func() error { return clearTable(ctx, tx, studySessionTable(s), owner) }},
			{repository.CollectionAcademicRecords, func() error { return clearTable(ctx, tx, academicRecordTable(s), owner) }},
			{repository.CollectionTasks, func() error { return clearTable(ctx, tx, taskTable(s), owner) }},
			{repository.CollectionFlashcards, func() error { return clearTable(ctx, tx, flashcardTable(s), owner) }},
			{repository.CollectionNotes, func() error { return clearTable(ctx, tx, noteTable(s), owner) }},
			{repository.CollectionUnits, func() error { return clearTable(ctx, tx, unitTable(s), owner) }},
			{repository.CollectionCourses, func() error { return clearTable(ctx, tx, courseTable(s), owner) }},
		}
		for _, c := range steps {
			if !scope.Includes(c.name) {
				continue
			}
			if err := c.clear(); err != nil {
				return err
			}
		}
		// profiles are shared; an owner-scoped restore merges them
		if scope.Includes(repository.CollectionUser) && owner == "" {
			if err := userTable(s).delete(ctx, tx, nil); err != nil {
				return err
			}
		}

		if scope.Includes(repository.CollectionCourses) {
			if err := restoreTable(ctx, tx, courseTable(s), snap.Courses, func(c *entity.Course) { reown(&c.OwnerID, owner) }); err != nil {
				return err
			}
		}
		if scope.Includes(repository.CollectionUnits) {
			if err := restoreTable(ctx, tx, unitTable(s), snap.Units, func(u *entity.Unit) { reown(&u.OwnerID, owner) }); err != nil {
				return err
			}
		}
		if scope.Includes(repository.CollectionNotes) {
			if err := restoreTable(ctx, tx, noteTable(s), snap.Notes, func(n *entity.Note) { reown(&n.OwnerID, owner) }); err != nil {
				return err
			}
		}
		if scope.Includes(repository.CollectionFlashcards) {
			if err := restoreTable(ctx, tx, flashcardTable(s), snap.Flashcards, func(f *entity.Flashcard) { reown(&f.OwnerID, owner) }); err != nil {
				return err
			}
		}
		if scope.Includes(repository.CollectionTasks) {
			if err := restoreTable(ctx, tx, taskTable(s), snap.Tasks, func(t *entity.Task) { reown(&t.OwnerID, owner) }); err != nil {
				return err
			}
		}
		if scope.Includes(repository.CollectionAcademicRecords) {
			if err := restoreTable(ctx, tx, academicRecordTable(s), snap.AcademicRecords, func(rec *entity.AcademicRecord) { reown(&rec.OwnerID, owner) }); err != nil {
				return err
			}
		}
		if scope.Includes(repository.CollectionStudySessions) {
			if err := restoreTable(ctx, tx, studySessionTable(s), snap.StudySessions, func(ss *entity.StudySession) { reown(&ss.OwnerID, owner) }); err != nil {
				return err
			}
		}
		// dependents of courses that were cleared and not restored go with them,
		// even when their own collection is out of scope
		if scope.Includes(repository.CollectionCourses) {
			restored := lo.Map(snap.Courses, func(c entity.Course, _ int) string { return c.ID })
			if err := cascadeCourses(ctx, tx, s, lo.Without(cleared, restored...)); err != nil {
				return err
			}
		}
		if scope.Includes(repository.CollectionUser) {
			return restoreTable(ctx, tx, userTable(s), snap.User, nil)
		}
		return nil
	})
	return s.fail("restore", "", err)
}

// reown stamps an owner-scoped import with its owner. Ownerless legacy records
// keep no owner so they stay visible to everyone.
func reown(field *string, owner string) {
	if owner != "" && *field != "" {
		*field = owner
	}
}

func ownedBy(owner string) *entsql.Predicate {
	if owner == "" {
		return nil
	}
	return entsql.EQ("owner_id", owner)
}

func clearTable[T any](ctx context.Context, q dialect.ExecQuerier, t *table[T], owner string) error {
	return t.delete(ctx, q, ownedBy(owner))
}

// restoreTable writes items, overwriting records whose id already exists.
func restoreTable[T any](ctx context.Context, q dialect.ExecQuerier, t *table[T], items []T, prepare func(*T)) error {
	for i := range items {
		item := items[i]
		if prepare != nil {
			prepare(&item)
		}
		if err := t.upsert(ctx, q, &item); err != nil {
			return err
		}
	}
	return nil
}
