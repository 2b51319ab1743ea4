package repository

import (
	"context"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

type courseRepository struct {
	collection[entity.Course]
}

// NewCourseRepository constructs the course repository.
func NewCourseRepository(s *Store) repository.CourseRepository {
	return &courseRepository{collection[entity.Course]{t: courseTable(s)}}
}

// CascadeDelete removes a course with its units, notes, flashcards and tasks.
// Study sessions survive with their course reference cleared.
func (r *courseRepository) CascadeDelete(ctx context.Context, courseID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.t.s
	err := s.withTx(ctx, func(tx dialect.Tx) error {
		if err := cascadeCourses(ctx, tx, s, []string{courseID}); err != nil {
			return err
		}
		return r.t.delete(ctx, tx, entsql.EQ("id", courseID))
	})
	return s.fail("cascade delete", r.t.name(), err)
}

// cascadeCourses removes the dependents of the given courses inside tx and
// detaches their study sessions. The course rows themselves are left alone.
func cascadeCourses(ctx context.Context, tx dialect.Tx, s *Store, courseIDs []string) error {
	if len(courseIDs) == 0 {
		return nil
	}
	byCourse := func() *entsql.Predicate {
		return entsql.In("course_id", lo.ToAnySlice(courseIDs)...)
	}
	if err := noteTable(s).delete(ctx, tx, byCourse()); err != nil {
		return err
	}
	if err := flashcardTable(s).delete(ctx, tx, byCourse()); err != nil {
		return err
	}
	if err := unitTable(s).delete(ctx, tx, byCourse()); err != nil {
		return err
	}
	if err := taskTable(s).delete(ctx, tx, byCourse()); err != nil {
		return err
	}

	query, args := entsql.Dialect(s.drv.Dialect()).
		Update(studySessionTable(s).name()).
		SetNull("course_id").
		Where(byCourse()).
		Query()
	return tx.Exec(ctx, query, args, nil)
}

type unitRepository struct {
	collection[entity.Unit]
}

// NewUnitRepository constructs the unit repository.
func NewUnitRepository(s *Store) repository.UnitRepository {
	return &unitRepository{collection[entity.Unit]{t: unitTable(s)}}
}

func (r *unitRepository) ListByCourse(ctx context.Context, courseID string) ([]entity.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.indexed(ctx, "list by course", "unit_course_id",
		entsql.EQ("course_id", courseID),
		func(u *entity.Unit) bool { return u.CourseID == courseID })
}

type noteRepository struct {
	collection[entity.Note]
}

// NewNoteRepository constructs the note repository.
func NewNoteRepository(s *Store) repository.NoteRepository {
	return &noteRepository{collection[entity.Note]{t: noteTable(s)}}
}

func (r *noteRepository) ListByCourse(ctx context.Context, courseID string) ([]entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.indexed(ctx, "list by course", "note_course_id",
		entsql.EQ("course_id", courseID),
		func(n *entity.Note) bool { return n.CourseID == courseID })
}

func (r *noteRepository) ListByUnit(ctx context.Context, unitID string) ([]entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.indexed(ctx, "list by unit", "note_unit_id",
		entsql.EQ("unit_id", unitID),
		func(n *entity.Note) bool { return n.UnitID == unitID })
}

func (r *noteRepository) ListByCourseUnit(ctx context.Context, courseID, unitID string) ([]entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.indexed(ctx, "list by course and unit", "note_course_id_unit_id",
		entsql.And(entsql.EQ("course_id", courseID), entsql.EQ("unit_id", unitID)),
		func(n *entity.Note) bool { return n.CourseID == courseID && n.UnitID == unitID })
}

type flashcardRepository struct {
	collection[entity.Flashcard]
}

// NewFlashcardRepository constructs the flashcard repository.
func NewFlashcardRepository(s *Store) repository.FlashcardRepository {
	return &flashcardRepository{collection[entity.Flashcard]{t: flashcardTable(s)}}
}

func (r *flashcardRepository) ListByCourse(ctx context.Context, courseID string) ([]entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.indexed(ctx, "list by course", "flashcard_course_id",
		entsql.EQ("course_id", courseID),
		func(f *entity.Flashcard) bool { return f.CourseID == courseID })
}

func (r *flashcardRepository) ListByUnit(ctx context.Context, unitID string) ([]entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.indexed(ctx, "list by unit", "flashcard_unit_id",
		entsql.EQ("unit_id", unitID),
		func(f *entity.Flashcard) bool { return f.UnitID == unitID })
}

func (r *flashcardRepository) ListByCourseUnit(ctx context.Context, courseID, unitID string) ([]entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.indexed(ctx, "list by course and unit", "flashcard_course_id_unit_id",
		entsql.And(entsql.EQ("course_id", courseID), entsql.EQ("unit_id", unitID)),
		func(f *entity.Flashcard) bool { return f.CourseID == courseID && f.UnitID == unitID })
}
