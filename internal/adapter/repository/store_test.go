package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/go-cmp/cmp"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/infrastructure/database"
	"github.com/eslsoft/studydesk/internal/infrastructure/database/migrate"
	"github.com/eslsoft/studydesk/internal/repository"
)

var baseTime = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func requireSQLite(t *testing.T) {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		t.Skipf("sqlite driver not available: %v", err)
		return
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Skipf("skipping sqlite-dependent tests: %v", err)
	}
}

func testDSN(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "store.db") + "?_fk=1&cache=shared"
}

func openDriver(t *testing.T, dsn string) *entsql.Driver {
	t.Helper()
	drv, err := database.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return drv
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	requireSQLite(t)
	return openTestStore(t, testDSN(t), opts...)
}

func openTestStore(t *testing.T, dsn string, opts ...Option) *Store {
	t.Helper()
	s, err := Open(context.Background(), openDriver(t, dsn), opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newCourse(id, owner string) *entity.Course {
	c := &entity.Course{ID: id, OwnerID: owner, Name: "Course " + id, Color: entity.DefaultCourseColor}
	c.Normalize(baseTime)
	return c
}

func newTask(id, owner, course string, due time.Time, status entity.TaskStatus) *entity.Task {
	task := &entity.Task{
		ID:       id,
		OwnerID:  owner,
		CourseID: course,
		Title:    "Task " + id,
		DueDate:  due,
		Type:     entity.TaskTypeAssignment,
		Status:   status,
	}
	task.Normalize(baseTime)
	return task
}

func TestCollectionCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	courses := NewCourseRepository(s)

	course := newCourse("c1", "alice")
	course.Instructor = "Dr. Ada"
	if err := courses.Add(ctx, course); err != nil {
		t.Fatalf("add: %v", err)
	}

	err := courses.Add(ctx, newCourse("c1", "alice"))
	if !errors.Is(err, entity.ErrDuplicateID) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
	var se *StorageError
	if !errors.As(err, &se) || se.Op != "add" || se.Collection != "courses" {
		t.Fatalf("expected StorageError for add courses, got %#v", err)
	}

	got, err := courses.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(course, got); diff != "" {
		t.Fatalf("course mismatch (-want +got):\n%s", diff)
	}

	missing, err := courses.Get(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing id, got %v, %v", missing, err)
	}

	course.Name = "Renamed"
	if err := courses.Update(ctx, course); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := courses.Update(ctx, newCourse("c2", "alice")); err != nil {
		t.Fatalf("upsert new: %v", err)
	}
	all, err := courses.GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Renamed" {
		t.Fatalf("unexpected courses after update: %+v", all)
	}

	if err := courses.Remove(ctx, "c1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := courses.Remove(ctx, "c1"); err != nil {
		t.Fatalf("remove twice: %v", err)
	}
	if got, _ := courses.Get(ctx, "c1"); got != nil {
		t.Fatalf("course still present after remove")
	}
}

func TestGetAllOwnerScoping(t *testing.T) {
	ctx := context.Background()
	seed := func(t *testing.T, s *Store) repository.CourseRepository {
		courses := NewCourseRepository(s)
		for _, c := range []*entity.Course{
			newCourse("a1", "alice"),
			newCourse("b1", "bob"),
			newCourse("legacy", ""),
		} {
			if err := courses.Add(ctx, c); err != nil {
				t.Fatalf("seed %s: %v", c.ID, err)
			}
		}
		return courses
	}
	ids := func(items []entity.Course) []string {
		out := make([]string, len(items))
		for i, c := range items {
			out[i] = c.ID
		}
		return out
	}

	t.Run("legacy visible", func(t *testing.T) {
		courses := seed(t, newTestStore(t))
		got, err := courses.GetAll(ctx, repository.ForOwner("alice"))
		if err != nil {
			t.Fatalf("get all: %v", err)
		}
		if diff := cmp.Diff([]string{"a1", "legacy"}, ids(got)); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}

		got, err = courses.GetAll(ctx, repository.OnlyOwner("alice"))
		if err != nil {
			t.Fatalf("get all: %v", err)
		}
		if diff := cmp.Diff([]string{"a1"}, ids(got)); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}

		got, err = courses.GetAll(ctx, nil)
		if err != nil {
			t.Fatalf("get all: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected every course without filter, got %v", ids(got))
		}
	})

	t.Run("legacy hidden", func(t *testing.T) {
		courses := seed(t, newTestStore(t, WithLegacyVisible(false)))
		got, err := courses.GetAll(ctx, repository.ForOwner("bob"))
		if err != nil {
			t.Fatalf("get all: %v", err)
		}
		if diff := cmp.Diff([]string{"b1"}, ids(got)); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSchemaVersionGuard(t *testing.T) {
	requireSQLite(t)
	ctx := context.Background()
	dsn := testDSN(t)

	s := openTestStore(t, dsn)
	if v, err := s.schemaVersion(ctx); err != nil || v != migrate.SchemaVersion {
		t.Fatalf("expected version %d, got %d, %v", migrate.SchemaVersion, v, err)
	}
	if err := s.setSchemaVersion(ctx, migrate.SchemaVersion+1); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = s.Close()

	_, err := Open(ctx, openDriver(t, dsn))
	if !errors.Is(err, ErrSchemaTooNew) {
		t.Fatalf("expected ErrSchemaTooNew, got %v", err)
	}
}

func TestOpenRecreatesMissingIndex(t *testing.T) {
	requireSQLite(t)
	ctx := context.Background()
	dsn := testDSN(t)

	s := openTestStore(t, dsn)
	if err := s.drv.Exec(ctx, "DROP INDEX unit_course_id", []any{}, nil); err != nil {
		t.Fatalf("drop index: %v", err)
	}
	if err := s.RefreshIndexes(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if s.hasIndex("unit_course_id") {
		t.Fatalf("index should be gone")
	}
	_ = s.Close()

	noMigrate := openTestStore(t, dsn, WithAutoMigrate(false))
	if noMigrate.hasIndex("unit_course_id") {
		t.Fatalf("index must stay missing without migration")
	}
	_ = noMigrate.Close()

	migrated := openTestStore(t, dsn)
	if !migrated.hasIndex("unit_course_id") {
		t.Fatalf("migration should recreate the index")
	}
}
