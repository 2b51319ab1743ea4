package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/studydesk/internal/entity"
)

func newTestCourseUsecase(now time.Time) (*courseUsecase, *fakeCourseRepo) {
	repo := newFakeCourseRepo()
	uc := NewCourseUsecase(repo).(*courseUsecase)
	uc.clock = fixedClock(now)
	return uc, repo
}

func TestCourseCreateAppliesDefaults(t *testing.T) {
	uc, repo := newTestCourseUsecase(fixedNow)

	got, err := uc.Create(context.Background(), "alice", &entity.Course{Name: "  Calculus  "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got.Name != "Calculus" || got.Color != entity.DefaultCourseColor || got.OwnerID != "alice" {
		t.Fatalf("unexpected course %+v", got)
	}
	if !got.CreatedAt.Equal(fixedNow) || !got.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("timestamps not stamped: %+v", got.Timestamps)
	}
	stored, _ := repo.Get(context.Background(), got.ID)
	if stored == nil || stored.Name != "Calculus" {
		t.Fatalf("course not stored: %+v", stored)
	}
}

func TestCourseCreateRejectsInvalid(t *testing.T) {
	uc, _ := newTestCourseUsecase(fixedNow)

	_, err := uc.Create(context.Background(), "", &entity.Course{Name: "   "})
	if !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "", nil); err == nil {
		t.Fatalf("expected error for nil payload")
	}
}

func TestCourseCreateDuplicateID(t *testing.T) {
	uc, _ := newTestCourseUsecase(fixedNow)
	ctx := context.Background()

	if _, err := uc.Create(ctx, "", &entity.Course{ID: "math", Name: "Math"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := uc.Create(ctx, "", &entity.Course{ID: "math", Name: "Math again"}); !errors.Is(err, entity.ErrDuplicateID) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestCourseUpdateKeepsCreatedAt(t *testing.T) {
	uc, _ := newTestCourseUsecase(fixedNow)
	ctx := context.Background()
	created, err := uc.Create(ctx, "alice", &entity.Course{ID: "math", Name: "Math"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	later := fixedNow.Add(time.Hour)
	uc.clock = fixedClock(later)
	updated, err := uc.Update(ctx, &entity.Course{ID: "math", Name: "Linear Algebra", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) || !updated.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected timestamps %+v", updated.Timestamps)
	}
	if updated.OwnerID != "alice" {
		t.Fatalf("owner should be preserved, got %q", updated.OwnerID)
	}

	if _, err := uc.Update(ctx, &entity.Course{ID: "missing", Name: "x"}); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCourseArchiveAndList(t *testing.T) {
	uc, _ := newTestCourseUsecase(fixedNow)
	ctx := context.Background()
	for _, c := range []entity.Course{
		{ID: "c1", Name: "zoology", OwnerID: "alice"},
		{ID: "c2", Name: "Algebra", OwnerID: "alice"},
		{ID: "c3", Name: "History", OwnerID: "bob"},
		{ID: "c4", Name: "Legacy"},
	} {
		if _, err := uc.Create(ctx, "", &c); err != nil {
			t.Fatalf("Create %s returned error: %v", c.ID, err)
		}
	}

	if _, err := uc.Archive(ctx, "c1", true); err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}

	active, err := uc.List(ctx, "alice", false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got := courseNames(active); len(got) != 2 || got[0] != "Algebra" || got[1] != "Legacy" {
		t.Fatalf("unexpected active courses %v", got)
	}

	all, err := uc.List(ctx, "alice", true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got := courseNames(all); len(got) != 3 || got[2] != "zoology" {
		t.Fatalf("unexpected courses %v", got)
	}

	everyone, err := uc.List(ctx, "", true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(everyone) != 4 {
		t.Fatalf("expected every course without an owner filter, got %d", len(everyone))
	}
}

func TestCourseDeleteCascades(t *testing.T) {
	uc, repo := newTestCourseUsecase(fixedNow)
	ctx := context.Background()
	if _, err := uc.Create(ctx, "", &entity.Course{ID: "math", Name: "Math"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := uc.Delete(ctx, "math"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(repo.cascaded) != 1 || repo.cascaded[0] != "math" {
		t.Fatalf("expected cascade delete, got %v", repo.cascaded)
	}
	if _, err := uc.Get(ctx, "math"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := uc.Delete(ctx, " "); !errors.Is(err, entity.ErrInvalidID) {
		t.Fatalf("expected invalid id, got %v", err)
	}
}

func courseNames(courses []entity.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Name
	}
	return out
}
