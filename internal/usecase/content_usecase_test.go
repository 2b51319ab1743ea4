package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eslsoft/studydesk/internal/entity"
)

type contentFixture struct {
	courses *fakeCourseRepo
	units   *fakeUnitRepo
	notes   *fakeNoteRepo
	cards   *fakeFlashcardRepo
	content *contentUsecase
	flash   *flashcardUsecase
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	f := &contentFixture{
		courses: newFakeCourseRepo(),
		units:   newFakeUnitRepo(),
		notes:   newFakeNoteRepo(),
		cards:   newFakeFlashcardRepo(),
	}
	f.content = NewContentUsecase(f.courses, f.units, f.notes, f.cards).(*contentUsecase)
	f.content.clock = fixedClock(fixedNow)
	f.flash = NewFlashcardUsecase(f.courses, f.units, f.cards).(*flashcardUsecase)
	f.flash.clock = fixedClock(fixedNow)

	ctx := context.Background()
	for _, c := range []entity.Course{
		{ID: "math", Name: "Math", Color: "#000000"},
		{ID: "bio", Name: "Bio", Color: "#000000"},
	} {
		if err := f.courses.Add(ctx, &c); err != nil {
			t.Fatalf("seed course: %v", err)
		}
	}
	return f
}

func TestUnitsOrderedByIndex(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	for _, u := range []entity.Unit{
		{ID: "u3", CourseID: "math", Name: "Series", OrderIndex: 3},
		{ID: "u1", CourseID: "math", Name: "Limits", OrderIndex: 1},
		{ID: "u2b", CourseID: "math", Name: "Integrals", OrderIndex: 2},
		{ID: "u2a", CourseID: "math", Name: "Derivatives", OrderIndex: 2},
		{ID: "b1", CourseID: "bio", Name: "Cells"},
	} {
		if _, err := f.content.CreateUnit(ctx, "", &u); err != nil {
			t.Fatalf("CreateUnit %s returned error: %v", u.ID, err)
		}
	}

	units, err := f.content.ListUnits(ctx, "math")
	if err != nil {
		t.Fatalf("ListUnits returned error: %v", err)
	}
	ids := make([]string, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	if diff := cmp.Diff([]string{"u1", "u2a", "u2b", "u3"}, ids); diff != "" {
		t.Fatalf("unit order mismatch (-want +got):\n%s", diff)
	}

	if _, err := f.content.CreateUnit(ctx, "", &entity.Unit{CourseID: "nope", Name: "x"}); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected not found for unknown course, got %v", err)
	}
}

func TestNoteLifecycle(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	if _, err := f.content.CreateUnit(ctx, "", &entity.Unit{ID: "u1", CourseID: "math", Name: "Limits"}); err != nil {
		t.Fatalf("CreateUnit returned error: %v", err)
	}

	note, err := f.content.CreateNote(ctx, "alice", &entity.Note{UnitID: "u1", Title: "Epsilon-delta", Tags: []string{"proof", " proof ", ""}})
	if err != nil {
		t.Fatalf("CreateNote returned error: %v", err)
	}
	if note.CourseID != "math" || note.OwnerID != "alice" {
		t.Fatalf("note not filed under the unit's course: %+v", note)
	}
	if diff := cmp.Diff([]string{"proof"}, note.Tags); diff != "" {
		t.Fatalf("tags not normalized (-want +got):\n%s", diff)
	}

	if _, err := f.content.CreateNote(ctx, "", &entity.Note{CourseID: "bio", UnitID: "u1", Title: "x"}); !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected mismatch validation error, got %v", err)
	}

	f.content.clock = fixedClock(fixedNow.Add(time.Hour))
	updated, err := f.content.UpdateNote(ctx, &entity.Note{ID: note.ID, Title: "Limits", Content: "# Limits"})
	if err != nil {
		t.Fatalf("UpdateNote returned error: %v", err)
	}
	if updated.UnitID != "u1" || !updated.CreatedAt.Equal(fixedNow) || updated.Content != "# Limits" {
		t.Fatalf("unexpected updated note %+v", updated)
	}

	byUnit, err := f.content.ListNotes(ctx, "", "u1")
	if err != nil || len(byUnit) != 1 {
		t.Fatalf("ListNotes by unit = %v, %v", byUnit, err)
	}
	if _, err := f.content.ListNotes(ctx, "", ""); !errors.Is(err, entity.ErrInvalidID) {
		t.Fatalf("expected invalid id without a course or unit, got %v", err)
	}
}

func TestDeleteUnitRemovesDependents(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	if _, err := f.content.CreateUnit(ctx, "", &entity.Unit{ID: "u1", CourseID: "math", Name: "Limits"}); err != nil {
		t.Fatalf("CreateUnit returned error: %v", err)
	}
	if _, err := f.content.CreateNote(ctx, "", &entity.Note{ID: "n1", UnitID: "u1", Title: "a"}); err != nil {
		t.Fatalf("CreateNote returned error: %v", err)
	}
	if _, err := f.flash.Create(ctx, "", &entity.Flashcard{ID: "f1", UnitID: "u1", Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("Create flashcard returned error: %v", err)
	}

	if err := f.content.DeleteUnit(ctx, "u1"); err != nil {
		t.Fatalf("DeleteUnit returned error: %v", err)
	}
	if n, _ := f.notes.Get(ctx, "n1"); n != nil {
		t.Fatalf("note should be removed with its unit")
	}
	if c, _ := f.cards.Get(ctx, "f1"); c != nil {
		t.Fatalf("flashcard should be removed with its unit")
	}
}

func TestFlashcardReview(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	if _, err := f.content.CreateUnit(ctx, "", &entity.Unit{ID: "u1", CourseID: "math", Name: "Limits"}); err != nil {
		t.Fatalf("CreateUnit returned error: %v", err)
	}
	card, err := f.flash.Create(ctx, "", &entity.Flashcard{UnitID: "u1", Question: "lim sin x / x", Answer: "1", ReviewCount: 7})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if card.ReviewCount != 0 || card.ConfidenceLevel != entity.MinConfidence || card.CourseID != "math" {
		t.Fatalf("unexpected new card %+v", card)
	}

	reviewAt := fixedNow.Add(30 * time.Minute)
	f.flash.clock = fixedClock(reviewAt)
	reviewed, err := f.flash.Review(ctx, card.ID, 4)
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if reviewed.ReviewCount != 1 || reviewed.ConfidenceLevel != 4 || reviewed.LastReviewed == nil || !reviewed.LastReviewed.Equal(reviewAt) {
		t.Fatalf("review not applied: %+v", reviewed)
	}

	for _, confidence := range []int{0, 6} {
		if _, err := f.flash.Review(ctx, card.ID, confidence); !errors.Is(err, entity.ErrInvalidConfidence) {
			t.Fatalf("confidence %d: expected ErrInvalidConfidence, got %v", confidence, err)
		}
	}

	regress := *reviewed
	regress.ReviewCount = 0
	if _, err := f.flash.Update(ctx, &regress); !errors.Is(err, entity.ErrReviewCountRegression) {
		t.Fatalf("expected review count regression, got %v", err)
	}

	if _, err := f.flash.Review(ctx, "missing", 3); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFlashcardsListedForReview(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	if _, err := f.content.CreateUnit(ctx, "", &entity.Unit{ID: "u1", CourseID: "math", Name: "Limits"}); err != nil {
		t.Fatalf("CreateUnit returned error: %v", err)
	}
	for _, c := range []entity.Flashcard{
		{ID: "confident", UnitID: "u1", Question: "q", Answer: "a", ConfidenceLevel: 5},
		{ID: "shaky", UnitID: "u1", Question: "q", Answer: "a", ConfidenceLevel: 2},
	} {
		if _, err := f.flash.Create(ctx, "", &c); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	cards, err := f.flash.ListByUnit(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUnit returned error: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != "shaky" {
		t.Fatalf("expected least confident card first, got %+v", cards)
	}
}
