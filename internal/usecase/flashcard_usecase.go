package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

// FlashcardUsecase manages flashcards and their review history.
type FlashcardUsecase interface {
	Create(ctx context.Context, ownerID string, card *entity.Flashcard) (*entity.Flashcard, error)
	Update(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error)
	Review(ctx context.Context, id string, confidence int) (*entity.Flashcard, error)
	ListByUnit(ctx context.Context, unitID string) ([]entity.Flashcard, error)
	ListByCourse(ctx context.Context, courseID string) ([]entity.Flashcard, error)
	Delete(ctx context.Context, id string) error
}

// NewFlashcardUsecase wires the repositories with default behaviour.
func NewFlashcardUsecase(courses repository.CourseRepository, units repository.UnitRepository, cards repository.FlashcardRepository) FlashcardUsecase {
	return &flashcardUsecase{
		courses: courses,
		units:   units,
		cards:   cards,
		clock:   time.Now,
	}
}

type flashcardUsecase struct {
	courses repository.CourseRepository
	units   repository.UnitRepository
	cards   repository.FlashcardRepository
	clock   func() time.Time
}

func (u *flashcardUsecase) Create(ctx context.Context, ownerID string, card *entity.Flashcard) (*entity.Flashcard, error) {
	if card == nil {
		return nil, errors.New("flashcard payload required")
	}
	unit, err := lookupUnit(ctx, u.units, card.CourseID, card.UnitID)
	if err != nil {
		return nil, err
	}
	if _, err := activeCourse(ctx, u.courses, unit.CourseID); err != nil {
		return nil, err
	}
	item := *card
	item.CourseID = unit.CourseID
	item.UnitID = unit.ID
	item.ReviewCount = 0
	item.LastReviewed = nil
	item.CreatedAt = time.Time{}
	if owner := strings.TrimSpace(ownerID); owner != "" {
		item.OwnerID = owner
	}
	item.Normalize(u.clock())
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := u.cards.Add(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update edits a card. The review counter may never go backwards.
func (u *flashcardUsecase) Update(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error) {
	if card == nil {
		return nil, errors.New("flashcard payload required")
	}
	existing, err := u.get(ctx, card.ID)
	if err != nil {
		return nil, err
	}
	if card.ReviewCount < existing.ReviewCount {
		return nil, entity.ErrReviewCountRegression
	}
	item := *card
	item.ID = existing.ID
	item.CourseID = existing.CourseID
	item.UnitID = existing.UnitID
	item.OwnerID = existing.OwnerID
	item.CreatedAt = existing.CreatedAt
	item.Normalize(u.clock())
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := u.cards.Update(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Review records one study pass over the card with the given 1-5 confidence.
func (u *flashcardUsecase) Review(ctx context.Context, id string, confidence int) (*entity.Flashcard, error) {
	card, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := card.RecordReview(confidence, u.clock()); err != nil {
		return nil, err
	}
	if err := u.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (u *flashcardUsecase) ListByUnit(ctx context.Context, unitID string) ([]entity.Flashcard, error) {
	unitID, err := requireID(unitID)
	if err != nil {
		return nil, err
	}
	cards, err := u.cards.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	sortForReview(cards)
	return cards, nil
}

func (u *flashcardUsecase) ListByCourse(ctx context.Context, courseID string) ([]entity.Flashcard, error) {
	courseID, err := requireID(courseID)
	if err != nil {
		return nil, err
	}
	cards, err := u.cards.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	sortForReview(cards)
	return cards, nil
}

func (u *flashcardUsecase) Delete(ctx context.Context, id string) error {
	id, err := requireID(id)
	if err != nil {
		return err
	}
	return u.cards.Remove(ctx, id)
}

func (u *flashcardUsecase) get(ctx context.Context, id string) (*entity.Flashcard, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}
	card, err := u.cards.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, entity.ErrNotFound
	}
	return card, nil
}

// sortForReview puts the least confident, least reviewed cards first.
func sortForReview(cards []entity.Flashcard) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].ConfidenceLevel != cards[j].ConfidenceLevel {
			return cards[i].ConfidenceLevel < cards[j].ConfidenceLevel
		}
		return cards[i].ReviewCount < cards[j].ReviewCount
	})
}
