package entity

import (
	"strings"
	"time"
)

const (
	MinConfidence = 1
	MaxConfidence = 5
)

// Flashcard is a question/answer pair reviewed with a 1-5 self-assessed confidence.
// ReviewCount only ever grows.
type Flashcard struct {
	ID              string     `json:"id" validate:"required"`
	OwnerID         string     `json:"ownerId,omitempty"`
	CourseID        string     `json:"courseId" validate:"required"`
	UnitID          string     `json:"unitId" validate:"required"`
	Question        string     `json:"question" validate:"required"`
	Answer          string     `json:"answer" validate:"required"`
	Tags            []string   `json:"tags,omitempty"`
	ConfidenceLevel int        `json:"confidenceLevel" validate:"min=1,max=5"`
	ReviewCount     int        `json:"reviewCount" validate:"gte=0"`
	LastReviewed    *time.Time `json:"lastReviewed,omitempty"`
	Timestamps
}

// Normalize ensures defaults & constraints before persistence.
func (f *Flashcard) Normalize(now time.Time) {
	if f.ID == "" {
		f.ID = NewID()
	}
	f.Question = strings.TrimSpace(f.Question)
	f.Answer = strings.TrimSpace(f.Answer)
	f.Tags = normalizeTags(f.Tags)
	if f.ConfidenceLevel == 0 {
		f.ConfidenceLevel = MinConfidence
	}
	f.touch(now)
}

// Validate validates the flashcard.
func (f *Flashcard) Validate() error {
	return validateStruct("flashcard", f)
}

// RecordReview applies one review with the given confidence.
func (f *Flashcard) RecordReview(confidence int, now time.Time) error {
	if confidence < MinConfidence || confidence > MaxConfidence {
		return ErrInvalidConfidence
	}
	f.ConfidenceLevel = confidence
	f.ReviewCount++
	reviewed := now
	f.LastReviewed = &reviewed
	f.touch(now)
	return nil
}
