package entity

import "time"

// StudySession logs a block of study time, optionally attributed to a course.
type StudySession struct {
	ID              string    `json:"id" validate:"required"`
	OwnerID         string    `json:"ownerId,omitempty"`
	CourseID        string    `json:"courseId,omitempty"`
	StartedAt       time.Time `json:"startedAt" validate:"required"`
	DurationMinutes int       `json:"durationMinutes" validate:"gte=0"`
	Notes           string    `json:"notes,omitempty"`
	Timestamps
}

// Normalize ensures defaults & constraints before persistence.
func (s *StudySession) Normalize(now time.Time) {
	if s.ID == "" {
		s.ID = NewID()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = now
	}
	s.touch(now)
}

// Validate validates the session.
func (s *StudySession) Validate() error {
	return validateStruct("study session", s)
}
