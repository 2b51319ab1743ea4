package entity

import (
	"strings"
	"time"

	"github.com/eslsoft/studydesk/internal/grade"
)

// AcademicRecord is a historical completed-course entry used for GPA computation.
type AcademicRecord struct {
	ID      string       `json:"id" validate:"required"`
	OwnerID string       `json:"ownerId,omitempty"`
	Name    string       `json:"name" validate:"required"`
	Term    string       `json:"term" validate:"required"`
	Credits float64      `json:"credits" validate:"gt=0"`
	Grade   grade.Letter `json:"grade,omitempty"`
	Notes   string       `json:"notes,omitempty"`
	Timestamps
}

// Normalize ensures defaults & constraints before persistence.
func (r *AcademicRecord) Normalize(now time.Time) {
	if r.ID == "" {
		r.ID = NewID()
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Term = strings.TrimSpace(r.Term)
	if l, ok := grade.ParseLetter(string(r.Grade)); ok {
		r.Grade = l
	}
	r.touch(now)
}

// Validate validates the record, including the optional letter grade.
func (r *AcademicRecord) Validate() error {
	if err := validateStruct("academic record", r); err != nil {
		return err
	}
	if r.Grade != grade.NotAvailable && !r.Grade.Valid() {
		return &ValidationError{Entity: "academic record", Fields: []string{"Grade(letter)"}}
	}
	return nil
}

// GradePercentage converts the letter grade to its representative percentage, nil when ungraded.
func (r *AcademicRecord) GradePercentage() *float64 {
	if !r.Grade.Valid() {
		return nil
	}
	pct := grade.LetterToPercentage(r.Grade)
	return &pct
}
