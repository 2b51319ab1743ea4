package entity

import (
	"strings"
	"time"
)

// Unit subdivides a course. OrderIndex orders units inside a course; uniqueness is not enforced.
type Unit struct {
	ID          string `json:"id" validate:"required"`
	OwnerID     string `json:"ownerId,omitempty"`
	CourseID    string `json:"courseId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	OrderIndex  int    `json:"order"`
	Description string `json:"description,omitempty"`
	Timestamps
}

// Normalize ensures defaults & constraints before persistence.
func (u *Unit) Normalize(now time.Time) {
	if u.ID == "" {
		u.ID = NewID()
	}
	u.Name = strings.TrimSpace(u.Name)
	u.touch(now)
}

// Validate validates the unit.
func (u *Unit) Validate() error {
	return validateStruct("unit", u)
}
