package entity

import (
	"strings"
	"time"
)

// Course is the top-level organizing entity. Units, notes, flashcards and tasks
// reference it through their CourseID.
type Course struct {
	ID          string `json:"id" validate:"required"`
	OwnerID     string `json:"ownerId,omitempty"`
	Name        string `json:"name" validate:"required"`
	Color       string `json:"color" validate:"required"`
	Instructor  string `json:"instructor,omitempty"`
	Schedule    string `json:"schedule,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Archived    bool   `json:"archived"`
	Timestamps
}

// DefaultCourseColor is applied when a course is created without a color tag.
const DefaultCourseColor = "#6366f1"

// Normalize ensures defaults & constraints before persistence.
func (c *Course) Normalize(now time.Time) {
	if c.ID == "" {
		c.ID = NewID()
	}
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)
	if c.Color == "" {
		c.Color = DefaultCourseColor
	}
	c.Instructor = strings.TrimSpace(c.Instructor)
	c.Schedule = strings.TrimSpace(c.Schedule)
	c.Location = strings.TrimSpace(c.Location)
	c.touch(now)
}

// Validate validates the course.
func (c *Course) Validate() error {
	return validateStruct("course", c)
}
