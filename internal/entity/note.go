package entity

import (
	"strings"
	"time"
)

// Note is a markdown document filed under a course unit.
type Note struct {
	ID       string   `json:"id" validate:"required"`
	OwnerID  string   `json:"ownerId,omitempty"`
	CourseID string   `json:"courseId" validate:"required"`
	UnitID   string   `json:"unitId" validate:"required"`
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
	Timestamps
}

// Normalize ensures defaults & constraints before persistence.
func (n *Note) Normalize(now time.Time) {
	if n.ID == "" {
		n.ID = NewID()
	}
	n.Title = strings.TrimSpace(n.Title)
	n.Tags = normalizeTags(n.Tags)
	n.touch(now)
}

// Validate validates the note.
func (n *Note) Validate() error {
	return validateStruct("note", n)
}
