package entity

import (
	"strings"
	"time"
)

// User is the single profile record of an installation, keyed by display name.
type User struct {
	Name          string     `json:"name" validate:"required"`
	Avatar        string     `json:"avatar,omitempty"`
	Theme         Theme      `json:"theme,omitempty" validate:"omitempty,oneof=light dark system pink"`
	StudyStreak   int        `json:"studyStreak" validate:"gte=0"`
	LastStudyDate *time.Time `json:"lastStudyDate,omitempty"`
	Timestamps
}

// Normalize ensures defaults & constraints before persistence.
func (u *User) Normalize(now time.Time) {
	u.Name = strings.TrimSpace(u.Name)
	u.Theme = NormalizeTheme(u.Theme)
	if u.StudyStreak < 0 {
		u.StudyStreak = 0
	}
	u.touch(now)
}

// Validate validates the profile.
func (u *User) Validate() error {
	return validateStruct("user", u)
}
