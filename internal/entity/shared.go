package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh opaque record id.
func NewID() string {
	return uuid.NewString()
}

// Timestamps is embedded by every persisted entity.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ts *Timestamps) touch(now time.Time) {
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = now
	}
	ts.UpdatedAt = now
}

// Theme is the UI theme preference stored on the profile.
type Theme string

const (
	ThemeUnspecified Theme = ""
	ThemeLight       Theme = "light"
	ThemeDark        Theme = "dark"
	ThemeSystem      Theme = "system"
	ThemePink        Theme = "pink"
)

// ParseTheme accepts exactly the supported theme names, case-insensitively.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	case ThemeSystem:
		return ThemeSystem, nil
	case ThemePink:
		return ThemePink, nil
	default:
		return ThemeUnspecified, ErrInvalidTheme
	}
}

// NormalizeTheme falls back to the system theme for anything unsupported.
func NormalizeTheme(t Theme) Theme {
	if parsed, err := ParseTheme(string(t)); err == nil {
		return parsed
	}
	return ThemeSystem
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
