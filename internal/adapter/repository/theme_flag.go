package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/infrastructure/config"
	"github.com/eslsoft/studydesk/internal/repository"
)

type themeFlag struct {
	path string
}

// NewThemeFlag stores the theme preference as a one-word file at path.
func NewThemeFlag(path string) repository.ThemeFlag {
	return &themeFlag{path: path}
}

// ProvideThemeFlag places the flag file in the configured data directory.
func ProvideThemeFlag(cfg *config.Config) repository.ThemeFlag {
	return NewThemeFlag(cfg.ThemeFile())
}

func (f *themeFlag) Load() (entity.Theme, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.ThemeUnspecified, nil
	}
	if err != nil {
		return entity.ThemeUnspecified, fmt.Errorf("read theme flag: %w", err)
	}
	theme, err := entity.ParseTheme(strings.TrimSpace(string(raw)))
	if err != nil {
		// a hand-edited flag is ignored, the profile wins
		return entity.ThemeUnspecified, nil
	}
	return theme, nil
}

func (f *themeFlag) Save(theme entity.Theme) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create theme flag dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(string(theme)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write theme flag: %w", err)
	}
	return nil
}
