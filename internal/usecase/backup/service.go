package backup

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

const formatVersion = 1

// ErrMalformedImport reports an import document that failed decoding or
// validation. Nothing is written when it is returned.
var ErrMalformedImport = errors.New("backup: malformed import")

var errNoCollectionsSelected = fmt.Errorf("%w: no backup collections selected", entity.ErrValidation)

type ProgressReporter interface {
	StartTable(table string, total int)
	Increment(table string, delta int)
	FinishTable(table string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

// Document is the export file: the snapshot collections at the top level plus
// a little metadata.
type Document struct {
	Version    int        `json:"version,omitempty"`
	ExportedAt *time.Time `json:"exportedAt,omitempty"`
	OwnerID    string     `json:"ownerId,omitempty"`
	repository.Snapshot
}

type Service struct {
	repo  repository.SnapshotRepository
	clock func() time.Time
}

// NewService constructs a backup service over the snapshot repository.
func NewService(repo repository.SnapshotRepository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type Option func(*config)

type config struct {
	ownerID     string
	collections []string
	reporter    ProgressReporter
}

// WithOwner narrows export and import to one owner's records. Profiles are
// still exported in full.
func WithOwner(ownerID string) Option {
	return func(cfg *config) {
		cfg.ownerID = strings.TrimSpace(ownerID)
	}
}

// WithCollections restricts the operation to the named collections
// (courses, units, notes, flashcards, tasks, academicRecords, studySessions, user).
func WithCollections(collections []string) Option {
	return func(cfg *config) {
		if len(collections) == 0 {
			return
		}
		cfg.collections = append([]string{}, collections...)
	}
}

// WithProgressReporter registers a reporter that receives per-collection progress callbacks.
func WithProgressReporter(reporter ProgressReporter) Option {
	return func(cfg *config) {
		cfg.reporter = reporter
	}
}

func buildConfig(opts []Option) (config, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.reporter == nil {
		cfg.reporter = noopProgress{}
	}
	if len(cfg.collections) == 0 {
		return cfg, nil
	}
	selected, err := selectCollections(cfg.collections)
	if err != nil {
		return config{}, err
	}
	cfg.collections = selected
	return cfg, nil
}

// selectCollections resolves requested names case-insensitively, keeping the
// canonical order.
func selectCollections(requested []string) ([]string, error) {
	known := make(map[string]string, len(repository.Collections))
	for _, name := range repository.Collections {
		known[strings.ToLower(name)] = name
	}
	want := make(map[string]struct{}, len(requested))
	for _, raw := range requested {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		name, ok := known[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown backup collection %q", entity.ErrValidation, raw)
		}
		want[name] = struct{}{}
	}
	if len(want) == 0 {
		return nil, errNoCollectionsSelected
	}
	out := make([]string, 0, len(want))
	for _, name := range repository.Collections {
		if _, ok := want[name]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}

func (cfg config) scope() repository.SnapshotScope {
	return repository.SnapshotScope{OwnerID: cfg.ownerID, Collections: cfg.collections}
}

// Export writes the scoped collections to w as one JSON document.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...Option) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}
	scope := cfg.scope()

	snap, err := s.repo.Dump(ctx, scope)
	if err != nil {
		return fmt.Errorf("dump store: %w", err)
	}
	for _, name := range repository.Collections {
		if !scope.Includes(name) {
			continue
		}
		total := snap.Count(name)
		cfg.reporter.StartTable(name, total)
		cfg.reporter.Increment(name, total)
		cfg.reporter.FinishTable(name)
	}

	now := s.clock().UTC()
	doc := Document{
		Version:    formatVersion,
		ExportedAt: &now,
		OwnerID:    cfg.ownerID,
		Snapshot:   *snap,
	}

	writer := bufio.NewWriter(w)
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return writer.Flush()
}

// Import reads a document written by Export. Every record is validated before
// anything is written; then, in one transaction, the scoped data is cleared and
// the document's records are written, overwriting records with the same id.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...Option) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}
	scope := cfg.scope()

	var doc Document
	dec := json.NewDecoder(bufio.NewReader(r))
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrMalformedImport, err)
	}
	if doc.Version > formatVersion {
		return fmt.Errorf("%w: unsupported format version %d", ErrMalformedImport, doc.Version)
	}
	if err := validateSnapshot(&doc.Snapshot, scope); err != nil {
		return err
	}

	for _, name := range repository.Collections {
		if scope.Includes(name) {
			cfg.reporter.StartTable(name, doc.Count(name))
		}
	}
	if err := s.repo.Restore(ctx, &doc.Snapshot, scope); err != nil {
		return fmt.Errorf("restore store: %w", err)
	}
	for _, name := range repository.Collections {
		if scope.Includes(name) {
			cfg.reporter.Increment(name, doc.Count(name))
			cfg.reporter.FinishTable(name)
		}
	}
	return nil
}

type validatable interface {
	Validate() error
}

func validateSnapshot(snap *repository.Snapshot, scope repository.SnapshotScope) error {
	checks := []struct {
		name  string
		check func() error
	}{
		{repository.CollectionCourses, func() error {
			return validateAll(repository.CollectionCourses, snap.Courses, func(c *entity.Course) string { return c.ID })
		}},
		{repository.CollectionUnits, func() error {
			return validateAll(repository.CollectionUnits, snap.Units, func(u *entity.Unit) string { return u.ID })
		}},
		{repository.CollectionNotes, func() error {
			return validateAll(repository.CollectionNotes, snap.Notes, func(n *entity.Note) string { return n.ID })
		}},
		{repository.CollectionFlashcards, func() error {
			return validateAll(repository.CollectionFlashcards, snap.Flashcards, func(f *entity.Flashcard) string { return f.ID })
		}},
		{repository.CollectionTasks, func() error {
			return validateAll(repository.CollectionTasks, snap.Tasks, func(t *entity.Task) string { return t.ID })
		}},
		{repository.CollectionAcademicRecords, func() error {
			return validateAll(repository.CollectionAcademicRecords, snap.AcademicRecords, func(r *entity.AcademicRecord) string { return r.ID })
		}},
		{repository.CollectionStudySessions, func() error {
			return validateAll(repository.CollectionStudySessions, snap.StudySessions, func(s *entity.StudySession) string { return s.ID })
		}},
		{repository.CollectionUser, func() error {
			return validateAll(repository.CollectionUser, snap.User, func(u *entity.User) string { return u.Name })
		}},
	}
	for _, c := range checks {
		if !scope.Includes(c.name) {
			continue
		}
		if err := c.check(); err != nil {
			return err
		}
	}
	return nil
}

// validateAll checks every record's shape and rejects repeated keys.
func validateAll[T any, PT interface {
	*T
	validatable
}](collection string, items []T, key func(PT) string) error {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		item := PT(&items[i])
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: %s[%d]: %v", ErrMalformedImport, collection, i, err)
		}
		k := key(item)
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: %s[%d]: repeated key %q", ErrMalformedImport, collection, i, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
