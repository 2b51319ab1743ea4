package repository

import (
	"context"

	"github.com/eslsoft/studydesk/internal/entity"
)

// Collection names as they appear in a snapshot document.
const (
	CollectionCourses         = "courses"
	CollectionUnits           = "units"
	CollectionNotes           = "notes"
	CollectionFlashcards      = "flashcards"
	CollectionTasks           = "tasks"
	CollectionAcademicRecords = "academicRecords"
	CollectionStudySessions   = "studySessions"
	CollectionUser            = "user"
)

// Collections lists every snapshot collection, parents before the records
// that reference them.
var Collections = []string{
	CollectionCourses,
	CollectionUnits,
	CollectionNotes,
	CollectionFlashcards,
	CollectionTasks,
	CollectionAcademicRecords,
	CollectionStudySessions,
	CollectionUser,
}

// Snapshot is the whole content of a store, or one owner's share of it.
type Snapshot struct {
	Courses         []entity.Course         `json:"courses"`
	Units           []entity.Unit           `json:"units"`
	Notes           []entity.Note           `json:"notes"`
	Flashcards      []entity.Flashcard      `json:"flashcards"`
	Tasks           []entity.Task           `json:"tasks"`
	AcademicRecords []entity.AcademicRecord `json:"academicRecords"`
	StudySessions   []entity.StudySession   `json:"studySessions"`
	User            []entity.User           `json:"user"`
}

// Count returns the number of records held for the named collection.
func (s *Snapshot) Count(collection string) int {
	switch collection {
	case CollectionCourses:
		return len(s.Courses)
	case CollectionUnits:
		return len(s.Units)
	case CollectionNotes:
		return len(s.Notes)
	case CollectionFlashcards:
		return len(s.Flashcards)
	case CollectionTasks:
		return len(s.Tasks)
	case CollectionAcademicRecords:
		return len(s.AcademicRecords)
	case CollectionStudySessions:
		return len(s.StudySessions)
	case CollectionUser:
		return len(s.User)
	default:
		return 0
	}
}

// SnapshotScope narrows a dump or restore. The zero value covers every
// collection of every owner.
type SnapshotScope struct {
	OwnerID     string
	Collections []string
}

// Includes reports whether the named collection is in scope.
func (s SnapshotScope) Includes(collection string) bool {
	if len(s.Collections) == 0 {
		return true
	}
	for _, c := range s.Collections {
		if c == collection {
			return true
		}
	}
	return false
}

// SnapshotRepository reads and replaces store content in bulk.
type SnapshotRepository interface {
	// Dump reads the scoped collections. Profiles are always dumped in full.
	Dump(ctx context.Context, scope SnapshotScope) (*Snapshot, error)
	// Restore clears the scoped data and writes snap in one transaction. Records
	// whose id already exists are overwritten.
	Restore(ctx context.Context, snap *Snapshot, scope SnapshotScope) error
}
