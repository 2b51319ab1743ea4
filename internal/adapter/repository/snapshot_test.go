package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

func TestSnapshotDumpRestoreRoundTrip(t *testing.T) {
	src := newTestStore(t)
	ctx := context.Background()
	seedStore(t, src)

	snap, err := NewSnapshotRepository(src).Dump(ctx, repository.SnapshotScope{})
	if err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	if len(snap.Courses) != 2 || len(snap.Tasks) != 4 || len(snap.StudySessions) != 1 {
		t.Fatalf("unexpected dump sizes: courses=%d tasks=%d sessions=%d", len(snap.Courses), len(snap.Tasks), len(snap.StudySessions))
	}

	dst := newTestStore(t)
	if err := NewCourseRepository(dst).Add(ctx, newCourse("stale", "")); err != nil {
		t.Fatalf("seed stale course: %v", err)
	}
	if err := NewSnapshotRepository(dst).Restore(ctx, snap, repository.SnapshotScope{}); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}

	again, err := NewSnapshotRepository(dst).Dump(ctx, repository.SnapshotScope{})
	if err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	if diff := cmp.Diff(snap, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotOwnerScopedRestore(t *testing.T) {
	s := newTestStore(t, WithLegacyVisible(false))
	ctx := context.Background()
	courses := NewCourseRepository(s)
	for _, c := range []*entity.Course{newCourse("a1", "alice"), newCourse("a2", "alice"), newCourse("b1", "bob")} {
		if err := courses.Add(ctx, c); err != nil {
			t.Fatalf("seed course: %v", err)
		}
	}

	incoming := &repository.Snapshot{Courses: []entity.Course{*newCourse("new", "someone-else")}}
	scope := repository.SnapshotScope{OwnerID: "alice", Collections: []string{repository.CollectionCourses}}
	if err := NewSnapshotRepository(s).Restore(ctx, incoming, scope); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}

	all, err := courses.GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	got := map[string]string{}
	for _, c := range all {
		got[c.ID] = c.OwnerID
	}
	want := map[string]string{"b1": "bob", "new": "alice"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("owner-scoped restore mismatch (-want +got):\n%s", diff)
	}

	dumped, err := NewSnapshotRepository(s).Dump(ctx, scope)
	if err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	if len(dumped.Courses) != 1 || dumped.Courses[0].ID != "new" || len(dumped.Tasks) != 0 {
		t.Fatalf("unexpected scoped dump %+v", dumped)
	}
}

func TestSnapshotRestoreRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedStore(t, s)

	// profiles are cleared after every course table
	if err := s.drv.Exec(ctx, "DROP TABLE user_profiles", []any{}, nil); err != nil {
		t.Fatalf("drop user_profiles: %v", err)
	}
	err := NewSnapshotRepository(s).Restore(ctx, &repository.Snapshot{}, repository.SnapshotScope{})
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected *StorageError, got %v", err)
	}

	tasks, err := NewTaskRepository(s).GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(tasks) != 4 {
		t.Fatalf("failed restore must leave tasks in place, got %d", len(tasks))
	}
}

func TestSnapshotCourseRestoreCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedStore(t, s)

	bio, err := r.courses.Get(ctx, "bio")
	if err != nil || bio == nil {
		t.Fatalf("get bio: %v", err)
	}
	incoming := &repository.Snapshot{Courses: []entity.Course{*bio}}
	scope := repository.SnapshotScope{Collections: []string{repository.CollectionCourses}}
	if err := NewSnapshotRepository(s).Restore(ctx, incoming, scope); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}

	if c, _ := r.courses.Get(ctx, "math"); c != nil {
		t.Fatalf("math should be cleared by the courses restore")
	}
	units, _ := r.units.ListByCourse(ctx, "math")
	notes, _ := r.notes.ListByCourse(ctx, "math")
	cards, _ := r.cards.ListByCourse(ctx, "math")
	tasks, _ := r.tasks.ListByCourse(ctx, "math")
	if len(units)+len(notes)+len(cards)+len(tasks) != 0 {
		t.Fatalf("children of a cleared course survived: units=%d notes=%d cards=%d tasks=%d", len(units), len(notes), len(cards), len(tasks))
	}

	bioUnits, _ := r.units.ListByCourse(ctx, "bio")
	bioTasks, _ := r.tasks.ListByCourse(ctx, "bio")
	if len(bioUnits) != 1 || len(bioTasks) != 1 {
		t.Fatalf("restored course keeps its children, got units=%d tasks=%d", len(bioUnits), len(bioTasks))
	}
	if loose, _ := r.tasks.Get(ctx, "t4"); loose == nil {
		t.Fatalf("task without a course must be kept")
	}
	session, err := r.sessions.Get(ctx, "s1")
	if err != nil || session == nil || session.CourseID != "" {
		t.Fatalf("session should survive detached, got %+v (%v)", session, err)
	}
}

func TestSnapshotOwnerScopedRoundTripKeepsLegacy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	courses := NewCourseRepository(s)
	for _, c := range []*entity.Course{newCourse("shared", ""), newCourse("a1", "alice"), newCourse("b1", "bob")} {
		if err := courses.Add(ctx, c); err != nil {
			t.Fatalf("seed course: %v", err)
		}
	}

	snaps := NewSnapshotRepository(s)
	scope := repository.SnapshotScope{OwnerID: "alice"}
	exported, err := snaps.Dump(ctx, scope)
	if err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	if len(exported.Courses) != 2 {
		t.Fatalf("alice's export should carry her course and the legacy one, got %d", len(exported.Courses))
	}
	if err := snaps.Restore(ctx, exported, scope); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}

	shared, err := courses.Get(ctx, "shared")
	if err != nil || shared == nil {
		t.Fatalf("legacy course lost: %v", err)
	}
	if shared.OwnerID != "" {
		t.Fatalf("legacy course claimed by %q", shared.OwnerID)
	}
	bobs, err := courses.GetAll(ctx, repository.ForOwner("bob"))
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(bobs) != 2 {
		t.Fatalf("bob should still see his course and the legacy one, got %d", len(bobs))
	}

	again, err := snaps.Dump(ctx, scope)
	if err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	if diff := cmp.Diff(exported, again); diff != "" {
		t.Fatalf("owner-scoped round trip mismatch (-want +got):\n%s", diff)
	}
}
