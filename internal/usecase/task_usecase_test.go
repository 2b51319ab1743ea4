package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/grade"
	"github.com/eslsoft/studydesk/internal/repository"
)

func newTestTaskUsecase(t *testing.T) (*taskUsecase, *fakeCourseRepo, *fakeTaskRepo) {
	t.Helper()
	courses := newFakeCourseRepo()
	tasks := newFakeTaskRepo()
	ctx := context.Background()
	for _, c := range []entity.Course{
		{ID: "math", Name: "Math", Color: "#000000"},
		{ID: "old", Name: "Old", Color: "#000000", Archived: true},
	} {
		if err := courses.Add(ctx, &c); err != nil {
			t.Fatalf("seed course: %v", err)
		}
	}
	uc := NewTaskUsecase(courses, tasks).(*taskUsecase)
	uc.clock = fixedClock(fixedNow)
	return uc, courses, tasks
}

func TestTaskCreate(t *testing.T) {
	uc, _, tasks := newTestTaskUsecase(t)
	ctx := context.Background()

	got, err := uc.Create(ctx, "alice", &entity.Task{Title: " Essay ", CourseID: "math", DueDate: fixedNow.Add(24 * time.Hour), Type: "Assignment"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.Title != "Essay" || got.Type != entity.TaskTypeAssignment || got.Status != entity.TaskStatusPending || got.Priority != entity.PriorityMedium {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if stored, _ := tasks.Get(ctx, got.ID); stored == nil || stored.OwnerID != "alice" {
		t.Fatalf("task not stored for owner: %+v", stored)
	}

	cases := []struct {
		name string
		task entity.Task
		want error
	}{
		{"missing course", entity.Task{Title: "x", CourseID: "nope", DueDate: fixedNow}, entity.ErrNotFound},
		{"archived course", entity.Task{Title: "x", CourseID: "old", DueDate: fixedNow}, entity.ErrCourseArchived},
		{"negative grade", entity.Task{Title: "x", DueDate: fixedNow, Grade: ptrFloat(-1)}, entity.ErrInvalidGrade},
		{"missing title", entity.Task{DueDate: fixedNow}, entity.ErrValidation},
		{"missing due date", entity.Task{Title: "x"}, entity.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Create(ctx, "", &tc.task); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTaskComplete(t *testing.T) {
	uc, _, tasks := newTestTaskUsecase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, "", &entity.Task{ID: "t1", Title: "Quiz", CourseID: "math", DueDate: fixedNow.Add(-time.Hour)})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := uc.Complete(ctx, created.ID, ptrFloat(-5)); !errors.Is(err, entity.ErrInvalidGrade) {
		t.Fatalf("expected invalid grade, got %v", err)
	}

	done, err := uc.Complete(ctx, created.ID, ptrFloat(92))
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if done.Status != entity.TaskStatusCompleted || done.CompletedAt == nil || !done.CompletedAt.Equal(fixedNow) {
		t.Fatalf("unexpected completed task %+v", done)
	}
	stored, _ := tasks.Get(ctx, "t1")
	if stored.Grade == nil || *stored.Grade != 92 {
		t.Fatalf("grade not stored: %+v", stored)
	}

	if _, err := uc.Complete(ctx, "missing", nil); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTaskListDerivesStatus(t *testing.T) {
	uc, _, tasks := newTestTaskUsecase(t)
	ctx := context.Background()
	seed := []entity.Task{
		{ID: "future", Title: "a", Status: entity.TaskStatusPending, DueDate: fixedNow.Add(2 * time.Hour), Priority: entity.PriorityLow},
		{ID: "late", Title: "b", Status: entity.TaskStatusPending, DueDate: fixedNow.Add(-2 * time.Hour), Priority: entity.PriorityLow},
	}
	for _, task := range seed {
		if err := tasks.Add(ctx, &task); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	list, err := uc.List(ctx, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"late", "future"}, taskIDs(list)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if list[0].Status != entity.TaskStatusOverdue {
		t.Fatalf("expected derived overdue status, got %s", list[0].Status)
	}
	if stored, _ := tasks.Get(ctx, "late"); stored.Status != entity.TaskStatusPending {
		t.Fatalf("List must not persist derived status, got %s", stored.Status)
	}
}

func TestTaskTodayAndWeek(t *testing.T) {
	uc, _, tasks := newTestTaskUsecase(t)
	ctx := context.Background()
	midnight := time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)
	seed := []entity.Task{
		{ID: "morning", OwnerID: "alice", Title: "a", Status: entity.TaskStatusPending, DueDate: midnight.Add(8 * time.Hour)},
		{ID: "evening", OwnerID: "alice", Title: "b", Status: entity.TaskStatusPending, DueDate: midnight.Add(20 * time.Hour)},
		{ID: "friday", OwnerID: "alice", Title: "c", Status: entity.TaskStatusPending, DueDate: midnight.AddDate(0, 0, 2)},
		{ID: "next-week", OwnerID: "alice", Title: "d", Status: entity.TaskStatusPending, DueDate: midnight.AddDate(0, 0, 7)},
		{ID: "bobs", OwnerID: "bob", Title: "e", Status: entity.TaskStatusPending, DueDate: midnight.Add(9 * time.Hour)},
	}
	for _, task := range seed {
		if err := tasks.Add(ctx, &task); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	today, err := uc.Today(ctx, "alice")
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"morning", "evening"}, taskIDs(today)); diff != "" {
		t.Fatalf("today mismatch (-want +got):\n%s", diff)
	}

	week, err := uc.Week(ctx, "alice")
	if err != nil {
		t.Fatalf("Week returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"morning", "evening", "friday"}, taskIDs(week)); diff != "" {
		t.Fatalf("week mismatch (-want +got):\n%s", diff)
	}
}

func TestTaskFilterDerivesOverdueWithoutWriting(t *testing.T) {
	uc, _, tasks := newTestTaskUsecase(t)
	ctx := context.Background()
	for _, task := range []entity.Task{
		{ID: "late", OwnerID: "alice", Title: "a", Status: entity.TaskStatusPending, DueDate: fixedNow.Add(-time.Hour)},
		{ID: "soon", OwnerID: "alice", Title: "b", Status: entity.TaskStatusPending, DueDate: fixedNow.Add(time.Hour)},
		{ID: "other", OwnerID: "bob", Title: "c", Status: entity.TaskStatusPending, DueDate: fixedNow.Add(-time.Hour)},
	} {
		if err := tasks.Add(ctx, &task); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	got, total, err := uc.Filter(ctx, "alice", &repository.ListTaskQuery{
		FilterOrder: repository.FilterOrder{Filter: `status == "overdue"`},
	})
	if err != nil {
		t.Fatalf("Filter returned error: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("expected alice's two tasks, got %d (%d)", len(got), total)
	}
	statuses := map[string]entity.TaskStatus{}
	for _, task := range got {
		statuses[task.ID] = task.Status
	}
	want := map[string]entity.TaskStatus{"late": entity.TaskStatusOverdue, "soon": entity.TaskStatusPending}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Fatalf("derived statuses mismatch (-want +got):\n%s", diff)
	}
	for _, id := range []string{"late", "other"} {
		if stored, _ := tasks.Get(ctx, id); stored.Status != entity.TaskStatusPending {
			t.Fatalf("Filter must not write derived status, %s stored as %s", id, stored.Status)
		}
	}
	if !tasks.lastQuery.Now.Equal(fixedNow) {
		t.Fatalf("status filter must use the usecase clock, got %v", tasks.lastQuery.Now)
	}
	if tasks.lastQuery.PageNo != 1 || tasks.lastQuery.PageSize != _defaultPageSize {
		t.Fatalf("pagination not clamped: %+v", tasks.lastQuery.Pagination)
	}
}

func TestTaskUpdateNeverStoresOverdue(t *testing.T) {
	uc, _, tasks := newTestTaskUsecase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, "alice", &entity.Task{ID: "essay", Title: "Essay", DueDate: fixedNow.Add(-48 * time.Hour), Status: entity.TaskStatusOverdue})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if stored, _ := tasks.Get(ctx, created.ID); stored.Status != entity.TaskStatusPending {
		t.Fatalf("Create stored %s, want pending", stored.Status)
	}

	late, err := uc.Get(ctx, "essay")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if late.Status != entity.TaskStatusOverdue {
		t.Fatalf("expected derived overdue, got %s", late.Status)
	}

	late.DueDate = fixedNow.Add(72 * time.Hour)
	if _, err := uc.Update(ctx, late); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if stored, _ := tasks.Get(ctx, "essay"); stored.Status != entity.TaskStatusPending {
		t.Fatalf("Update stored %s, want pending", stored.Status)
	}
	moved, err := uc.Get(ctx, "essay")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if moved.Status != entity.TaskStatusPending {
		t.Fatalf("task due in three days must read pending, got %s", moved.Status)
	}
}

func TestTaskGradeSummary(t *testing.T) {
	uc, _, tasks := newTestTaskUsecase(t)
	ctx := context.Background()
	for _, task := range []entity.Task{
		{ID: "a", CourseID: "math", Title: "a", Status: entity.TaskStatusCompleted, DueDate: fixedNow, Grade: ptrFloat(95), Weight: ptrFloat(60)},
		{ID: "b", CourseID: "math", Title: "b", Status: entity.TaskStatusCompleted, DueDate: fixedNow, Grade: ptrFloat(80), Weight: ptrFloat(30)},
		{ID: "c", CourseID: "math", Title: "c", Status: entity.TaskStatusPending, DueDate: fixedNow, Weight: ptrFloat(20)},
	} {
		if err := tasks.Add(ctx, &task); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	summary, err := uc.GradeSummary(ctx, "math")
	if err != nil {
		t.Fatalf("GradeSummary returned error: %v", err)
	}
	want := &CourseGradeSummary{
		CourseID:   "math",
		Percentage: ptrFloat(90),
		Letter:     grade.AMinus,
		Color:      grade.ColorExcellent,
		Graded:     2,
		Weight:     WeightSummary{CourseID: "math", Total: 110, Overflow: true},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	if _, err := uc.GradeSummary(ctx, "nope"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
