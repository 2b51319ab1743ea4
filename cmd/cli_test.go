package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eslsoft/studydesk/internal/entity"
)

func TestParseDue(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{raw: "2025-04-20T09:30:00Z", want: time.Date(2025, 4, 20, 9, 30, 0, 0, time.UTC)},
		{raw: "2025-04-20 14:00", want: time.Date(2025, 4, 20, 14, 0, 0, 0, time.Local)},
		{raw: " 2025-04-20 ", want: time.Date(2025, 4, 20, 23, 59, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := parseDue(tt.raw)
		if err != nil {
			t.Fatalf("parseDue(%q) returned error: %v", tt.raw, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("parseDue(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if _, err := parseDue("next friday"); !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]entity.Priority{
		"":       entity.PriorityMedium,
		"High":   entity.PriorityHigh,
		"1":      entity.PriorityHigh,
		"medium": entity.PriorityMedium,
		" low ":  entity.PriorityLow,
		"3":      entity.PriorityLow,
	}
	for raw, want := range cases {
		got, err := parsePriority(raw)
		if err != nil || got != want {
			t.Fatalf("parsePriority(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	if priorityName(entity.PriorityLow) != "low" {
		t.Fatalf("unexpected name %q", priorityName(entity.PriorityLow))
	}
	if _, err := parsePriority("urgent"); !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizeCollections(t *testing.T) {
	got := normalizeCollections([]string{"courses, tasks", " ", "user,"})
	if diff := cmp.Diff([]string{"courses", "tasks", "user"}, got); diff != "" {
		t.Fatalf("collections mismatch (-want +got):\n%s", diff)
	}
	if normalizeCollections([]string{" , "}) != nil {
		t.Fatalf("blank input must yield nil")
	}
}

func TestBackupOptions(t *testing.T) {
	if got := len(backupOptions("alice", nil, nil)); got != 1 {
		t.Fatalf("expected only the owner option, got %d", got)
	}
	progress := newCLIProgress(&bytes.Buffer{}, "导出")
	if got := len(backupOptions("alice", []string{"courses"}, progress)); got != 3 {
		t.Fatalf("expected owner, collections and progress options, got %d", got)
	}
}

func TestCLIProgressOutput(t *testing.T) {
	var buf bytes.Buffer
	p := newCLIProgress(&buf, "导出")
	p.StartTable("courses", 2)
	p.Increment("courses", 2)
	p.FinishTable("courses")
	p.StartTable("user", 0)
	p.FinishTable("user")

	want := "开始导出 courses (共 2 条)\n" +
		"导出进度 courses: 2/2\n" +
		"完成导出 courses: 2/2 条\n" +
		"开始导出 user (共 0 条)\n" +
		"完成导出 user: 0 条\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("progress output mismatch (-want +got):\n%s", diff)
	}
}

func TestProgressStep(t *testing.T) {
	cases := map[int]int{0: 1000, 10: 1, 200: 10, 1_000_000: 1000}
	for total, want := range cases {
		if got := progressStep(total); got != want {
			t.Fatalf("progressStep(%d) = %d, want %d", total, got, want)
		}
	}
}

func TestOptionalFloat(t *testing.T) {
	if optionalFloat(false, 3) != nil {
		t.Fatalf("unset flag must yield nil")
	}
	if v := optionalFloat(true, 0); v == nil || *v != 0 {
		t.Fatalf("set flag must keep zero, got %v", v)
	}
}
