package entity

import (
	"strings"
	"time"
)

// TaskType classifies a task.
type TaskType string

const (
	TaskTypeAssignment TaskType = "assignment"
	TaskTypeExam       TaskType = "exam"
	TaskTypeQuiz       TaskType = "quiz"
	TaskTypeProject    TaskType = "project"
	TaskTypeReading    TaskType = "reading"
	TaskTypeOther      TaskType = "other"
)

// ParseTaskType converts an arbitrary string into a TaskType, defaulting to other.
func ParseTaskType(raw string) TaskType {
	switch TaskType(strings.ToLower(strings.TrimSpace(raw))) {
	case TaskTypeAssignment:
		return TaskTypeAssignment
	case TaskTypeExam:
		return TaskTypeExam
	case TaskTypeQuiz:
		return TaskTypeQuiz
	case TaskTypeProject:
		return TaskTypeProject
	case TaskTypeReading:
		return TaskTypeReading
	default:
		return TaskTypeOther
	}
}

// TaskStatus is the lifecycle state of a task. Overdue is normally derived from the
// due date at read time rather than stored.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusOverdue   TaskStatus = "overdue"
)

// Priority ranks tasks; lower numbers are more urgent.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Task is a due-dated item, optionally linked to a course and optionally graded.
type Task struct {
	ID          string     `json:"id" validate:"required"`
	OwnerID     string     `json:"ownerId,omitempty"`
	CourseID    string     `json:"courseId,omitempty"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	DueDate     time.Time  `json:"dueDate" validate:"required"`
	Type        TaskType   `json:"type" validate:"required,oneof=assignment exam quiz project reading other"`
	Status      TaskStatus `json:"status" validate:"required,oneof=pending completed overdue"`
	Priority    Priority   `json:"priority" validate:"min=1,max=3"`
	Weight      *float64   `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Grade       *float64   `json:"grade,omitempty" validate:"omitempty,gte=0"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Timestamps
}

// Normalize ensures defaults & constraints before persistence.
func (t *Task) Normalize(now time.Time) {
	if t.ID == "" {
		t.ID = NewID()
	}
	t.Title = strings.TrimSpace(t.Title)
	t.Type = ParseTaskType(string(t.Type))
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	if t.Priority == 0 {
		t.Priority = PriorityMedium
	}
	t.touch(now)
}

// Validate validates the task.
func (t *Task) Validate() error {
	return validateStruct("task", t)
}

// IsGraded reports whether the task contributes a score to its course grade.
func (t *Task) IsGraded() bool {
	return t.Status == TaskStatusCompleted && t.Grade != nil
}
