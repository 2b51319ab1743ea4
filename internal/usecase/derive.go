package usecase

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/grade"
)

// UpdateTaskStatus returns task with status overdue when it is still pending
// past its due date. changed reports whether the copy differs from the input.
func UpdateTaskStatus(task entity.Task, now time.Time) (entity.Task, bool) {
	if task.Status == entity.TaskStatusPending && task.DueDate.Before(now) {
		task.Status = entity.TaskStatusOverdue
		return task, true
	}
	return task, false
}

// startOfDay is midnight of t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// calendarDaysBetween counts calendar day boundaries from a to b in loc.
func calendarDaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// CalculateStudyStreak returns the streak still in effect at now: 0 when there
// is no last study date or more than one calendar day has passed since it.
func CalculateStudyStreak(lastStudy *time.Time, previous int, now time.Time) int {
	if lastStudy == nil {
		return 0
	}
	if calendarDaysBetween(*lastStudy, now, now.Location()) > 1 {
		return 0
	}
	return max(previous, 0)
}

// NextStudyStreak is the streak after a study action at now.
func NextStudyStreak(lastStudy *time.Time, previous int, now time.Time) int {
	if lastStudy == nil {
		return 1
	}
	switch days := calendarDaysBetween(*lastStudy, now, now.Location()); {
	case days <= 0:
		return max(previous, 1)
	case days == 1:
		return max(previous, 0) + 1
	default:
		return 1
	}
}

// TodayTasks keeps the tasks due within now's calendar day.
func TodayTasks(tasks []entity.Task, now time.Time) []entity.Task {
	from := startOfDay(now, now.Location())
	return dueWithin(tasks, from, from.AddDate(0, 0, 1))
}

// WeekTasks keeps the tasks due in the seven days starting at today's midnight.
func WeekTasks(tasks []entity.Task, now time.Time) []entity.Task {
	from := startOfDay(now, now.Location())
	return dueWithin(tasks, from, from.AddDate(0, 0, 7))
}

// WeekWindow returns the inclusive bounds used by WeekTasks.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	from := startOfDay(now, now.Location())
	return from, from.AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// TodayWindow returns the inclusive bounds used by TodayTasks.
func TodayWindow(now time.Time) (time.Time, time.Time) {
	from := startOfDay(now, now.Location())
	return from, from.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func dueWithin(tasks []entity.Task, from, to time.Time) []entity.Task {
	return lo.Filter(tasks, func(t entity.Task, _ int) bool {
		return !t.DueDate.Before(from) && t.DueDate.Before(to)
	})
}

// SortTasks returns tasks with derived statuses applied, overdue first, then by
// due date and finally by priority (high before low).
func SortTasks(tasks []entity.Task, now time.Time) []entity.Task {
	out := lo.Map(tasks, func(t entity.Task, _ int) entity.Task {
		derived, _ := UpdateTaskStatus(t, now)
		return derived
	})
	sort.SliceStable(out, func(i, j int) bool {
		oi := out[i].Status == entity.TaskStatusOverdue
		oj := out[j].Status == entity.TaskStatusOverdue
		if oi != oj {
			return oi
		}
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].Priority < out[j].Priority
	})
	return out
}

// WeightSummary is the total grade weight assigned to one course.
type WeightSummary struct {
	CourseID string  `json:"courseId"`
	Total    float64 `json:"total"`
	Overflow bool    `json:"overflow"`
}

// WeightOverflow sums task weights per course. Overflow past 100 is reported,
// never rejected.
func WeightOverflow(tasks []entity.Task) map[string]WeightSummary {
	out := map[string]WeightSummary{}
	for _, t := range tasks {
		if t.Weight == nil || t.CourseID == "" {
			continue
		}
		s := out[t.CourseID]
		s.CourseID = t.CourseID
		s.Total += *t.Weight
		s.Overflow = s.Total > 100
		out[t.CourseID] = s
	}
	return out
}

// CourseGrade averages the grades of completed graded tasks. When any of them
// carries a weight the average is weighted over those; otherwise it is a plain
// mean. nil means nothing is graded yet.
func CourseGrade(tasks []entity.Task) *float64 {
	graded := lo.Filter(tasks, func(t entity.Task, _ int) bool { return t.IsGraded() })
	if len(graded) == 0 {
		return nil
	}

	var weighted, weights float64
	for _, t := range graded {
		if t.Weight != nil && *t.Weight > 0 {
			weighted += *t.Grade * *t.Weight
			weights += *t.Weight
		}
	}
	if weights == 0 {
		var sum float64
		for _, t := range graded {
			sum += *t.Grade
		}
		mean := grade.Round2(sum / float64(len(graded)))
		return &mean
	}
	avg := grade.Round2(weighted / weights)
	return &avg
}
