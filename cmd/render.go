package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/grade"
)

var gradePalette = map[grade.Color]lipgloss.Color{
	grade.ColorExcellent: lipgloss.Color("#22c55e"),
	grade.ColorGood:      lipgloss.Color("#3b82f6"),
	grade.ColorAverage:   lipgloss.Color("#eab308"),
	grade.ColorPoor:      lipgloss.Color("#f97316"),
	grade.ColorFailing:   lipgloss.Color("#ef4444"),
	grade.ColorNeutral:   lipgloss.Color("#9ca3af"),
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f97316")).Bold(true)
)

func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func colorLetter(l grade.Letter) string {
	text := string(l)
	if text == "" {
		text = "n/a"
	}
	return lipgloss.NewStyle().Foreground(gradePalette[grade.ColorOf(l)]).Bold(true).Render(text)
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func formatStatus(s entity.TaskStatus) string {
	if s == entity.TaskStatusOverdue {
		return overdueStyle.Render(string(s))
	}
	return string(s)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// parseDue accepts RFC 3339, "2006-01-02 15:04" and "2006-01-02" in local
// time. A bare date means the end of that day.
func parseDue(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t.Add(24*time.Hour - time.Minute), nil
	}
	return time.Time{}, fmt.Errorf("%w: due date %q must look like 2006-01-02, 2006-01-02 15:04 or RFC 3339", entity.ErrValidation, raw)
}

func parsePriority(raw string) (entity.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "medium", "2":
		return entity.PriorityMedium, nil
	case "high", "1":
		return entity.PriorityHigh, nil
	case "low", "3":
		return entity.PriorityLow, nil
	default:
		return 0, fmt.Errorf("%w: priority %q must be high, medium or low", entity.ErrValidation, raw)
	}
}

func priorityName(p entity.Priority) string {
	switch p {
	case entity.PriorityHigh:
		return "high"
	case entity.PriorityLow:
		return "low"
	default:
		return "medium"
	}
}

// optionalFloat returns nil unless the flag was set on the command line.
func optionalFloat(changed bool, v float64) *float64 {
	if !changed {
		return nil
	}
	return &v
}
