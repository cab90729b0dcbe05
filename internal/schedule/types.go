// Package schedule owns the planner data model and its store.
package schedule

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date form used by Schedule.Date. No time
// component; comparisons are plain string equality or ordering.
const DateLayout = "2006-01-02"

// Priority represents a schedule priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes a priority string. Accepts case and
// whitespace variations plus the short aliases l/m/h. Returns the
// normalized priority and whether the input was recognized.
func ParsePriority(input string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "low", "l":
		return PriorityLow, true
	case "medium", "med", "m":
		return PriorityMedium, true
	case "high", "h":
		return PriorityHigh, true
	default:
		return "", false
	}
}

// Rank returns the sort rank of a priority: high sorts first.
// Unknown priorities rank last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ChecklistItem is one sub-task belonging to a schedule.
type ChecklistItem struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// Schedule is a single planned objective with a target date, priority,
// notes, and checklist. The JSON tags define the persisted layout.
type Schedule struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
	Date        string          `json:"date"`
	Priority    Priority        `json:"priority"`
	Checklist   []ChecklistItem `json:"checklist"`
	Color       string          `json:"color"`
	CreatedAt   int64           `json:"createdAt"`
}

// IsZero returns true if the schedule is empty (has no ID).
func (s *Schedule) IsZero() bool {
	return s.ID == ""
}

// Colors is the fixed palette a new schedule's display tag is drawn
// from.
var Colors = []string{
	"#60a5fa", // blue
	"#34d399", // emerald
	"#fbbf24", // amber
	"#fb7185", // rose
	"#818cf8", // indigo
	"#94a3b8", // slate
}

// newID generates an opaque unique id. Uniqueness within one
// collection is all that is required.
func newID() string {
	return uuid.NewString()
}

// randomColor draws uniformly from the palette.
func randomColor() string {
	return Colors[rand.Intn(len(Colors))]
}

// nowMillis is the creation clock, overridable in tests.
var nowMillis = func() int64 {
	return time.Now().UnixMilli()
}

// ParseDate parses a calendar date in the local time zone. Today-ness
// is a local-time question, so the zone matters.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// Today formats now's calendar date component.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
