// Package view derives read-only projections from a schedule snapshot.
package view

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nibzard/zenplan-go/internal/schedule"
)

// Projections are pure functions of the snapshot; nothing here is
// stored or cached.

// Stats are today's aggregates across the whole collection.
type Stats struct {
	TodayTotal     int
	CompletedItems int
	TotalItems     int
	Percent        int
}

// TodayStats computes aggregates over schedules dated now's local
// calendar date.
func TodayStats(schedules []schedule.Schedule, now time.Time) Stats {
	today := schedule.Today(now)
	var stats Stats
	for _, s := range schedules {
		if s.Date != today {
			continue
		}
		stats.TodayTotal++
		stats.TotalItems += len(s.Checklist)
		for _, item := range s.Checklist {
			if item.IsCompleted {
				stats.CompletedItems++
			}
		}
	}
	stats.Percent = percent(stats.CompletedItems, stats.TotalItems)
	return stats
}

// IsToday reports whether the schedule is dated now's local calendar
// date.
func IsToday(s schedule.Schedule, now time.Time) bool {
	return s.Date == schedule.Today(now)
}

// FilteredAndSorted returns the schedules matching query, ordered by
// date ascending with priority (high first) breaking ties. The sort is
// stable: equal (date, priority) pairs keep their base order.
//
// Matching is a case-insensitive substring test against title,
// description, and notes; an empty query matches everything.
func FilteredAndSorted(schedules []schedule.Schedule, query string) []schedule.Schedule {
	q := strings.ToLower(query)
	out := make([]schedule.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if matches(s, q) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

func matches(s schedule.Schedule, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.Description), q) ||
		strings.Contains(strings.ToLower(s.Notes), q)
}

// Progress returns the rounded completion percentage of one
// schedule's checklist, 0 when the checklist is empty.
func Progress(s schedule.Schedule) int {
	done := 0
	for _, item := range s.Checklist {
		if item.IsCompleted {
			done++
		}
	}
	return percent(done, len(s.Checklist))
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
