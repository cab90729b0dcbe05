// Package assistant produces the daily motivational summary.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/zenplan-go/internal/schedule"
	"github.com/nibzard/zenplan-go/internal/view"
)

// Reminder is the assistant's output: a short message plus actionable
// suggestions.
type Reminder struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// Client produces a daily reminder from a schedule snapshot.
//
// Contract: DailyReminder never fails. Missing credentials, network
// errors, and malformed responses all resolve to a static fallback
// reminder; nothing propagates to the caller.
type Client interface {
	DailyReminder(ctx context.Context, schedules []schedule.Schedule) Reminder
}

// Fallback reminders. Shape matters to callers, wording does not.
var (
	// FallbackNoKey greets users running without credentials.
	FallbackNoKey = Reminder{
		Message:     "Welcome back! Add your tasks for today to get personalized AI coaching.",
		Suggestions: []string{"Set your first goal", "Stay productive"},
	}

	// FallbackError covers network failures and unusable responses.
	FallbackError = Reminder{
		Message:     "Ready to help you conquer the day! What's your top priority?",
		Suggestions: []string{"Review your High priority tasks", "Focus on one item at a time"},
	}
)

// buildPrompt renders today's schedules into the model prompt. Each
// line carries the priority tag and checklist progress.
func buildPrompt(schedules []schedule.Schedule, now time.Time) string {
	today := schedule.Today(now)

	var lines []string
	for _, s := range schedules {
		if !view.IsToday(s, now) {
			continue
		}
		done := 0
		for _, item := range s.Checklist {
			if item.IsCompleted {
				done++
			}
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s: %d/%d tasks done",
			strings.ToUpper(string(s.Priority)), s.Title, done, len(s.Checklist)))
	}

	scheduleContext := strings.Join(lines, "\n")
	if scheduleContext == "" {
		scheduleContext = "No tasks scheduled for today yet."
	}

	return fmt.Sprintf(`Context: Today is %s.
User's schedule for today (including priority):
%s

Instructions:
Act as a productivity expert and strategist.
1. Provide a concise, professional greeting that identifies the "High Priority" items as the primary focus.
2. Suggest 2 specific "Strategic Advice" points based on the task mix (e.g., "Tackle the High Priority task first thing in the morning").

Return the response in JSON format.
`, today, scheduleContext)
}
