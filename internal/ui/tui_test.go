package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/zenplan-go/internal/assistant"
	"github.com/nibzard/zenplan-go/internal/schedule"
	"github.com/nibzard/zenplan-go/internal/storage"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeString(m *dashModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func newTestModel(t *testing.T) *dashModel {
	t.Helper()
	store := schedule.NewStore(storage.NewMemory())
	now := func() time.Time {
		return time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	}
	return newModel(Options{Store: store, Now: now})
}

func TestNewScheduleFlow(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("n"))
	if m.mode != modeNewSchedule {
		t.Fatalf("mode after n: got %v", m.mode)
	}
	typeString(m, "Ship release")
	m.Update(key("enter"))

	if m.mode != modeBrowse {
		t.Errorf("mode after enter: got %v", m.mode)
	}
	snap := m.store.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("schedules: got %d, want 1", len(snap))
	}
	if snap[0].Title != "Ship release" {
		t.Errorf("title: got %q", snap[0].Title)
	}
	if snap[0].Date != "2026-08-28" {
		t.Errorf("date: got %q, want today", snap[0].Date)
	}
}

func TestBlankTitleCreatesNothing(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("n"))
	m.Update(key("enter"))
	if m.store.Len() != 0 {
		t.Errorf("blank title created a schedule")
	}
}

func TestChecklistToggleAndRemove(t *testing.T) {
	m := newTestModel(t)
	s := m.store.Create("S", "", "", schedule.PriorityMedium, "2026-08-28")
	m.store.AddItem(s.ID, "one")
	m.store.AddItem(s.ID, "two")

	m.Update(key(" "))
	if !m.store.Get(s.ID).Checklist[0].IsCompleted {
		t.Error("space did not toggle the first item")
	}

	m.Update(key("tab"))
	m.Update(key("x"))
	items := m.store.Get(s.ID).Checklist
	if len(items) != 1 || items[0].Text != "one" {
		t.Errorf("x did not remove the second item: %+v", items)
	}
}

func TestSearchFiltersList(t *testing.T) {
	m := newTestModel(t)
	m.store.Create("Groceries", "", "", schedule.PriorityLow, "2026-08-28")
	m.store.Create("Workout", "", "", schedule.PriorityLow, "2026-08-28")

	m.Update(key("/"))
	typeString(m, "gro")
	m.Update(key("enter"))

	visible := m.visible()
	if len(visible) != 1 || visible[0].Title != "Groceries" {
		t.Errorf("filter: got %+v", visible)
	}

	m.Update(key("esc"))
	if len(m.visible()) != 2 {
		t.Error("esc did not clear the filter")
	}
}

func TestDeleteSelected(t *testing.T) {
	m := newTestModel(t)
	m.store.Create("Doomed", "", "", schedule.PriorityLow, "2026-08-28")
	m.Update(key("d"))
	if m.store.Len() != 0 {
		t.Error("d did not delete the selected schedule")
	}
	// Nothing selected anymore: further deletes are no-ops.
	m.Update(key("d"))
}

func TestStaleReminderDropped(t *testing.T) {
	m := newTestModel(t)

	first := m.fetcher.Begin()
	second := m.fetcher.Begin()

	// The newer response lands first.
	m.Update(reminderMsg{token: second, reminder: assistant.Reminder{Message: "new"}})
	if m.reminder == nil || m.reminder.Message != "new" {
		t.Fatalf("current reminder not displayed: %+v", m.reminder)
	}

	// The superseded response resolves later and must be dropped.
	m.Update(reminderMsg{token: first, reminder: assistant.Reminder{Message: "stale"}})
	if m.reminder.Message != "new" {
		t.Errorf("stale reminder overwrote a newer one: %q", m.reminder.Message)
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	s := m.store.Create("Visible", "desc", "note", schedule.PriorityHigh, "2026-08-28")
	m.store.AddItem(s.ID, "step")

	out := m.View()
	for _, want := range []string{"ZenPlan", "Visible", "1 schedules today", "TODAY"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}
