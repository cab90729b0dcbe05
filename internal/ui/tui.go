// Package ui provides the terminal dashboard.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/zenplan-go/internal/assistant"
	"github.com/nibzard/zenplan-go/internal/schedule"
	"github.com/nibzard/zenplan-go/internal/view"
)

// mode is the input focus of the dashboard.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeNewSchedule
	modeNewItem
	modeNotes
)

// Options configures the dashboard.
type Options struct {
	Store     *schedule.Store
	Assistant assistant.Client // nil disables the reminder panel
	Now       func() time.Time
}

// Run starts the dashboard and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type reminderMsg struct {
	token    uint64
	reminder assistant.Reminder
}

type dashModel struct {
	store   *schedule.Store
	client  assistant.Client
	fetcher assistant.Fetcher
	now     func() time.Time

	mode       mode
	input      textinput.Model
	query      string
	cursor     int
	itemCursor int
	showHelp   bool

	reminder *assistant.Reminder
	loading  bool
}

func newModel(opts Options) *dashModel {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ti := textinput.New()
	ti.CharLimit = 200
	return &dashModel{
		store:  opts.Store,
		client: opts.Assistant,
		now:    now,
		input:  ti,
	}
}

func (m *dashModel) Init() tea.Cmd {
	return m.fetchReminder()
}

// fetchReminder starts a fire-and-forget reminder fetch. The token
// taken at start ensures a superseded response is dropped instead of
// overwriting a newer one.
func (m *dashModel) fetchReminder() tea.Cmd {
	if m.client == nil {
		return nil
	}
	token := m.fetcher.Begin()
	snapshot := m.store.Snapshot()
	client := m.client
	m.loading = true
	return func() tea.Msg {
		return reminderMsg{
			token:    token,
			reminder: client.DailyReminder(context.Background(), snapshot),
		}
	}
}

func (m *dashModel) visible() []schedule.Schedule {
	return view.FilteredAndSorted(m.store.Snapshot(), m.query)
}

func (m *dashModel) selected() (schedule.Schedule, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return schedule.Schedule{}, false
	}
	return visible[m.cursor], true
}

func (m *dashModel) clampCursors() {
	visible := m.visible()
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if sel, ok := m.selected(); ok {
		if m.itemCursor >= len(sel.Checklist) {
			m.itemCursor = len(sel.Checklist) - 1
		}
	}
	if m.itemCursor < 0 {
		m.itemCursor = 0
	}
}

func (m *dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	case reminderMsg:
		// Drop responses from superseded fetches.
		if m.fetcher.Current(msg.token) {
			reminder := msg.reminder
			m.reminder = &reminder
			m.loading = false
		}
	}
	return m, nil
}

func (m *dashModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor--
		m.itemCursor = 0
		m.clampCursors()
	case "down", "j":
		m.cursor++
		m.itemCursor = 0
		m.clampCursors()
	case "shift+tab":
		m.itemCursor--
		m.clampCursors()
	case "tab":
		m.itemCursor++
		m.clampCursors()
	case "enter", " ":
		if sel, ok := m.selected(); ok && len(sel.Checklist) > 0 {
			m.store.ToggleItem(sel.ID, sel.Checklist[m.itemCursor].ID)
		}
	case "x":
		if sel, ok := m.selected(); ok && len(sel.Checklist) > 0 {
			m.store.RemoveItem(sel.ID, sel.Checklist[m.itemCursor].ID)
			m.clampCursors()
		}
	case "d":
		if sel, ok := m.selected(); ok {
			m.store.Delete(sel.ID)
			m.clampCursors()
		}
	case "n":
		m.enterInput(modeNewSchedule, "Schedule title...", "")
	case "a":
		if _, ok := m.selected(); ok {
			m.enterInput(modeNewItem, "Checklist item...", "")
		}
	case "e":
		if sel, ok := m.selected(); ok {
			m.enterInput(modeNotes, "Notes...", sel.Notes)
		}
	case "/":
		m.enterInput(modeSearch, "Search...", m.query)
	case "g":
		return m, m.fetchReminder()
	case "?":
		m.showHelp = !m.showHelp
	case "esc":
		if m.query != "" {
			m.query = ""
			m.clampCursors()
		}
	}
	return m, nil
}

func (m *dashModel) enterInput(target mode, placeholder, value string) {
	m.mode = target
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *dashModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		return m, nil
	case "enter":
		m.commitInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.query = m.input.Value()
		m.clampCursors()
	}
	return m, cmd
}

func (m *dashModel) leaveInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m *dashModel) commitInput() {
	value := m.input.Value()
	switch m.mode {
	case modeSearch:
		m.query = value
	case modeNewSchedule:
		// Store rejects blank titles on its own.
		m.store.Create(value, "", "", schedule.PriorityMedium, schedule.Today(m.now()))
		m.cursor = 0
	case modeNewItem:
		if sel, ok := m.selected(); ok {
			m.store.AddItem(sel.ID, value)
		}
	case modeNotes:
		if sel, ok := m.selected(); ok {
			m.store.UpdateNotes(sel.ID, value)
		}
	}
	m.leaveInput()
	m.clampCursors()
}

func (m *dashModel) View() string {
	var b strings.Builder
	m.writeHeader(&b)

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	m.writeAssistant(&b)
	m.writeSchedules(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *dashModel) writeHeader(b *strings.Builder) {
	b.WriteString(titleStyle.Render("ZenPlan") + "\n\n")

	stats := view.TodayStats(m.store.Snapshot(), m.now())
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n\n",
		statStyle.Render(fmt.Sprintf("%d schedules today", stats.TodayTotal)),
		statStyle.Render(fmt.Sprintf("%d/%d tasks", stats.CompletedItems, stats.TotalItems)),
		statStyle.Render(fmt.Sprintf("%d%% progress", stats.Percent)),
	))

	if m.query != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  Filter: %q (esc to clear)", m.query)) + "\n\n")
	}
}

func (m *dashModel) writeAssistant(b *strings.Builder) {
	if m.client == nil {
		return
	}
	var lines []string
	switch {
	case m.loading:
		lines = append(lines, mutedStyle.Render("Preparing your daily focus..."))
	case m.reminder != nil:
		lines = append(lines, m.reminder.Message)
		for _, s := range m.reminder.Suggestions {
			lines = append(lines, suggestionStyle.Render("· "+s))
		}
	default:
		return
	}
	b.WriteString(assistantPanel.Render(strings.Join(lines, "\n")) + "\n\n")
}

func (m *dashModel) writeSchedules(b *strings.Builder) {
	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("  No schedules. Press n to plan one.") + "\n")
		return
	}

	now := m.now()
	for i, s := range visible {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		line := fmt.Sprintf("%s %s %s  %s", colorDot(s.Color), priorityBadge(s.Priority), s.Title, mutedStyle.Render(s.Date))
		if view.IsToday(s, now) {
			line += "  " + todayStyle.Render("TODAY")
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
		b.WriteString("    " + mutedStyle.Render(progressBar(view.Progress(s), 20)) + "\n")

		if i != m.cursor {
			continue
		}
		if s.Description != "" {
			b.WriteString("    " + mutedStyle.Render(s.Description) + "\n")
		}
		if s.Notes != "" {
			b.WriteString("    " + mutedStyle.Render("✎ "+s.Notes) + "\n")
		}
		for j, item := range s.Checklist {
			box := boxUnchecked
			text := item.Text
			if item.IsCompleted {
				box = boxChecked
				text = doneStyle.Render(text)
			}
			marker := "  "
			if j == m.itemCursor {
				marker = cursorStyle.Render("· ")
			}
			b.WriteString(fmt.Sprintf("    %s%s %s\n", marker, box, text))
		}
	}
}

func (m *dashModel) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	if m.mode != modeBrowse {
		b.WriteString("  " + m.input.View() + "\n")
		b.WriteString(helpStyle.Render("  enter to confirm | esc to cancel") + "\n")
		return
	}
	b.WriteString(helpStyle.Render("  n new | a item | e notes | space toggle | d delete | / search | g coach | ? help | q quit") + "\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c      Quit\n")
	b.WriteString("  up/k, down/j   Move between schedules\n")
	b.WriteString("  tab/shift+tab  Move within the checklist\n")
	b.WriteString("  enter, space   Toggle the selected checklist item\n")
	b.WriteString("  n              New schedule (dated today)\n")
	b.WriteString("  a              Add a checklist item\n")
	b.WriteString("  x              Remove the selected checklist item\n")
	b.WriteString("  e              Edit notes\n")
	b.WriteString("  d              Delete the selected schedule\n")
	b.WriteString("  /              Search title, description, notes\n")
	b.WriteString("  g              Refresh the assistant reminder\n")
	b.WriteString("  ?              Toggle this help screen\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
