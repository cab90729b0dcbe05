package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/zenplan-go/internal/schedule"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	statStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Faint(true)

	assistantPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Faint(true)

	badgeHigh   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	badgeMedium = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	badgeLow    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

func priorityBadge(p schedule.Priority) string {
	label := strings.ToUpper(string(p))
	switch p {
	case schedule.PriorityHigh:
		return badgeHigh.Render(label)
	case schedule.PriorityMedium:
		return badgeMedium.Render(label)
	default:
		return badgeLow.Render(label)
	}
}

// colorDot renders a schedule's display tag as a colored marker.
func colorDot(color string) string {
	if color == "" {
		return "·"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

func progressBar(pct, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d%%", bar, pct)
}
