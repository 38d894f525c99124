package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/cli"
	"github.com/sadopc/interntrack/internal/schedule"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCalendar
	viewReports
	viewProjects
	viewCheckins
	viewSettings
)

var viewNames = []string{"Dashboard", "Calendar", "Reports", "Projects", "Check-ins", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// dataChangedMsg tells the app that a write happened and every view
// showing derived values should reload.
type dataChangedMsg struct {
	status string
}

// --- Helpers ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true} }
}

func changedCmd(status string) tea.Cmd {
	return func() tea.Msg { return dataChangedMsg{status: status} }
}

func formatHours(h float64) string {
	return cli.FormatHours(h)
}

// parseHoursInput accepts a non-negative decimal; empty means zero.
func parseHoursInput(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("enter a number")
	}
	if v < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return v, nil
}

func validateHours(s string) error {
	_, err := parseHoursInput(s)
	return err
}

// validateOptionalDate accepts "" or YYYY-MM-DD.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := calendar.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func statusStyleFor(s schedule.LogStatus) func(...string) string {
	return lipgloss.NewStyle().Foreground(statusColor(s)).Render
}

func cursorPrefix(selected bool) (string, func(...string) string) {
	if selected {
		return "> ", selectedItemStyle.Render
	}
	return "  ", normalItemStyle.Render
}

// statusCmdThen shows a status line and runs next.
func statusCmdThen(text string, next tea.Cmd) tea.Cmd {
	return tea.Batch(statusCmd(text), next)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}
