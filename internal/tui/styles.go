package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/interntrack/internal/schedule"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorOvertime  = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorWorked    = lipgloss.Color("#2ECC71")
	colorDayOff    = lipgloss.Color("#F39C12")
	colorAbsent    = lipgloss.Color("#E74C3C")
	colorHoliday   = lipgloss.Color("#BB9AF7")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorValue     = lipgloss.Color("#7AA2F7")
)

// statusColors colors a day by its log status, on the calendar grid and
// in every status label.
var statusColors = map[schedule.LogStatus]lipgloss.Color{
	schedule.StatusWorked:  colorWorked,
	schedule.StatusAbsent:  colorAbsent,
	schedule.StatusDayOff:  colorDayOff,
	schedule.StatusHoliday: colorHoliday,
}

func statusColor(s schedule.LogStatus) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return colorFg
}

// dot renders a colored bullet, used for project colors and chart legends.
func dot(color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

var (
	// App chrome
	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = panelStyle.
				BorderForeground(colorPrimary)

	// Dashboard progress card
	bigNumberStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	goalReachedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWorked)

	// Calendar grid and day detail
	cellStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center)

	selectedCellStyle = cellStyle.
				Bold(true).
				Reverse(true)

	todayCellStyle = cellStyle.
			Underline(true)

	holidayStyle = lipgloss.NewStyle().
			Foreground(colorHoliday)

	// subtitleStyle tags an entry as manual or projected.
	subtitleStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)

	// Reports chart series
	hoursBarStyle    = lipgloss.NewStyle().Foreground(colorPrimary)
	overtimeBarStyle = lipgloss.NewStyle().Foreground(colorOvertime)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	secondaryStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	successStyle = lipgloss.NewStyle().
			Foreground(colorWorked)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorDayOff)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorAbsent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorValue)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)
