package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/interntrack/internal/cli"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/tracker"
)

const upcomingCount = 5

type dashboardModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	data   tracker.View
	loaded bool
	bar    progress.Model
}

func newDashboardModel(t *tracker.Tracker) dashboardModel {
	return dashboardModel{
		tracker: t,
		bar:     progress.New(progress.WithGradient(string(colorPrimary), string(colorSecondary)), progress.WithWidth(40)),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.bar.Width = max(10, min(60, w-20))
}

type dashboardDataMsg struct {
	view tracker.View
	err  error
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		v, err := d.tracker.Derive()
		return dashboardDataMsg{view: v, err: err}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		if msg.err != nil {
			return d, errorCmd(msg.err)
		}
		d.data = msg.view
		d.loaded = true
		return d, nil
	}
	return d, nil
}

// upcoming returns the next active entries from today on.
func (d dashboardModel) upcoming() []schedule.LogEntry {
	var out []schedule.LogEntry
	for _, l := range d.data.Active {
		if l.Date.Before(d.data.Today) {
			continue
		}
		out = append(out, l)
		if len(out) == upcomingCount {
			break
		}
	}
	return out
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	if !d.loaded {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderProgressCard(w),
		d.renderSummaryPanel(w),
		d.renderUpcomingPanel(w),
	)
}

func (d dashboardModel) renderProgressCard(w int) string {
	st := d.data.Stats
	s := d.data.Settings

	title := titleStyle.Render("Progress")
	mode := mutedStyle.Render(fmt.Sprintf("  %s mode", s.ProjectionMode))

	if s.RequiredHours == nil {
		hint := mutedStyle.Render("No goal yet. Press 6 to open Settings and set required hours.")
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title+mode, "", hint))
	}

	completed := bigNumberStyle.Render(formatHours(st.CompletedHours))
	of := mutedStyle.Render(" of " + formatHours(s.Required()))
	bar := d.bar.ViewAs(st.ProgressPercent / 100)
	pct := highlightStyle.Render(" " + cli.FormatPercent(st.ProgressPercent))

	var remaining string
	if st.IsGoalReached {
		remaining = goalReachedStyle.Render(fmt.Sprintf("Goal reached! +%s extra", formatHours(st.ExtraHours)))
	} else {
		remaining = fmt.Sprintf("%s remaining  ·  ~%d work days left",
			highlightStyle.Render(formatHours(st.RemainingHours)), st.DaysRequired)
	}

	end := cli.FormatEndDate(d.data.EndDate, d.data.EndDateSet)
	endLine := fmt.Sprintf("Estimated end: %s", highlightStyle.Render(end))

	content := lipgloss.JoinVertical(lipgloss.Left,
		title+mode,
		"",
		completed+of,
		bar+pct,
		"",
		remaining,
		endLine,
	)
	style := panelStyle
	if st.IsGoalReached {
		style = activePanelStyle
	}
	return style.Width(w).Render(content)
}

func (d dashboardModel) renderSummaryPanel(w int) string {
	s := d.data.Settings
	st := d.data.Stats

	start := cli.FormatDate(s.StartDate)
	rows := []string{
		titleStyle.Render("Schedule"),
		fmt.Sprintf("  %-16s %s", "Start date", highlightStyle.Render(start)),
		fmt.Sprintf("  %-16s %s", "Hours per day", highlightStyle.Render(formatHours(s.HoursPerDay))),
		fmt.Sprintf("  %-16s %s", "Work days", highlightStyle.Render(cli.FormatWorkDays(s.WorkDays))),
		fmt.Sprintf("  %-16s %s", "Days worked", highlightStyle.Render(fmt.Sprintf("%d", st.WorkedDays))),
		fmt.Sprintf("  %-16s %s", "Manual logs", highlightStyle.Render(fmt.Sprintf("%d", len(d.data.Manual)))),
	}
	if s.ExcludeHolidays {
		rows = append(rows, mutedStyle.Render("  Holidays are skipped in the projection"))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderUpcomingPanel(w int) string {
	title := titleStyle.Render("Coming Up")
	next := d.upcoming()
	if len(next) == 0 {
		msg := "Nothing scheduled from today on."
		if !d.data.Settings.Configured() {
			msg = "Set a start date, hours per day and required hours to project a schedule."
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render(msg)))
	}

	rows := []string{title}
	for _, l := range next {
		marker := " "
		if l.Date.Equal(d.data.Today) {
			marker = "●"
		}
		note := ""
		if l.Note != "" {
			note = mutedStyle.Render("  " + cli.Truncate(l.Note, 40))
		}
		rows = append(rows, fmt.Sprintf("  %s %s  %-8s %s%s",
			highlightStyle.Render(marker),
			l.Date.Format("Mon Jan 02"),
			statusStyleFor(l.Status)(string(l.Status)),
			formatHours(l.Total()),
			note,
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
