package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/tracker"
)

type reportMode int

const (
	reportMonthly reportMode = iota
	reportWeekly
)

const (
	monthsPerPage = 6
	weeksPerPage  = 8
)

// reportBucket is one bar: the worked hours of a month or week.
type reportBucket struct {
	Key      string
	Label    string
	Hours    float64
	Overtime float64
	Days     int
}

type reportsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	mode   reportMode
	data   tracker.View
	offset int // pages back from the current period (0 = current)

	chart barchart.Model
}

func newReportsModel(t *tracker.Tracker) reportsModel {
	return reportsModel{
		tracker: t,
		chart:   barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	view tracker.View
	err  error
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		v, err := r.tracker.Derive()
		return reportsDataMsg{view: v, err: err}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		if msg.err != nil {
			return r, errorCmd(msg.err)
		}
		r.data = msg.view
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			r.buildChart()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			r.buildChart()
		case key.Matches(msg, keys.Tab):
			if r.mode == reportMonthly {
				r.mode = reportWeekly
			} else {
				r.mode = reportMonthly
			}
			r.offset = 0
			r.buildChart()
		}
	}
	return r, nil
}

// anchor is the date the visible window ends on.
func (r reportsModel) anchor() calendar.Date {
	today := r.data.Today
	if today.IsZero() {
		today = r.tracker.Today()
	}
	if r.mode == reportWeekly {
		return today.AddDays(-7 * weeksPerPage * r.offset)
	}
	return calendar.NewDate(today.Year(), today.Month()-monthsPerPage*time.Month(r.offset), 1)
}

// buckets returns the periods in the visible window, oldest first, filled
// from the Worked entries of the active log set.
func (r reportsModel) buckets() []reportBucket {
	end := r.anchor()
	var out []reportBucket
	index := make(map[string]int)

	if r.mode == reportWeekly {
		start := calendar.WeekOf(end).Start.AddDays(-7 * (weeksPerPage - 1))
		for i := 0; i < weeksPerPage; i++ {
			w := calendar.WeekOf(start.AddDays(7 * i))
			index[w.ID] = len(out)
			out = append(out, reportBucket{Key: w.ID, Label: w.Start.Format("Jan 02")})
		}
	} else {
		for i := monthsPerPage - 1; i >= 0; i-- {
			m := calendar.NewDate(end.Year(), end.Month()-time.Month(i), 1)
			index[m.MonthKey()] = len(out)
			out = append(out, reportBucket{Key: m.MonthKey(), Label: m.Format("Jan 06")})
		}
	}

	for _, l := range schedule.Worked(r.data.Active) {
		k := l.Date.MonthKey()
		if r.mode == reportWeekly {
			k = calendar.WeekOf(l.Date).ID
		}
		i, ok := index[k]
		if !ok {
			continue
		}
		out[i].Hours += l.Hours
		out[i].Overtime += l.Overtime
		out[i].Days++
	}
	return out
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, b := range r.buckets() {
		values := []barchart.BarValue{
			{Name: "Hours", Value: b.Hours, Style: hoursBarStyle},
		}
		if b.Overtime > 0 {
			values = append(values, barchart.BarValue{Name: "Overtime", Value: b.Overtime, Style: overtimeBarStyle})
		}
		bars = append(bars, barchart.BarData{Label: b.Label, Values: values})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	monthlyTab := inactiveTabStyle.Render("Monthly")
	weeklyTab := inactiveTabStyle.Render("Weekly")
	if r.mode == reportMonthly {
		monthlyTab = activeTabStyle.Render("Monthly")
	} else {
		weeklyTab = activeTabStyle.Render("Weekly")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, monthlyTab, weeklyTab)

	buckets := r.buckets()
	rangeLabel := ""
	if len(buckets) > 0 {
		rangeLabel = mutedStyle.Render(fmt.Sprintf("%s to %s", buckets[0].Label, buckets[len(buckets)-1].Label))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", rangeLabel,
	)

	legend := "  " + dot(colorPrimary) + " Hours  " + dot(colorOvertime) + " Overtime"

	nav := mutedStyle.Render("  ←/→: navigate  tab: switch mode")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", legend, "",
			r.renderSummaryTable(w, buckets), "", r.renderTotals(), "", nav,
		),
	)
}

func (r reportsModel) renderSummaryTable(w int, buckets []reportBucket) string {
	var rows []string
	period := "Month"
	if r.mode == reportWeekly {
		period = "Week"
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %6s %10s %10s %10s", period, "Days", "Hours", "Overtime", "Total")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 50))))

	empty := true
	for _, b := range buckets {
		if b.Days == 0 {
			continue
		}
		empty = false
		rows = append(rows, fmt.Sprintf("  %-10s %6d %10s %10s %10s",
			b.Key, b.Days, formatHours(b.Hours), formatHours(b.Overtime), formatHours(b.Hours+b.Overtime),
		))
	}
	if empty {
		return mutedStyle.Render("  No worked days in this period")
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderTotals() string {
	worked := schedule.Worked(r.data.Active)
	st := r.data.Stats
	return fmt.Sprintf("  Overall: %s across %d worked days, %d calendar days",
		highlightStyle.Render(formatHours(st.CompletedHours)),
		st.WorkedDays,
		schedule.SpanDays(worked),
	)
}
