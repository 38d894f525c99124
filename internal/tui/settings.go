package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/cli"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/tracker"
)

type settingsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	settings   schedule.Settings
	loaded     bool
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	requiredHours   *string
	hoursPerDay     *string
	startDate       *string
	workDays        *[]int
	excludeHolidays *bool
	mode            *string
}

func newSettingsModel(t *tracker.Tracker) settingsModel {
	rh, hpd, sd, m := "", "", "", ""
	var wd []int
	var eh bool
	return settingsModel{
		tracker:         t,
		requiredHours:   &rh,
		hoursPerDay:     &hpd,
		startDate:       &sd,
		workDays:        &wd,
		excludeHolidays: &eh,
		mode:            &m,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings schedule.Settings
	err      error
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		st, err := s.tracker.Settings()
		return settingsDataMsg{settings: st, err: err}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		if msg.err != nil {
			return s, errorCmd(msg.err)
		}
		s.settings = msg.settings
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	st := s.settings
	if !s.loaded {
		st = schedule.DefaultSettings()
	}

	*s.requiredHours = ""
	if st.RequiredHours != nil {
		*s.requiredHours = trimFloat(*st.RequiredHours)
	}
	*s.hoursPerDay = trimFloat(st.HoursPerDay)
	*s.startDate = ""
	if !st.StartDate.IsZero() {
		*s.startDate = st.StartDate.String()
	}
	*s.workDays = (*s.workDays)[:0]
	for _, d := range st.WorkDays {
		*s.workDays = append(*s.workDays, int(d))
	}
	*s.excludeHolidays = st.ExcludeHolidays
	*s.mode = string(st.ProjectionMode)

	dayOptions := make([]huh.Option[int], 7)
	for i := range dayOptions {
		dayOptions[i] = huh.NewOption(time.Weekday(i).String(), i)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Required hours").
				Description("Leave empty if not decided yet").
				Value(s.requiredHours).Validate(validateHours),
			huh.NewInput().Title("Hours per day").Value(s.hoursPerDay).Validate(validateHours),
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(s.startDate).Validate(validateOptionalDate),
		).Title("Goal"),
		huh.NewGroup(
			huh.NewMultiSelect[int]().Title("Work days").Options(dayOptions...).Value(s.workDays),
			huh.NewConfirm().Title("Skip holidays").Value(s.excludeHolidays),
			huh.NewSelect[string]().Title("Projection mode").
				Description("Switching mode rewrites the manual log").
				Options(
					huh.NewOption("Auto: project the schedule, override single days", string(schedule.ModeAuto)),
					huh.NewOption("Manual: only logged days count", string(schedule.ModeManual)),
				).Value(s.mode),
		).Title("Schedule"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.saveSettings()
	}

	return s, cmd
}

// formSettings converts the form values back into settings.
func (s settingsModel) formSettings() (schedule.Settings, error) {
	var st schedule.Settings
	if strings.TrimSpace(*s.requiredHours) != "" {
		h, err := parseHoursInput(*s.requiredHours)
		if err != nil {
			return st, fmt.Errorf("required hours: %w", err)
		}
		st.RequiredHours = schedule.Hours(h)
	}
	hpd, err := parseHoursInput(*s.hoursPerDay)
	if err != nil {
		return st, fmt.Errorf("hours per day: %w", err)
	}
	st.HoursPerDay = hpd
	if v := strings.TrimSpace(*s.startDate); v != "" {
		d, err := calendar.ParseDate(v)
		if err != nil {
			return st, fmt.Errorf("start date: %w", err)
		}
		st.StartDate = d
	}
	for _, d := range *s.workDays {
		st.WorkDays = append(st.WorkDays, time.Weekday(d))
	}
	st.ExcludeHolidays = *s.excludeHolidays
	st.ProjectionMode = schedule.Mode(*s.mode)
	return st, nil
}

func (s settingsModel) saveSettings() tea.Cmd {
	st, err := s.formSettings()
	if err != nil {
		return errorCmd(err)
	}
	if err := s.tracker.UpdateSettings(st); err != nil {
		return errorCmd(err)
	}
	msg := "Settings saved"
	if st.ProjectionMode != s.settings.ProjectionMode {
		msg = fmt.Sprintf("Settings saved, switched to %s mode", st.ProjectionMode)
	}
	return changedCmd(msg)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	st := s.settings
	required := "Not set"
	if st.RequiredHours != nil {
		required = formatHours(*st.RequiredHours)
	}
	holidays := "counted as work days"
	if st.ExcludeHolidays {
		holidays = "skipped"
	}

	pairs := [][2]string{
		{"Required hours", required},
		{"Hours per day", formatHours(st.HoursPerDay)},
		{"Start date", cli.FormatDate(st.StartDate)},
		{"Work days", cli.FormatWorkDays(st.WorkDays)},
		{"Holidays", holidays},
		{"Projection mode", string(st.ProjectionMode)},
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for _, p := range pairs {
		label := lipgloss.NewStyle().Width(24).Render(p[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(p[1])))
	}

	if !st.Configured() {
		rows = append(rows, "", warningStyle.Render("  Set a start date and required hours to project your schedule."))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
