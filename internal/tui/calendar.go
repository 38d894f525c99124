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

type calendarModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	data     tracker.View
	projects []tracker.ProjectSummary
	selected calendar.Date

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formStatus   *string
	formHours    *string
	formOvertime *string
	formNote     *string
	formProject  *string
}

func newCalendarModel(t *tracker.Tracker) calendarModel {
	status, hours, overtime, note, project := "", "", "", "", ""
	return calendarModel{
		tracker:      t,
		selected:     t.Today(),
		formStatus:   &status,
		formHours:    &hours,
		formOvertime: &overtime,
		formNote:     &note,
		formProject:  &project,
	}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type calendarDataMsg struct {
	view     tracker.View
	projects []tracker.ProjectSummary
	err      error
}

func (c calendarModel) refresh() tea.Cmd {
	return func() tea.Msg {
		v, err := c.tracker.Derive()
		if err != nil {
			return calendarDataMsg{err: err}
		}
		ps, err := c.tracker.Projects()
		return calendarDataMsg{view: v, projects: ps, err: err}
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case calendarDataMsg:
		if msg.err != nil {
			return c, errorCmd(msg.err)
		}
		c.data = msg.view
		c.projects = msg.projects
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			c.selected = c.selected.AddDays(-1)
		case key.Matches(msg, keys.Right):
			c.selected = c.selected.AddDays(1)
		case key.Matches(msg, keys.Up):
			c.selected = c.selected.AddDays(-7)
		case key.Matches(msg, keys.Down):
			c.selected = c.selected.AddDays(7)
		case key.Matches(msg, keys.PrevMonth):
			c.selected = calendar.NewDate(c.selected.Year(), c.selected.Month()-1, 1)
		case key.Matches(msg, keys.NextMonth):
			c.selected = calendar.NewDate(c.selected.Year(), c.selected.Month()+1, 1)
		case key.Matches(msg, keys.Today):
			c.selected = c.tracker.Today()
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return c.showDayForm()
		case key.Matches(msg, keys.Delete):
			return c.deleteSelected()
		}
	}
	return c, nil
}

// entryFor returns the active entry on d and whether it came from the
// manual collection.
func (c calendarModel) entryFor(d calendar.Date) (schedule.LogEntry, bool, bool) {
	e, ok := schedule.FindLog(c.data.Active, d)
	if !ok {
		return e, false, false
	}
	_, manual := schedule.FindLog(c.data.Manual, d)
	return e, true, manual
}

func (c calendarModel) deleteSelected() (calendarModel, tea.Cmd) {
	if _, manual := schedule.FindLog(c.data.Manual, c.selected); !manual {
		return c, statusCmd("No manual log on " + c.selected.String())
	}
	if err := c.tracker.DeleteLog(c.selected); err != nil {
		return c, errorCmd(err)
	}
	return c, changedCmd("Deleted log for " + c.selected.String())
}

func (c calendarModel) showDayForm() (calendarModel, tea.Cmd) {
	e, ok, _ := c.entryFor(c.selected)
	if ok {
		*c.formStatus = string(e.Status)
		*c.formHours = trimFloat(e.Hours)
		*c.formOvertime = trimFloat(e.Overtime)
		*c.formNote = e.Note
		*c.formProject = e.ProjectID
	} else {
		*c.formStatus = string(schedule.StatusWorked)
		*c.formHours = trimFloat(c.data.Settings.HoursPerDay)
		*c.formOvertime = "0"
		*c.formNote = ""
		*c.formProject = ""
	}

	statusOptions := make([]huh.Option[string], len(schedule.Statuses))
	for i, s := range schedule.Statuses {
		statusOptions[i] = huh.NewOption(string(s), string(s))
	}
	projectOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, p := range c.projects {
		projectOptions = append(projectOptions, huh.NewOption(p.Name, p.ID))
	}

	fields := []huh.Field{
		huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(c.formStatus),
		huh.NewInput().Title("Hours").Value(c.formHours).Validate(validateHours),
		huh.NewInput().Title("Overtime").Value(c.formOvertime).Validate(validateHours),
		huh.NewInput().Title("Note").Value(c.formNote),
	}
	if len(c.projects) > 0 {
		fields = append(fields, huh.NewSelect[string]().Title("Project").Options(projectOptions...).Value(c.formProject))
	}

	c.form = huh.NewForm(
		huh.NewGroup(fields...).Title(c.selected.Format("Monday, Jan 2, 2006")),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c calendarModel) updateForm(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		return c, c.saveForm()
	}

	return c, cmd
}

func (c calendarModel) saveForm() tea.Cmd {
	hours, err := parseHoursInput(*c.formHours)
	if err != nil {
		return errorCmd(err)
	}
	overtime, err := parseHoursInput(*c.formOvertime)
	if err != nil {
		return errorCmd(err)
	}
	e := schedule.LogEntry{
		Date:      c.selected,
		Hours:     hours,
		Overtime:  overtime,
		Status:    schedule.LogStatus(*c.formStatus),
		Note:      strings.TrimSpace(*c.formNote),
		ProjectID: *c.formProject,
	}
	if err := c.tracker.SaveLog(e); err != nil {
		return errorCmd(err)
	}
	return changedCmd("Saved log for " + c.selected.String())
}

func (c calendarModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := titleStyle.Render("Day Detail")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", c.renderHoliday(), c.form.View())
		return panelStyle.Width(w).Render(content)
	}

	grid := c.renderGrid()
	detail := c.renderDetail()
	legend := mutedStyle.Render("  ● manual  * holiday  ←/→/↑/↓: move  [/]: month  t: today  enter: edit  d: delete")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, grid, "", detail, "", legend),
	)
}

func (c calendarModel) renderGrid() string {
	first := calendar.NewDate(c.selected.Year(), c.selected.Month(), 1)
	title := titleStyle.Render(first.Format("January 2006"))

	var header []string
	for wd := 0; wd < 7; wd++ {
		header = append(header, mutedStyle.Inherit(cellStyle).Render(cli.FormatDayOfWeek(time.Weekday(wd))))
	}
	rows := []string{title, "", lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	var week []string
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, cellStyle.Render(""))
	}
	for _, d := range calendar.MonthDays(first) {
		week = append(week, c.renderCell(d))
		if len(week) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
			week = nil
		}
	}
	if len(week) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}
	return strings.Join(rows, "\n")
}

func (c calendarModel) renderCell(d calendar.Date) string {
	label := fmt.Sprintf("%d", d.Day())
	e, ok, manual := c.entryFor(d)
	if manual {
		label += "●"
	}
	if _, hol := c.tracker.Holidays().Lookup(d); hol {
		label += "*"
	}

	style := cellStyle
	switch {
	case d.Equal(c.selected):
		style = selectedCellStyle
	case d.Equal(c.data.Today):
		style = todayCellStyle
	}
	if ok {
		style = style.Foreground(statusColor(e.Status))
	} else {
		style = style.Foreground(colorMuted)
	}
	return style.Render(label)
}

func (c calendarModel) renderHoliday() string {
	h, ok := c.tracker.Holidays().Lookup(c.selected)
	if !ok {
		return ""
	}
	return holidayStyle.Render(fmt.Sprintf("%s · %s", h.Name, h.Kind.Label())) + "\n"
}

func (c calendarModel) renderDetail() string {
	rows := []string{titleStyle.Render(c.selected.Format("Monday, Jan 2, 2006"))}
	if h := c.renderHoliday(); h != "" {
		rows = append(rows, strings.TrimRight(h, "\n"))
	}

	e, ok, manual := c.entryFor(c.selected)
	if !ok {
		rows = append(rows, mutedStyle.Render("No entry. Press enter to log this day."))
		return strings.Join(rows, "\n")
	}

	source := "projected"
	if manual {
		source = "manual"
	}
	rows = append(rows, fmt.Sprintf("%s  %s hours  %s overtime  %s",
		statusStyleFor(e.Status)(string(e.Status)),
		highlightStyle.Render(formatHours(e.Hours)),
		highlightStyle.Render(formatHours(e.Overtime)),
		subtitleStyle.Render("("+source+")"),
	))
	if name := c.projectName(e.ProjectID); name != "" {
		rows = append(rows, "Project: "+secondaryStyle.Render(name))
	}
	if e.Note != "" {
		rows = append(rows, mutedStyle.Render(e.Note))
	}
	return strings.Join(rows, "\n")
}

// projectName resolves an ID; dangling IDs render as no project.
func (c calendarModel) projectName(id string) string {
	if id == "" {
		return ""
	}
	for _, p := range c.projects {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}
