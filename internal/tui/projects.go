package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/store"
	"github.com/sadopc/interntrack/internal/tracker"
)

var projectColors = []string{store.DefaultProjectColor, "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

type projectsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	projects          []tracker.ProjectSummary
	cursor            int
	milestoneCursor   int
	viewingMilestones bool

	formActive bool
	form       *huh.Form
	formType   string // "project", "edit_project", "milestone"

	// Form field pointers (survive value copies)
	formName        *string
	formColor       *string
	formDescription *string
	formDue         *string

	editingID string
}

func newProjectsModel(t *tracker.Tracker) projectsModel {
	name, color, desc, due := "", projectColors[0], "", ""
	return projectsModel{
		tracker:         t,
		formName:        &name,
		formColor:       &color,
		formDescription: &desc,
		formDue:         &due,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type projectsDataMsg struct {
	projects []tracker.ProjectSummary
	err      error
}

func (p projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		projects, err := p.tracker.Projects()
		return projectsDataMsg{projects: projects, err: err}
	}
}

func (p projectsModel) selected() (tracker.ProjectSummary, bool) {
	if p.cursor < 0 || p.cursor >= len(p.projects) {
		return tracker.ProjectSummary{}, false
	}
	return p.projects[p.cursor], true
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		if msg.err != nil {
			return p, errorCmd(msg.err)
		}
		p.projects = msg.projects
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		if proj, ok := p.selected(); ok && p.milestoneCursor >= len(proj.Milestones) {
			p.milestoneCursor = max(0, len(proj.Milestones)-1)
		}
		if len(p.projects) == 0 {
			p.viewingMilestones = false
		}
		return p, nil

	case tea.KeyMsg:
		if p.viewingMilestones {
			return p.updateMilestoneView(msg)
		}
		return p.updateProjectList(msg)
	}
	return p, nil
}

func (p projectsModel) updateProjectList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.projects)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(p.projects) > 0 {
			p.viewingMilestones = true
			p.milestoneCursor = 0
		}
	case key.Matches(msg, keys.New):
		return p.showProjectForm(nil)
	case key.Matches(msg, keys.Edit):
		if proj, ok := p.selected(); ok {
			return p.showProjectForm(&proj)
		}
	case key.Matches(msg, keys.Delete):
		if proj, ok := p.selected(); ok {
			if err := p.tracker.DeleteProject(proj.ID); err != nil {
				return p, errorCmd(err)
			}
			return p, changedCmd("Deleted project " + proj.Name)
		}
	}
	return p, nil
}

func (p projectsModel) updateMilestoneView(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	proj, ok := p.selected()
	if !ok {
		p.viewingMilestones = false
		return p, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		p.viewingMilestones = false
		return p, nil
	case key.Matches(msg, keys.Up):
		if p.milestoneCursor > 0 {
			p.milestoneCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.milestoneCursor < len(proj.Milestones)-1 {
			p.milestoneCursor++
		}
	case key.Matches(msg, keys.New):
		return p.showMilestoneForm()
	case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
		if p.milestoneCursor < len(proj.Milestones) {
			if err := p.tracker.ToggleMilestone(proj.Milestones[p.milestoneCursor].ID); err != nil {
				return p, errorCmd(err)
			}
			return p, p.refresh()
		}
	case key.Matches(msg, keys.Delete):
		if p.milestoneCursor < len(proj.Milestones) {
			m := proj.Milestones[p.milestoneCursor]
			if err := p.tracker.DeleteMilestone(m.ID); err != nil {
				return p, errorCmd(err)
			}
			return p, statusCmdThen("Deleted milestone "+m.Title, p.refresh())
		}
	}
	return p, nil
}

func (p projectsModel) colorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(projectColors))
	for i, c := range projectColors {
		opts[i] = huh.NewOption(dot(lipgloss.Color(c))+" "+c, c)
	}
	return opts
}

// showProjectForm opens the create form, or the edit form when proj is set.
func (p projectsModel) showProjectForm(proj *tracker.ProjectSummary) (projectsModel, tea.Cmd) {
	if proj == nil {
		*p.formName = ""
		*p.formColor = projectColors[0]
		*p.formDescription = ""
		p.formType = "project"
		p.editingID = ""
	} else {
		*p.formName = proj.Name
		*p.formColor = proj.Color
		*p.formDescription = proj.Description
		p.formType = "edit_project"
		p.editingID = proj.ID
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(p.formName).Validate(validateRequired),
			huh.NewSelect[string]().Title("Color").Options(p.colorOptions()...).Value(p.formColor),
			huh.NewText().Title("Description").Value(p.formDescription).Lines(3),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) showMilestoneForm() (projectsModel, tea.Cmd) {
	*p.formName = ""
	*p.formDue = ""
	p.formType = "milestone"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Milestone").Value(p.formName).Validate(validateRequired),
			huh.NewInput().Title("Due date (YYYY-MM-DD, optional)").Value(p.formDue).Validate(validateOptionalDate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		return p, p.submitForm()
	}

	return p, cmd
}

func (p projectsModel) submitForm() tea.Cmd {
	name := strings.TrimSpace(*p.formName)
	switch p.formType {
	case "project":
		proj, err := p.tracker.CreateProject(name, *p.formColor, *p.formDescription)
		if err != nil {
			return errorCmd(err)
		}
		return changedCmd("Created project " + proj.Name)
	case "edit_project":
		if err := p.tracker.UpdateProject(p.editingID, name, *p.formColor, *p.formDescription); err != nil {
			return errorCmd(err)
		}
		return changedCmd("Updated project " + name)
	case "milestone":
		proj, ok := p.selected()
		if !ok {
			return nil
		}
		var due calendar.Date
		if s := strings.TrimSpace(*p.formDue); s != "" {
			d, err := calendar.ParseDate(s)
			if err != nil {
				return errorCmd(err)
			}
			due = d
		}
		if _, err := p.tracker.AddMilestone(proj.ID, name, due); err != nil {
			return errorCmd(err)
		}
		return statusCmdThen("Added milestone "+name, p.refresh())
	}
	return nil
}

func (p projectsModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Project")
		switch p.formType {
		case "edit_project":
			title = titleStyle.Render("Edit Project")
		case "milestone":
			title = titleStyle.Render("New Milestone")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	if p.viewingMilestones {
		return p.renderMilestoneView()
	}
	return p.renderProjectList()
}

func (p projectsModel) renderProjectList() string {
	w := p.width - 4
	title := titleStyle.Render("Projects")

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %10s %12s", "", "Name", "Hours", "Milestones"))
	rows = append(rows, header)

	for i, proj := range p.projects {
		colorDot := dot(lipgloss.Color(proj.Color))
		cursor, render := cursorPrefix(i == p.cursor)
		done, total := proj.Progress()
		row := render(fmt.Sprintf("%s%s %-24s %10s %12s",
			cursor, colorDot, proj.Name, formatHours(proj.Hours), fmt.Sprintf("%d/%d", done, total)))
		rows = append(rows, row)
	}

	if proj, ok := p.selected(); ok && proj.Description != "" {
		rows = append(rows, "", mutedStyle.Render("  "+proj.Description))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  enter: milestones"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p projectsModel) renderMilestoneView() string {
	w := p.width - 4
	proj, _ := p.selected()
	colorDot := dot(lipgloss.Color(proj.Color))
	done, total := proj.Progress()
	title := titleStyle.Render(fmt.Sprintf("%s %s: Milestones (%d/%d)", colorDot, proj.Name, done, total))

	if len(proj.Milestones) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No milestones. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	today := p.tracker.Today()
	for i, m := range proj.Milestones {
		cursor, render := cursorPrefix(i == p.milestoneCursor)
		check := "[ ]"
		if m.Done {
			check = successStyle.Render("[x]")
		}
		due := ""
		if !m.DueDate.IsZero() {
			due = " " + mutedStyle.Render("due "+m.DueDate.Format("Jan 2"))
			if !m.Done && m.DueDate.Before(today) {
				due = " " + errorStyle.Render("overdue "+m.DueDate.Format("Jan 2"))
			}
		}
		rows = append(rows, cursor+check+" "+render(m.Title)+due)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  space: toggle  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
