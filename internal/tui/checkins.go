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

// checkinFields holds the form values for one check-in.
type checkinFields struct {
	wins       [store.CheckinSlots]string
	challenges [store.CheckinSlots]string
	skills     [store.CheckinSlots]string
	goals      [store.CheckinSlots]string
	feedback   string
}

type checkinsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	weeks  []tracker.WeekSummary
	cursor int

	formActive bool
	form       *huh.Form
	editing    store.Checkin
	fields     *checkinFields
}

func newCheckinsModel(t *tracker.Tracker) checkinsModel {
	return checkinsModel{
		tracker: t,
		fields:  &checkinFields{},
	}
}

func (c *checkinsModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type checkinsDataMsg struct {
	weeks []tracker.WeekSummary
	err   error
}

func (c checkinsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		weeks, err := c.tracker.Weeks()
		return checkinsDataMsg{weeks: weeks, err: err}
	}
}

func (c checkinsModel) update(msg tea.Msg) (checkinsModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case checkinsDataMsg:
		if msg.err != nil {
			return c, errorCmd(msg.err)
		}
		c.weeks = msg.weeks
		if c.cursor >= len(c.weeks) {
			c.cursor = max(0, len(c.weeks)-1)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.weeks)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			if c.cursor < len(c.weeks) {
				return c.showForm(c.weeks[c.cursor].Week)
			}
		case key.Matches(msg, keys.New):
			return c.showForm(calendar.WeekOf(c.tracker.Today()))
		case key.Matches(msg, keys.Delete):
			if c.cursor < len(c.weeks) && c.weeks[c.cursor].Checkin != nil {
				id := c.weeks[c.cursor].Week.ID
				if err := c.tracker.DeleteCheckin(id); err != nil {
					return c, errorCmd(err)
				}
				return c, statusCmdThen("Deleted check-in "+id, c.refresh())
			}
		}
	}
	return c, nil
}

func (c checkinsModel) showForm(w calendar.Week) (checkinsModel, tea.Cmd) {
	ci, err := c.tracker.Checkin(w)
	if err != nil {
		return c, errorCmd(err)
	}
	c.editing = ci

	f := c.fields
	copy(f.wins[:], ci.Wins)
	copy(f.challenges[:], ci.Challenges)
	copy(f.skills[:], ci.Skills)
	copy(f.goals[:], ci.Goals)
	f.feedback = ci.Feedback

	c.form = huh.NewForm(
		huh.NewGroup(slotInputs("Win", &f.wins)...).Title("Wins this week"),
		huh.NewGroup(slotInputs("Challenge", &f.challenges)...).Title("Challenges"),
		huh.NewGroup(slotInputs("Skill", &f.skills)...).Title("Skills learned"),
		huh.NewGroup(
			huh.NewText().Title("Supervisor feedback").Value(&f.feedback).Lines(4),
		).Title("Feedback"),
		huh.NewGroup(slotInputs("Goal", &f.goals)...).Title("Goals for next week"),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func slotInputs(label string, slots *[store.CheckinSlots]string) []huh.Field {
	fields := make([]huh.Field, len(slots))
	for i := range slots {
		fields[i] = huh.NewInput().Title(fmt.Sprintf("%s %d", label, i+1)).Value(&slots[i])
	}
	return fields
}

func (c checkinsModel) updateForm(msg tea.Msg) (checkinsModel, tea.Cmd) {
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

func (c checkinsModel) saveForm() tea.Cmd {
	f := c.fields
	ci := c.editing
	ci.Wins = trimSlots(f.wins[:])
	ci.Challenges = trimSlots(f.challenges[:])
	ci.Skills = trimSlots(f.skills[:])
	ci.Goals = trimSlots(f.goals[:])
	ci.Feedback = strings.TrimSpace(f.feedback)
	if _, err := c.tracker.SaveCheckin(ci); err != nil {
		return errorCmd(err)
	}
	return statusCmdThen("Saved check-in "+ci.ID, c.refresh())
}

func trimSlots(v []string) []string {
	out := make([]string, len(v))
	for i, s := range v {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func (c checkinsModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := titleStyle.Render("Check-in: " + c.editing.WeekLabel)
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Weekly Check-ins")
	if len(c.weeks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No worked weeks yet. Press n to write one for this week."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %-28s %10s %6s  %s", "Week", "Dates", "Hours", "Days", "")))

	for i, wk := range c.weeks {
		cursor, render := cursorPrefix(i == c.cursor)
		mark := mutedStyle.Render("no check-in")
		if wk.Checkin != nil {
			mark = successStyle.Render("✓ checked in")
		}
		rows = append(rows, render(fmt.Sprintf("%s%-10s %-28s %10s %6d", cursor,
			wk.Week.ID, wk.Week.Label, formatHours(wk.Hours), wk.Days))+"  "+mark)
	}

	if c.cursor < len(c.weeks) && c.weeks[c.cursor].Checkin != nil {
		rows = append(rows, "", renderCheckin(*c.weeks[c.cursor].Checkin))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  n: this week  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderCheckin(ci store.Checkin) string {
	var rows []string
	section := func(name string, items []string) {
		var filled []string
		for _, s := range items {
			if s != "" {
				filled = append(filled, "    • "+s)
			}
		}
		if len(filled) == 0 {
			return
		}
		rows = append(rows, "  "+secondaryStyle.Render(name))
		rows = append(rows, filled...)
	}
	section("Wins", ci.Wins)
	section("Challenges", ci.Challenges)
	section("Skills", ci.Skills)
	if ci.Feedback != "" {
		rows = append(rows, "  "+secondaryStyle.Render("Feedback"), "    "+ci.Feedback)
	}
	section("Goals", ci.Goals)
	if len(rows) == 0 {
		return mutedStyle.Render("  (empty check-in)")
	}
	return strings.Join(rows, "\n")
}
