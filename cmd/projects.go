package cmd

import (
	"fmt"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagProjectColor       string
	flagProjectDescription string
	flagMilestoneDue       string
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "List projects with their hours and milestones",
	RunE:    runProjectsList,
}

var projectsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsAdd,
}

var projectsRmCmd = &cobra.Command{
	Use:   "rm PROJECT",
	Short: "Delete a project and its milestones",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsRm,
}

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Manage project milestones",
}

var milestoneAddCmd = &cobra.Command{
	Use:   "add PROJECT TITLE",
	Short: "Add a milestone to a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runMilestoneAdd,
}

var milestoneToggleCmd = &cobra.Command{
	Use:   "toggle MILESTONE",
	Short: "Mark a milestone done or not done",
	Args:  cobra.ExactArgs(1),
	RunE:  runMilestoneToggle,
}

var milestoneRmCmd = &cobra.Command{
	Use:   "rm MILESTONE",
	Short: "Delete a milestone",
	Args:  cobra.ExactArgs(1),
	RunE:  runMilestoneRm,
}

func init() {
	projectsAddCmd.Flags().StringVar(&flagProjectColor, "color", "", "Hex color (default #6C63FF)")
	projectsAddCmd.Flags().StringVar(&flagProjectDescription, "description", "", "Short description")
	milestoneAddCmd.Flags().StringVar(&flagMilestoneDue, "due", "", "Due date (YYYY-MM-DD)")

	milestoneCmd.AddCommand(milestoneAddCmd, milestoneToggleCmd, milestoneRmCmd)
	projectsCmd.AddCommand(projectsAddCmd, projectsRmCmd, milestoneCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ps, err := s.tracker.Projects()
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		fmt.Println("  No projects yet. Add one with `interntrack projects add NAME`.")
		return nil
	}

	var rows [][]string
	for _, p := range ps {
		done, total := p.Progress()
		rows = append(rows, []string{p.Name, shortID(p.ID), cli.FormatHours(p.Hours), fmt.Sprintf("%d/%d", done, total)})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Projects",
		Headers: []string{"Project", "ID", "Hours", "Milestones"},
		Rows:    rows,
	}))

	for _, p := range ps {
		if len(p.Milestones) == 0 {
			continue
		}
		var ms [][]string
		for _, m := range p.Milestones {
			check := "[ ]"
			if m.Done {
				check = "[x]"
			}
			ms = append(ms, []string{check + " " + m.Title, shortID(m.ID), cli.FormatDate(m.DueDate)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   p.Name,
			Headers: []string{"Milestone", "ID", "Due"},
			Rows:    ms,
		}))
	}
	return nil
}

func runProjectsAdd(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.tracker.CreateProject(args[0], flagProjectColor, flagProjectDescription)
	if err != nil {
		return err
	}
	fmt.Printf("  Created project %s (%s)\n", p.Name, shortID(p.ID))
	return nil
}

func runProjectsRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ps, err := s.tracker.Projects()
	if err != nil {
		return err
	}
	p, err := findProject(ps, args[0])
	if err != nil {
		return err
	}
	if err := s.tracker.DeleteProject(p.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted project %s\n", p.Name)
	return nil
}

func runMilestoneAdd(_ *cobra.Command, args []string) error {
	var due calendar.Date
	if flagMilestoneDue != "" {
		d, err := calendar.ParseDate(flagMilestoneDue)
		if err != nil {
			return fmt.Errorf("--due: %w", err)
		}
		due = d
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ps, err := s.tracker.Projects()
	if err != nil {
		return err
	}
	p, err := findProject(ps, args[0])
	if err != nil {
		return err
	}
	m, err := s.tracker.AddMilestone(p.ID, args[1], due)
	if err != nil {
		return err
	}
	fmt.Printf("  Added milestone %q to %s (%s)\n", m.Title, p.Name, shortID(m.ID))
	return nil
}

func runMilestoneToggle(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ps, err := s.tracker.Projects()
	if err != nil {
		return err
	}
	m, err := findMilestone(ps, args[0])
	if err != nil {
		return err
	}
	if err := s.tracker.ToggleMilestone(m.ID); err != nil {
		return err
	}
	state := "done"
	if m.Done {
		state = "not done"
	}
	fmt.Printf("  Marked %q %s\n", m.Title, state)
	return nil
}

func runMilestoneRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ps, err := s.tracker.Projects()
	if err != nil {
		return err
	}
	m, err := findMilestone(ps, args[0])
	if err != nil {
		return err
	}
	if err := s.tracker.DeleteMilestone(m.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted milestone %q\n", m.Title)
	return nil
}
