package cmd

import (
	"fmt"
	"strings"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/cli"
	"github.com/sadopc/interntrack/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagWins       []string
	flagChallenges []string
	flagSkills     []string
	flagGoals      []string
	flagFeedback   string
)

var checkinsCmd = &cobra.Command{
	Use:     "checkins",
	Aliases: []string{"checkin"},
	Short:   "List weeks with their hours and check-in status",
	RunE:    runCheckinsList,
}

var checkinsShowCmd = &cobra.Command{
	Use:   "show [WEEK]",
	Short: "Show the check-in for a week (default this week)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheckinsShow,
}

var checkinsSetCmd = &cobra.Command{
	Use:   "set [WEEK]",
	Short: "Write or update the check-in for a week (default this week)",
	Long: `Write or update the check-in for a week (default this week).

WEEK is a date inside the week or a week ID such as 2026-W07. Repeat
--win, --challenge, --skill and --goal up to three times each; flags that
are not given keep their stored values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckinsSet,
}

var checkinsRmCmd = &cobra.Command{
	Use:   "rm WEEK",
	Short: "Delete the check-in for a week",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckinsRm,
}

func init() {
	checkinsSetCmd.Flags().StringArrayVar(&flagWins, "win", nil, "A win this week")
	checkinsSetCmd.Flags().StringArrayVar(&flagChallenges, "challenge", nil, "A challenge this week")
	checkinsSetCmd.Flags().StringArrayVar(&flagSkills, "skill", nil, "A skill learned")
	checkinsSetCmd.Flags().StringArrayVar(&flagGoals, "goal", nil, "A goal for next week")
	checkinsSetCmd.Flags().StringVar(&flagFeedback, "feedback", "", "Supervisor feedback")

	checkinsCmd.AddCommand(checkinsShowCmd, checkinsSetCmd, checkinsRmCmd)
	rootCmd.AddCommand(checkinsCmd)
}

func runCheckinsList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	weeks, err := s.tracker.Weeks()
	if err != nil {
		return err
	}
	if len(weeks) == 0 {
		fmt.Println("  No worked weeks yet.")
		return nil
	}

	var rows [][]string
	for _, w := range weeks {
		status := "-"
		if w.Checkin != nil {
			status = "checked in"
		}
		rows = append(rows, []string{w.Week.ID, w.Week.Label, cli.FormatHours(w.Hours), fmt.Sprintf("%d", w.Days), status})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Weekly Check-ins",
		Headers: []string{"Week", "Dates", "Hours", "Days", "Check-in"},
		Rows:    rows,
	}))
	return nil
}

// weekArg resolves the optional WEEK argument, defaulting to this week.
func weekArg(s *session, args []string) (calendar.Week, error) {
	if len(args) == 0 {
		return calendar.WeekOf(s.tracker.Today()), nil
	}
	weeks, err := s.tracker.Weeks()
	if err != nil {
		return calendar.Week{}, err
	}
	return resolveWeek(weeks, args[0])
}

func runCheckinsShow(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := weekArg(s, args)
	if err != nil {
		return err
	}
	c, err := s.tracker.Checkin(w)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", c.ID, c.WeekLabel)))
	fmt.Println()
	fmt.Print(renderSlots("Wins", c.Wins))
	fmt.Print(renderSlots("Challenges", c.Challenges))
	fmt.Print(renderSlots("Skills learned", c.Skills))
	if c.Feedback != "" {
		fmt.Printf("  Feedback\n    %s\n\n", c.Feedback)
	}
	fmt.Print(renderSlots("Goals for next week", c.Goals))
	if c.CreatedAt.IsZero() {
		fmt.Println("  (no check-in saved for this week)")
	}
	return nil
}

func renderSlots(title string, slots []string) string {
	var b strings.Builder
	for _, v := range slots {
		if v != "" {
			fmt.Fprintf(&b, "    • %s\n", v)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "  " + title + "\n" + b.String() + "\n"
}

func runCheckinsSet(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := weekArg(s, args)
	if err != nil {
		return err
	}
	c, err := s.tracker.Checkin(w)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for _, f := range []struct {
		name   string
		values []string
		slots  *[]string
	}{
		{"win", flagWins, &c.Wins},
		{"challenge", flagChallenges, &c.Challenges},
		{"skill", flagSkills, &c.Skills},
		{"goal", flagGoals, &c.Goals},
	} {
		if !flags.Changed(f.name) {
			continue
		}
		if len(f.values) > store.CheckinSlots {
			return fmt.Errorf("--%s: at most %d entries", f.name, store.CheckinSlots)
		}
		*f.slots = store.NormalizeSlots(f.values)
	}
	if flags.Changed("feedback") {
		c.Feedback = strings.TrimSpace(flagFeedback)
	}

	saved, err := s.tracker.SaveCheckin(c)
	if err != nil {
		return err
	}
	fmt.Printf("  Saved check-in %s (%s)\n", saved.ID, saved.WeekLabel)
	return nil
}

func runCheckinsRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	weeks, err := s.tracker.Weeks()
	if err != nil {
		return err
	}
	w, err := resolveWeek(weeks, args[0])
	if err != nil {
		return err
	}
	if err := s.tracker.DeleteCheckin(w.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted check-in %s\n", w.ID)
	return nil
}
