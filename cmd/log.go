package cmd

import (
	"fmt"
	"strings"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/cli"
	"github.com/sadopc/interntrack/internal/schedule"

	"github.com/spf13/cobra"
)

var (
	flagLogHours    float64
	flagLogOvertime float64
	flagLogStatus   string
	flagLogNote     string
	flagLogProject  string
	flagLogMonth    string
	flagLogManual   bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Add, remove and list daily logs",
}

var logSetCmd = &cobra.Command{
	Use:   "set DATE",
	Short: "Add or update the manual log for a date",
	Long: `Add or update the manual log for a date.

Unset flags keep the values currently shown for that date, or default to a
Worked day of the configured hours per day.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogSet,
}

var logRmCmd = &cobra.Command{
	Use:     "rm DATE",
	Aliases: []string{"delete"},
	Short:   "Remove the manual log for a date",
	Args:    cobra.ExactArgs(1),
	RunE:    runLogRm,
}

var logLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List active logs",
	RunE:    runLogLs,
}

func init() {
	logSetCmd.Flags().Float64Var(&flagLogHours, "hours", 0, "Regular hours")
	logSetCmd.Flags().Float64Var(&flagLogOvertime, "overtime", 0, "Overtime hours")
	logSetCmd.Flags().StringVarP(&flagLogStatus, "status", "s", "", "Worked, Absent, Day Off or Holiday")
	logSetCmd.Flags().StringVar(&flagLogNote, "note", "", "Note for the day")
	logSetCmd.Flags().StringVarP(&flagLogProject, "project", "p", "", "Project name or ID (empty to clear)")

	logLsCmd.Flags().StringVarP(&flagLogMonth, "month", "m", "", "Only show this month (YYYY-MM)")
	logLsCmd.Flags().BoolVar(&flagLogManual, "manual", false, "Show manual logs instead of the active set")

	logCmd.AddCommand(logSetCmd, logRmCmd, logLsCmd)
	rootCmd.AddCommand(logCmd)
}

func runLogSet(cmd *cobra.Command, args []string) error {
	date, err := calendar.ParseDate(args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := s.tracker.Derive()
	if err != nil {
		return err
	}

	e, existed, err := s.tracker.ManualLog(date)
	if err != nil {
		return err
	}
	if !existed {
		var ok bool
		if e, ok = schedule.FindLog(v.Active, date); !ok {
			e = schedule.LogEntry{Date: date, Hours: v.Settings.HoursPerDay, Status: schedule.StatusWorked}
		}
	}

	flags := cmd.Flags()
	if flags.Changed("hours") {
		e.Hours = flagLogHours
	}
	if flags.Changed("overtime") {
		e.Overtime = flagLogOvertime
	}
	if flags.Changed("status") {
		if e.Status, err = parseStatus(flagLogStatus); err != nil {
			return err
		}
	}
	if flags.Changed("note") {
		e.Note = strings.TrimSpace(flagLogNote)
	}
	if flags.Changed("project") {
		e.ProjectID = ""
		if strings.TrimSpace(flagLogProject) != "" {
			ps, err := s.tracker.Projects()
			if err != nil {
				return err
			}
			p, err := findProject(ps, flagLogProject)
			if err != nil {
				return err
			}
			e.ProjectID = p.ID
		}
	}

	if err := s.tracker.SaveLog(e); err != nil {
		return err
	}
	verb := "Added"
	if existed {
		verb = "Updated"
	}
	fmt.Printf("  %s %s: %s, %s + %s overtime\n",
		verb, e.Date, e.Status, cli.FormatHours(e.Hours), cli.FormatHours(e.Overtime))
	return nil
}

func runLogRm(_ *cobra.Command, args []string) error {
	date, err := calendar.ParseDate(args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, ok, err := s.tracker.ManualLog(date)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("  No manual log for %s\n", date)
		return nil
	}
	if err := s.tracker.DeleteLog(date); err != nil {
		return err
	}
	fmt.Printf("  Removed manual log for %s\n", date)
	return nil
}

func runLogLs(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := s.tracker.Derive()
	if err != nil {
		return err
	}
	names, err := s.tracker.ProjectNames()
	if err != nil {
		return err
	}

	logs := v.Active
	title := "Active Logs"
	if flagLogManual {
		logs = v.Manual
		title = "Manual Logs"
	}

	var rows [][]string
	var total float64
	for _, l := range logs {
		if flagLogMonth != "" && l.Date.MonthKey() != flagLogMonth {
			continue
		}
		source := "projected"
		if _, ok := schedule.FindLog(v.Manual, l.Date); ok {
			source = "manual"
		}
		if l.Counted() {
			total += l.Total()
		}
		rows = append(rows, []string{
			l.Date.String(),
			cli.FormatDayOfWeek(l.Date.Weekday()),
			string(l.Status),
			cli.FormatHours(l.Hours),
			cli.FormatHours(l.Overtime),
			names[l.ProjectID],
			source,
			cli.Truncate(l.Note, 30),
		})
	}

	if len(rows) == 0 {
		fmt.Println("  No logs.")
		return nil
	}

	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Worked total", "", "", cli.FormatHours(total), "", "", "", ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Date", "Day", "Status", "Hours", "Overtime", "Project", "Source", "Note"},
		Rows:    rows,
	}))
	return nil
}
