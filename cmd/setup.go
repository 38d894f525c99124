package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/cli"
	"github.com/sadopc/interntrack/internal/config"
	"github.com/sadopc/interntrack/internal/schedule"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagRequired        float64
	flagHoursPerDay     float64
	flagStart           string
	flagWorkDays        string
	flagExcludeHolidays bool
	flagMode            string
	flagClearRequired   bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the required hours and schedule",
	Long: `Configure the required hours and schedule.

With no flags an interactive form opens. With flags, only the given
settings change; --clear-required unsets the goal.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().Float64Var(&flagRequired, "required", 0, "Required internship hours")
	setupCmd.Flags().BoolVar(&flagClearRequired, "clear-required", false, "Unset the required hours")
	setupCmd.Flags().Float64Var(&flagHoursPerDay, "hours-per-day", 8, "Hours worked per day")
	setupCmd.Flags().StringVar(&flagStart, "start", "", "Start date (YYYY-MM-DD, empty to unset)")
	setupCmd.Flags().StringVar(&flagWorkDays, "work-days", "mon,tue,wed,thu,fri", "Work days, names or numbers (0 = Sunday)")
	setupCmd.Flags().BoolVar(&flagExcludeHolidays, "exclude-holidays", false, "Skip holidays in the projection")
	setupCmd.Flags().StringVar(&flagMode, "mode", "", "Projection mode: auto or manual")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	cur, err := s.tracker.Settings()
	if err != nil {
		return err
	}
	cur = withConfigDefaults(cur, s.cfg.Defaults)

	var next schedule.Settings
	if !anyChanged(cmd, setupFlagNames...) {
		next, err = runSetupForm(cur)
	} else {
		next, err = applySetupFlags(cmd, cur)
	}
	if err != nil {
		return err
	}

	modeChanged := next.ProjectionMode != cur.ProjectionMode
	if err := s.tracker.UpdateSettings(next); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  Settings saved.")
	if modeChanged {
		fmt.Printf("  Switched to %s mode; manual logs were rewritten.\n", next.ProjectionMode)
	}
	fmt.Println("  Run `interntrack status` to see your progress.")
	fmt.Println()
	return nil
}

var setupFlagNames = []string{
	"required", "clear-required", "hours-per-day", "start", "work-days", "exclude-holidays", "mode",
}

// withConfigDefaults fills unset goal fields from the config. Schedule
// fields only take config values while no start date is set.
func withConfigDefaults(st schedule.Settings, d config.DefaultsConfig) schedule.Settings {
	if st.RequiredHours == nil && d.RequiredHours != nil {
		st.RequiredHours = schedule.Hours(*d.RequiredHours)
	}
	if st.StartDate.IsZero() {
		if d.HoursPerDay > 0 {
			st.HoursPerDay = d.HoursPerDay
		}
		if len(d.WorkDays) > 0 {
			st.WorkDays = d.Weekdays()
		}
		st.ExcludeHolidays = st.ExcludeHolidays || d.ExcludeHolidays
	}
	return st
}

// applySetupFlags overlays the flags the user actually passed onto cur.
func applySetupFlags(cmd *cobra.Command, cur schedule.Settings) (schedule.Settings, error) {
	next := cur
	flags := cmd.Flags()

	if flags.Changed("required") {
		next.RequiredHours = schedule.Hours(flagRequired)
	}
	if flagClearRequired {
		next.RequiredHours = nil
	}
	if flags.Changed("hours-per-day") {
		next.HoursPerDay = flagHoursPerDay
	}
	if flags.Changed("start") {
		next.StartDate = calendar.Date{}
		if strings.TrimSpace(flagStart) != "" {
			d, err := calendar.ParseDate(flagStart)
			if err != nil {
				return cur, fmt.Errorf("--start: %w", err)
			}
			next.StartDate = d
		}
	}
	if flags.Changed("work-days") {
		days, err := cli.ParseWorkDays(flagWorkDays)
		if err != nil {
			return cur, fmt.Errorf("--work-days: %w", err)
		}
		next.WorkDays = days
	}
	if flags.Changed("exclude-holidays") {
		next.ExcludeHolidays = flagExcludeHolidays
	}
	if flags.Changed("mode") {
		m := schedule.Mode(strings.ToLower(flagMode))
		if !m.Valid() {
			return cur, fmt.Errorf("--mode: want auto or manual, got %q", flagMode)
		}
		next.ProjectionMode = m
	}
	return next, nil
}

// runSetupForm asks for every setting with a huh form prefilled from cur.
func runSetupForm(cur schedule.Settings) (schedule.Settings, error) {
	required := ""
	if cur.RequiredHours != nil {
		required = fmt.Sprintf("%g", *cur.RequiredHours)
	}
	hoursPerDay := fmt.Sprintf("%g", cur.HoursPerDay)
	start := cur.StartDate.String()
	workDays := make([]int, len(cur.WorkDays))
	for i, d := range cur.WorkDays {
		workDays[i] = int(d)
	}
	exclude := cur.ExcludeHolidays
	mode := string(cur.ProjectionMode)

	dayOptions := make([]huh.Option[int], 7)
	for i := range dayOptions {
		dayOptions[i] = huh.NewOption(time.Weekday(i).String(), i)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Required hours").Description("Leave empty if not decided yet").
				Value(&required).Validate(validateOptionalHours),
			huh.NewInput().Title("Hours per day").Value(&hoursPerDay).Validate(validateOptionalHours),
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(&start).Validate(validateOptionalDate),
		).Title("Goal"),
		huh.NewGroup(
			huh.NewMultiSelect[int]().Title("Work days").Options(dayOptions...).Value(&workDays),
			huh.NewConfirm().Title("Skip holidays").Value(&exclude),
			huh.NewSelect[string]().Title("Projection mode").
				Options(
					huh.NewOption("Auto", string(schedule.ModeAuto)),
					huh.NewOption("Manual", string(schedule.ModeManual)),
				).Value(&mode),
		).Title("Schedule"),
	)
	if err := form.Run(); err != nil {
		return cur, err
	}

	next := cur
	next.RequiredHours = nil
	if strings.TrimSpace(required) != "" {
		h, _ := parseHours(required)
		next.RequiredHours = schedule.Hours(h)
	}
	next.HoursPerDay, _ = parseHours(hoursPerDay)
	next.StartDate = calendar.Date{}
	if strings.TrimSpace(start) != "" {
		next.StartDate, _ = calendar.ParseDate(strings.TrimSpace(start))
	}
	next.WorkDays = make([]time.Weekday, len(workDays))
	for i, d := range workDays {
		next.WorkDays[i] = time.Weekday(d)
	}
	next.ExcludeHolidays = exclude
	next.ProjectionMode = schedule.Mode(mode)
	return next, nil
}
