package cmd

import (
	"fmt"

	"github.com/sadopc/interntrack/internal/cli"
	"github.com/sadopc/interntrack/internal/tracker"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progress toward the required hours",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := s.tracker.Derive()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("INTERNSHIP PROGRESS"))
	fmt.Println()
	fmt.Print(cli.RenderKV(statusPairs(v)))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderProgressBar(v.Stats.ProgressPercent, 40))
	fmt.Println()

	if !v.Settings.Configured() {
		fmt.Println("  " + cli.RenderWarning("Run `interntrack setup` to set a start date and required hours."))
		fmt.Println()
	}
	return nil
}

func statusPairs(v tracker.View) [][2]string {
	st := v.Stats
	required := "not set"
	if v.Settings.RequiredHours != nil {
		required = cli.FormatHours(*v.Settings.RequiredHours)
	}

	pairs := [][2]string{
		{"Today", cli.FormatDate(v.Today)},
		{"Mode", string(v.Settings.ProjectionMode)},
		{"Required", required},
		{"Completed", cli.FormatHours(st.CompletedHours)},
	}
	if st.IsGoalReached {
		pairs = append(pairs, [2]string{"Extra", "+" + cli.FormatHours(st.ExtraHours)})
	} else {
		pairs = append(pairs, [2]string{"Remaining", cli.FormatHours(st.RemainingHours)})
	}
	pairs = append(pairs,
		[2]string{"Worked days", fmt.Sprintf("%d", st.WorkedDays)},
		[2]string{"Days to go", fmt.Sprintf("%d", st.DaysRequired)},
		[2]string{"Start date", cli.FormatDate(v.Settings.StartDate)},
		[2]string{"Estimated end", cli.FormatEndDate(v.EndDate, v.EndDateSet)},
	)
	return pairs
}
