package cmd

import (
	"fmt"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/cli"

	"github.com/spf13/cobra"
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List the holidays the schedule knows about",
	RunE:  runHolidays,
}

func init() {
	rootCmd.AddCommand(holidaysCmd)
}

func runHolidays(_ *cobra.Command, _ []string) error {
	var rows [][]string
	for _, h := range calendar.Philippines2026.All() {
		rows = append(rows, []string{
			h.Date.String(),
			cli.FormatDayOfWeek(h.Date.Weekday()),
			h.Name,
			h.Kind.Label(),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Holidays (%d)", len(rows)),
		Headers: []string{"Date", "Day", "Holiday", "Kind"},
		Rows:    rows,
	}))
	return nil
}
