package cmd

import (
	"fmt"

	"github.com/sadopc/interntrack/internal/export"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore FILE",
	Short: "Replace all data with a JSON backup",
	Long:  "Replace all data with a JSON backup. Backups from every version are accepted; an invalid file leaves the current data untouched.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(_ *cobra.Command, args []string) error {
	d, err := export.ReadBackup(args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tracker.Restore(d); err != nil {
		return err
	}
	fmt.Printf("  Restored %d logs, %d projects, %d check-ins (%s mode)\n",
		len(d.Logs), len(d.Projects), len(d.Checkins), d.Settings.ProjectionMode)
	return nil
}
