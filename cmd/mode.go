package cmd

import (
	"fmt"
	"strings"

	"github.com/sadopc/interntrack/internal/cli"
	"github.com/sadopc/interntrack/internal/schedule"

	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:       "mode [auto|manual]",
	Short:     "Show or switch the projection mode",
	Long:      "Show or switch the projection mode. Switching to manual copies the projected days up to today into manual logs; switching to auto clears all manual logs.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(schedule.ModeAuto), string(schedule.ModeManual)},
	RunE:      runMode,
}

func init() {
	rootCmd.AddCommand(modeCmd)
}

func runMode(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	cur, err := s.tracker.Settings()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Printf("  Projection mode: %s\n", cur.ProjectionMode)
		return nil
	}

	m := schedule.Mode(strings.ToLower(args[0]))
	if !m.Valid() {
		return fmt.Errorf("unknown mode %q (want auto or manual)", args[0])
	}
	if m == cur.ProjectionMode {
		fmt.Printf("  Already in %s mode.\n", m)
		return nil
	}

	if err := s.tracker.SetMode(m); err != nil {
		return err
	}
	v, err := s.tracker.Derive()
	if err != nil {
		return err
	}

	fmt.Printf("  Switched to %s mode.\n", m)
	if m == schedule.ModeManual {
		fmt.Printf("  Seeded %d manual logs from the projected schedule.\n", len(v.Manual))
	} else {
		fmt.Println("  " + cli.RenderWarning("Manual logs were cleared."))
	}
	return nil
}
