package cmd

import (
	"fmt"

	"github.com/sadopc/interntrack/internal/cli"
	"github.com/sadopc/interntrack/internal/config"
	"github.com/sadopc/interntrack/internal/store"

	"github.com/spf13/cobra"
)

var flagConfigInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write a config file with the defaults if none exists")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigInit && !config.Exists() {
		if err := config.Save(config.DefaultConfig()); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("  Wrote %s\n\n", config.ConfigPath())
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dbPath := flagDB
	if dbPath == "" {
		dbPath = cfg.General.DBPath
	}
	if dbPath == "" {
		dbPath, _ = store.DefaultDBPath()
	}
	exportDir := cfg.General.ExportDir
	if exportDir == "" {
		exportDir = "current directory"
	}

	fmt.Println("  [General]")
	fmt.Printf("    Database:   %s\n", dbPath)
	fmt.Printf("    Export dir: %s\n", exportDir)
	fmt.Println()

	fmt.Println("  [Defaults]")
	if cfg.Defaults.RequiredHours != nil {
		fmt.Printf("    Required hours:   %s\n", cli.FormatHours(*cfg.Defaults.RequiredHours))
	} else {
		fmt.Println("    Required hours:   not set")
	}
	fmt.Printf("    Hours per day:    %s\n", cli.FormatHours(cfg.Defaults.HoursPerDay))
	fmt.Printf("    Work days:        %s\n", cli.FormatWorkDays(cfg.Defaults.Weekdays()))
	fmt.Printf("    Exclude holidays: %v\n", cfg.Defaults.ExcludeHolidays)
	fmt.Println()

	fmt.Println("  Defaults seed `interntrack setup` until a start date is set.")
	return nil
}
