// Package cmd implements the interntrack CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/config"
	"github.com/sadopc/interntrack/internal/store"
	"github.com/sadopc/interntrack/internal/tracker"

	"github.com/spf13/cobra"
)

var (
	flagDB    string
	flagToday string
)

var rootCmd = &cobra.Command{
	Use:          "interntrack",
	Short:        "Internship hours tracker",
	Long:         "Track internship hours against a required total: projected schedule, manual logs, projects and weekly check-ins.",
	RunE:         runTUI,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config, then user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Override today's date (YYYY-MM-DD)")
	_ = rootCmd.PersistentFlags().MarkHidden("today")
}

// session is the shared state every command opens.
type session struct {
	cfg     config.Config
	db      *store.Store
	tracker *tracker.Tracker
}

func (s *session) Close() error {
	return s.db.Close()
}

// openSession loads the config, opens the database and builds a tracker
// over the 2026 holiday table.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path := flagDB
	if path == "" {
		path = cfg.General.DBPath
	}
	if path == "" {
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tr := tracker.New(db, calendar.Philippines2026)
	if flagToday != "" {
		today, err := calendar.ParseDate(flagToday)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("--today: %w", err)
		}
		tr.SetClock(func() time.Time { return today.Time() })
	}

	return &session{cfg: cfg, db: db, tracker: tr}, nil
}
