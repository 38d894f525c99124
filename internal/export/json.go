package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/store"
)

// BackupVersion is written to every backup. Versions 1.x (flat settings)
// and 2.x (nested settings, logs only) are still readable.
const BackupVersion = "3.0"

type Backup struct {
	Version    string              `json:"version"`
	ExportedAt time.Time           `json:"exportedAt"`
	Settings   schedule.Settings   `json:"settings"`
	Logs       []schedule.LogEntry `json:"logs"`
	Checkins   []store.Checkin     `json:"checkins"`
	Projects   []store.Project     `json:"projects"`
}

// NewBackup wraps a dataset for export. Empty collections are written as
// [] rather than null.
func NewBackup(d store.Dataset, now time.Time) Backup {
	b := Backup{
		Version:    BackupVersion,
		ExportedAt: now.UTC().Truncate(time.Second),
		Settings:   d.Settings,
		Logs:       d.Logs,
		Checkins:   d.Checkins,
		Projects:   d.Projects,
	}
	if b.Logs == nil {
		b.Logs = []schedule.LogEntry{}
	}
	if b.Checkins == nil {
		b.Checkins = []store.Checkin{}
	}
	if b.Projects == nil {
		b.Projects = []store.Project{}
	}
	if b.Settings.WorkDays == nil {
		b.Settings.WorkDays = []time.Weekday{}
	}
	for i := range b.Projects {
		if b.Projects[i].Milestones == nil {
			b.Projects[i].Milestones = []store.Milestone{}
		}
	}
	return b
}

func ToJSON(b Backup, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, b); err != nil {
		return err
	}
	return f.Close()
}

func WriteJSON(w io.Writer, b Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
