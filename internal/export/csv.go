package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/interntrack/internal/schedule"
)

var csvHeader = []string{"Date", "Day", "Hours", "Overtime", "Status", "Project", "Notes"}

// ToCSV writes logs to path. projects maps project IDs to names; IDs with
// no match are written as an empty project.
func ToCSV(logs []schedule.LogEntry, projects map[string]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, logs, projects); err != nil {
		return err
	}
	return f.Close()
}

func WriteCSV(out io.Writer, logs []schedule.LogEntry, projects map[string]string) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, l := range logs {
		row := []string{
			l.Date.String(),
			l.Date.Weekday().String(),
			formatHours(l.Hours),
			formatHours(l.Overtime),
			string(l.Status),
			projects[l.ProjectID],
			l.Note,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", l.Date, err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatHours(h float64) string {
	return humanize.Ftoa(h)
}
