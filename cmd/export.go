package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/interntrack/internal/export"

	"github.com/spf13/cobra"
)

var flagOutput string

// stdoutPath given to --output sends the export to standard output.
const stdoutPath = "-"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logs, a full backup or a printable report",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export active logs as CSV",
	RunE:  runExportCSV,
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export a full JSON backup",
	RunE:  runExportJSON,
}

var exportReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export an HTML progress report (print to PDF from a browser)",
	RunE:  runExportReport,
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file, or - for stdout (default interntrack-<date>.<ext> in the export dir)")
	exportCmd.AddCommand(exportCSVCmd, exportJSONCmd, exportReportCmd)
	rootCmd.AddCommand(exportCmd)
}

func outputPath(s *session, ext string, now time.Time) string {
	if flagOutput != "" {
		return flagOutput
	}
	return s.cfg.ExportPath(fmt.Sprintf("interntrack-%s.%s", now.Format("2006-01-02"), ext))
}

// writeExport runs write against stdout when path is "-", else against a
// newly created file at path.
func writeExport(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == stdoutPath {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}

// reportDone prints a confirmation unless the export went to stdout.
func reportDone(path, format string, args ...any) {
	if path == stdoutPath {
		return
	}
	fmt.Printf(format, args...)
}

func runExportCSV(_ *cobra.Command, _ []string) error {
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

	path := outputPath(s, "csv", s.tracker.Now())
	err = writeExport(path, os.Stdout, func(w io.Writer) error {
		return export.WriteCSV(w, v.Active, names)
	})
	if err != nil {
		return err
	}
	reportDone(path, "  Exported %d logs to %s\n", len(v.Active), path)
	return nil
}

func runExportJSON(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := s.tracker.Dump()
	if err != nil {
		return err
	}

	now := s.tracker.Now()
	path := outputPath(s, "json", now)
	err = writeExport(path, os.Stdout, func(w io.Writer) error {
		return export.WriteJSON(w, export.NewBackup(d, now))
	})
	if err != nil {
		return err
	}
	reportDone(path, "  Backed up %d logs, %d projects, %d check-ins to %s\n",
		len(d.Logs), len(d.Projects), len(d.Checkins), path)
	return nil
}

func runExportReport(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := s.tracker.Derive()
	if err != nil {
		return err
	}

	now := s.tracker.Now()
	path := outputPath(s, "html", now)
	err = writeExport(path, os.Stdout, func(w io.Writer) error {
		return export.WriteHTML(w, export.NewReport(v.Settings, v.Result, now))
	})
	if err != nil {
		return err
	}
	reportDone(path, "  Wrote report to %s\n", path)
	return nil
}
