package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
)

const logColumns = `date, hours, overtime, status, note, project_id`

// ListLogs returns every manual log in ascending date order.
func (s *Store) ListLogs() ([]schedule.LogEntry, error) {
	return listLogs(s.db)
}

func listLogs(q queryer) ([]schedule.LogEntry, error) {
	rows, err := q.Query(`SELECT ` + logColumns + ` FROM logs ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []schedule.LogEntry
	for rows.Next() {
		e, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}

func (s *Store) GetLog(d calendar.Date) (schedule.LogEntry, error) {
	row := s.db.QueryRow(`SELECT `+logColumns+` FROM logs WHERE date = ?`, d.String())
	e, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.LogEntry{}, fmt.Errorf("get log %s: %w", d, ErrNotFound)
	}
	if err != nil {
		return schedule.LogEntry{}, fmt.Errorf("get log %s: %w", d, err)
	}
	return e, nil
}

// UpsertLog inserts or replaces the manual log for e.Date.
func (s *Store) UpsertLog(e schedule.LogEntry) error {
	return upsertLog(s.db, e)
}

func upsertLog(q queryer, e schedule.LogEntry) error {
	_, err := q.Exec(
		`INSERT INTO logs (`+logColumns+`, updated_at) VALUES (?, ?, ?, ?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		ON CONFLICT(date) DO UPDATE SET
			hours = excluded.hours,
			overtime = excluded.overtime,
			status = excluded.status,
			note = excluded.note,
			project_id = excluded.project_id,
			updated_at = excluded.updated_at`,
		e.Date.String(), e.Hours, e.Overtime, string(e.Status), e.Note, e.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("upsert log %s: %w", e.Date, err)
	}
	return nil
}

// DeleteLog removes the manual log for d. Deleting a missing date is not
// an error.
func (s *Store) DeleteLog(d calendar.Date) error {
	_, err := s.db.Exec(`DELETE FROM logs WHERE date = ?`, d.String())
	if err != nil {
		return fmt.Errorf("delete log %s: %w", d, err)
	}
	return nil
}

func replaceLogs(q queryer, logs []schedule.LogEntry) error {
	if _, err := q.Exec(`DELETE FROM logs`); err != nil {
		return fmt.Errorf("clear logs: %w", err)
	}
	for _, e := range logs {
		if err := upsertLog(q, e); err != nil {
			return err
		}
	}
	return nil
}

// SaveSettingsAndLogs writes settings and replaces the manual collection
// atomically. Used when switching projection mode.
func (s *Store) SaveSettingsAndLogs(st schedule.Settings, logs []schedule.LogEntry) error {
	return s.withTx(func(tx *sql.Tx) error {
		if err := saveSettings(tx, st); err != nil {
			return err
		}
		return replaceLogs(tx, logs)
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLog(sc scanner) (schedule.LogEntry, error) {
	var e schedule.LogEntry
	var date, status string
	if err := sc.Scan(&date, &e.Hours, &e.Overtime, &status, &e.Note, &e.ProjectID); err != nil {
		return e, err
	}
	d, err := calendar.ParseDate(date)
	if err != nil {
		return e, err
	}
	e.Date = d
	e.Status = schedule.LogStatus(status)
	return e, nil
}
