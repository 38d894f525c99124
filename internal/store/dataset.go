package store

import (
	"database/sql"
	"fmt"
)

// Dump reads the full persisted state inside one read transaction.
func (s *Store) Dump() (Dataset, error) {
	var d Dataset
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		if d.Settings, err = getSettings(tx); err != nil {
			return err
		}
		if d.Logs, err = listLogs(tx); err != nil {
			return err
		}
		if d.Checkins, err = listCheckins(tx); err != nil {
			return err
		}
		d.Projects, err = listProjects(tx)
		return err
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("dump: %w", err)
	}
	return d, nil
}

// Restore replaces all settings, logs, check-ins and projects with d.
// Nothing is written unless every row succeeds.
func (s *Store) Restore(d Dataset) error {
	err := s.withTx(func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM logs`,
			`DELETE FROM checkins`,
			`DELETE FROM milestones`,
			`DELETE FROM projects`,
		} {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		if err := saveSettings(tx, d.Settings); err != nil {
			return err
		}
		if err := replaceLogs(tx, d.Logs); err != nil {
			return err
		}
		for _, c := range d.Checkins {
			if err := upsertCheckin(tx, c); err != nil {
				return err
			}
		}
		for _, p := range d.Projects {
			if err := insertProject(tx, p); err != nil {
				return err
			}
			for i, m := range p.Milestones {
				m.ProjectID = p.ID
				if err := insertMilestone(tx, m, i); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}
