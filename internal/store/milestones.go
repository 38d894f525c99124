package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/interntrack/internal/calendar"
)

// AddMilestone appends a milestone to the end of a project's list.
func (s *Store) AddMilestone(projectID, title string, due calendar.Date) (*Milestone, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("add milestone: %w", ErrEmptyName)
	}
	if _, err := s.GetProject(projectID); err != nil {
		return nil, fmt.Errorf("add milestone: %w", err)
	}

	var pos int
	err := s.db.QueryRow(
		`SELECT COALESCE(MAX(position), -1) + 1 FROM milestones WHERE project_id = ?`, projectID,
	).Scan(&pos)
	if err != nil {
		return nil, fmt.Errorf("next milestone position: %w", err)
	}

	m := Milestone{ID: uuid.NewString(), ProjectID: projectID, Title: title, DueDate: due}
	if err := insertMilestone(s.db, m, pos); err != nil {
		return nil, err
	}
	return &m, nil
}

func insertMilestone(q queryer, m Milestone, pos int) error {
	done := 0
	if m.Done {
		done = 1
	}
	_, err := q.Exec(
		`INSERT INTO milestones (id, project_id, title, due_date, done, position) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProjectID, m.Title, m.DueDate.String(), done, pos,
	)
	if err != nil {
		return fmt.Errorf("insert milestone: %w", err)
	}
	return nil
}

func listMilestones(q queryer, projectID string) ([]Milestone, error) {
	rows, err := q.Query(
		`SELECT id, project_id, title, due_date, done FROM milestones WHERE project_id = ? ORDER BY position`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()

	var ms []Milestone
	for rows.Next() {
		var m Milestone
		var due string
		var done int
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Title, &due, &done); err != nil {
			return nil, err
		}
		if due != "" {
			if m.DueDate, err = calendar.ParseDate(due); err != nil {
				return nil, fmt.Errorf("milestone %s due date: %w", m.ID, err)
			}
		}
		m.Done = done == 1
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

// ToggleMilestone flips the done flag.
func (s *Store) ToggleMilestone(id string) error {
	res, err := s.db.Exec(`UPDATE milestones SET done = 1 - done WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("toggle milestone %s: %w", id, err)
	}
	return requireRow(res, "toggle milestone "+id)
}

func (s *Store) DeleteMilestone(id string) error {
	res, err := s.db.Exec(`DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete milestone %s: %w", id, err)
	}
	return requireRow(res, "delete milestone "+id)
}
