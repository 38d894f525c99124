package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultProjectColor is used when a project is created without a color.
const DefaultProjectColor = "#6C63FF"

// ErrEmptyName is returned when a project or milestone has a blank name.
var ErrEmptyName = errors.New("name is required")

func (s *Store) CreateProject(name, color, description string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create project: %w", ErrEmptyName)
	}
	if color == "" {
		color = DefaultProjectColor
	}
	p := Project{
		ID:          uuid.NewString(),
		Name:        name,
		Color:       color,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := insertProject(s.db, p); err != nil {
		return nil, err
	}
	return s.GetProject(p.ID)
}

func insertProject(q queryer, p Project) error {
	_, err := q.Exec(
		`INSERT INTO projects (id, name, color, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Color, p.Description, formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetProject returns the project with its milestones.
func (s *Store) GetProject(id string) (*Project, error) {
	p := &Project{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, name, color, description, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Color, &p.Description, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	p.CreatedAt = parseTime(createdAt)

	ms, err := listMilestones(s.db, id)
	if err != nil {
		return nil, err
	}
	p.Milestones = ms
	return p, nil
}

// ListProjects returns every project, oldest first, with milestones.
func (s *Store) ListProjects() ([]Project, error) {
	return listProjects(s.db)
}

func listProjects(q queryer) ([]Project, error) {
	rows, err := q.Query(`SELECT id, name, color, description, created_at FROM projects ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var projects []Project
	for rows.Next() {
		var p Project
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.Description, &createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt)
		projects = append(projects, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Milestones are loaded after the cursor closes; the pool holds one
	// connection.
	for i := range projects {
		ms, err := listMilestones(q, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Milestones = ms
	}
	return projects, nil
}

func (s *Store) UpdateProject(id, name, color, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("update project: %w", ErrEmptyName)
	}
	res, err := s.db.Exec(
		`UPDATE projects SET name = ?, color = ?, description = ? WHERE id = ?`,
		name, color, strings.TrimSpace(description), id,
	)
	if err != nil {
		return fmt.Errorf("update project %s: %w", id, err)
	}
	return requireRow(res, "update project "+id)
}

// DeleteProject removes the project and its milestones. Logs referencing
// the project keep their project ID.
func (s *Store) DeleteProject(id string) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return requireRow(res, "delete project "+id)
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
