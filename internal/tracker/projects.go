package tracker

import (
	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/store"
)

// ProjectSummary pairs a project with the active hours logged against it.
type ProjectSummary struct {
	store.Project
	Hours float64
}

// Projects lists projects with the hours attributed to each from the
// active log set.
func (t *Tracker) Projects() ([]ProjectSummary, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ps, err := t.db.ListProjects()
	if err != nil {
		return nil, err
	}
	v, err := t.derive()
	if err != nil {
		return nil, err
	}
	hours := schedule.ProjectHours(v.Active)

	out := make([]ProjectSummary, len(ps))
	for i, p := range ps {
		out[i] = ProjectSummary{Project: p, Hours: hours[p.ID]}
	}
	return out, nil
}

// ProjectNames maps project IDs to names.
func (t *Tracker) ProjectNames() (map[string]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ps, err := t.db.ListProjects()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(ps))
	for _, p := range ps {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (t *Tracker) CreateProject(name, color, description string) (*store.Project, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.CreateProject(name, color, description)
}

func (t *Tracker) UpdateProject(id, name, color, description string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.UpdateProject(id, name, color, description)
}

func (t *Tracker) DeleteProject(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.DeleteProject(id)
}

func (t *Tracker) AddMilestone(projectID, title string, due calendar.Date) (*store.Milestone, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.AddMilestone(projectID, title, due)
}

func (t *Tracker) ToggleMilestone(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.ToggleMilestone(id)
}

func (t *Tracker) DeleteMilestone(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.DeleteMilestone(id)
}

