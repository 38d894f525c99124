package tracker

import (
	"errors"
	"sort"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/store"
)

// WeekSummary is one week that has worked logs, with its check-in if any.
type WeekSummary struct {
	schedule.WeekTotal
	Checkin *store.Checkin
}

// Weeks lists weeks with worked hours in the active log set, newest first,
// plus weeks that only have a check-in.
func (t *Tracker) Weeks() ([]WeekSummary, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, err := t.derive()
	if err != nil {
		return nil, err
	}
	checkins, err := t.db.ListCheckins()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*store.Checkin, len(checkins))
	for i := range checkins {
		byID[checkins[i].ID] = &checkins[i]
	}

	var out []WeekSummary
	seen := make(map[string]bool)
	for _, w := range schedule.WeeklyTotals(v.Active) {
		out = append(out, WeekSummary{WeekTotal: w, Checkin: byID[w.Week.ID]})
		seen[w.Week.ID] = true
	}
	for i := range checkins {
		c := &checkins[i]
		if seen[c.ID] {
			continue
		}
		out = append(out, WeekSummary{
			WeekTotal: schedule.WeekTotal{Week: calendar.Week{ID: c.ID, Label: c.WeekLabel}},
			Checkin:   c,
		})
	}
	sortWeeks(out)
	return out, nil
}

func sortWeeks(ws []WeekSummary) {
	sort.Slice(ws, func(i, j int) bool { return ws[i].Week.ID > ws[j].Week.ID })
}

// Checkin returns the check-in for a week, or a blank one carrying the
// week's ID and label when none is stored yet.
func (t *Tracker) Checkin(w calendar.Week) (store.Checkin, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c, err := t.db.GetCheckin(w.ID)
	if errors.Is(err, store.ErrNotFound) {
		return store.Checkin{
			ID:         w.ID,
			WeekLabel:  w.Label,
			Wins:       store.NormalizeSlots(nil),
			Challenges: store.NormalizeSlots(nil),
			Skills:     store.NormalizeSlots(nil),
			Goals:      store.NormalizeSlots(nil),
		}, nil
	}
	if err != nil {
		return store.Checkin{}, err
	}
	return *c, nil
}

func (t *Tracker) SaveCheckin(c store.Checkin) (*store.Checkin, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.SaveCheckin(c)
}

func (t *Tracker) DeleteCheckin(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.DeleteCheckin(id)
}

func (t *Tracker) Checkins() ([]store.Checkin, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.db.ListCheckins()
}
