// Package tracker coordinates the store and the schedule engine. All
// writes go through a single lock so every derived view reflects one
// consistent settings + logs snapshot.
package tracker

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/store"
)

// ErrInvalidLog is returned when a log entry fails validation.
var ErrInvalidLog = errors.New("invalid log entry")

// ErrInvalidSettings is returned when settings fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

type Tracker struct {
	mu       sync.RWMutex
	db       *store.Store
	holidays calendar.HolidayLookup
	clock    func() time.Time
}

func New(db *store.Store, holidays calendar.HolidayLookup) *Tracker {
	return &Tracker{
		db:       db,
		holidays: holidays,
		clock:    time.Now,
	}
}

// SetClock overrides the source of "today".
func (t *Tracker) SetClock(clock func() time.Time) {
	t.mu.Lock()
	t.clock = clock
	t.mu.Unlock()
}

func (t *Tracker) Today() calendar.Date {
	return calendar.DateOf(t.Now())
}

// Now reads the tracker clock. Export timestamps and file names use it so
// a pinned clock gives reproducible output.
func (t *Tracker) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.clock()
}

func (t *Tracker) Holidays() calendar.HolidayLookup { return t.holidays }

// View is everything the interface shows, derived from one snapshot.
type View struct {
	Settings schedule.Settings
	Manual   []schedule.LogEntry
	Today    calendar.Date
	schedule.Result
}

// Derive reads settings and manual logs and recomputes every derived value.
func (t *Tracker) Derive() (View, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.derive()
}

func (t *Tracker) derive() (View, error) {
	st, err := t.db.GetSettings()
	if err != nil {
		return View{}, fmt.Errorf("derive: %w", err)
	}
	manual, err := t.db.ListLogs()
	if err != nil {
		return View{}, fmt.Errorf("derive: %w", err)
	}
	today := calendar.DateOf(t.clock())
	return View{
		Settings: st,
		Manual:   manual,
		Today:    today,
		Result:   schedule.Compute(st, manual, t.holidays, today),
	}, nil
}

// ValidateLog checks a log entry before it is stored.
func ValidateLog(e schedule.LogEntry) error {
	switch {
	case e.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidLog)
	case !e.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidLog, e.Status)
	case e.Hours < 0 || e.Overtime < 0:
		return fmt.Errorf("%w: hours must not be negative", ErrInvalidLog)
	}
	return nil
}

// SaveLog creates or replaces the manual log for e.Date.
func (t *Tracker) SaveLog(e schedule.LogEntry) error {
	if err := ValidateLog(e); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.UpsertLog(e)
}

// ManualLog returns the manual log stored for d, if any.
func (t *Tracker) ManualLog(d calendar.Date) (schedule.LogEntry, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, err := t.db.GetLog(d)
	if errors.Is(err, store.ErrNotFound) {
		return schedule.LogEntry{}, false, nil
	}
	if err != nil {
		return schedule.LogEntry{}, false, err
	}
	return e, true, nil
}

// DeleteLog removes the manual log for d. In auto mode the projected entry
// for d, if any, shows again.
func (t *Tracker) DeleteLog(d calendar.Date) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.DeleteLog(d)
}

// ValidateSettings checks user-entered settings.
func ValidateSettings(s schedule.Settings) error {
	switch {
	case s.RequiredHours != nil && *s.RequiredHours < 0:
		return fmt.Errorf("%w: required hours must not be negative", ErrInvalidSettings)
	case s.HoursPerDay < 0:
		return fmt.Errorf("%w: hours per day must not be negative", ErrInvalidSettings)
	case !s.ProjectionMode.Valid():
		return fmt.Errorf("%w: unknown projection mode %q", ErrInvalidSettings, s.ProjectionMode)
	}
	for _, d := range s.WorkDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidSettings, d)
		}
	}
	return nil
}

// UpdateSettings stores next. When the projection mode changes, the
// manual collection is rewritten in the same transaction: switching to
// manual seeds it from the projected days up to today, switching to auto
// clears it.
func (t *Tracker) UpdateSettings(next schedule.Settings) error {
	if err := ValidateSettings(next); err != nil {
		return err
	}
	next.WorkDays = normalizeWeekdays(next.WorkDays)

	t.mu.Lock()
	defer t.mu.Unlock()

	cur, err := t.db.GetSettings()
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if cur.ProjectionMode == next.ProjectionMode {
		return t.db.SaveSettings(next)
	}

	manual, err := t.db.ListLogs()
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	projected := schedule.Project(next, t.holidays)
	today := calendar.DateOf(t.clock())
	seeded := schedule.SwitchMode(cur.ProjectionMode, next.ProjectionMode, projected, manual, today)
	return t.db.SaveSettingsAndLogs(next, seeded)
}

// SetMode switches the projection mode, keeping the other settings.
func (t *Tracker) SetMode(m schedule.Mode) error {
	st, err := t.Settings()
	if err != nil {
		return err
	}
	st.ProjectionMode = m
	return t.UpdateSettings(st)
}

func (t *Tracker) Settings() (schedule.Settings, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.db.GetSettings()
}

func normalizeWeekdays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	var out []time.Weekday
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Dump returns the full persisted state for backup.
func (t *Tracker) Dump() (store.Dataset, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.db.Dump()
}

// Restore replaces all state with d.
func (t *Tracker) Restore(d store.Dataset) error {
	if err := ValidateSettings(d.Settings); err != nil {
		return err
	}
	for _, e := range d.Logs {
		if err := ValidateLog(e); err != nil {
			return fmt.Errorf("restore %s: %w", e.Date, err)
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.Restore(d)
}
