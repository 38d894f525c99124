package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/store"
)

// ErrInvalidBackup is returned for files that are not a readable backup.
var ErrInvalidBackup = errors.New("invalid backup")

// Settings assumed by flat (version 1) backups for missing fields.
const (
	v1RequiredHours = 500
	v1HoursPerDay   = 1
)

// ReadBackup loads and validates a backup file.
func ReadBackup(path string) (store.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Dataset{}, fmt.Errorf("read backup: %w", err)
	}
	return ParseBackup(data)
}

// ParseBackup decodes a backup in any supported version. Settings nested
// under "settings" are read as-is; otherwise settings are read from the top
// level with version 1 defaults for missing fields.
func ParseBackup(data []byte) (store.Dataset, error) {
	var top map[string]any
	if err := json.Unmarshal(data, &top); err != nil {
		return store.Dataset{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	fields, nested := top["settings"].(map[string]any)
	if !nested {
		fields = top
	}
	st, err := decodeSettings(fields, !nested)
	if err != nil {
		return store.Dataset{}, err
	}

	var body struct {
		Logs     []schedule.LogEntry `json:"logs"`
		Checkins []store.Checkin     `json:"checkins"`
		Projects []store.Project     `json:"projects"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return store.Dataset{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	for i := range body.Checkins {
		c := &body.Checkins[i]
		if c.ID == "" {
			return store.Dataset{}, fmt.Errorf("%w: check-in without id", ErrInvalidBackup)
		}
		c.Wins = store.NormalizeSlots(c.Wins)
		c.Challenges = store.NormalizeSlots(c.Challenges)
		c.Skills = store.NormalizeSlots(c.Skills)
		c.Goals = store.NormalizeSlots(c.Goals)
	}
	for i := range body.Projects {
		p := &body.Projects[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Color == "" {
			p.Color = store.DefaultProjectColor
		}
		for j := range p.Milestones {
			if p.Milestones[j].ID == "" {
				p.Milestones[j].ID = uuid.NewString()
			}
		}
	}

	return store.Dataset{
		Settings: st,
		Logs:     body.Logs,
		Checkins: body.Checkins,
		Projects: body.Projects,
	}, nil
}

func decodeSettings(f map[string]any, flat bool) (schedule.Settings, error) {
	st := schedule.DefaultSettings()
	if flat {
		st.RequiredHours = schedule.Hours(v1RequiredHours)
		st.HoursPerDay = v1HoursPerDay
		st.ProjectionMode = schedule.ModeManual
	}

	// Flat backups fall back to their defaults for missing or null fields.
	switch v, ok := f["requiredHours"]; {
	case !ok:
		if !flat {
			return st, fmt.Errorf("%w: requiredHours is missing", ErrInvalidBackup)
		}
	case v == nil:
		if !flat {
			st.RequiredHours = nil
		}
	default:
		n, isNum := v.(float64)
		if !isNum {
			return st, fmt.Errorf("%w: requiredHours must be a number", ErrInvalidBackup)
		}
		st.RequiredHours = schedule.Hours(n)
	}

	switch v, ok := f["hoursPerDay"]; {
	case !ok:
		if !flat {
			return st, fmt.Errorf("%w: hoursPerDay is missing", ErrInvalidBackup)
		}
	case v == nil && flat:
	default:
		n, isNum := v.(float64)
		if !isNum {
			return st, fmt.Errorf("%w: hoursPerDay must be a number", ErrInvalidBackup)
		}
		st.HoursPerDay = n
	}

	if v, ok := f["startDate"]; ok && v != nil {
		s, isStr := v.(string)
		if !isStr {
			return st, fmt.Errorf("%w: startDate must be a string", ErrInvalidBackup)
		}
		if s != "" {
			d, err := calendar.ParseDate(s)
			if err != nil {
				return st, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
			}
			st.StartDate = d
		}
	}

	if v, ok := f["workDays"]; ok && v != nil {
		list, isList := v.([]any)
		if !isList {
			return st, fmt.Errorf("%w: workDays must be a list", ErrInvalidBackup)
		}
		st.WorkDays = make([]time.Weekday, 0, len(list))
		for _, item := range list {
			n, isNum := item.(float64)
			if !isNum || n != math.Trunc(n) || n < 0 || n > 6 {
				return st, fmt.Errorf("%w: workDays entry %v is not a weekday", ErrInvalidBackup, item)
			}
			st.WorkDays = append(st.WorkDays, time.Weekday(int(n)))
		}
	}

	if v, ok := f["excludeHolidays"]; ok && v != nil {
		b, isBool := v.(bool)
		if !isBool {
			return st, fmt.Errorf("%w: excludeHolidays must be a boolean", ErrInvalidBackup)
		}
		st.ExcludeHolidays = b
	}

	if v, ok := f["projectionMode"]; ok && v != nil {
		s, _ := v.(string)
		m := schedule.Mode(s)
		if !m.Valid() {
			return st, fmt.Errorf("%w: unknown projectionMode %v", ErrInvalidBackup, v)
		}
		st.ProjectionMode = m
	}

	return st, nil
}
