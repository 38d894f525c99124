// Package schedule projects a work schedule from settings, reconciles it with
// manually entered logs, and derives progress toward a required-hours goal.
// Everything here is a pure function of its inputs.
package schedule

import (
	"sort"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
)

// Mode selects how the active log set is built.
type Mode string

const (
	// ModeAuto overlays manual logs on the projected schedule.
	ModeAuto Mode = "auto"
	// ModeManual uses manual logs only.
	ModeManual Mode = "manual"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeAuto || m == ModeManual }

// LogStatus is the kind of day a log entry records.
type LogStatus string

const (
	StatusWorked  LogStatus = "Worked"
	StatusAbsent  LogStatus = "Absent"
	StatusDayOff  LogStatus = "Day Off"
	StatusHoliday LogStatus = "Holiday"
)

// Statuses lists every log status in display order.
var Statuses = []LogStatus{StatusWorked, StatusAbsent, StatusDayOff, StatusHoliday}

// Valid reports whether s is a known status.
func (s LogStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// LogEntry is one day of a log collection. Dates are unique within a
// collection.
type LogEntry struct {
	Date      calendar.Date `json:"date"`
	Hours     float64       `json:"hours"`
	Overtime  float64       `json:"overtime"`
	Status    LogStatus     `json:"status"`
	Note      string        `json:"note"`
	ProjectID string        `json:"projectId,omitempty"`
}

// Counted reports whether the entry contributes to completed hours.
func (e LogEntry) Counted() bool { return e.Status == StatusWorked }

// Total returns hours plus overtime.
func (e LogEntry) Total() float64 { return e.Hours + e.Overtime }

// Settings configures the projected schedule and the goal.
type Settings struct {
	RequiredHours   *float64       `json:"requiredHours"`
	HoursPerDay     float64        `json:"hoursPerDay"`
	StartDate       calendar.Date  `json:"startDate"`
	WorkDays        []time.Weekday `json:"workDays"`
	ExcludeHolidays bool           `json:"excludeHolidays"`
	ProjectionMode  Mode           `json:"projectionMode"`
}

// DefaultSettings returns settings for a Monday-to-Friday, 8-hour schedule
// in auto mode with no goal or start date yet.
func DefaultSettings() Settings {
	return Settings{
		HoursPerDay: 8,
		WorkDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		ProjectionMode: ModeAuto,
	}
}

// Hours returns a pointer to h, for filling Settings.RequiredHours.
func Hours(h float64) *float64 { return &h }

// Required returns the required hours, or 0 when unset.
func (s Settings) Required() float64 {
	if s.RequiredHours == nil {
		return 0
	}
	return *s.RequiredHours
}

// Configured reports whether the settings are complete enough to project a
// schedule: start date set, hours per day positive, and required hours
// positive.
func (s Settings) Configured() bool {
	return !s.StartDate.IsZero() && s.HoursPerDay > 0 && s.Required() > 0
}

// WorksOn reports whether wd is one of the configured work days.
func (s Settings) WorksOn(wd time.Weekday) bool {
	for _, d := range s.WorkDays {
		if d == wd {
			return true
		}
	}
	return false
}

// SortLogs sorts entries by date in ascending order.
func SortLogs(logs []LogEntry) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
}

// FindLog returns the entry for d, if present.
func FindLog(logs []LogEntry, d calendar.Date) (LogEntry, bool) {
	for _, l := range logs {
		if l.Date.Equal(d) {
			return l, true
		}
	}
	return LogEntry{}, false
}
