package schedule

import "github.com/sadopc/interntrack/internal/calendar"

// ProjectionYears bounds how far past the start date a projection or an
// end-date walk may run.
const ProjectionYears = 5

// eligible reports whether d is a day the schedule would place work on, and
// returns the holiday on d when there is one. A date outside the work days is
// ineligible regardless of holidays.
func eligible(s Settings, holidays calendar.HolidayLookup, d calendar.Date) (calendar.Holiday, bool) {
	if !s.WorksOn(d.Weekday()) {
		return calendar.Holiday{}, false
	}
	h, isHoliday := holidays.Lookup(d)
	if isHoliday && s.ExcludeHolidays {
		return h, false
	}
	return h, true
}

// Project generates the auto-projected schedule: one Worked entry of
// HoursPerDay for every eligible day from StartDate until the running total
// reaches RequiredHours. It returns nil when the settings are incomplete,
// and stops early without error if no eligible day turns up within
// ProjectionYears of the start.
func Project(s Settings, holidays calendar.HolidayLookup) []LogEntry {
	if !s.Configured() {
		return nil
	}

	required := s.Required()
	limit := s.StartDate.AddYears(ProjectionYears)

	var (
		out   []LogEntry
		total float64
	)
	for d := s.StartDate; total < required && !d.After(limit); d = d.AddDays(1) {
		h, ok := eligible(s, holidays, d)
		if !ok {
			continue
		}
		out = append(out, LogEntry{
			Date:   d,
			Hours:  s.HoursPerDay,
			Status: StatusWorked,
			Note:   h.Name,
		})
		total += s.HoursPerDay
	}
	return out
}
