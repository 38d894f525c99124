package schedule

import (
	"math"

	"github.com/sadopc/interntrack/internal/calendar"
)

// EstimateEndDate returns the calendar date on which the goal is or will be
// met. The second result is false when the settings are not configured yet
// (no start date, no required hours, or no hours per day), in which case no
// date is produced.
//
// In auto mode with a projection the answer is the last projected day.
// Otherwise it is the last Worked day when the goal is already reached, or
// the day found by walking forward from today over eligible days until
// enough of them have been counted to cover the remaining hours.
func EstimateEndDate(s Settings, holidays calendar.HolidayLookup, projected, active []LogEntry, st Stats, mode Mode, today calendar.Date) (calendar.Date, bool) {
	if !s.Configured() {
		return calendar.Date{}, false
	}

	if mode == ModeAuto && len(projected) > 0 {
		return projected[len(projected)-1].Date, true
	}

	if st.IsGoalReached {
		for i := len(active) - 1; i >= 0; i-- {
			if active[i].Counted() {
				return active[i].Date, true
			}
		}
	}

	need := int(math.Ceil(st.RemainingHours / s.HoursPerDay))
	return walkEligible(s, holidays, today, need), true
}

// walkEligible steps forward from (but not including) from and returns the
// day on which the n-th eligible day is reached. If the work days admit no
// eligible day, the walk gives up at the ProjectionYears bound and returns
// the bound.
func walkEligible(s Settings, holidays calendar.HolidayLookup, from calendar.Date, n int) calendar.Date {
	limit := from.AddYears(ProjectionYears)
	d := from
	for counted := 0; counted < n; {
		d = d.AddDays(1)
		if d.After(limit) {
			return limit
		}
		if _, ok := eligible(s, holidays, d); ok {
			counted++
		}
	}
	return d
}
