package schedule

import "math"

// Stats summarizes progress of an active log set toward the goal.
type Stats struct {
	CompletedHours  float64 `json:"completedHours"`
	RemainingHours  float64 `json:"remainingHours"`
	ExtraHours      float64 `json:"extraHours"`
	ProgressPercent float64 `json:"progressPercent"`
	WorkedDays      int     `json:"workedDays"`
	DaysRequired    int     `json:"daysRequired"`
	IsGoalReached   bool    `json:"isGoalReached"`
}

// Aggregate reduces the active logs to progress statistics. Only Worked
// entries count, with their overtime. ProgressPercent is clamped to 100 and
// RemainingHours never goes below zero.
func Aggregate(active []LogEntry, s Settings) Stats {
	var st Stats
	for _, l := range active {
		if !l.Counted() {
			continue
		}
		st.CompletedHours += l.Total()
		st.WorkedDays++
	}

	required := s.Required()
	st.IsGoalReached = required > 0 && st.CompletedHours >= required

	if st.IsGoalReached {
		st.ExtraHours = st.CompletedHours - required
	} else {
		st.RemainingHours = math.Max(required-st.CompletedHours, 0)
	}

	if required > 0 {
		st.ProgressPercent = math.Min(100, st.CompletedHours/required*100)
	}

	if s.HoursPerDay > 0 {
		st.DaysRequired = int(math.Ceil(st.RemainingHours / s.HoursPerDay))
	}
	return st
}
