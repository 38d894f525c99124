package schedule

import (
	"sort"

	"github.com/sadopc/interntrack/internal/calendar"
)

// WeekTotal is the worked hours and days logged in one week.
type WeekTotal struct {
	Week  calendar.Week
	Hours float64
	Days  int
}

// WeeklyTotals sums Worked entries per Monday-based week, newest week first.
// Overtime is not included, matching what the check-in page displays.
func WeeklyTotals(active []LogEntry) []WeekTotal {
	byID := make(map[string]*WeekTotal)
	for _, l := range active {
		if !l.Counted() {
			continue
		}
		w := calendar.WeekOf(l.Date)
		wt, ok := byID[w.ID]
		if !ok {
			wt = &WeekTotal{Week: w}
			byID[w.ID] = wt
		}
		wt.Hours += l.Hours
		wt.Days++
	}

	out := make([]WeekTotal, 0, len(byID))
	for _, wt := range byID {
		out = append(out, *wt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Week.ID > out[j].Week.ID
	})
	return out
}

// ProjectHours sums Worked hours per project ID. Entries without a project
// are skipped.
func ProjectHours(active []LogEntry) map[string]float64 {
	out := make(map[string]float64)
	for _, l := range active {
		if !l.Counted() || l.ProjectID == "" {
			continue
		}
		out[l.ProjectID] += l.Hours
	}
	return out
}
