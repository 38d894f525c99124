package schedule

import (
	"sort"

	"github.com/sadopc/interntrack/internal/calendar"
)

// Result bundles every value derived from one settings + manual-log snapshot.
type Result struct {
	Projected []LogEntry
	Active    []LogEntry
	Stats     Stats

	// EndDate is meaningful only when EndDateSet is true.
	EndDate    calendar.Date
	EndDateSet bool
}

// Compute runs the projector, reconciler, aggregator and end-date estimator
// over a single snapshot.
func Compute(s Settings, manual []LogEntry, holidays calendar.HolidayLookup, today calendar.Date) Result {
	mode := s.ProjectionMode
	if !mode.Valid() {
		mode = ModeAuto
	}

	r := Result{Projected: Project(s, holidays)}
	r.Active = Reconcile(r.Projected, manual, mode)
	r.Stats = Aggregate(r.Active, s)
	r.EndDate, r.EndDateSet = EstimateEndDate(s, holidays, r.Projected, r.Active, r.Stats, mode, today)
	return r
}

// ByMonth groups entries by their YYYY-MM key. Keys are returned in
// ascending order alongside the groups; entries keep their input order.
func ByMonth(logs []LogEntry) ([]string, map[string][]LogEntry) {
	groups := make(map[string][]LogEntry)
	var keys []string
	for _, l := range logs {
		k := l.Date.MonthKey()
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], l)
	}
	sort.Strings(keys)
	return keys, groups
}

// Worked filters logs down to Worked entries.
func Worked(logs []LogEntry) []LogEntry {
	var out []LogEntry
	for _, l := range logs {
		if l.Counted() {
			out = append(out, l)
		}
	}
	return out
}

// SpanDays returns the number of calendar days between the earliest and
// latest entries, or 0 with fewer than two entries.
func SpanDays(logs []LogEntry) int {
	if len(logs) < 2 {
		return 0
	}
	first, last := logs[0].Date, logs[0].Date
	for _, l := range logs[1:] {
		if l.Date.Before(first) {
			first = l.Date
		}
		if l.Date.After(last) {
			last = l.Date
		}
	}
	return first.DaysUntil(last)
}
