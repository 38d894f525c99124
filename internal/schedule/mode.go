package schedule

import "github.com/sadopc/interntrack/internal/calendar"

// SwitchMode returns the manual collection that results from moving from
// one projection mode to another.
//
// Auto to manual replaces the manual collection with the projected entries
// dated on or before today, so past days become real records; future
// projected days are dropped. Manual to auto discards every manual entry.
// Both directions are lossy. Switching to the current mode leaves manual
// unchanged.
func SwitchMode(from, to Mode, projected, manual []LogEntry, today calendar.Date) []LogEntry {
	switch {
	case from == to:
		out := make([]LogEntry, len(manual))
		copy(out, manual)
		return out
	case to == ModeManual:
		var seeded []LogEntry
		for _, p := range projected {
			if p.Date.After(today) {
				continue
			}
			seeded = append(seeded, p)
		}
		SortLogs(seeded)
		return seeded
	default:
		return nil
	}
}
