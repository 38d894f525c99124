package schedule

// Reconcile builds the active log set. In manual mode it is the manual
// collection alone; in auto mode manual entries replace projected entries on
// the same date and are appended otherwise. The result is sorted by date and
// never aliases either input.
func Reconcile(projected, manual []LogEntry, mode Mode) []LogEntry {
	if mode == ModeManual {
		out := make([]LogEntry, len(manual))
		copy(out, manual)
		SortLogs(out)
		return out
	}

	out := make([]LogEntry, 0, len(projected)+len(manual))
	index := make(map[string]int, len(projected))
	for _, p := range projected {
		index[p.Date.String()] = len(out)
		out = append(out, p)
	}
	for _, m := range manual {
		if i, ok := index[m.Date.String()]; ok {
			out[i] = m
			continue
		}
		index[m.Date.String()] = len(out)
		out = append(out, m)
	}
	SortLogs(out)
	return out
}
