// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/interntrack/internal/calendar"
)

// FormatHours formats an hour count without trailing zeros.
// e.g., 8 -> "8h", 7.5 -> "7.5h", 1234.25 -> "1,234.25h"
func FormatHours(h float64) string {
	if h >= 1000 || h <= -1000 {
		return humanize.CommafWithDigits(h, 2) + "h"
	}
	return humanize.FtoaWithDigits(h, 2) + "h"
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatDate formats a date as "Feb 16, 2026", or "-" when unset.
func FormatDate(d calendar.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("Jan 2, 2006")
}

// FormatEndDate formats an estimated end date, with a prompt when the
// schedule is not configured enough to estimate one.
func FormatEndDate(d calendar.Date, ok bool) string {
	if !ok {
		return "Set start date & hours"
	}
	return FormatDate(d)
}

// FormatDayOfWeek returns a 3-letter day abbreviation.
func FormatDayOfWeek(wd time.Weekday) string {
	if wd < time.Sunday || wd > time.Saturday {
		return "???"
	}
	return wd.String()[:3]
}

// FormatWorkDays renders weekdays as "Mon, Tue, Wed".
func FormatWorkDays(days []time.Weekday) string {
	if len(days) == 0 {
		return "none"
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = FormatDayOfWeek(d)
	}
	return strings.Join(parts, ", ")
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// ParseWorkDays parses a comma-separated weekday list. Entries may be
// numbers (0 = Sunday) or names of at least three letters.
func ParseWorkDays(s string) ([]time.Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []time.Weekday
	for _, part := range strings.Split(s, ",") {
		p := strings.ToLower(strings.TrimSpace(part))
		if n, err := strconv.Atoi(p); err == nil {
			if n < 0 || n > 6 {
				return nil, fmt.Errorf("weekday %d out of range 0-6", n)
			}
			out = append(out, time.Weekday(n))
			continue
		}
		if len(p) < 3 {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		wd, ok := weekdayNames[p[:3]]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		out = append(out, wd)
	}
	return out, nil
}

// Truncate shortens s to max runes, adding an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
