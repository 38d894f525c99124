package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/store"
	"github.com/sadopc/interntrack/internal/tracker"

	"github.com/spf13/cobra"
)

// anyChanged reports whether any of the named flags was set.
func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

func parseHours(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("enter a number")
	}
	if v < 0 {
		return 0, errors.New("must not be negative")
	}
	return v, nil
}

func validateOptionalHours(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := parseHours(s)
	return err
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := calendar.ParseDate(strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// parseStatus matches a log status case-insensitively; "dayoff" and
// "day-off" are accepted for "Day Off".
func parseStatus(s string) (schedule.LogStatus, error) {
	norm := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
	for _, st := range schedule.Statuses {
		if strings.ReplaceAll(strings.ToLower(string(st)), " ", "") == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (want worked, absent, day-off or holiday)", s)
}

// matchesID reports whether ref is id or a prefix of at least 8 characters.
func matchesID(id, ref string) bool {
	return id == ref || (len(ref) >= 8 && strings.HasPrefix(id, ref))
}

// findProject resolves a project by ID, short ID or case-insensitive name.
func findProject(ps []tracker.ProjectSummary, ref string) (tracker.ProjectSummary, error) {
	ref = strings.TrimSpace(ref)
	var matches []tracker.ProjectSummary
	for _, p := range ps {
		if matchesID(p.ID, ref) {
			return p, nil
		}
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return tracker.ProjectSummary{}, fmt.Errorf("project %q: %w", ref, store.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return tracker.ProjectSummary{}, fmt.Errorf("project name %q is ambiguous, use its ID", ref)
}

// findMilestone resolves a milestone by ID or short ID across projects.
func findMilestone(ps []tracker.ProjectSummary, ref string) (store.Milestone, error) {
	ref = strings.TrimSpace(ref)
	for _, p := range ps {
		for _, m := range p.Milestones {
			if matchesID(m.ID, ref) {
				return m, nil
			}
		}
	}
	return store.Milestone{}, fmt.Errorf("milestone %q: %w", ref, store.ErrNotFound)
}

// resolveWeek accepts a date inside the week or a week ID like 2026-W07.
// Week IDs are looked up among weeks with logs or check-ins.
func resolveWeek(weeks []tracker.WeekSummary, ref string) (calendar.Week, error) {
	if d, err := calendar.ParseDate(ref); err == nil {
		return calendar.WeekOf(d), nil
	}
	for _, w := range weeks {
		if strings.EqualFold(w.Week.ID, ref) {
			return w.Week, nil
		}
	}
	return calendar.Week{}, fmt.Errorf("week %q: use a date or a listed week ID", ref)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
