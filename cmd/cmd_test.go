package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/config"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/store"
	"github.com/sadopc/interntrack/internal/tracker"
)

// ===== Parsing =====

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want schedule.LogStatus
	}{
		{"worked", schedule.StatusWorked},
		{"Worked", schedule.StatusWorked},
		{"ABSENT", schedule.StatusAbsent},
		{"day-off", schedule.StatusDayOff},
		{"dayoff", schedule.StatusDayOff},
		{"Day Off", schedule.StatusDayOff},
		{"day_off", schedule.StatusDayOff},
		{"holiday", schedule.StatusHoliday},
	}
	for _, tt := range tests {
		got, err := parseStatus(tt.in)
		if err != nil {
			t.Errorf("parseStatus(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := parseStatus("sick"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestParseHours(t *testing.T) {
	if v, err := parseHours(" 7.5 "); err != nil || v != 7.5 {
		t.Errorf("parseHours = %v, %v", v, err)
	}
	if _, err := parseHours("-1"); err == nil {
		t.Error("expected error for negative hours")
	}
	if _, err := parseHours("abc"); err == nil {
		t.Error("expected error for non-number")
	}
	if err := validateOptionalHours(""); err != nil {
		t.Errorf("empty hours should be valid: %v", err)
	}
	if err := validateOptionalDate("2026-13-01"); err == nil {
		t.Error("expected error for bad date")
	}
	if err := validateOptionalDate(""); err != nil {
		t.Errorf("empty date should be valid: %v", err)
	}
}

// ===== Lookup =====

func testProjects() []tracker.ProjectSummary {
	return []tracker.ProjectSummary{
		{Project: store.Project{
			ID:   "11111111-aaaa-4000-8000-000000000001",
			Name: "Backend",
			Milestones: []store.Milestone{
				{ID: "33333333-cccc-4000-8000-000000000003", Title: "API"},
			},
		}, Hours: 16},
		{Project: store.Project{ID: "22222222-bbbb-4000-8000-000000000002", Name: "Docs"}},
		{Project: store.Project{ID: "44444444-dddd-4000-8000-000000000004", Name: "docs"}},
	}
}

func TestMatchesID(t *testing.T) {
	id := "11111111-aaaa-4000-8000-000000000001"
	if !matchesID(id, id) {
		t.Error("full ID should match")
	}
	if !matchesID(id, "11111111") {
		t.Error("8-char prefix should match")
	}
	if matchesID(id, "1111") {
		t.Error("short prefix should not match")
	}
	if got := shortID(id); got != "11111111" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID(short) = %q", got)
	}
}

func TestFindProject(t *testing.T) {
	ps := testProjects()

	p, err := findProject(ps, "backend")
	if err != nil || p.Name != "Backend" {
		t.Fatalf("by name: %v, %v", p.Name, err)
	}
	p, err = findProject(ps, "22222222")
	if err != nil || p.Name != "Docs" {
		t.Fatalf("by short ID: %v, %v", p.Name, err)
	}
	if _, err := findProject(ps, "docs"); err == nil {
		t.Error("expected ambiguous name error")
	}
	if _, err := findProject(ps, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindMilestone(t *testing.T) {
	ps := testProjects()
	m, err := findMilestone(ps, "33333333")
	if err != nil || m.Title != "API" {
		t.Fatalf("findMilestone = %v, %v", m.Title, err)
	}
	if _, err := findMilestone(ps, "99999999"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveWeek(t *testing.T) {
	feb16 := calendar.WeekOf(calendar.MustParseDate("2026-02-16"))
	weeks := []tracker.WeekSummary{{WeekTotal: schedule.WeekTotal{Week: feb16, Hours: 40, Days: 5}}}

	w, err := resolveWeek(weeks, "2026-02-18")
	if err != nil || w.ID != feb16.ID {
		t.Fatalf("by date: %v, %v", w.ID, err)
	}
	w, err = resolveWeek(weeks, "2026-w07")
	if err != nil || w.ID != "2026-W07" {
		t.Fatalf("by ID: %v, %v", w.ID, err)
	}
	if _, err := resolveWeek(weeks, "2026-W30"); err == nil {
		t.Error("expected error for unlisted week ID")
	}
}

// ===== Setup defaults =====

func TestWithConfigDefaults(t *testing.T) {
	d := config.DefaultConfig().Defaults
	d.RequiredHours = schedule.Hours(486)
	d.HoursPerDay = 9
	d.WorkDays = []int{1, 2, 3, 4}
	d.ExcludeHolidays = true

	got := withConfigDefaults(schedule.DefaultSettings(), d)
	if got.RequiredHours == nil || *got.RequiredHours != 486 {
		t.Errorf("RequiredHours = %v", got.RequiredHours)
	}
	if got.HoursPerDay != 9 {
		t.Errorf("HoursPerDay = %v, want 9", got.HoursPerDay)
	}
	if len(got.WorkDays) != 4 || got.WorkDays[3] != time.Thursday {
		t.Errorf("WorkDays = %v", got.WorkDays)
	}
	if !got.ExcludeHolidays {
		t.Error("ExcludeHolidays should be true")
	}

	// Configured settings keep their schedule.
	cur := schedule.DefaultSettings()
	cur.StartDate = calendar.MustParseDate("2026-02-02")
	cur.RequiredHours = schedule.Hours(200)
	got = withConfigDefaults(cur, d)
	if *got.RequiredHours != 200 {
		t.Errorf("RequiredHours overwritten: %v", *got.RequiredHours)
	}
	if got.HoursPerDay != cur.HoursPerDay {
		t.Errorf("HoursPerDay overwritten: %v", got.HoursPerDay)
	}
}

// ===== Status =====

func TestStatusPairs(t *testing.T) {
	v := tracker.View{
		Settings: schedule.DefaultSettings(),
		Today:    calendar.MustParseDate("2026-02-20"),
	}
	pairs := statusPairs(v)
	found := map[string]string{}
	for _, p := range pairs {
		found[p[0]] = p[1]
	}
	if found["Required"] != "not set" {
		t.Errorf("Required = %q", found["Required"])
	}
	if _, ok := found["Remaining"]; !ok {
		t.Error("expected Remaining row when goal not reached")
	}

	v.Stats.IsGoalReached = true
	v.Stats.ExtraHours = 4
	found = map[string]string{}
	for _, p := range statusPairs(v) {
		found[p[0]] = p[1]
	}
	if _, ok := found["Extra"]; !ok {
		t.Error("expected Extra row when goal reached")
	}
}

// ===== Export output =====

func TestWriteExportToStdout(t *testing.T) {
	var out bytes.Buffer
	err := writeExport(stdoutPath, &out, func(w io.Writer) error {
		_, err := io.WriteString(w, "Date,Day\n")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "Date,Day\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestWriteExportToFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "interntrack-2026-02-20.csv")
	err := writeExport(path, &out, func(w io.Writer) error {
		_, err := io.WriteString(w, "Date,Day\n")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should reach stdout, got %q", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Date,Day") {
		t.Errorf("file = %q", data)
	}
}

func TestWriteExportBadPath(t *testing.T) {
	err := writeExport("/nonexistent/dir/out.csv", io.Discard, func(io.Writer) error { return nil })
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ===== Command tree =====

func TestCommandTree(t *testing.T) {
	want := []string{"status", "setup", "log", "mode", "export", "restore", "holidays", "projects", "checkins", "config", "tui"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
