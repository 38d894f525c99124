package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(s string) calendar.Date {
	return calendar.MustParseDate(s)
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/interntrack.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertLog(schedule.LogEntry{Date: day("2026-02-16"), Hours: 8, Status: schedule.StatusWorked}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migrations do not re-run destructively.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	logs, err := s2.ListLogs()
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log after reopen, got %d", len(logs))
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettings(t *testing.T) {
	s := newTestStore(t)
	st, err := s.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if st.RequiredHours != nil {
		t.Errorf("required hours should be unset, got %v", *st.RequiredHours)
	}
	if st.HoursPerDay != 8 {
		t.Errorf("hours per day = %v, want 8", st.HoursPerDay)
	}
	if !st.StartDate.IsZero() {
		t.Errorf("start date should be unset, got %s", st.StartDate)
	}
	if len(st.WorkDays) != 5 || st.WorkDays[0] != time.Monday {
		t.Errorf("work days = %v", st.WorkDays)
	}
	if st.ExcludeHolidays {
		t.Error("exclude holidays should default to false")
	}
	if st.ProjectionMode != schedule.ModeAuto {
		t.Errorf("mode = %q, want auto", st.ProjectionMode)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := schedule.Settings{
		RequiredHours:   schedule.Hours(486),
		HoursPerDay:     7.5,
		StartDate:       day("2026-02-16"),
		WorkDays:        []time.Weekday{time.Monday, time.Wednesday, time.Saturday},
		ExcludeHolidays: true,
		ProjectionMode:  schedule.ModeManual,
	}
	if err := s.SaveSettings(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("settings mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveSettingsEmptyWorkDays(t *testing.T) {
	s := newTestStore(t)
	st := schedule.DefaultSettings()
	st.WorkDays = nil
	if err := s.SaveSettings(st); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetSettings()
	if len(got.WorkDays) != 0 {
		t.Errorf("expected no work days, got %v", got.WorkDays)
	}
}

func TestGetSettingsRejectsCorruptValue(t *testing.T) {
	s := newTestStore(t)
	if err := setSetting(s.db, "hours_per_day", "eight"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetSettings(); err == nil {
		t.Fatal("expected decode error")
	}
}

// ============================================================
// Logs
// ============================================================

func TestUpsertAndListLogs(t *testing.T) {
	s := newTestStore(t)
	entries := []schedule.LogEntry{
		{Date: day("2026-02-17"), Hours: 8, Status: schedule.StatusWorked, Note: "onboarding"},
		{Date: day("2026-02-16"), Hours: 6, Overtime: 1.5, Status: schedule.StatusWorked, ProjectID: "p1"},
	}
	for _, e := range entries {
		if err := s.UpsertLog(e); err != nil {
			t.Fatal(err)
		}
	}

	logs, err := s.ListLogs()
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if !logs[0].Date.Equal(day("2026-02-16")) {
		t.Errorf("logs not sorted: first is %s", logs[0].Date)
	}
	if logs[0].Overtime != 1.5 || logs[0].ProjectID != "p1" {
		t.Errorf("unexpected first log: %+v", logs[0])
	}
}

func TestUpsertLogReplacesSameDate(t *testing.T) {
	s := newTestStore(t)
	d := day("2026-02-16")
	s.UpsertLog(schedule.LogEntry{Date: d, Hours: 8, Status: schedule.StatusWorked})
	if err := s.UpsertLog(schedule.LogEntry{Date: d, Status: schedule.StatusAbsent, Note: "sick"}); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetLog(d)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != schedule.StatusAbsent || got.Hours != 0 || got.Note != "sick" {
		t.Errorf("unexpected log: %+v", got)
	}
	logs, _ := s.ListLogs()
	if len(logs) != 1 {
		t.Errorf("dates must be unique, got %d rows", len(logs))
	}
}

func TestUpsertLogRejectsBadStatus(t *testing.T) {
	s := newTestStore(t)
	err := s.UpsertLog(schedule.LogEntry{Date: day("2026-02-16"), Status: "Vacation"})
	if err == nil {
		t.Fatal("expected check constraint error")
	}
}

func TestGetLogNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetLog(day("2026-02-16"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteLog(t *testing.T) {
	s := newTestStore(t)
	d := day("2026-02-16")
	s.UpsertLog(schedule.LogEntry{Date: d, Hours: 8, Status: schedule.StatusWorked})
	if err := s.DeleteLog(d); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteLog(d); err != nil {
		t.Fatalf("deleting a missing log should be a no-op: %v", err)
	}
	logs, _ := s.ListLogs()
	if len(logs) != 0 {
		t.Errorf("expected no logs, got %d", len(logs))
	}
}

func TestSaveSettingsAndLogsReplacesLogs(t *testing.T) {
	s := newTestStore(t)
	s.UpsertLog(schedule.LogEntry{Date: day("2026-01-05"), Hours: 8, Status: schedule.StatusWorked})

	next := []schedule.LogEntry{
		{Date: day("2026-02-16"), Hours: 8, Status: schedule.StatusWorked},
		{Date: day("2026-02-17"), Hours: 8, Status: schedule.StatusWorked},
	}
	if err := s.SaveSettingsAndLogs(schedule.DefaultSettings(), next); err != nil {
		t.Fatal(err)
	}
	logs, _ := s.ListLogs()
	if !reflect.DeepEqual(logs, next) {
		t.Errorf("got %+v, want %+v", logs, next)
	}
}

func TestSaveSettingsAndLogsRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	keep := schedule.LogEntry{Date: day("2026-01-05"), Hours: 8, Status: schedule.StatusWorked}
	s.UpsertLog(keep)

	bad := []schedule.LogEntry{
		{Date: day("2026-02-16"), Hours: 8, Status: schedule.StatusWorked},
		{Date: day("2026-02-17"), Hours: -1, Status: schedule.StatusWorked},
	}
	if err := s.SaveSettingsAndLogs(schedule.DefaultSettings(), bad); err == nil {
		t.Fatal("expected error for negative hours")
	}
	logs, _ := s.ListLogs()
	if len(logs) != 1 || !logs[0].Date.Equal(keep.Date) {
		t.Errorf("replace should roll back, got %+v", logs)
	}
}

func TestSaveSettingsAndLogs(t *testing.T) {
	s := newTestStore(t)
	st := schedule.DefaultSettings()
	st.ProjectionMode = schedule.ModeManual
	logs := []schedule.LogEntry{{Date: day("2026-02-16"), Hours: 8, Status: schedule.StatusWorked}}

	if err := s.SaveSettingsAndLogs(st, logs); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetSettings()
	if got.ProjectionMode != schedule.ModeManual {
		t.Errorf("mode = %q", got.ProjectionMode)
	}
	stored, _ := s.ListLogs()
	if len(stored) != 1 {
		t.Errorf("expected 1 log, got %d", len(stored))
	}
}

// ============================================================
// Projects & milestones
// ============================================================

func TestCreateAndGetProject(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("  Payroll API ", "", " backend ")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == "" {
		t.Fatal("expected generated ID")
	}
	if p.Name != "Payroll API" || p.Description != "backend" {
		t.Errorf("fields not trimmed: %+v", p)
	}
	if p.Color != DefaultProjectColor {
		t.Errorf("color = %q, want default", p.Color)
	}
	if p.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestCreateProjectEmptyName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateProject("   ", "", ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestUpdateAndDeleteProject(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Old", "#FF0000", "")
	if err := s.UpdateProject(p.ID, "New", "#00FF00", "desc"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetProject(p.ID)
	if got.Name != "New" || got.Color != "#00FF00" || got.Description != "desc" {
		t.Errorf("update not applied: %+v", got)
	}

	if err := s.DeleteProject(p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetProject(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteProject(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestMilestones(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Intranet", "", "")

	m1, err := s.AddMilestone(p.ID, "Design", day("2026-03-01"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddMilestone(p.ID, "Ship", calendar.Date{}); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleMilestone(m1.ID); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetProject(p.ID)
	if len(got.Milestones) != 2 {
		t.Fatalf("expected 2 milestones, got %d", len(got.Milestones))
	}
	if got.Milestones[0].Title != "Design" || !got.Milestones[0].Done {
		t.Errorf("first milestone: %+v", got.Milestones[0])
	}
	if !got.Milestones[0].DueDate.Equal(day("2026-03-01")) {
		t.Errorf("due date = %s", got.Milestones[0].DueDate)
	}
	if !got.Milestones[1].DueDate.IsZero() {
		t.Errorf("second milestone should have no due date")
	}
	done, total := got.Progress()
	if done != 1 || total != 2 {
		t.Errorf("progress = %d/%d, want 1/2", done, total)
	}

	if err := s.DeleteMilestone(m1.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetProject(p.ID)
	if len(got.Milestones) != 1 {
		t.Errorf("expected 1 milestone after delete, got %d", len(got.Milestones))
	}
}

func TestAddMilestoneUnknownProject(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddMilestone("missing", "x", calendar.Date{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProjectCascadesMilestones(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("Temp", "", "")
	s.AddMilestone(p.ID, "a", calendar.Date{})
	s.DeleteProject(p.ID)

	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM milestones`).Scan(&count)
	if count != 0 {
		t.Errorf("expected milestones to cascade, %d left", count)
	}
}

func TestListProjects(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateProject("A", "", "")
	s.CreateProject("B", "", "")
	s.AddMilestone(a.ID, "m", calendar.Date{})

	ps, err := s.ListProjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(ps))
	}
	for _, p := range ps {
		if p.ID == a.ID && len(p.Milestones) != 1 {
			t.Errorf("milestones not loaded for %s", p.Name)
		}
	}
}

// ============================================================
// Check-ins
// ============================================================

func TestSaveAndGetCheckin(t *testing.T) {
	s := newTestStore(t)
	c, err := s.SaveCheckin(Checkin{
		ID:        "2026-W07",
		WeekLabel: "Feb 16 – Feb 22, 2026",
		Wins:      []string{"shipped login"},
		Skills:    []string{"sql", "go", "git", "extra"},
		Feedback:  "good week",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Wins) != CheckinSlots || c.Wins[0] != "shipped login" || c.Wins[1] != "" {
		t.Errorf("wins not padded: %q", c.Wins)
	}
	if len(c.Skills) != CheckinSlots || c.Skills[2] != "git" {
		t.Errorf("skills not truncated: %q", c.Skills)
	}
	if len(c.Challenges) != CheckinSlots || len(c.Goals) != CheckinSlots {
		t.Errorf("empty lists should still have %d slots", CheckinSlots)
	}
	if c.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestSaveCheckinUpdateKeepsCreatedAt(t *testing.T) {
	s := newTestStore(t)
	created := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	s.SaveCheckin(Checkin{ID: "2026-W08", WeekLabel: "w", CreatedAt: created})

	c, err := s.SaveCheckin(Checkin{ID: "2026-W08", WeekLabel: "w", Feedback: "edited"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Feedback != "edited" {
		t.Errorf("feedback = %q", c.Feedback)
	}
	if !c.CreatedAt.Equal(created) {
		t.Errorf("created_at changed to %v", c.CreatedAt)
	}
}

func TestSaveCheckinRequiresID(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SaveCheckin(Checkin{}); err == nil {
		t.Fatal("expected error for blank ID")
	}
}

func TestListCheckinsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"2026-W08", "2026-W10", "2026-W09"} {
		s.SaveCheckin(Checkin{ID: id, WeekLabel: id})
	}
	cs, err := s.ListCheckins()
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	want := []string{"2026-W10", "2026-W09", "2026-W08"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestDeleteCheckin(t *testing.T) {
	s := newTestStore(t)
	s.SaveCheckin(Checkin{ID: "2026-W08", WeekLabel: "w"})
	if err := s.DeleteCheckin("2026-W08"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetCheckin("2026-W08"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Dump & restore
// ============================================================

func TestDumpRestore(t *testing.T) {
	src := newTestStore(t)
	st := schedule.DefaultSettings()
	st.RequiredHours = schedule.Hours(486)
	st.StartDate = day("2026-02-16")
	src.SaveSettings(st)
	src.UpsertLog(schedule.LogEntry{Date: day("2026-02-16"), Hours: 8, Status: schedule.StatusWorked})
	p, _ := src.CreateProject("Portal", "", "")
	src.AddMilestone(p.ID, "MVP", day("2026-04-01"))
	src.SaveCheckin(Checkin{ID: "2026-W08", WeekLabel: "w"})

	d, err := src.Dump()
	if err != nil {
		t.Fatal(err)
	}

	dst := newTestStore(t)
	dst.UpsertLog(schedule.LogEntry{Date: day("2025-12-01"), Hours: 1, Status: schedule.StatusWorked})
	if err := dst.Restore(d); err != nil {
		t.Fatal(err)
	}

	got, err := dst.Dump()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, d) {
		t.Errorf("restored dataset differs:\n got %+v\nwant %+v", got, d)
	}
}

func TestRestoreRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	s.UpsertLog(schedule.LogEntry{Date: day("2026-02-16"), Hours: 8, Status: schedule.StatusWorked})

	bad := Dataset{
		Settings: schedule.DefaultSettings(),
		Logs:     []schedule.LogEntry{{Date: day("2026-03-02"), Status: "Bogus"}},
	}
	if err := s.Restore(bad); err == nil {
		t.Fatal("expected restore error")
	}
	logs, _ := s.ListLogs()
	if len(logs) != 1 || !logs[0].Date.Equal(day("2026-02-16")) {
		t.Errorf("restore should leave prior data intact, got %+v", logs)
	}
}
