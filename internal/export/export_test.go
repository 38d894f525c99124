package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
	"github.com/sadopc/interntrack/internal/store"
)

func day(s string) calendar.Date { return calendar.MustParseDate(s) }

func sampleLogs() ([]schedule.LogEntry, map[string]string) {
	logs := []schedule.LogEntry{
		{Date: day("2026-02-16"), Hours: 7.5, Overtime: 1, Status: schedule.StatusWorked, Note: "setup laptop", ProjectID: "p1"},
		{Date: day("2026-02-17"), Hours: 0, Status: schedule.StatusAbsent, Note: "sick"},
		{Date: day("2026-02-18"), Hours: 8, Status: schedule.StatusWorked, ProjectID: "deleted"},
		{Date: day("2026-03-02"), Hours: 8, Status: schedule.StatusWorked, ProjectID: "p2"},
	}
	projects := map[string]string{
		"p1": "Payroll API",
		"p2": "Intranet",
	}
	return logs, projects
}

func sampleSettings() schedule.Settings {
	return schedule.Settings{
		RequiredHours:   schedule.Hours(486),
		HoursPerDay:     8,
		StartDate:       day("2026-02-16"),
		WorkDays:        []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		ExcludeHolidays: true,
		ProjectionMode:  schedule.ModeAuto,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	logs, projects := sampleLogs()
	path := filepath.Join(t.TempDir(), "logs.csv")

	if err := ToCSV(logs, projects, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	records := readCSV(t, path)

	if len(records) != 5 {
		t.Fatalf("expected 5 rows (1 header + 4 data), got %d", len(records))
	}

	header := records[0]
	for i, h := range csvHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	want := []string{"2026-02-16", "Monday", "7.5", "1", "Worked", "Payroll API", "setup laptop"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %q, want %q", i, row[i], want[i])
		}
	}

	if records[2][4] != "Absent" || records[2][2] != "0" {
		t.Errorf("absent row = %v", records[2])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVUnknownProject(t *testing.T) {
	logs, projects := sampleLogs()
	path := filepath.Join(t.TempDir(), "unknown.csv")

	if err := ToCSV(logs, projects, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[3][5] != "" {
		t.Fatalf("dangling project ID should render empty, got %q", records[3][5])
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	logs := []schedule.LogEntry{{
		Date:   day("2026-02-16"),
		Hours:  8,
		Status: schedule.StatusWorked,
		Note:   `fixed "login", then deployed`,
	}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, logs, nil); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if records[1][6] != `fixed "login", then deployed` {
		t.Fatalf("note not preserved: %q", records[1][6])
	}
}

// ============================================================
// JSON backup
// ============================================================

func sampleDataset() store.Dataset {
	logs, _ := sampleLogs()
	return store.Dataset{
		Settings: sampleSettings(),
		Logs:     logs,
		Checkins: []store.Checkin{{
			ID:         "2026-W07",
			WeekLabel:  "Feb 16 – Feb 22, 2026",
			Wins:       []string{"first PR", "", ""},
			Challenges: []string{"", "", ""},
			Skills:     []string{"go", "sql", ""},
			Goals:      []string{"", "", ""},
			CreatedAt:  time.Date(2026, 2, 22, 10, 0, 0, 0, time.UTC),
		}},
		Projects: []store.Project{{
			ID:        "p1",
			Name:      "Payroll API",
			Color:     "#FF0000",
			CreatedAt: time.Date(2026, 2, 16, 9, 0, 0, 0, time.UTC),
			Milestones: []store.Milestone{
				{ID: "m1", ProjectID: "p1", Title: "Schema", DueDate: day("2026-03-01"), Done: true},
			},
		}},
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	b := NewBackup(sampleDataset(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	if err := ToJSON(b, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if raw["version"] != BackupVersion {
		t.Errorf("version = %v", raw["version"])
	}
	if raw["exportedAt"] != "2026-03-01T12:00:00Z" {
		t.Errorf("exportedAt = %v", raw["exportedAt"])
	}
	settings, ok := raw["settings"].(map[string]any)
	if !ok {
		t.Fatal("settings should be nested")
	}
	if settings["requiredHours"] != 486.0 || settings["startDate"] != "2026-02-16" {
		t.Errorf("settings = %v", settings)
	}
	if logs, _ := raw["logs"].([]any); len(logs) != 4 {
		t.Errorf("expected 4 logs, got %d", len(logs))
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("expected indented output")
	}
}

func TestToJSONEmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	b := NewBackup(store.Dataset{Settings: schedule.DefaultSettings()}, time.Now())
	if err := WriteJSON(&buf, b); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, key := range []string{`"logs": []`, `"checkins": []`, `"projects": []`} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %s in output", key)
		}
	}
	if !strings.Contains(out, `"requiredHours": null`) {
		t.Error("unset required hours should be null")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(NewBackup(store.Dataset{}, time.Now()), "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestBackupRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	want := sampleDataset()
	if err := ToJSON(NewBackup(want, time.Now()), path); err != nil {
		t.Fatal(err)
	}

	got, err := ReadBackup(path)
	if err != nil {
		t.Fatalf("ReadBackup: %v", err)
	}
	if *got.Settings.RequiredHours != 486 || !got.Settings.StartDate.Equal(want.Settings.StartDate) ||
		!got.Settings.ExcludeHolidays || len(got.Settings.WorkDays) != 5 {
		t.Errorf("settings = %+v", got.Settings)
	}
	if len(got.Logs) != len(want.Logs) {
		t.Fatalf("logs = %d, want %d", len(got.Logs), len(want.Logs))
	}
	for i := range want.Logs {
		if got.Logs[i] != want.Logs[i] {
			t.Errorf("log %d = %+v, want %+v", i, got.Logs[i], want.Logs[i])
		}
	}
	if len(got.Checkins) != 1 || got.Checkins[0].Wins[0] != "first PR" {
		t.Errorf("checkins = %+v", got.Checkins)
	}
	if len(got.Projects) != 1 || got.Projects[0].ID != "p1" || len(got.Projects[0].Milestones) != 1 {
		t.Fatalf("projects = %+v", got.Projects)
	}
	m := got.Projects[0].Milestones[0]
	if m.Title != "Schema" || !m.Done || !m.DueDate.Equal(day("2026-03-01")) {
		t.Errorf("milestone = %+v", m)
	}
}

func TestReadBackupMissingFile(t *testing.T) {
	if _, err := ReadBackup(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseBackupV1Flat(t *testing.T) {
	data := []byte(`{
		"logs": [{"date": "2026-02-16", "hours": 1, "overtime": 0, "status": "Worked", "note": ""}]
	}`)
	d, err := ParseBackup(data)
	if err != nil {
		t.Fatal(err)
	}
	st := d.Settings
	if st.Required() != 500 || st.HoursPerDay != 1 {
		t.Errorf("v1 defaults not applied: required=%v hpd=%v", st.Required(), st.HoursPerDay)
	}
	if st.ProjectionMode != schedule.ModeManual {
		t.Errorf("mode = %q, want manual", st.ProjectionMode)
	}
	if len(st.WorkDays) != 5 || st.WorkDays[0] != time.Monday {
		t.Errorf("work days = %v", st.WorkDays)
	}
	if len(d.Logs) != 1 || d.Logs[0].Hours != 1 {
		t.Errorf("logs = %+v", d.Logs)
	}
}

func TestParseBackupV1FlatFields(t *testing.T) {
	data := []byte(`{"requiredHours": 300, "hoursPerDay": 6, "startDate": "2026-01-05", "workDays": [1, 3, 5]}`)
	d, err := ParseBackup(data)
	if err != nil {
		t.Fatal(err)
	}
	st := d.Settings
	if st.Required() != 300 || st.HoursPerDay != 6 || !st.StartDate.Equal(day("2026-01-05")) {
		t.Errorf("settings = %+v", st)
	}
	if len(st.WorkDays) != 3 || st.WorkDays[2] != time.Friday {
		t.Errorf("work days = %v", st.WorkDays)
	}
	if d.Logs != nil {
		t.Errorf("expected no logs, got %v", d.Logs)
	}
}

func TestParseBackupV2Nested(t *testing.T) {
	data := []byte(`{
		"version": "2.0",
		"exportedAt": "2026-03-01T08:00:00.000Z",
		"settings": {
			"requiredHours": 486,
			"hoursPerDay": 8,
			"startDate": "2026-02-16",
			"workDays": [1, 2, 3, 4, 5],
			"excludeHolidays": true,
			"projectionMode": "auto"
		},
		"logs": [
			{"date": "2026-02-16", "hours": 8, "overtime": 0, "status": "Worked", "note": ""},
			{"date": "2026-02-17", "hours": 0, "overtime": 0, "status": "Absent", "note": "flu"}
		]
	}`)
	d, err := ParseBackup(data)
	if err != nil {
		t.Fatal(err)
	}
	if d.Settings.ProjectionMode != schedule.ModeAuto || !d.Settings.ExcludeHolidays {
		t.Errorf("settings = %+v", d.Settings)
	}
	if len(d.Logs) != 2 || d.Logs[1].Status != schedule.StatusAbsent || d.Logs[1].Note != "flu" {
		t.Errorf("logs = %+v", d.Logs)
	}
	if d.Checkins != nil || d.Projects != nil {
		t.Error("v2 backups carry no check-ins or projects")
	}
}

func TestParseBackupNullRequiredHours(t *testing.T) {
	data := []byte(`{"settings": {"requiredHours": null, "hoursPerDay": 8}}`)
	d, err := ParseBackup(data)
	if err != nil {
		t.Fatal(err)
	}
	if d.Settings.RequiredHours != nil {
		t.Errorf("required hours = %v, want unset", *d.Settings.RequiredHours)
	}
}

func TestParseBackupV1FlatNullDefaults(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		wantRequired float64
		wantPerDay   float64
	}{
		{"null required", `{"requiredHours": null, "hoursPerDay": 8, "logs": []}`, 500, 8},
		{"null per day", `{"requiredHours": 300, "hoursPerDay": null}`, 300, 1},
		{"both null", `{"requiredHours": null, "hoursPerDay": null}`, 500, 1},
	}
	for _, tt := range tests {
		d, err := ParseBackup([]byte(tt.data))
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		st := d.Settings
		if st.RequiredHours == nil || *st.RequiredHours != tt.wantRequired {
			t.Errorf("%s: required = %v, want %v", tt.name, st.RequiredHours, tt.wantRequired)
		}
		if st.HoursPerDay != tt.wantPerDay {
			t.Errorf("%s: hours per day = %v, want %v", tt.name, st.HoursPerDay, tt.wantPerDay)
		}
	}
}

func TestParseBackupRejects(t *testing.T) {
	cases := map[string]string{
		"not json":           `{"settings":`,
		"string required":    `{"settings": {"requiredHours": "500", "hoursPerDay": 8}}`,
		"string per day":     `{"settings": {"requiredHours": 500, "hoursPerDay": "8"}}`,
		"missing per day":    `{"settings": {"requiredHours": 500}}`,
		"null per day":       `{"settings": {"requiredHours": 500, "hoursPerDay": null}}`,
		"flat string":        `{"requiredHours": "lots"}`,
		"bad weekday":        `{"settings": {"requiredHours": 500, "hoursPerDay": 8, "workDays": [1, 7]}}`,
		"fractional weekday": `{"settings": {"requiredHours": 500, "hoursPerDay": 8, "workDays": [1.5]}}`,
		"bad start date":     `{"settings": {"requiredHours": 500, "hoursPerDay": 8, "startDate": "02/16/2026"}}`,
		"bad mode":           `{"settings": {"requiredHours": 500, "hoursPerDay": 8, "projectionMode": "hybrid"}}`,
		"bad log date":       `{"settings": {"requiredHours": 500, "hoursPerDay": 8}, "logs": [{"date": "yesterday"}]}`,
		"checkin without id": `{"settings": {"requiredHours": 500, "hoursPerDay": 8}, "checkins": [{"weekLabel": "x"}]}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBackup([]byte(data))
			if !errors.Is(err, ErrInvalidBackup) {
				t.Fatalf("expected ErrInvalidBackup, got %v", err)
			}
		})
	}
}

func TestParseBackupFillsProjectIDs(t *testing.T) {
	data := []byte(`{
		"settings": {"requiredHours": 500, "hoursPerDay": 8},
		"projects": [{"name": "Legacy", "createdAt": "2026-01-01T00:00:00Z", "milestones": [{"title": "a", "dueDate": "", "done": false}]}],
		"checkins": [{"id": "2026-W02", "weekLabel": "w", "wins": ["x"], "createdAt": "2026-01-11T00:00:00Z"}]
	}`)
	d, err := ParseBackup(data)
	if err != nil {
		t.Fatal(err)
	}
	p := d.Projects[0]
	if p.ID == "" || p.Milestones[0].ID == "" {
		t.Errorf("IDs not assigned: %+v", p)
	}
	if p.Color != store.DefaultProjectColor {
		t.Errorf("color = %q", p.Color)
	}
	if len(d.Checkins[0].Wins) != store.CheckinSlots || len(d.Checkins[0].Goals) != store.CheckinSlots {
		t.Errorf("check-in slots not normalized: %+v", d.Checkins[0])
	}
}

// ============================================================
// HTML report
// ============================================================

func sampleReport() Report {
	logs, _ := sampleLogs()
	logs[0].Note = "<script>alert(1)</script>"
	st := schedule.Aggregate(logs, sampleSettings())
	return Report{
		Settings:    sampleSettings(),
		Active:      logs,
		Stats:       st,
		EndDate:     day("2026-04-20"),
		EndDateSet:  true,
		GeneratedAt: time.Date(2026, 3, 2, 14, 5, 0, 0, time.UTC),
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Generated on: Mar 2, 2026, 2:05 PM",
		"Target Hours: <strong>486h</strong>",
		"Accumulated: <strong>24.5h</strong>",
		"Remaining: <strong>461.5h</strong>",
		"Work Days Logged: <strong>3</strong>",
		"Calendar Span: <strong>14 days</strong>",
		"Projected End Date: <strong>Apr 20, 2026</strong>",
		"2026-02-16 (Mon)",
		"Month Total: <strong>15.5 hours</strong>",
		"Month Total: <strong>8 hours</strong>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}

	if strings.Index(out, "February 2026") > strings.Index(out, "March 2026") {
		t.Error("months should be in ascending order")
	}
	if strings.Contains(out, "sick") {
		t.Error("non-worked entries should not be listed")
	}
	if strings.Contains(out, "<script>alert") {
		t.Error("notes must be escaped")
	}
}

func TestWriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := Report{Settings: schedule.DefaultSettings(), GeneratedAt: time.Now()}
	if err := WriteHTML(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "No work sessions logged yet.") {
		t.Error("expected empty-state message")
	}
	if !strings.Contains(out, "Target Hours: <strong>Not set</strong>") {
		t.Error("expected unset target")
	}
	if !strings.Contains(out, "Set start date &amp; hours") {
		t.Error("expected placeholder end date")
	}
}

func TestWriteHTMLGoalReached(t *testing.T) {
	r := sampleReport()
	r.Settings.RequiredHours = schedule.Hours(20)
	r.Stats = schedule.Aggregate(r.Active, r.Settings)

	var buf bytes.Buffer
	if err := WriteHTML(&buf, r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Extra Hours: <strong>+4.5h</strong>") {
		t.Error("expected extra hours line")
	}
}

func TestToHTMLBadPath(t *testing.T) {
	if err := ToHTML(sampleReport(), "/nonexistent/dir/report.html"); err == nil {
		t.Fatal("expected error for bad path")
	}
}
