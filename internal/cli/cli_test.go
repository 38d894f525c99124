package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
)

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0h"},
		{8, "8h"},
		{7.5, "7.5h"},
		{0.25, "0.25h"},
		{486, "486h"},
		{1234.25, "1,234.25h"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.in); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(42.857); got != "42.9%" {
		t.Errorf("got %q", got)
	}
	if got := FormatPercent(100); got != "100.0%" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(calendar.MustParseDate("2026-02-16")); got != "Feb 16, 2026" {
		t.Errorf("got %q", got)
	}
	if got := FormatDate(calendar.Date{}); got != "-" {
		t.Errorf("zero date = %q", got)
	}
	if got := FormatEndDate(calendar.Date{}, false); got != "Set start date & hours" {
		t.Errorf("unset end date = %q", got)
	}
}

func TestFormatDayOfWeek(t *testing.T) {
	if got := FormatDayOfWeek(time.Monday); got != "Mon" {
		t.Errorf("got %q", got)
	}
	if got := FormatDayOfWeek(time.Weekday(9)); got != "???" {
		t.Errorf("got %q", got)
	}
	if got := FormatWorkDays([]time.Weekday{time.Monday, time.Friday}); got != "Mon, Fri" {
		t.Errorf("got %q", got)
	}
	if got := FormatWorkDays(nil); got != "none" {
		t.Errorf("got %q", got)
	}
}

func TestParseWorkDays(t *testing.T) {
	got, err := ParseWorkDays("mon, Wednesday,5, sat")
	if err != nil {
		t.Fatal(err)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday, time.Saturday}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	empty, err := ParseWorkDays("  ")
	if err != nil || empty != nil {
		t.Errorf("empty input = %v, %v", empty, err)
	}

	for _, bad := range []string{"7", "-1", "mo", "funday"} {
		if _, err := ParseWorkDays(bad); err == nil {
			t.Errorf("ParseWorkDays(%q) should fail", bad)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("hello world", 6); got != "hello…" {
		t.Errorf("got %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Logs",
		Headers: []string{"Date", "Hours"},
		Rows: [][]string{
			{"2026-02-16", "8h"},
			{"---"},
			{"Total", "8h"},
		},
	})
	for _, want := range []string{"Logs", "Date", "2026-02-16", "Total", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
	if n := strings.Count(out, "\n"); n != 8 {
		t.Errorf("expected 8 lines, got %d:\n%s", n, out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	out := RenderProgressBar(50, 10)
	if !strings.Contains(out, "50.0%") {
		t.Errorf("missing percent: %q", out)
	}
	if strings.Count(out, "█") != 5 {
		t.Errorf("expected 5 filled cells: %q", out)
	}
	if RenderProgressBar(50, 0) != "" {
		t.Error("zero width should render nothing")
	}
	if strings.Count(RenderProgressBar(250, 4), "█") != 4 {
		t.Error("percent above 100 should clamp")
	}
}

func TestRenderKV(t *testing.T) {
	out := RenderKV([][2]string{{"Target", "486h"}, {"Mode", "auto"}})
	if !strings.Contains(out, "486h") || !strings.Contains(out, "auto") {
		t.Errorf("got %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}
