package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Defaults.HoursPerDay != 8 {
		t.Errorf("hours_per_day = %v, want 8", cfg.Defaults.HoursPerDay)
	}
	if len(cfg.Defaults.WorkDays) != 5 {
		t.Errorf("work_days = %v", cfg.Defaults.WorkDays)
	}
	if cfg.General.DBPath != "" {
		t.Errorf("db_path should default empty, got %q", cfg.General.DBPath)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Defaults.HoursPerDay != 8 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	req := 486.0
	want := Config{
		General: GeneralConfig{DBPath: "/tmp/it.db", ExportDir: "/tmp/exports"},
		Defaults: DefaultsConfig{
			RequiredHours:   &req,
			HoursPerDay:     7.5,
			WorkDays:        []int{1, 3, 5},
			ExcludeHolidays: true,
		},
	}
	if err := SaveFile(want, path); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.General != want.General {
		t.Errorf("general = %+v, want %+v", got.General, want.General)
	}
	if got.Defaults.RequiredHours == nil || *got.Defaults.RequiredHours != 486 {
		t.Errorf("required_hours = %v", got.Defaults.RequiredHours)
	}
	if got.Defaults.HoursPerDay != 7.5 || !got.Defaults.ExcludeHolidays {
		t.Errorf("defaults = %+v", got.Defaults)
	}
	if len(got.Defaults.WorkDays) != 3 || got.Defaults.WorkDays[2] != 5 {
		t.Errorf("work_days = %v", got.Defaults.WorkDays)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[general]\nexport_dir = \"/srv/out\"\n"), 0o600)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.ExportDir != "/srv/out" {
		t.Errorf("export_dir = %q", cfg.General.ExportDir)
	}
	if cfg.Defaults.HoursPerDay != 8 {
		t.Errorf("unset hours_per_day should keep default, got %v", cfg.Defaults.HoursPerDay)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"syntax":  "[general\n",
		"weekday": "[defaults]\nwork_days = [1, 9]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			os.WriteFile(path, []byte(body), 0o600)
			if _, err := LoadFile(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := ConfigDir(); got != filepath.Join("/xdg", "interntrack") {
		t.Errorf("ConfigDir = %q", got)
	}
	if got := ConfigPath(); got != filepath.Join("/xdg", "interntrack", "config.toml") {
		t.Errorf("ConfigPath = %q", got)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if Exists() {
		t.Fatal("config should not exist yet")
	}
	if err := Save(DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if !Exists() {
		t.Fatal("config should exist after Save")
	}
}

func TestWeekdays(t *testing.T) {
	d := DefaultsConfig{WorkDays: []int{0, 6}}
	got := d.Weekdays()
	if len(got) != 2 || got[0] != time.Sunday || got[1] != time.Saturday {
		t.Errorf("Weekdays = %v", got)
	}
}

func TestExportPath(t *testing.T) {
	var cfg Config
	if got := cfg.ExportPath("a.csv"); got != "a.csv" {
		t.Errorf("no dir: %q", got)
	}
	cfg.General.ExportDir = "/out"
	if got := cfg.ExportPath("a.csv"); got != filepath.Join("/out", "a.csv") {
		t.Errorf("with dir: %q", got)
	}
}
