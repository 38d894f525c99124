package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
)

func setSetting(q queryer, key, value string) error {
	_, err := q.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// GetSettings decodes the settings table into schedule.Settings.
// Missing keys keep their defaults.
func (s *Store) GetSettings() (schedule.Settings, error) {
	return getSettings(s.db)
}

func getSettings(q queryer) (schedule.Settings, error) {
	rows, err := q.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return schedule.Settings{}, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return schedule.Settings{}, err
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return schedule.Settings{}, err
	}
	return decodeSettings(kv)
}

func decodeSettings(kv map[string]string) (schedule.Settings, error) {
	st := schedule.DefaultSettings()

	if v, ok := kv["required_hours"]; ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return st, fmt.Errorf("decode required_hours: %w", err)
		}
		st.RequiredHours = schedule.Hours(f)
	}
	if v, ok := kv["hours_per_day"]; ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return st, fmt.Errorf("decode hours_per_day: %w", err)
		}
		st.HoursPerDay = f
	}
	if v, ok := kv["start_date"]; ok && v != "" {
		d, err := calendar.ParseDate(v)
		if err != nil {
			return st, fmt.Errorf("decode start_date: %w", err)
		}
		st.StartDate = d
	}
	if v, ok := kv["work_days"]; ok {
		days, err := decodeWeekdays(v)
		if err != nil {
			return st, fmt.Errorf("decode work_days: %w", err)
		}
		st.WorkDays = days
	}
	if v, ok := kv["exclude_holidays"]; ok {
		st.ExcludeHolidays = v == "1"
	}
	if v, ok := kv["projection_mode"]; ok {
		if m := schedule.Mode(v); m.Valid() {
			st.ProjectionMode = m
		}
	}
	return st, nil
}

// SaveSettings writes every settings key in a single transaction.
func (s *Store) SaveSettings(st schedule.Settings) error {
	return s.withTx(func(tx *sql.Tx) error {
		return saveSettings(tx, st)
	})
}

func saveSettings(q queryer, st schedule.Settings) error {
	for k, v := range encodeSettings(st) {
		if err := setSetting(q, k, v); err != nil {
			return err
		}
	}
	return nil
}

func encodeSettings(st schedule.Settings) map[string]string {
	required := ""
	if st.RequiredHours != nil {
		required = strconv.FormatFloat(*st.RequiredHours, 'f', -1, 64)
	}
	exclude := "0"
	if st.ExcludeHolidays {
		exclude = "1"
	}
	mode := st.ProjectionMode
	if !mode.Valid() {
		mode = schedule.ModeAuto
	}
	return map[string]string{
		"required_hours":   required,
		"hours_per_day":    strconv.FormatFloat(st.HoursPerDay, 'f', -1, 64),
		"start_date":       st.StartDate.String(),
		"work_days":        encodeWeekdays(st.WorkDays),
		"exclude_holidays": exclude,
		"projection_mode":  string(mode),
	}
}

func encodeWeekdays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(v string) ([]time.Weekday, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	var days []time.Weekday
	for _, p := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 6 {
			return nil, fmt.Errorf("weekday %d out of range", n)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}
