package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const checkinColumns = `id, week_label, wins, challenges, skills, feedback, goals, created_at`

// SaveCheckin inserts or replaces the check-in for c.ID. List fields are
// padded or truncated to CheckinSlots entries. A zero CreatedAt is set to
// now; an existing row keeps its original creation time.
func (s *Store) SaveCheckin(c Checkin) (*Checkin, error) {
	if strings.TrimSpace(c.ID) == "" {
		return nil, fmt.Errorf("save checkin: %w", ErrEmptyName)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	if err := upsertCheckin(s.db, c); err != nil {
		return nil, err
	}
	return s.GetCheckin(c.ID)
}

func upsertCheckin(q queryer, c Checkin) error {
	wins, challenges, skills, goals := encodeSlots(c.Wins), encodeSlots(c.Challenges), encodeSlots(c.Skills), encodeSlots(c.Goals)
	_, err := q.Exec(
		`INSERT INTO checkins (`+checkinColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			week_label = excluded.week_label,
			wins = excluded.wins,
			challenges = excluded.challenges,
			skills = excluded.skills,
			feedback = excluded.feedback,
			goals = excluded.goals`,
		c.ID, c.WeekLabel, wins, challenges, skills, c.Feedback, goals, formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert checkin %s: %w", c.ID, err)
	}
	return nil
}

func (s *Store) GetCheckin(id string) (*Checkin, error) {
	row := s.db.QueryRow(`SELECT `+checkinColumns+` FROM checkins WHERE id = ?`, id)
	c, err := scanCheckin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get checkin %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get checkin %s: %w", id, err)
	}
	return &c, nil
}

// ListCheckins returns check-ins newest week first.
func (s *Store) ListCheckins() ([]Checkin, error) {
	return listCheckins(s.db)
}

func listCheckins(q queryer) ([]Checkin, error) {
	rows, err := q.Query(`SELECT ` + checkinColumns + ` FROM checkins ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()

	var out []Checkin
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) DeleteCheckin(id string) error {
	res, err := s.db.Exec(`DELETE FROM checkins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete checkin %s: %w", id, err)
	}
	return requireRow(res, "delete checkin "+id)
}

func scanCheckin(sc scanner) (Checkin, error) {
	var c Checkin
	var wins, challenges, skills, goals, createdAt string
	if err := sc.Scan(&c.ID, &c.WeekLabel, &wins, &challenges, &skills, &c.Feedback, &goals, &createdAt); err != nil {
		return c, err
	}
	var err error
	if c.Wins, err = decodeSlots(wins); err != nil {
		return c, err
	}
	if c.Challenges, err = decodeSlots(challenges); err != nil {
		return c, err
	}
	if c.Skills, err = decodeSlots(skills); err != nil {
		return c, err
	}
	if c.Goals, err = decodeSlots(goals); err != nil {
		return c, err
	}
	c.CreatedAt = parseTime(createdAt)
	return c, nil
}

// NormalizeSlots returns exactly CheckinSlots entries from v.
func NormalizeSlots(v []string) []string {
	out := make([]string, CheckinSlots)
	copy(out, v)
	return out
}

func encodeSlots(v []string) string {
	b, _ := json.Marshal(NormalizeSlots(v))
	return string(b)
}

func decodeSlots(s string) ([]string, error) {
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("decode checkin list: %w", err)
	}
	return NormalizeSlots(v), nil
}
