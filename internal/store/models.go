package store

import (
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
)

type Project struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Color       string      `json:"color"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
	Milestones  []Milestone `json:"milestones"`
}

// Progress returns the number of done milestones and the total.
func (p Project) Progress() (done, total int) {
	for _, m := range p.Milestones {
		if m.Done {
			done++
		}
	}
	return done, len(p.Milestones)
}

type Milestone struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"-"`
	Title     string        `json:"title"`
	DueDate   calendar.Date `json:"dueDate"`
	Done      bool          `json:"done"`
}

// CheckinSlots is the number of entries kept for wins, challenges,
// skills and goals.
const CheckinSlots = 3

// Checkin is a weekly reflection keyed by ISO-style week ID.
type Checkin struct {
	ID         string    `json:"id"`
	WeekLabel  string    `json:"weekLabel"`
	Wins       []string  `json:"wins"`
	Challenges []string  `json:"challenges"`
	Skills     []string  `json:"skills"`
	Feedback   string    `json:"feedback"`
	Goals      []string  `json:"goals"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Dataset is the full persisted state, used for backup and restore.
type Dataset struct {
	Settings schedule.Settings
	Logs     []schedule.LogEntry
	Checkins []Checkin
	Projects []Project
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
