package calendar

import "fmt"

// Week identifies a Monday-to-Sunday week.
type Week struct {
	ID    string // "2026-W07"
	Label string // "Feb 16 – Feb 22, 2026"
	Start Date   // Monday
	End   Date   // Sunday
}

// WeekOf returns the week containing d. Weeks start on Monday; the week
// number counts weeks from January 1 of the Monday's year.
func WeekOf(d Date) Week {
	offset := (int(d.Weekday()) + 6) % 7
	mon := d.AddDays(-offset)
	sun := mon.AddDays(6)
	num := (mon.YearDay() + 6) / 7
	return Week{
		ID:    fmt.Sprintf("%d-W%02d", mon.Year(), num),
		Label: fmt.Sprintf("%s – %s, %d", mon.Format("Jan 2"), sun.Format("Jan 2"), mon.Year()),
		Start: mon,
		End:   sun,
	}
}

// MonthDays returns every date of the month containing d.
func MonthDays(d Date) []Date {
	first := NewDate(d.Year(), d.Month(), 1)
	var days []Date
	for cur := first; cur.Month() == first.Month(); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}
