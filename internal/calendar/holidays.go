package calendar

import "sort"

// HolidayKind distinguishes regular holidays from special non-working days.
type HolidayKind string

const (
	Regular HolidayKind = "regular"
	Special HolidayKind = "special"
)

// Holiday is a single entry of a holiday table.
type Holiday struct {
	Date Date
	Name string
	Kind HolidayKind
}

// HolidayLookup reports the holiday on a given date, if any.
type HolidayLookup interface {
	Lookup(d Date) (Holiday, bool)
}

// HolidayTable is an immutable date-keyed holiday set.
type HolidayTable struct {
	byDate map[string]Holiday
	list   []Holiday
}

// NewHolidayTable builds a table from holidays. A later entry for the same
// date replaces an earlier one.
func NewHolidayTable(holidays []Holiday) HolidayTable {
	t := HolidayTable{byDate: make(map[string]Holiday, len(holidays))}
	for _, h := range holidays {
		t.byDate[h.Date.String()] = h
	}
	for _, h := range t.byDate {
		t.list = append(t.list, h)
	}
	SortHolidays(t.list)
	return t
}

// Lookup returns the holiday on d. Absence is a normal result.
func (t HolidayTable) Lookup(d Date) (Holiday, bool) {
	h, ok := t.byDate[d.String()]
	return h, ok
}

// All returns the table's holidays sorted by date.
func (t HolidayTable) All() []Holiday {
	out := make([]Holiday, len(t.list))
	copy(out, t.list)
	return out
}

// SortHolidays sorts holidays by date in ascending order.
func SortHolidays(hs []Holiday) {
	sort.Slice(hs, func(i, j int) bool {
		return hs[i].Date.Before(hs[j].Date)
	})
}

// Philippines2026 holds the Philippine regular and special non-working
// holidays proclaimed for 2026.
var Philippines2026 = NewHolidayTable([]Holiday{
	{MustParseDate("2026-01-01"), "New Year's Day", Regular},
	{MustParseDate("2026-02-25"), "EDSA People Power Revolution Anniversary", Special},
	{MustParseDate("2026-03-20"), "Eid'l Fitr (Feast of Ramadan)", Regular},
	{MustParseDate("2026-04-02"), "Maundy Thursday", Regular},
	{MustParseDate("2026-04-03"), "Good Friday", Regular},
	{MustParseDate("2026-04-04"), "Black Saturday", Special},
	{MustParseDate("2026-04-09"), "Araw ng Kagitingan (Day of Valor)", Regular},
	{MustParseDate("2026-05-01"), "Labor Day", Regular},
	{MustParseDate("2026-05-27"), "Eid'l Adha (Feast of Sacrifice)", Regular},
	{MustParseDate("2026-06-12"), "Independence Day", Regular},
	{MustParseDate("2026-08-21"), "Ninoy Aquino Day", Special},
	{MustParseDate("2026-08-31"), "National Heroes Day", Regular},
	{MustParseDate("2026-11-01"), "All Saints' Day", Special},
	{MustParseDate("2026-11-02"), "All Souls' Day", Special},
	{MustParseDate("2026-11-30"), "Bonifacio Day", Regular},
	{MustParseDate("2026-12-08"), "Feast of the Immaculate Conception", Special},
	{MustParseDate("2026-12-24"), "Christmas Eve", Special},
	{MustParseDate("2026-12-25"), "Christmas Day", Regular},
	{MustParseDate("2026-12-30"), "Rizal Day", Regular},
	{MustParseDate("2026-12-31"), "Last Day of the Year", Special},
})

// Label returns a human label for the holiday kind.
func (k HolidayKind) Label() string {
	if k == Regular {
		return "Regular Holiday"
	}
	return "Special Non-Working"
}
