package export

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/sadopc/interntrack/internal/calendar"
	"github.com/sadopc/interntrack/internal/schedule"
)

// Report is the input to the printable progress report.
type Report struct {
	Settings    schedule.Settings
	Active      []schedule.LogEntry
	Stats       schedule.Stats
	EndDate     calendar.Date
	EndDateSet  bool
	GeneratedAt time.Time
}

// NewReport builds a report from settings and a computed result.
func NewReport(s schedule.Settings, r schedule.Result, now time.Time) Report {
	return Report{
		Settings:    s,
		Active:      r.Active,
		Stats:       r.Stats,
		EndDate:     r.EndDate,
		EndDateSet:  r.EndDateSet,
		GeneratedAt: now,
	}
}

type reportMonth struct {
	Label string
	Rows  []reportRow
	Total string
}

type reportRow struct {
	Date  string
	Hours string
	Note  string
}

type reportView struct {
	GeneratedOn  string
	Target       string
	Accumulated  string
	GoalReached  bool
	Extra        string
	Remaining    string
	Progress     string
	WorkedDays   int
	EndDate      string
	CalendarSpan int
	Months       []reportMonth
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<title>Internship Tracker – Progress Report</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:Inter,Helvetica,Arial,sans-serif;color:#1e1b4b;background:#fff;padding:48px}
h1{font-size:2rem;font-weight:700;color:#4f46e5;margin-bottom:4px}
.sub{color:#9ca3af;font-size:.85rem;margin-bottom:32px}
.summary{background:#f5f3ff;border-radius:12px;padding:24px;margin-bottom:32px}
.summary h2{font-size:1.1rem;font-weight:700;margin-bottom:12px}
.summary p{font-size:.9rem;color:#374151;line-height:2.2}
.summary strong{color:#4f46e5}
.month-block{margin-bottom:32px}
.month-block h2{font-size:1rem;font-weight:700;border-left:4px solid #6366f1;padding-left:10px;margin-bottom:12px}
table{width:100%;border-collapse:collapse;font-size:.85rem}
th{background:#ede9fe;color:#4f46e5;text-align:left;padding:10px 12px;font-weight:600}
td{padding:8px 12px;border-bottom:1px solid #f3f4f6;color:#374151}
tr:nth-child(even) td{background:#fafafa}
.total{font-size:.85rem;color:#6366f1;font-weight:600;margin-top:8px;text-align:right}
.empty{color:#9ca3af}
@media print{body{padding:24px}}
</style>
</head>
<body>
<h1>Internship Tracker – Progress Report</h1>
<p class="sub">Generated on: {{.GeneratedOn}}</p>
<div class="summary">
<h2>Summary</h2>
<p>Target Hours: <strong>{{.Target}}</strong></p>
<p>Accumulated: <strong>{{.Accumulated}}h</strong></p>
{{if .GoalReached}}<p>Extra Hours: <strong>+{{.Extra}}h</strong></p>{{else}}<p>Remaining: <strong>{{.Remaining}}h</strong></p>{{end}}
<p>Progress: <strong>{{.Progress}}%</strong></p>
<p>Work Days Logged: <strong>{{.WorkedDays}}</strong></p>
<p>Calendar Span: <strong>{{.CalendarSpan}} days</strong></p>
<p>Projected End Date: <strong>{{.EndDate}}</strong></p>
</div>
<h2 style="font-size:1.1rem;font-weight:700;margin-bottom:16px;">Schedule Details</h2>
{{range .Months}}<div class="month-block">
<h2>{{.Label}}</h2>
<table>
<thead><tr><th>Date</th><th>Hours</th><th>Notes</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Date}}</td><td>{{.Hours}} hours</td><td>{{if .Note}}{{.Note}}{{else}}—{{end}}</td></tr>
{{end}}</tbody>
</table>
<p class="total">Month Total: <strong>{{.Total}} hours</strong></p>
</div>
{{else}}<p class="empty">No work sessions logged yet.</p>
{{end}}</body>
</html>
`))

// ToHTML writes a printable report to path. Print it from a browser to get
// a PDF.
func ToHTML(r Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := WriteHTML(f, r); err != nil {
		return err
	}
	return f.Close()
}

// WriteHTML renders the report. Only Worked entries are listed, grouped by
// month in ascending order.
func WriteHTML(w io.Writer, r Report) error {
	if err := reportTmpl.Execute(w, newReportView(r)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func newReportView(r Report) reportView {
	target := "Not set"
	if r.Settings.RequiredHours != nil {
		target = formatHours(*r.Settings.RequiredHours) + "h"
	}
	end := "Set start date & hours"
	if r.EndDateSet {
		end = r.EndDate.Format("Jan 2, 2006")
	}

	v := reportView{
		GeneratedOn:  r.GeneratedAt.Format("Jan 2, 2006, 3:04 PM"),
		Target:       target,
		Accumulated:  formatHours(r.Stats.CompletedHours),
		GoalReached:  r.Stats.IsGoalReached,
		Extra:        formatHours(r.Stats.ExtraHours),
		Remaining:    formatHours(r.Stats.RemainingHours),
		Progress:     fmt.Sprintf("%.1f", r.Stats.ProgressPercent),
		WorkedDays:   r.Stats.WorkedDays,
		EndDate:      end,
		CalendarSpan: schedule.SpanDays(r.Active),
	}

	keys, groups := schedule.ByMonth(schedule.Worked(r.Active))
	for _, k := range keys {
		logs := groups[k]
		m := reportMonth{Label: logs[0].Date.Format("January 2006")}
		var total float64
		for _, l := range logs {
			total += l.Hours
			m.Rows = append(m.Rows, reportRow{
				Date:  fmt.Sprintf("%s (%s)", l.Date, l.Date.Format("Mon")),
				Hours: formatHours(l.Hours),
				Note:  l.Note,
			})
		}
		m.Total = formatHours(total)
		v.Months = append(v.Months, m)
	}
	return v
}
