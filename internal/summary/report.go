package summary

import "time"

type WindowName string

const (
	WindowLast7Days  WindowName = "last_7_days"
	WindowLast31Days WindowName = "last_31_days"
	WindowThisWeek   WindowName = "this_week"
	WindowThisMonth  WindowName = "this_month"
	WindowProjection WindowName = "projection_end_of_month"
)

// Windows lists the report windows in presentation order.
var Windows = []WindowName{
	WindowLast7Days,
	WindowLast31Days,
	WindowThisWeek,
	WindowThisMonth,
	WindowProjection,
}

var windowLabels = map[WindowName]string{
	WindowLast7Days:  "Last 7 Days",
	WindowLast31Days: "Last 31 Days",
	WindowThisWeek:   "This Week",
	WindowThisMonth:  "This Month",
	WindowProjection: "Projection End Of Month",
}

func (w WindowName) Label() string {
	if l, ok := windowLabels[w]; ok {
		return l
	}
	return string(w)
}

type Window struct {
	Name  WindowName `json:"name"`
	Since time.Time  `json:"since"`
	Sums  Sums       `json:"sums"`
}

type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Windows     []Window  `json:"windows"`
}

// Get returns the sums for a window, or nil when the report lacks it.
func (r Report) Get(name WindowName) Sums {
	for _, w := range r.Windows {
		if w.Name == name {
			return w.Sums
		}
	}
	return nil
}

// Build computes every report window relative to now. Calendar boundaries
// (week, month) are taken in now's location.
func Build(records []Record, now time.Time) Report {
	monthStart := StartOfMonth(now)
	month := SummarizeSince(records, monthStart)

	last7 := now.AddDate(0, 0, -7)
	last31 := now.AddDate(0, 0, -31)
	week := StartOfWeek(now)

	return Report{
		GeneratedAt: now,
		Windows: []Window{
			{Name: WindowLast7Days, Since: last7, Sums: SummarizeSince(records, last7)},
			{Name: WindowLast31Days, Since: last31, Sums: SummarizeSince(records, last31)},
			{Name: WindowThisWeek, Since: week, Sums: SummarizeSince(records, week)},
			{Name: WindowThisMonth, Since: monthStart, Sums: month},
			{Name: WindowProjection, Since: monthStart, Sums: projectSums(month, now)},
		},
	}
}
