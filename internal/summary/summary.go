// Package summary aggregates expense records into per-category sums over
// calendar windows and extrapolates month-to-date spending to the full month.
//
// Every function here is pure; records are never mutated.
package summary

import "time"

// TotalKey is the synthetic key carrying the sum of all included amounts.
const TotalKey = "total"

type Record struct {
	Timestamp time.Time
	Category  string
	Amount    float64
}

// Sums maps a category (plus TotalKey) to a summed amount.
type Sums map[string]float64

func (s Sums) Total() float64 {
	return s[TotalKey]
}

// Summarize sums every record by category.
func Summarize(records []Record) Sums {
	return sum(records, time.Time{}, false)
}

// SummarizeSince sums records whose timestamp is not before since.
func SummarizeSince(records []Record, since time.Time) Sums {
	return sum(records, since, true)
}

func sum(records []Record, since time.Time, filter bool) Sums {
	out := Sums{TotalKey: 0}
	for _, r := range records {
		if filter && r.Timestamp.Before(since) {
			continue
		}
		out[r.Category] += r.Amount
		out[TotalKey] += r.Amount
	}
	return out
}

// StartOfWeek returns Monday 00:00 of the week containing now, in now's location.
func StartOfWeek(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

// StartOfMonth returns day 1 00:00 of now's month, in now's location.
func StartOfMonth(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}

// MonthProgress returns the days elapsed in now's month, today included, and
// the number of days in that month. daysPassed is always at least 1.
func MonthProgress(now time.Time) (daysPassed, totalDays int) {
	y, m, d := now.Date()
	// day 0 of the next month normalizes to the last day of this one
	return d, time.Date(y, m+1, 0, 0, 0, 0, 0, now.Location()).Day()
}

// Project linearly extrapolates month-to-date sums to the whole month:
// sum / daysPassed * totalDays for every key, total included. It is a naive
// run-rate estimate, not a forecast.
func Project(records []Record, now time.Time) Sums {
	return projectSums(SummarizeSince(records, StartOfMonth(now)), now)
}

func projectSums(monthToDate Sums, now time.Time) Sums {
	daysPassed, totalDays := MonthProgress(now)
	out := make(Sums, len(monthToDate))
	for k, v := range monthToDate {
		out[k] = v / float64(daysPassed) * float64(totalDays)
	}
	return out
}
