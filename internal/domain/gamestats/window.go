package gamestats

import "time"

const DefaultActivityWeeks = 12

// ActivityDay is one cell of the activity heatmap. IsFuture marks days after
// the reference date so they can be told apart from days without games.
type ActivityDay struct {
	Date     string
	Total    int
	IsFuture bool
}

// WeekStart returns midnight UTC of the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := truncateDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// BuildWindow spreads a sparse by-day facet over weeks*7 contiguous days,
// ending on the Sunday of the reference week.
func BuildWindow(byDay []Breakdown, weeks int, reference time.Time) []ActivityDay {
	if weeks <= 0 {
		weeks = DefaultActivityWeeks
	}

	totals := make(map[string]int, len(byDay))
	for _, b := range byDay {
		totals[b.Key] += b.Total
	}

	today := truncateDay(reference)
	start := WeekStart(reference).AddDate(0, 0, -7*(weeks-1))
	days := weeks * 7

	out := make([]ActivityDay, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(DayLayout)
		out = append(out, ActivityDay{
			Date:     key,
			Total:    totals[key],
			IsFuture: day.After(today),
		})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
