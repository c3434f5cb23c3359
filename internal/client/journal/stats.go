package journal

import (
	"time"

	"memento/internal/client/models"
)

// MonthSummary maps each day of one month to the number of cached entries
// created on it. Days without entries are absent from the map.
type MonthSummary struct {
	Year  int
	Month time.Month
	Days  map[int]int
}

// Month summarizes the cached entries for one calendar month. Timestamps
// are interpreted in loc, matching how the user sees their journal days.
func (s *Service) Month(year int, month time.Month, loc *time.Location) MonthSummary {
	summary := MonthSummary{Year: year, Month: month, Days: map[int]int{}}
	for _, e := range s.cache.Entries() {
		t := e.CreatedAt.In(loc)
		if t.Year() == year && t.Month() == month {
			summary.Days[t.Day()]++
		}
	}
	return summary
}

// Stats are aggregate counters over the cached entries.
type Stats struct {
	Total      int
	Favorites  int
	Streak     int
	ByCategory map[models.Category]int
}

// StatsAt computes totals and the learning streak as of now: the number of
// consecutive days with at least one entry, ending today, or ending
// yesterday when nothing has been logged yet today.
func (s *Service) StatsAt(now time.Time) Stats {
	stats := Stats{ByCategory: map[models.Category]int{}}

	days := map[string]bool{}
	for _, e := range s.cache.Entries() {
		stats.Total++
		if e.IsFavorite {
			stats.Favorites++
		}
		stats.ByCategory[e.Category]++
		days[e.CreatedAt.In(now.Location()).Format(time.DateOnly)] = true
	}

	day := now
	if !days[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format(time.DateOnly)] {
		stats.Streak++
		day = day.AddDate(0, 0, -1)
	}

	return stats
}
