package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"memento/internal/client/models"
)

// nowFn is a test seam for the current time.
var nowFn = time.Now

// Calendar renders a month grid of the cached journal. Days with at least
// one entry are marked with a dot, matching the journal's day-by-day view.
func (a *App) Calendar(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, "Month as YYYY-MM (empty for current)", os.Stdout)
	if err != nil {
		return err
	}

	now := nowFn()
	year, month := now.Year(), now.Month()
	if raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			printlnFn("Invalid month:", raw)
			return err
		}
		year, month = parsed.Year(), parsed.Month()
	}

	summary := a.journal.Month(year, month, now.Location())

	printlnFn(fmt.Sprintf("%s %d", month, year))
	printlnFn("Mo  Tu  We  Th  Fr  Sa  Su")

	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	// time.Weekday starts on Sunday; shift so Monday is column zero.
	offset := (int(first.Weekday()) + 6) % 7
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var row []string
	for i := 0; i < offset; i++ {
		row = append(row, "   ")
	}
	for d := 1; d <= daysInMonth; d++ {
		cell := fmt.Sprintf("%2d", d)
		if summary.Days[d] > 0 {
			cell += "*"
		} else {
			cell += " "
		}
		row = append(row, cell)
		if len(row) == 7 {
			printlnFn(strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		printlnFn(strings.Join(row, " "))
	}

	logged := len(summary.Days)
	printlnFn(fmt.Sprintf("%d days with entries", logged))
	return nil
}

// Stats prints aggregate counters over the cached journal: total entries,
// favorites, the current learning streak and per-category counts.
func (a *App) Stats(ctx context.Context) error {
	stats := a.journal.StatsAt(nowFn())

	printlnFn(fmt.Sprintf("Learned: %d items", stats.Total))
	printlnFn(fmt.Sprintf("Streak: %d days", stats.Streak))
	printlnFn(fmt.Sprintf("Favorites: %d", stats.Favorites))
	for _, category := range models.Categories() {
		if n := stats.ByCategory[category]; n > 0 {
			printlnFn(fmt.Sprintf("  %-7s %d", category, n))
		}
	}
	return nil
}
