package workday

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/holiday"
)

// FallbackDaysPerMonth is the working-day estimate per month used when the
// holiday calendar cannot be reached.
const FallbackDaysPerMonth = 22

// Calculator counts business days: Monday to Friday, minus national holidays.
type Calculator struct {
	holidays holiday.Provider
}

func NewCalculator(holidays holiday.Provider) *Calculator {
	return &Calculator{holidays: holidays}
}

// WorkingDays counts the working days of the inclusive range [start, end].
// Only calendar dates matter; times of day are ignored. If any year of the
// range cannot be resolved against the holiday calendar the result is the
// month estimate instead.
func (c *Calculator) WorkingDays(ctx context.Context, start, end time.Time) int {
	start, end = truncateDay(start), truncateDay(end)
	if end.Before(start) {
		return 0
	}

	off := make(map[string]struct{})
	for year := start.Year(); year <= end.Year(); year++ {
		list, err := c.holidays.Holidays(ctx, year)
		if err != nil {
			estimate := MonthsSpanned(start, end) * FallbackDaysPerMonth
			slog.Warn("Holiday calendar unavailable, estimating working days",
				"year", year,
				"start", holiday.DateKey(start),
				"end", holiday.DateKey(end),
				"estimate", estimate,
				"error", err,
			)
			return estimate
		}
		for _, h := range list {
			off[holiday.DateKey(h.Date)] = struct{}{}
		}
	}

	return countWorkingDays(start, end, off)
}

func countWorkingDays(start, end time.Time, off map[string]struct{}) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			continue
		}
		if _, ok := off[holiday.DateKey(d)]; ok {
			continue
		}
		count++
	}
	return count
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MonthsSpanned counts the calendar months touched by [start, end], both ends included.
func MonthsSpanned(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}

// MonthRange returns the first and last day of a calendar month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return first, first.AddDate(0, 1, -1)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
