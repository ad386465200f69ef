package cron

import (
	"fmt"
	"strings"
	"time"
)

// Trigger computes wall-clock fire times.
type Trigger interface {
	// Next returns the first fire time strictly after after.
	Next(after time.Time) time.Time
	String() string
}

// Daily fires every day at Hour:Minute in Location.
type Daily struct {
	Hour     int
	Minute   int
	Location *time.Location
}

func (d Daily) Next(after time.Time) time.Time {
	local := after.In(d.Location)
	next := time.Date(local.Year(), local.Month(), local.Day(), d.Hour, d.Minute, 0, 0, d.Location)
	if !next.After(after) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, d.Hour, d.Minute, 0, 0, d.Location)
	}
	return next
}

func (d Daily) String() string {
	return fmt.Sprintf("daily at %02d:%02d %s", d.Hour, d.Minute, d.Location)
}

// Monthly fires on Day of every month at Hour:Minute in Location. Day is
// limited to 1..28 so every month has it.
type Monthly struct {
	Day      int
	Hour     int
	Minute   int
	Location *time.Location
}

func (m Monthly) Next(after time.Time) time.Time {
	local := after.In(m.Location)
	next := time.Date(local.Year(), local.Month(), m.Day, m.Hour, m.Minute, 0, 0, m.Location)
	if !next.After(after) {
		next = time.Date(local.Year(), local.Month()+1, m.Day, m.Hour, m.Minute, 0, 0, m.Location)
	}
	return next
}

func (m Monthly) String() string {
	return fmt.Sprintf("monthly on day %d at %02d:%02d %s", m.Day, m.Hour, m.Minute, m.Location)
}

// ParseClock parses an HH:MM wall-clock time.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock %q, expected HH:MM: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// DailyAt builds a Daily trigger from an HH:MM string.
func DailyAt(clock string, loc *time.Location) (Daily, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return Daily{}, err
	}
	return Daily{Hour: h, Minute: m, Location: loc}, nil
}

// MonthlyAt builds a Monthly trigger from a day and an HH:MM string.
func MonthlyAt(day int, clock string, loc *time.Location) (Monthly, error) {
	if day < 1 || day > 28 {
		return Monthly{}, fmt.Errorf("invalid day of month %d, expected 1..28", day)
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return Monthly{}, err
	}
	return Monthly{Day: day, Hour: h, Minute: m, Location: loc}, nil
}
