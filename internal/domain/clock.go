package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay is the shift applied by the next-day flag.
	MinutesPerDay = 24 * 60

	nextDaySuffix = "+1"
)

// ClockTime is a wall-clock instant inside a 48 hour window.
// IsNextDay moves the instant into the second day.
type ClockTime struct {
	Hour      int
	Minute    int
	IsNextDay bool
}

// NewClockTime creates a ClockTime, rejecting out-of-range hour or minute.
func NewClockTime(hour, minute int, nextDay bool) (ClockTime, error) {
	if hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: %d", ErrInvalidMinute, minute)
	}
	return ClockTime{Hour: hour, Minute: minute, IsNextDay: nextDay}, nil
}

// ParseClockTime parses "HH:MM" or "H:MM", optionally suffixed with "+1"
// to mark the next day (e.g. "06:00+1").
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	nextDay := false
	if strings.HasSuffix(s, nextDaySuffix) {
		nextDay = true
		s = strings.TrimSpace(strings.TrimSuffix(s, nextDaySuffix))
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 ||
		!isDigits(parts[0]) || !isDigits(parts[1]) {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockFormat, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockFormat, s)
	}
	return NewClockTime(hour, minute, nextDay)
}

// ParseClockRange parses "START-END", e.g. "22:00-06:00+1".
func ParseClockRange(s string) (ClockTime, ClockTime, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return ClockTime{}, ClockTime{}, fmt.Errorf("%w: %q (want START-END)", ErrInvalidClockFormat, s)
	}
	start, err := ParseClockTime(startStr)
	if err != nil {
		return ClockTime{}, ClockTime{}, err
	}
	end, err := ParseClockTime(endStr)
	if err != nil {
		return ClockTime{}, ClockTime{}, err
	}
	return start, end, nil
}

// AbsoluteMinutes returns minutes since the start of day 0.
// The range is not re-validated here.
func (t ClockTime) AbsoluteMinutes() int {
	base := 0
	if t.IsNextDay {
		base = MinutesPerDay
	}
	return base + t.Hour*60 + t.Minute
}

// String renders the parseable form, including the "+1" marker.
func (t ClockTime) String() string {
	if t.IsNextDay {
		return FormatClock(t) + nextDaySuffix
	}
	return FormatClock(t)
}

// Duration returns the signed number of minutes from a to b.
func Duration(a, b ClockTime) int {
	return b.AbsoluteMinutes() - a.AbsoluteMinutes()
}

// FormatClock renders HH:MM. The next-day flag is not shown.
func FormatClock(t ClockTime) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// FormatDuration renders minutes as "Xh Ym". minutes must not be negative.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
