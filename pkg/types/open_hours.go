package types

import (
	"strings"
	"time"
)

// DayHours describes a single weekday entry in a pharmacy's schedule.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// OpenHours maps lowercase weekday names ("monday") to their hours.
type OpenHours map[string]DayHours

// IsOpenAt reports whether the schedule is open at the given instant.
// A missing weekday entry, the closed flag, or malformed times all
// report closed.
func (h OpenHours) IsOpenAt(t time.Time) bool {
	if len(h) == 0 {
		return false
	}
	day, ok := h[strings.ToLower(t.Weekday().String())]
	if !ok || day.Closed {
		return false
	}

	open, ok := parseClock(day.Open)
	if !ok {
		return false
	}
	closeAt, ok := parseClock(day.Close)
	if !ok {
		return false
	}

	now := t.Hour()*60 + t.Minute()
	return now >= open && now < closeAt
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(value string) (int, bool) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}
