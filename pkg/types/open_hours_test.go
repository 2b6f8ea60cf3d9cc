package types

import (
	"testing"
	"time"
)

// 2026-08-31 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, time.August, 31, hour, minute, 0, 0, time.UTC)
}

func TestOpenHoursIsOpenAt(t *testing.T) {
	hours := OpenHours{
		"monday": {Open: "09:00", Close: "20:00"},
		"sunday": {Closed: true},
	}

	if !hours.IsOpenAt(mondayAt(10, 0)) {
		t.Fatal("expected open Monday 10:00")
	}
	if hours.IsOpenAt(mondayAt(21, 0)) {
		t.Fatal("expected closed Monday 21:00")
	}
	if hours.IsOpenAt(mondayAt(8, 59)) {
		t.Fatal("expected closed before opening")
	}
	if !hours.IsOpenAt(mondayAt(9, 0)) {
		t.Fatal("expected open at opening minute")
	}
	if hours.IsOpenAt(mondayAt(20, 0)) {
		t.Fatal("close time is exclusive")
	}

	sunday := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	if hours.IsOpenAt(sunday) {
		t.Fatal("closed flag should win")
	}

	tuesday := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	if hours.IsOpenAt(tuesday) {
		t.Fatal("missing weekday entry reports closed")
	}
}

func TestOpenHoursMalformedTimes(t *testing.T) {
	hours := OpenHours{"monday": {Open: "9am", Close: "late"}}
	if hours.IsOpenAt(mondayAt(12, 0)) {
		t.Fatal("malformed schedule must report closed")
	}
	if (OpenHours)(nil).IsOpenAt(mondayAt(12, 0)) {
		t.Fatal("nil schedule reports closed")
	}
}
