package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	TARGET CalendarID = "TARGET"
	JPN    CalendarID = "JPN"
	USD    CalendarID = "USD"
	KRW    CalendarID = "KRW"
)

var targetHolidays = map[string]struct{}{}
var jpnHolidays = map[string]struct{}{}
var usdHolidays = map[string]struct{}{}
var krwHolidays = map[string]struct{}{}

func init() {
	// Initialize KRW holidays from Korea Exchange data
	krwHolidays = make(map[string]struct{}, len(koreaHolidayList))
	for _, h := range koreaHolidayList {
		krwHolidays[h] = struct{}{}
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	key := t.Format("2006-01-02")
	switch cal {
	case TARGET:
		_, ok := targetHolidays[key]
		return ok
	case JPN:
		_, ok := jpnHolidays[key]
		return ok
	case USD:
		_, ok := usdHolidays[key]
		return ok
	case KRW:
		_, ok := krwHolidays[key]
		return ok
	default:
		return false
	}
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// BusinessDayCount counts the business days in (start, end].
//
// Walking AddBusinessDays(cal, start, 1) repeatedly visits exactly
// BusinessDayCount(cal, start, end) dates on or before end. If end is before
// start the count is negative and symmetric.
func BusinessDayCount(cal CalendarID, start, end time.Time) int {
	if end.Before(start) {
		return -BusinessDayCount(cal, end, start)
	}
	n := 0
	for t := start; t.Before(end); {
		t = t.AddDate(0, 0, 1)
		if IsBusinessDay(cal, t) {
			n++
		}
	}
	return n
}
