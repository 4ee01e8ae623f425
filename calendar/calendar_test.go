package calendar_test

import (
	"testing"
	"time"

	"github.com/meenmo/optlib/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddBusinessDays_Weekend(t *testing.T) {
	t.Parallel()

	friday := date(2025, 6, 6)
	if got := calendar.AddBusinessDays(calendar.USD, friday, 1); !got.Equal(date(2025, 6, 9)) {
		t.Fatalf("Friday+1: got %s", got.Format("2006-01-02"))
	}
	if got := calendar.AddBusinessDays(calendar.USD, friday, -5); !got.Equal(date(2025, 5, 30)) {
		t.Fatalf("Friday-5: got %s", got.Format("2006-01-02"))
	}
}

func TestAddBusinessDays_KoreanHolidays(t *testing.T) {
	t.Parallel()

	// 2025 Chuseok closes the KRX from Oct 3 (National Foundation Day)
	// through Oct 9 (Hangul Day).
	thursday := date(2025, 10, 2)
	if got := calendar.AddBusinessDays(calendar.KRW, thursday, 1); !got.Equal(date(2025, 10, 10)) {
		t.Fatalf("across Chuseok: got %s", got.Format("2006-01-02"))
	}
	if calendar.IsBusinessDay(calendar.KRW, date(2025, 10, 6)) {
		t.Fatalf("2025-10-06 should not be a KRW business day")
	}
}

func TestBusinessDayCount(t *testing.T) {
	t.Parallel()

	start := date(2025, 6, 2) // Monday
	cases := []struct {
		end  time.Time
		want int
	}{
		{date(2025, 6, 2), 0},
		{date(2025, 6, 3), 1},
		{date(2025, 6, 6), 4},
		{date(2025, 6, 7), 4}, // Saturday adds nothing
		{date(2025, 6, 9), 5},
		{date(2025, 6, 27), 19},
	}
	for _, tc := range cases {
		if got := calendar.BusinessDayCount(calendar.USD, start, tc.end); got != tc.want {
			t.Fatalf("count to %s: got %d want %d", tc.end.Format("2006-01-02"), got, tc.want)
		}
	}

	if got := calendar.BusinessDayCount(calendar.USD, date(2025, 6, 27), start); got != -19 {
		t.Fatalf("reversed count: got %d want -19", got)
	}
}

func TestBusinessDayCount_MatchesWalk(t *testing.T) {
	t.Parallel()

	// Walking one business day at a time must visit exactly
	// BusinessDayCount dates.
	start := date(2025, 9, 30)
	end := date(2025, 10, 31)
	n := calendar.BusinessDayCount(calendar.KRW, start, end)

	steps := 0
	for d := start; ; {
		d = calendar.AddBusinessDays(calendar.KRW, d, 1)
		if d.After(end) {
			break
		}
		steps++
	}
	if steps != n {
		t.Fatalf("walk visited %d days, count says %d", steps, n)
	}
}

func TestAdjust_ModifiedFollowing(t *testing.T) {
	t.Parallel()

	// 2025-08-31 is a Sunday; Following would cross into September, so
	// Modified Following rolls back to Friday Aug 29.
	if got := calendar.Adjust(calendar.USD, date(2025, 8, 31)); !got.Equal(date(2025, 8, 29)) {
		t.Fatalf("month-end Sunday: got %s", got.Format("2006-01-02"))
	}
	// Mid-month weekends roll forward.
	if got := calendar.Adjust(calendar.USD, date(2025, 6, 7)); !got.Equal(date(2025, 6, 9)) {
		t.Fatalf("mid-month Saturday: got %s", got.Format("2006-01-02"))
	}
	// Business days stay put.
	if got := calendar.Adjust(calendar.USD, date(2025, 6, 6)); !got.Equal(date(2025, 6, 6)) {
		t.Fatalf("business day moved to %s", got.Format("2006-01-02"))
	}
}

func TestAdjustFollowing(t *testing.T) {
	t.Parallel()

	// Oct 3 2025 starts the KRX Chuseok closure; the next open day is Oct 10.
	if got := calendar.AdjustFollowing(calendar.KRW, date(2025, 10, 3)); !got.Equal(date(2025, 10, 10)) {
		t.Fatalf("across Chuseok: got %s", got.Format("2006-01-02"))
	}
	// Unlike Modified Following, month boundaries are crossed freely.
	if got := calendar.AdjustFollowing(calendar.USD, date(2025, 8, 31)); !got.Equal(date(2025, 9, 1)) {
		t.Fatalf("month-end Sunday: got %s", got.Format("2006-01-02"))
	}
}
