package timeutil

import (
	"testing"
	"time"
)

func TestMinutesSinceMidnight(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"7am", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := MinutesSinceMidnight(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("MinutesSinceMidnight(%q): expected error, got %d", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("MinutesSinceMidnight(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("MinutesSinceMidnight(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestWakingWindowMinutes(t *testing.T) {
	cases := []struct {
		wake, sleep string
		want        int
	}{
		{"07:00", "23:00", 16 * 60},
		// Sleep time past midnight
		{"07:00", "02:00", 19 * 60},
		// Identical times are a full day awake, never zero
		{"08:00", "08:00", 24 * 60},
		{"22:00", "06:00", 8 * 60},
	}

	for _, tc := range cases {
		got, err := WakingWindowMinutes(tc.wake, tc.sleep)
		if err != nil {
			t.Fatalf("WakingWindowMinutes(%q, %q): %v", tc.wake, tc.sleep, err)
		}
		if got != tc.want {
			t.Errorf("WakingWindowMinutes(%q, %q) = %d, want %d", tc.wake, tc.sleep, got, tc.want)
		}
		if got <= 0 || got > 1440 {
			t.Errorf("WakingWindowMinutes(%q, %q) = %d, outside (0, 1440]", tc.wake, tc.sleep, got)
		}
	}
}

func TestAutoInterval(t *testing.T) {
	got, err := AutoInterval("07:00", "23:00", 8)
	if err != nil {
		t.Fatalf("AutoInterval: %v", err)
	}
	if got != 120 {
		t.Errorf("AutoInterval(07:00, 23:00, 8) = %d, want 120", got)
	}

	// Rounding: 960 / 7 = 137.14 -> 137
	got, err = AutoInterval("07:00", "23:00", 7)
	if err != nil {
		t.Fatalf("AutoInterval: %v", err)
	}
	if got != 137 {
		t.Errorf("AutoInterval(07:00, 23:00, 7) = %d, want 137", got)
	}

	// Zero and negative limits resolve to the fallback, never divide
	for _, limit := range []int{0, -3} {
		got, err = AutoInterval("07:00", "23:00", limit)
		if err != nil {
			t.Fatalf("AutoInterval(limit=%d): %v", limit, err)
		}
		if got != 120 {
			t.Errorf("AutoInterval(limit=%d) = %d, want fallback 120", limit, got)
		}
	}
}

func TestResolveInterval(t *testing.T) {
	got, err := ResolveInterval(90, "07:00", "23:00", 8)
	if err != nil {
		t.Fatalf("ResolveInterval: %v", err)
	}
	if got != 90 {
		t.Errorf("ResolveInterval(90) = %d, want stored value 90", got)
	}

	// Auto sentinel resolves through AutoInterval
	got, err = ResolveInterval(0, "07:00", "23:00", 8)
	if err != nil {
		t.Fatalf("ResolveInterval: %v", err)
	}
	if got != 120 {
		t.Errorf("ResolveInterval(auto) = %d, want 120", got)
	}
}

func TestInSleepWindow(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 10, hour, min, 0, 0, time.Local)
	}

	cases := []struct {
		now         time.Time
		wake, sleep string
		want        bool
	}{
		// Overnight sleep window (23:00 -> 07:00)
		{at(23, 30), "07:00", "23:00", true},
		{at(3, 0), "07:00", "23:00", true},
		{at(6, 59), "07:00", "23:00", true},
		{at(7, 0), "07:00", "23:00", false},
		{at(12, 0), "07:00", "23:00", false},
		{at(22, 59), "07:00", "23:00", false},
		// Sleep window entirely after midnight (02:00 -> 07:00)
		{at(1, 59), "07:00", "02:00", false},
		{at(2, 0), "07:00", "02:00", true},
		{at(6, 59), "07:00", "02:00", true},
		{at(7, 0), "07:00", "02:00", false},
		{at(23, 0), "07:00", "02:00", false},
	}

	for _, tc := range cases {
		got, err := InSleepWindow(tc.now, tc.wake, tc.sleep)
		if err != nil {
			t.Fatalf("InSleepWindow(%v, %q, %q): %v", tc.now, tc.wake, tc.sleep, err)
		}
		if got != tc.want {
			t.Errorf("InSleepWindow(%s, wake=%s, sleep=%s) = %v, want %v",
				tc.now.Format("15:04"), tc.wake, tc.sleep, got, tc.want)
		}
	}
}

func TestSecondsUntilWake(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.Local)

	got, err := SecondsUntilWake(now, "07:00")
	if err != nil {
		t.Fatalf("SecondsUntilWake: %v", err)
	}
	if want := (7*60 + 30) * 60; got != want {
		t.Errorf("SecondsUntilWake at 23:30 = %d, want %d", got, want)
	}

	// Wake time still ahead today
	morning := time.Date(2026, 3, 10, 5, 0, 0, 0, time.Local)
	got, err = SecondsUntilWake(morning, "07:00")
	if err != nil {
		t.Fatalf("SecondsUntilWake: %v", err)
	}
	if want := 2 * 60 * 60; got != want {
		t.Errorf("SecondsUntilWake at 05:00 = %d, want %d", got, want)
	}

	// Exactly at wake time rolls to tomorrow
	exact := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	got, err = SecondsUntilWake(exact, "07:00")
	if err != nil {
		t.Fatalf("SecondsUntilWake: %v", err)
	}
	if want := 24 * 60 * 60; got != want {
		t.Errorf("SecondsUntilWake at wake time = %d, want %d", got, want)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{59, "0:59"},
		{61, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}

	for _, tc := range cases {
		if got := FormatSeconds(tc.seconds); got != tc.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2026, 3, 10, 15, 4, 5, 0, time.Local)
	if got := DayKey(ts); got != "2026-03-10" {
		t.Errorf("DayKey = %q, want 2026-03-10", got)
	}
	if got := DaysAgoKey(ts, 10); got != "2026-02-28" {
		t.Errorf("DaysAgoKey(10) = %q, want 2026-02-28", got)
	}
}
