package timeutil

import (
	"fmt"
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
)

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// MinutesSinceMidnight parses a time string (HH:MM) and returns the number
// of minutes from midnight, in [0, 1440).
func MinutesSinceMidnight(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q (expected HH:MM): %w", timeStr, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// WakingWindowMinutes returns the length of the waking window between wake
// and sleep times in minutes. Handles overnight sleep schedules (e.g. sleep
// at 02:00, wake at 07:00). Identical wake and sleep times are treated as a
// full 24-hour window, so the result is always in (0, 1440].
func WakingWindowMinutes(wakeTime, sleepTime string) (int, error) {
	wake, err := MinutesSinceMidnight(wakeTime)
	if err != nil {
		return 0, err
	}
	sleep, err := MinutesSinceMidnight(sleepTime)
	if err != nil {
		return 0, err
	}

	if sleep > wake {
		// Awake during the day (e.g. wake 07:00, sleep 23:00)
		return sleep - wake, nil
	}
	// Sleep time at or past midnight (e.g. wake 07:00, sleep 02:00)
	return 24*60 - wake + sleep, nil
}

// AutoInterval derives the pouch interval from the waking window and the
// daily limit: round(wakingMinutes / dailyLimit). A non-positive limit
// resolves to the fixed fallback instead of a division error.
func AutoInterval(wakeTime, sleepTime string, dailyLimit int) (int, error) {
	if dailyLimit <= 0 {
		return constants.FallbackIntervalMin, nil
	}
	waking, err := WakingWindowMinutes(wakeTime, sleepTime)
	if err != nil {
		return 0, err
	}
	return int(float64(waking)/float64(dailyLimit) + 0.5), nil
}

// ResolveInterval turns a stored interval into a usable one: the auto
// sentinel (and any non-positive value) is resolved via AutoInterval,
// anything else passes through.
func ResolveInterval(storedMinutes int, wakeTime, sleepTime string, dailyLimit int) (int, error) {
	if storedMinutes > constants.AutoIntervalSentinel {
		return storedMinutes, nil
	}
	return AutoInterval(wakeTime, sleepTime, dailyLimit)
}

// InSleepWindow reports whether now falls within the sleep window defined
// by the wake and sleep times, handling windows that cross midnight.
func InSleepWindow(now time.Time, wakeTime, sleepTime string) (bool, error) {
	wake, err := MinutesSinceMidnight(wakeTime)
	if err != nil {
		return false, err
	}
	sleep, err := MinutesSinceMidnight(sleepTime)
	if err != nil {
		return false, err
	}

	current := now.Hour()*60 + now.Minute()
	if sleep > wake {
		// Sleep window wraps midnight (e.g. 23:00 -> 07:00)
		return current >= sleep || current < wake, nil
	}
	// Sleep window sits within one day (e.g. 02:00 -> 07:00)
	return current >= sleep && current < wake, nil
}

// SecondsUntilWake returns the seconds from now until the next wake-time
// instant, rolling to tomorrow when today's wake time has already passed.
func SecondsUntilWake(now time.Time, wakeTime string) (int, error) {
	t, err := ParseTime(wakeTime)
	if err != nil {
		return 0, fmt.Errorf("invalid wake time %q: %w", wakeTime, err)
	}

	wake := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !wake.After(now) {
		wake = wake.AddDate(0, 0, 1)
	}
	return int(wake.Sub(now).Seconds()), nil
}

// DayKey returns the local calendar date key (YYYY-MM-DD) for a timestamp.
// All day bucketing goes through this so the timezone policy (device-local)
// is applied uniformly.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(constants.DateFormat)
}

// DaysAgoKey returns the day key for n days before now.
func DaysAgoKey(now time.Time, n int) string {
	return DayKey(now.AddDate(0, 0, -n))
}

// FormatSeconds formats a second count as "H:MM:SS", or "M:SS" under an
// hour. Non-positive values render as "0:00".
func FormatSeconds(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}

	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}
