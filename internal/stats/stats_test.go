package stats

import (
	"testing"
	"time"

	"github.com/pouchfree/pouchfree/internal/models"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

// logsOn creates n logs at midday on the day `daysAgo` days before now
func logsOn(daysAgo, n int) []models.UsageLog {
	day := now.AddDate(0, 0, -daysAgo)
	logs := make([]models.UsageLog, n)
	for i := range logs {
		logs[i] = models.UsageLog{
			ID:         "log",
			Timestamp:  time.Date(day.Year(), day.Month(), day.Day(), 10+i, 0, 0, 0, time.Local),
			StrengthMg: 6,
		}
	}
	return logs
}

func cfg(baseline int) models.UserConfig {
	return models.UserConfig{
		BaselineDailyPouches: baseline,
		StartDate:            now.Add(-20 * 24 * time.Hour),
	}
}

func TestCompute_StreakScenario(t *testing.T) {
	// 3 per day for days -1..-6 (baseline 5, all under), 2 today
	var logs []models.UsageLog
	for d := 1; d <= 6; d++ {
		logs = append(logs, logsOn(d, 3)...)
	}
	logs = append(logs, logsOn(0, 2)...)

	s := Compute(logs, cfg(5), now)

	if s.CurrentStreak != 7 {
		t.Errorf("currentStreak = %d, want 7", s.CurrentStreak)
	}
	if s.LongestStreak < 6 {
		t.Errorf("longestStreak = %d, want >= 6", s.LongestStreak)
	}
	if s.TodayCount != 2 {
		t.Errorf("todayCount = %d, want 2", s.TodayCount)
	}
}

func TestCompute_RestDaysDoNotBreakStreak(t *testing.T) {
	// Under-limit days at -1, -2, -5, -6 with logless gaps at -3 and -4
	var logs []models.UsageLog
	for _, d := range []int{1, 2, 5, 6} {
		logs = append(logs, logsOn(d, 2)...)
	}

	s := Compute(logs, cfg(5), now)

	if s.CurrentStreak != 4 {
		t.Errorf("currentStreak = %d, want 4 (rest days skipped)", s.CurrentStreak)
	}
}

func TestCompute_OverLimitDayBreaksStreak(t *testing.T) {
	var logs []models.UsageLog
	logs = append(logs, logsOn(1, 2)...)
	logs = append(logs, logsOn(2, 2)...)
	logs = append(logs, logsOn(3, 9)...) // over limit, streak breaks here
	logs = append(logs, logsOn(4, 2)...)
	logs = append(logs, logsOn(5, 2)...)
	logs = append(logs, logsOn(6, 2)...)

	s := Compute(logs, cfg(5), now)

	if s.CurrentStreak != 2 {
		t.Errorf("currentStreak = %d, want 2", s.CurrentStreak)
	}
	if s.LongestStreak != 3 {
		t.Errorf("longestStreak = %d, want 3 (days -4..-6)", s.LongestStreak)
	}
	if s.CurrentStreak > s.LongestStreak {
		t.Errorf("currentStreak %d exceeds longestStreak %d", s.CurrentStreak, s.LongestStreak)
	}
}

func TestCompute_TodayWithoutLogsGetsNoCredit(t *testing.T) {
	var logs []models.UsageLog
	for d := 1; d <= 3; d++ {
		logs = append(logs, logsOn(d, 2)...)
	}

	s := Compute(logs, cfg(5), now)

	if s.CurrentStreak != 3 {
		t.Errorf("currentStreak = %d, want 3 (today has no data yet)", s.CurrentStreak)
	}
}

func TestCompute_ReductionInsufficientData(t *testing.T) {
	// Only 2 completed days with data: below the 3-day minimum
	var logs []models.UsageLog
	logs = append(logs, logsOn(1, 4)...)
	logs = append(logs, logsOn(2, 4)...)
	logs = append(logs, logsOn(0, 5)...) // today never counts toward reduction

	s := Compute(logs, cfg(10), now)

	if s.ReductionPercent != nil {
		t.Errorf("reductionPercent = %d, want nil with insufficient data", *s.ReductionPercent)
	}
	if s.DaysWithData != 2 {
		t.Errorf("daysWithData = %d, want 2", s.DaysWithData)
	}
	if s.ReductionExceedsBaseline {
		t.Error("reductionExceedsBaseline should be false with insufficient data")
	}
}

func TestCompute_ReductionPercent(t *testing.T) {
	// 4 per day over 5 completed days, baseline 10 -> 60% reduction
	var logs []models.UsageLog
	for d := 1; d <= 5; d++ {
		logs = append(logs, logsOn(d, 4)...)
	}

	s := Compute(logs, cfg(10), now)

	if s.ReductionPercent == nil {
		t.Fatal("reductionPercent = nil, want 60")
	}
	if *s.ReductionPercent != 60 {
		t.Errorf("reductionPercent = %d, want 60", *s.ReductionPercent)
	}
	if s.ReductionExceedsBaseline {
		t.Error("reductionExceedsBaseline should be false at 60% reduction")
	}
	if s.CurrentAverage != 4.0 {
		t.Errorf("currentAverage = %f, want 4.0", s.CurrentAverage)
	}
}

func TestCompute_ReductionExceedsBaseline(t *testing.T) {
	// 12 per day against a baseline of 10: clamped to 0 with the flag set,
	// which is a different user-facing state from a plain 0%
	var logs []models.UsageLog
	for d := 1; d <= 4; d++ {
		logs = append(logs, logsOn(d, 12)...)
	}

	s := Compute(logs, cfg(10), now)

	if s.ReductionPercent == nil {
		t.Fatal("reductionPercent = nil, want clamped 0")
	}
	if *s.ReductionPercent != 0 {
		t.Errorf("reductionPercent = %d, want 0", *s.ReductionPercent)
	}
	if !s.ReductionExceedsBaseline {
		t.Error("expected reductionExceedsBaseline = true")
	}
}

func TestCompute_ReductionMonotonic(t *testing.T) {
	// Decreasing usage never decreases the reduction percent
	prev := -1
	for perDay := 9; perDay >= 1; perDay-- {
		var logs []models.UsageLog
		for d := 1; d <= 5; d++ {
			logs = append(logs, logsOn(d, perDay)...)
		}
		s := Compute(logs, cfg(10), now)
		if s.ReductionPercent == nil {
			t.Fatalf("perDay=%d: reductionPercent = nil", perDay)
		}
		if *s.ReductionPercent < prev {
			t.Errorf("perDay=%d: reduction %d dropped below previous %d", perDay, *s.ReductionPercent, prev)
		}
		prev = *s.ReductionPercent
	}
}

func TestCompute_WeeklyMonthlyAggregates(t *testing.T) {
	var logs []models.UsageLog
	for d := 0; d <= 9; d++ {
		logs = append(logs, logsOn(d, 2)...)
	}

	s := Compute(logs, cfg(10), now)

	if len(s.WeeklyData) != 7 {
		t.Fatalf("weeklyData has %d days, want 7", len(s.WeeklyData))
	}
	if s.WeeklyTotal != 14 {
		t.Errorf("weeklyTotal = %d, want 14", s.WeeklyTotal)
	}
	if s.WeeklyAverage != 2.0 {
		t.Errorf("weeklyAverage = %f, want 2.0", s.WeeklyAverage)
	}
	if len(s.MonthlyData) != 30 {
		t.Fatalf("monthlyData has %d days, want 30", len(s.MonthlyData))
	}
	if s.MonthlyTotal != 20 {
		t.Errorf("monthlyTotal = %d, want 20", s.MonthlyTotal)
	}
	// 20 pouches over 10 days with data
	if s.MonthlyAverage != 2.0 {
		t.Errorf("monthlyAverage = %f, want 2.0", s.MonthlyAverage)
	}
	// Chronological order, ending today
	if s.WeeklyData[6].Date != s.MonthlyData[29].Date {
		t.Error("weekly and monthly views should both end on today")
	}
}

func TestCompute_MonthlyAverageNoData(t *testing.T) {
	s := Compute(nil, cfg(10), now)
	if s.MonthlyAverage != 0 {
		t.Errorf("monthlyAverage = %f, want 0 with no data", s.MonthlyAverage)
	}
	if s.CurrentStreak != 0 || s.LongestStreak != 0 {
		t.Errorf("streaks = %d/%d, want 0/0 with no data", s.CurrentStreak, s.LongestStreak)
	}
}

func TestCompute_TriggerCounts(t *testing.T) {
	logs := []models.UsageLog{
		{ID: "1", Timestamp: now, Trigger: models.TriggerStress},
		{ID: "2", Timestamp: now, Trigger: models.TriggerStress},
		{ID: "3", Timestamp: now, Trigger: models.TriggerHabit},
		{ID: "4", Timestamp: now},
	}

	s := Compute(logs, cfg(10), now)

	if s.TriggerCounts[models.TriggerStress] != 2 {
		t.Errorf("stress count = %d, want 2", s.TriggerCounts[models.TriggerStress])
	}
	if s.TriggerCounts[models.TriggerHabit] != 1 {
		t.Errorf("habit count = %d, want 1", s.TriggerCounts[models.TriggerHabit])
	}
	if len(s.TriggerCounts) != 2 {
		t.Errorf("trigger map has %d entries, want 2 (untriggered logs excluded)", len(s.TriggerCounts))
	}
}

func TestCompute_DaysSinceStart(t *testing.T) {
	s := Compute(nil, cfg(10), now)
	if s.DaysSinceStart != 20 {
		t.Errorf("daysSinceStart = %d, want 20", s.DaysSinceStart)
	}

	// Zero start date means started now, not decades ago
	s = Compute(nil, models.UserConfig{BaselineDailyPouches: 10}, now)
	if s.DaysSinceStart != 0 {
		t.Errorf("daysSinceStart = %d, want 0 for zero start date", s.DaysSinceStart)
	}
}
