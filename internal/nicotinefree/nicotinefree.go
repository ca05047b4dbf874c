// Package nicotinefree tracks the zero-strength streak that marks the last
// stretch of the tapering journey. A day only counts once it has at least one
// log; days without data are unknown and end a streak rather than extend it.
package nicotinefree

import (
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

// Progress is the derived nicotine-free view for a single instant.
type Progress struct {
	// InNicotineFreePhase is true on the final tapering phase or any
	// phase whose target strength is already zero.
	InNicotineFreePhase bool

	ConsecutiveNicotineFreeDays int
	TotalNicotineFreeDays       int

	TodayTotalCount  int
	TodayZeroMgCount int
	HasZeroMgToday   bool
	IsPouchFreeToday bool

	ProgressToFreedomWeek float64
	HasFreedomWeek        bool
}

// Compute derives the nicotine-free progress from the non-deleted log
// history, the tapering plan, and the config's current phase pointer.
func Compute(logs []models.UsageLog, phases []models.TaperingPhase, cfg models.UserConfig, now time.Time) Progress {
	models.ApplyConfigDefaults(&cfg)

	var p Progress

	if phase := models.FindPhase(phases, cfg.CurrentPhase); phase != nil {
		p.InNicotineFreePhase = phase.PhaseNumber == models.FinalPhaseNumber(phases) || phase.StrengthMg == 0
	}

	byDay := models.LogsByDay(logs)

	today := byDay[timeutil.DayKey(now)]
	p.TodayTotalCount = len(today)
	for _, l := range today {
		if l.StrengthMg == 0 {
			p.TodayZeroMgCount++
		}
	}
	p.HasZeroMgToday = p.TodayZeroMgCount > 0
	p.IsPouchFreeToday = models.IsNicotineFreeDay(today)

	// Walk back from yesterday; the first day that is not nicotine-free,
	// logless days included, ends the streak.
	for i := 1; i <= constants.StreakLookbackDays; i++ {
		if !models.IsNicotineFreeDay(byDay[timeutil.DaysAgoKey(now, i)]) {
			break
		}
		p.ConsecutiveNicotineFreeDays++
	}
	if p.IsPouchFreeToday {
		p.ConsecutiveNicotineFreeDays++
	}

	// Trailing month count; today is skipped while it has no logs yet so
	// an empty morning is unknown rather than a miss.
	for i := 0; i < constants.MonthlyWindowDays; i++ {
		dayLogs := byDay[timeutil.DaysAgoKey(now, i)]
		if i == 0 && len(dayLogs) == 0 {
			continue
		}
		if models.IsNicotineFreeDay(dayLogs) {
			p.TotalNicotineFreeDays++
		}
	}

	p.ProgressToFreedomWeek = float64(p.ConsecutiveNicotineFreeDays) / float64(constants.FreedomWeekDays) * 100
	if p.ProgressToFreedomWeek > 100 {
		p.ProgressToFreedomWeek = 100
	}
	p.HasFreedomWeek = p.ConsecutiveNicotineFreeDays >= constants.FreedomWeekDays

	return p
}

// LongestRun returns the longest run of consecutive nicotine-free days in
// the trailing lookback window, today included when it qualifies.
func LongestRun(logs []models.UsageLog, now time.Time) int {
	byDay := models.LogsByDay(logs)

	longest, run := 0, 0
	for i := constants.StreakLookbackDays; i >= 0; i-- {
		if models.IsNicotineFreeDay(byDay[timeutil.DaysAgoKey(now, i)]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
