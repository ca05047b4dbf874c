// Package plan generates and adjusts the five-phase tapering plan. The
// phase rows live in the store; everything here is pure computation over
// copies, with the caller persisting the results.
package plan

import (
	"math"
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/models"
)

// Generate builds the standard tapering plan from the user's baseline.
// Quantity drops roughly a quarter per step with sensible floors, strength
// steps down once it can, and the final phase is open-ended at zero.
func Generate(baselinePouches, baselineStrength int) []models.TaperingPhase {
	if baselinePouches <= 0 {
		baselinePouches = constants.DefaultBaselineDailyPouches
	}
	if baselineStrength <= 0 {
		baselineStrength = constants.DefaultBaselineStrengthMg
	}

	reduceQuarter := func(n int) int {
		return int(math.Round(float64(n) * 0.75))
	}

	p2Pouches := max(reduceQuarter(baselinePouches), 4)
	p3Pouches := max(reduceQuarter(p2Pouches), 3)
	p4Pouches := max(int(math.Round(float64(p3Pouches)*0.5)), 2)

	p3Strength := baselineStrength
	if baselineStrength > 4 {
		p3Strength = max(baselineStrength-2, 4)
	}
	p4Strength := min(p3Strength, 2)

	// Phase 1 holds the baseline for two weeks of pure tracking; the
	// last phase has no end week.
	return []models.TaperingPhase{
		{PhaseNumber: 1, WeekStart: 1, WeekEnd: 2, DailyLimit: baselinePouches, StrengthMg: baselineStrength},
		{PhaseNumber: 2, WeekStart: 3, WeekEnd: 6, DailyLimit: p2Pouches, StrengthMg: baselineStrength},
		{PhaseNumber: 3, WeekStart: 7, WeekEnd: 10, DailyLimit: p3Pouches, StrengthMg: p3Strength},
		{PhaseNumber: 4, WeekStart: 11, WeekEnd: 14, DailyLimit: p4Pouches, StrengthMg: p4Strength},
		{PhaseNumber: 5, WeekStart: 15, WeekEnd: 15 + 999, DailyLimit: 0, StrengthMg: 0},
	}
}

// CurrentWeek returns the 1-based week number since the journey started.
// A zero start date means the journey started now, so week 1.
func CurrentWeek(startDate, now time.Time) int {
	if startDate.IsZero() || now.Before(startDate) {
		return 1
	}
	days := int(now.Sub(startDate).Hours() / 24)
	return days/7 + 1
}

// PhaseProgress returns how far through a phase's week range the given
// week is, as a percentage clamped to [0,100].
func PhaseProgress(phase models.TaperingPhase, currentWeek int) float64 {
	total := phase.WeekEnd - phase.WeekStart + 1
	if total <= 0 {
		return 0
	}
	pct := float64(currentWeek-phase.WeekStart+1) / float64(total) * 100
	return math.Min(math.Max(pct, 0), 100)
}

// Advance returns the next phase number, capped at the final phase.
// ok is false when the journey is already on the final phase.
func Advance(phases []models.TaperingPhase, currentPhase int) (next int, ok bool) {
	final := models.FinalPhaseNumber(phases)
	if currentPhase >= final {
		return currentPhase, false
	}
	return currentPhase + 1, true
}

// Extend adds weeks to the current phase and shifts every later phase by
// the same amount so the plan stays contiguous. The input slice is not
// modified; the adjusted copy carries the extended flag on the current
// phase.
func Extend(phases []models.TaperingPhase, currentPhase, weeks int) []models.TaperingPhase {
	out := make([]models.TaperingPhase, len(phases))
	copy(out, phases)

	for i := range out {
		switch {
		case out[i].PhaseNumber == currentPhase:
			out[i].WeekEnd += weeks
			out[i].IsExtended = true
		case out[i].PhaseNumber > currentPhase:
			out[i].WeekStart += weeks
			out[i].WeekEnd += weeks
		}
	}
	return out
}
