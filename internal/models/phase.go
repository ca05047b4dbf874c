package models

import "time"

// TaperingPhase is one configured period of the tapering plan with a target
// daily pouch limit and nicotine strength. Phases cover contiguous,
// non-overlapping week ranges by convention.
type TaperingPhase struct {
	ID          string     `json:"id"`
	PhaseNumber int        `json:"phase_number"`
	DailyLimit  int        `json:"daily_limit"`
	StrengthMg  int        `json:"strength_mg"`
	WeekStart   int        `json:"week_start"`
	WeekEnd     int        `json:"week_end"`
	IsExtended  bool       `json:"is_extended"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// FindPhase returns the phase with the given number, or nil
func FindPhase(phases []TaperingPhase, number int) *TaperingPhase {
	for i := range phases {
		if phases[i].PhaseNumber == number {
			return &phases[i]
		}
	}
	return nil
}

// FinalPhaseNumber returns the highest phase number in the plan, or 0 for
// an empty plan
func FinalPhaseNumber(phases []TaperingPhase) int {
	final := 0
	for _, p := range phases {
		if p.PhaseNumber > final {
			final = p.PhaseNumber
		}
	}
	return final
}
