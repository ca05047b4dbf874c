package models

import (
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
)

// UserConfig is the singleton application configuration row.
type UserConfig struct {
	WakeTime             string    `json:"wake_time"`  // "HH:MM"
	SleepTime            string    `json:"sleep_time"` // "HH:MM"
	PouchIntervalMinutes int       `json:"pouch_interval_minutes"`
	CurrentPhase         int       `json:"current_phase"`
	StartDate            time.Time `json:"start_date"`
	BaselineDailyPouches int       `json:"baseline_daily_pouches"`
	BaselineStrengthMg   int       `json:"baseline_strength_mg"`
}

// ApplyConfigDefaults fills missing config fields with documented defaults.
// Every engine reads config through this so the null-object policy is
// applied consistently.
func ApplyConfigDefaults(cfg *UserConfig) {
	if cfg.WakeTime == "" {
		cfg.WakeTime = constants.DefaultWakeTime
	}
	if cfg.SleepTime == "" {
		cfg.SleepTime = constants.DefaultSleepTime
	}
	if cfg.CurrentPhase == 0 {
		cfg.CurrentPhase = 1
	}
	if cfg.BaselineDailyPouches == 0 {
		cfg.BaselineDailyPouches = constants.DefaultBaselineDailyPouches
	}
	if cfg.BaselineStrengthMg == 0 {
		cfg.BaselineStrengthMg = constants.DefaultBaselineStrengthMg
	}
	// StartDate stays zero when unset; consumers treat a zero start date as
	// "started now" rather than inventing a timestamp here.
}
