package models

import (
	"time"

	"github.com/pouchfree/pouchfree/internal/timeutil"
)

// TriggerType categorizes what prompted a pouch use
type TriggerType string

const (
	TriggerStress    TriggerType = "stress"
	TriggerHabit     TriggerType = "habit"
	TriggerSocial    TriggerType = "social"
	TriggerAfterMeal TriggerType = "after_meal"
	TriggerBoredom   TriggerType = "boredom"
	TriggerCraving   TriggerType = "craving"
	TriggerOther     TriggerType = "other"
	TriggerNone      TriggerType = "none"
)

// Triggers lists the selectable trigger types in display order
var Triggers = []TriggerType{
	TriggerHabit,
	TriggerStress,
	TriggerAfterMeal,
	TriggerCraving,
	TriggerSocial,
	TriggerBoredom,
}

// UsageLog represents a single pouch use event. Immutable once created
// except for soft deletion.
type UsageLog struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	StrengthMg  int         `json:"strength_mg"`
	Trigger     TriggerType `json:"trigger,omitempty"`
	IsOverLimit bool        `json:"is_over_limit"`
	IsBackfill  bool        `json:"is_backfill"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty"`
}

// LogsByDay buckets logs by local calendar date key (YYYY-MM-DD). Every
// engine that reasons about days goes through this so day boundaries are
// consistent.
func LogsByDay(logs []UsageLog) map[string][]UsageLog {
	byDay := make(map[string][]UsageLog)
	for _, l := range logs {
		key := timeutil.DayKey(l.Timestamp)
		byDay[key] = append(byDay[key], l)
	}
	return byDay
}

// IsNicotineFreeDay reports whether a day's logs make it nicotine-free: at
// least one log and every log at zero strength. Days with no logs are
// unknown, not nicotine-free.
func IsNicotineFreeDay(dayLogs []UsageLog) bool {
	if len(dayLogs) == 0 {
		return false
	}
	for _, l := range dayLogs {
		if l.StrengthMg != 0 {
			return false
		}
	}
	return true
}
