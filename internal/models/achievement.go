package models

import "time"

// AchievementUnlock records that a named achievement has been earned.
// At most one row exists per achievement type; only Seen mutates afterward.
type AchievementUnlock struct {
	ID              string     `json:"id"`
	AchievementType string     `json:"achievement_type"`
	UnlockedAt      time.Time  `json:"unlocked_at"`
	Seen            bool       `json:"seen"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}
