package models

import "time"

// Reflection records how the user felt after an over-limit log and what
// they plan to do next time.
type Reflection struct {
	ID           string     `json:"id"`
	LogID        string     `json:"log_id"`
	Feeling      string     `json:"feeling,omitempty"`
	NextTimePlan string     `json:"next_time_plan,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}
