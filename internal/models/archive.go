package models

import "time"

// JourneyArchive is a snapshot record marking a journey restart. The
// presence of at least one archive signals the user has restarted before.
type JourneyArchive struct {
	ID           string     `json:"id"`
	ArchivedAt   time.Time  `json:"archived_at"`
	FinalPhase   int        `json:"final_phase"`
	TotalDays    int        `json:"total_days"`
	DataSnapshot string     `json:"data_snapshot,omitempty"` // JSON summary of the archived journey
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}
