package models

import "time"

// MetricEventType identifies an append-only telemetry event
type MetricEventType string

const (
	// MetricCravingSupportUse is recorded each time the craving support
	// flow is used.
	MetricCravingSupportUse MetricEventType = "craving_support_use"

	// MetricTimerWait is recorded when a use is logged after the timer had
	// already expired; Value carries the seconds waited past the timer.
	MetricTimerWait MetricEventType = "timer_wait"
)

// MetricEvent is an append-only telemetry record consumed by the
// achievement evaluator.
type MetricEvent struct {
	ID        string          `json:"id"`
	EventType MetricEventType `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Value     *float64        `json:"value,omitempty"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`
}
