package models

// Snapshot is one consistent read of every row set the derived-state
// engines consume. Soft-deleted rows are already filtered out by the store.
type Snapshot struct {
	Config      UserConfig
	Logs        []UsageLog
	Reflections []Reflection
	Events      []MetricEvent
	Phases      []TaperingPhase
	Unlocks     []AchievementUnlock
	Archives    []JourneyArchive
}
