package storage

import (
	"time"

	"github.com/pouchfree/pouchfree/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Config
	GetConfig() (models.UserConfig, error)
	SaveConfig(models.UserConfig) error

	// Usage logs
	AddLog(models.UsageLog) (models.UsageLog, error)
	GetLog(id string) (models.UsageLog, error)
	GetAllLogs() ([]models.UsageLog, error)
	DeleteLog(id string) error
	RestoreLog(id string) error

	// Reflections
	AddReflection(models.Reflection) (models.Reflection, error)
	GetAllReflections() ([]models.Reflection, error)

	// Metric events
	AddMetricEvent(models.MetricEvent) (models.MetricEvent, error)
	GetAllMetricEvents() ([]models.MetricEvent, error)

	// Tapering phases
	SavePhases([]models.TaperingPhase) error
	GetAllPhases() ([]models.TaperingPhase, error)
	UpdatePhase(models.TaperingPhase) error

	// Achievement unlocks
	// CreateUnlock is a no-op when the achievement type is already
	// unlocked, so racing evaluations cannot double-unlock.
	CreateUnlock(achievementType string, unlockedAt time.Time) error
	GetAllUnlocks() ([]models.AchievementUnlock, error)
	MarkUnlockSeen(id string) error

	// Journey archives
	GetAllArchives() ([]models.JourneyArchive, error)
	// ResetJourney tombstones all logs, reflections, and metric events,
	// retires the current phases, and records an archive row. Unlocks
	// survive a restart.
	ResetJourney(archive models.JourneyArchive) error

	// Snapshot returns one consistent read of everything the derived
	// engines consume.
	Snapshot() (models.Snapshot, error)

	// Utils
	GetConfigPath() string
}
