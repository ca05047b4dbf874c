package cli

import (
	"fmt"
	"time"

	"github.com/pouchfree/pouchfree/internal/achievements"
	"github.com/pouchfree/pouchfree/internal/backup"
	"github.com/pouchfree/pouchfree/internal/logger"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/notifier"
	"github.com/pouchfree/pouchfree/internal/storage"
	"github.com/pouchfree/pouchfree/internal/timer"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

type Context struct {
	Store    storage.Provider
	Notifier *notifier.Notifier
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// EvaluateAchievements runs the unlock predicates against fresh data and
// announces anything newly unlocked. Evaluation failures are logged, never
// fatal; an unlock can always happen on the next data change.
func (c *Context) EvaluateAchievements(now time.Time) {
	snap, err := c.Store.Snapshot()
	if err != nil {
		logger.Warn("Achievement evaluation skipped", "error", err)
		return
	}

	newly, err := achievements.Evaluate(snap, c.Store, now)
	if err != nil {
		logger.Warn("Achievement evaluation failed", "error", err)
	}

	for _, id := range newly {
		a := achievements.Lookup(id)
		if a == nil {
			continue
		}
		fmt.Printf("%s Achievement unlocked: %s - %s\n", a.Emoji, a.Name, a.Description)
		if c.Notifier != nil {
			if err := c.Notifier.NotifyUnlock(a.Emoji, a.Name); err != nil {
				logger.Debug("Unlock notification not delivered", "error", err)
			}
		}
	}
}

// TimerState computes the current countdown state from stored data.
func (c *Context) TimerState(now time.Time) (timer.State, models.UserConfig, error) {
	cfg, err := c.Store.GetConfig()
	if err != nil {
		return timer.State{}, models.UserConfig{}, err
	}
	models.ApplyConfigDefaults(&cfg)

	logs, err := c.Store.GetAllLogs()
	if err != nil {
		return timer.State{}, cfg, err
	}

	dailyLimit := currentDailyLimit(c, cfg)
	interval, err := timeutil.ResolveInterval(cfg.PouchIntervalMinutes, cfg.WakeTime, cfg.SleepTime, dailyLimit)
	if err != nil {
		return timer.State{}, cfg, err
	}

	in := timer.Input{
		LastUse:     lastUse(logs),
		IntervalMin: interval,
		WakeTime:    cfg.WakeTime,
		SleepTime:   cfg.SleepTime,
		DailyLimit:  dailyLimit,
		TodayCount:  len(models.LogsByDay(logs)[timeutil.DayKey(now)]),
		Now:         now,
	}
	state, err := in.Compute()
	return state, cfg, err
}

// currentDailyLimit reads the active phase's limit, falling back to the
// baseline when no plan exists.
func currentDailyLimit(c *Context, cfg models.UserConfig) int {
	phases, err := c.Store.GetAllPhases()
	if err == nil {
		if phase := models.FindPhase(phases, cfg.CurrentPhase); phase != nil {
			return phase.DailyLimit
		}
	}
	return cfg.BaselineDailyPouches
}

// lastUse returns the most recent non-backfill log timestamp. Backfilled
// logs never restart the countdown.
func lastUse(logs []models.UsageLog) *time.Time {
	var last *time.Time
	for i := range logs {
		if logs[i].IsBackfill {
			continue
		}
		if last == nil || logs[i].Timestamp.After(*last) {
			last = &logs[i].Timestamp
		}
	}
	return last
}
