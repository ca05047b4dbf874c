package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/plan"
)

type RestartCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

const archiveSnapshotMaxLogs = 100

func (c *RestartCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !c.Yes {
		return fmt.Errorf("restarting archives your journey and clears all logs; re-run with --yes to confirm")
	}

	now := time.Now()
	cfg, err := ctx.Store.GetConfig()
	if err != nil {
		return err
	}
	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return err
	}
	reflections, err := ctx.Store.GetAllReflections()
	if err != nil {
		return err
	}
	unlocks, err := ctx.Store.GetAllUnlocks()
	if err != nil {
		return err
	}

	totalDays := 0
	if !cfg.StartDate.IsZero() {
		totalDays = int(now.Sub(cfg.StartDate).Hours() / 24)
	}

	ctx.PerformAutomaticBackup()

	archive := models.JourneyArchive{
		ArchivedAt:   now,
		FinalPhase:   cfg.CurrentPhase,
		TotalDays:    totalDays,
		DataSnapshot: buildSnapshot(cfg, logs, len(reflections), len(unlocks)),
	}
	if err := ctx.Store.ResetJourney(archive); err != nil {
		return fmt.Errorf("archiving journey: %w", err)
	}

	phases := plan.Generate(cfg.BaselineDailyPouches, cfg.BaselineStrengthMg)
	if err := ctx.Store.SavePhases(phases); err != nil {
		return err
	}

	cfg.CurrentPhase = 1
	cfg.StartDate = now
	if err := ctx.Store.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Journey archived after %d days on phase %d.\n", totalDays, archive.FinalPhase)
	fmt.Println("A fresh plan is ready. Starting over isn't failing; it's learning.")
	printPlan(phases, 1)

	ctx.EvaluateAchievements(now)
	return nil
}

// buildSnapshot serializes a compact summary of the finished journey for the
// archive record. Only the most recent logs are kept to bound its size.
func buildSnapshot(cfg models.UserConfig, logs []models.UsageLog, reflections, unlocks int) string {
	type snapshotLog struct {
		Timestamp  time.Time          `json:"timestamp"`
		StrengthMg int                `json:"strength_mg"`
		Trigger    models.TriggerType `json:"trigger,omitempty"`
	}

	kept := logs
	if len(kept) > archiveSnapshotMaxLogs {
		kept = kept[len(kept)-archiveSnapshotMaxLogs:]
	}
	slim := make([]snapshotLog, 0, len(kept))
	for _, l := range kept {
		slim = append(slim, snapshotLog{Timestamp: l.Timestamp, StrengthMg: l.StrengthMg, Trigger: l.Trigger})
	}

	raw, err := json.Marshal(struct {
		Logs                 []snapshotLog `json:"logs"`
		ReflectionsCount     int           `json:"reflections_count"`
		AchievementsUnlocked int           `json:"achievements_unlocked"`
		StartDate            time.Time     `json:"start_date"`
		BaselineDaily        int           `json:"baseline_daily"`
	}{slim, reflections, unlocks, cfg.StartDate, cfg.BaselineDailyPouches})
	if err != nil {
		return ""
	}
	return string(raw)
}
