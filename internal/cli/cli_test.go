package cli

import (
	"path/filepath"
	"testing"

	"github.com/pouchfree/pouchfree/internal/achievements"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/storage"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "pouchfree.db"))
	t.Cleanup(func() { store.Close() })
	return &Context{Store: store}
}

func initialized(t *testing.T) *Context {
	t.Helper()
	ctx := newTestContext(t)
	cmd := InitCmd{WakeTime: "07:00", SleepTime: "23:00", Pouches: 10, StrengthMg: 6}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return ctx
}

func TestInitCreatesConfigAndPlan(t *testing.T) {
	ctx := initialized(t)

	cfg, err := ctx.Store.GetConfig()
	if err != nil {
		t.Fatalf("failed to get config: %v", err)
	}
	if cfg.BaselineDailyPouches != 10 || cfg.BaselineStrengthMg != 6 {
		t.Errorf("baseline = %d pouches at %dmg", cfg.BaselineDailyPouches, cfg.BaselineStrengthMg)
	}
	if cfg.CurrentPhase != 1 {
		t.Errorf("current phase = %d, want 1", cfg.CurrentPhase)
	}
	if cfg.StartDate.IsZero() {
		t.Error("start date not set")
	}

	phases, err := ctx.Store.GetAllPhases()
	if err != nil {
		t.Fatalf("failed to get phases: %v", err)
	}
	if len(phases) != 5 {
		t.Fatalf("plan has %d phases, want 5", len(phases))
	}
	final := phases[len(phases)-1]
	if final.DailyLimit != 0 || final.StrengthMg != 0 {
		t.Errorf("final phase = %d pouches at %dmg, want pouch-free", final.DailyLimit, final.StrengthMg)
	}
}

func TestLogDefaultsToPhaseStrength(t *testing.T) {
	ctx := initialized(t)

	cmd := LogCmd{StrengthMg: -1, Trigger: "stress"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		t.Fatalf("failed to get logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if logs[0].StrengthMg != 6 {
		t.Errorf("strength = %dmg, want the phase target 6mg", logs[0].StrengthMg)
	}
	if string(logs[0].Trigger) != "stress" {
		t.Errorf("trigger = %q, want stress", logs[0].Trigger)
	}
	if logs[0].IsBackfill {
		t.Error("live log marked as backfill")
	}
}

func TestLogBackfillRejectsFutureTime(t *testing.T) {
	ctx := initialized(t)

	cmd := LogCmd{StrengthMg: -1, At: "23:59"}
	err := cmd.Run(ctx)
	logs, _ := ctx.Store.GetAllLogs()
	// 23:59 is in the future for almost the entire day. If the test happens
	// to run in the final minute, the backfill is legitimately accepted.
	if err == nil && len(logs) == 0 {
		t.Error("future backfill neither rejected nor recorded")
	}
}

func TestPhaseAdvanceMovesConfigForward(t *testing.T) {
	ctx := initialized(t)

	cmd := PhaseAdvanceCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	cfg, err := ctx.Store.GetConfig()
	if err != nil {
		t.Fatalf("failed to get config: %v", err)
	}
	if cfg.CurrentPhase != 2 {
		t.Errorf("current phase = %d, want 2", cfg.CurrentPhase)
	}

	// Moving past the first phase satisfies the phase pioneer predicate.
	unlocks, err := ctx.Store.GetAllUnlocks()
	if err != nil {
		t.Fatalf("failed to get unlocks: %v", err)
	}
	found := false
	for _, u := range unlocks {
		if u.AchievementType == achievements.PhasePioneer {
			found = true
		}
	}
	if !found {
		t.Error("phase pioneer not unlocked after advancing")
	}
}

func TestPhaseAdvanceStopsAtFinalPhase(t *testing.T) {
	ctx := initialized(t)

	for i := 0; i < 10; i++ {
		cmd := PhaseAdvanceCmd{}
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("advance %d failed: %v", i, err)
		}
	}

	cfg, _ := ctx.Store.GetConfig()
	if cfg.CurrentPhase != 5 {
		t.Errorf("current phase = %d, want to stop at 5", cfg.CurrentPhase)
	}
}

func TestPhaseExtendAddsWeeks(t *testing.T) {
	ctx := initialized(t)

	cmd := PhaseExtendCmd{Weeks: 2}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("extend failed: %v", err)
	}

	phases, err := ctx.Store.GetAllPhases()
	if err != nil {
		t.Fatalf("failed to get phases: %v", err)
	}
	if !phases[0].IsExtended {
		t.Error("current phase not marked extended")
	}
	if phases[0].WeekEnd != 4 {
		t.Errorf("phase 1 weekEnd = %d, want 4", phases[0].WeekEnd)
	}
	if phases[1].WeekStart != 5 {
		t.Errorf("phase 2 weekStart = %d, want shifted to 5", phases[1].WeekStart)
	}
}

func TestCravingRecordsSupportUse(t *testing.T) {
	ctx := initialized(t)

	cmd := CravingCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("craving failed: %v", err)
	}

	events, err := ctx.Store.GetAllMetricEvents()
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d metric events, want 1", len(events))
	}
	if events[0].EventType != models.MetricCravingSupportUse {
		t.Errorf("event type = %q", events[0].EventType)
	}
}

func TestRestartArchivesAndRegenerates(t *testing.T) {
	ctx := initialized(t)

	if err := (&LogCmd{StrengthMg: -1}).Run(ctx); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if err := (&PhaseAdvanceCmd{}).Run(ctx); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	if err := (&RestartCmd{}).Run(ctx); err == nil {
		t.Fatal("restart without --yes should refuse")
	}
	if err := (&RestartCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restart failed: %v", err)
	}

	logs, _ := ctx.Store.GetAllLogs()
	if len(logs) != 0 {
		t.Errorf("%d logs survived the restart", len(logs))
	}

	archives, err := ctx.Store.GetAllArchives()
	if err != nil {
		t.Fatalf("failed to get archives: %v", err)
	}
	if len(archives) != 1 {
		t.Fatalf("got %d archives, want 1", len(archives))
	}
	if archives[0].FinalPhase != 2 {
		t.Errorf("archive final phase = %d, want 2", archives[0].FinalPhase)
	}

	cfg, _ := ctx.Store.GetConfig()
	if cfg.CurrentPhase != 1 {
		t.Errorf("current phase = %d, want reset to 1", cfg.CurrentPhase)
	}
	phases, _ := ctx.Store.GetAllPhases()
	if len(phases) != 5 {
		t.Errorf("regenerated plan has %d phases, want 5", len(phases))
	}

	// Unlocks are permanent; restarting is itself an achievement.
	unlocks, _ := ctx.Store.GetAllUnlocks()
	found := false
	for _, u := range unlocks {
		if u.AchievementType == achievements.GrowthMindset {
			found = true
		}
	}
	if !found {
		t.Error("growth mindset not unlocked after restart")
	}
}
