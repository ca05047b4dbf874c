package cli

import (
	"fmt"
	"time"

	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/nicotinefree"
	"github.com/pouchfree/pouchfree/internal/struggle"
	"github.com/pouchfree/pouchfree/internal/timer"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()
	state, cfg, err := ctx.TimerState(now)
	if err != nil {
		return err
	}

	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return err
	}
	phases, err := ctx.Store.GetAllPhases()
	if err != nil {
		return err
	}

	todayCount := len(models.LogsByDay(logs)[timeutil.DayKey(now)])
	limit := currentDailyLimit(ctx, cfg)

	switch state.Status {
	case timer.StatusSleeping:
		fmt.Printf("Sleeping. Next pouch window opens at wake time in %s.\n", timeutil.FormatSeconds(state.Remaining))
	case timer.StatusCounting:
		fmt.Printf("Next pouch in %s (%.0f%% through the interval).\n", timeutil.FormatSeconds(state.Remaining), state.Progress)
	case timer.StatusAvailable:
		if state.SecondsWaitedPastTimer > 0 {
			fmt.Printf("Pouch available. You've held out %s past the timer.\n", timeutil.FormatSeconds(state.SecondsWaitedPastTimer))
		} else {
			fmt.Println("Pouch available.")
		}
	}

	fmt.Printf("Today: %d/%d pouches", todayCount, limit)
	if state.IsOverLimit {
		fmt.Print("  (over limit)")
	}
	fmt.Println()

	if phase := models.FindPhase(phases, cfg.CurrentPhase); phase != nil {
		fmt.Printf("Phase %d: %d pouches/day at %dmg\n", phase.PhaseNumber, phase.DailyLimit, phase.StrengthMg)
	}

	if detection := struggle.Detect(logs, phases, cfg, now); detection.ShouldSuggestExtension {
		fmt.Printf("\nRough week: over limit %d of the last 7 days. Consider extending this phase with 'pouchfree phase extend'.\n",
			detection.OverLimitDays)
	}

	progress := nicotinefree.Compute(logs, phases, cfg, now)
	if progress.ConsecutiveNicotineFreeDays > 0 {
		fmt.Printf("Nicotine-free streak: %d day(s)\n", progress.ConsecutiveNicotineFreeDays)
	}

	return nil
}
