package cli

import (
	"fmt"
	"time"

	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/timer"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

type LogCmd struct {
	StrengthMg int    `help:"Pouch strength in mg; defaults to the current phase's target." default:"-1"`
	Trigger    string `help:"What prompted it: habit, stress, after_meal, craving, social, boredom, other." default:""`
	At         string `help:"Backfill time (HH:MM, today) instead of now." default:""`
	Feeling    string `help:"Reflection: how this felt (recorded with over-limit logs)." default:""`
	Plan       string `help:"Reflection: what to try next time." default:""`
}

func (c *LogCmd) Validate() error {
	if c.StrengthMg < -1 {
		return fmt.Errorf("strength cannot be negative")
	}
	if c.Trigger != "" && !validTrigger(c.Trigger) {
		return fmt.Errorf("unknown trigger %q", c.Trigger)
	}
	if c.At != "" && !timeutil.ValidateTimeFormat(c.At) {
		return fmt.Errorf("invalid time %q, expected HH:MM", c.At)
	}
	return nil
}

func validTrigger(s string) bool {
	for _, t := range models.Triggers {
		if string(t) == s {
			return true
		}
	}
	return s == string(models.TriggerOther) || s == string(models.TriggerNone)
}

func (c *LogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()
	state, cfg, err := ctx.TimerState(now)
	if err != nil {
		return err
	}

	strength := c.StrengthMg
	if strength < 0 {
		strength = phaseStrength(ctx, cfg)
	}

	timestamp := now
	isBackfill := false
	if c.At != "" {
		at, err := timeutil.ParseTime(c.At)
		if err != nil {
			return err
		}
		timestamp = time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
		if timestamp.After(now) {
			return fmt.Errorf("cannot backfill a future time")
		}
		isBackfill = true
	}

	// The over-limit flag is decided at log time: this use tips the day
	// over when today's count has already reached the limit.
	log := models.UsageLog{
		Timestamp:   timestamp,
		StrengthMg:  strength,
		Trigger:     models.TriggerType(c.Trigger),
		IsOverLimit: state.IsOverLimit,
		IsBackfill:  isBackfill,
	}
	created, err := ctx.Store.AddLog(log)
	if err != nil {
		return err
	}

	// A live log while the timer has already run out records how long the
	// user held off; two achievements feed on these.
	if !isBackfill && state.Status == timer.StatusAvailable && state.SecondsWaitedPastTimer > 0 {
		waited := float64(state.SecondsWaitedPastTimer)
		if _, err := ctx.Store.AddMetricEvent(models.MetricEvent{
			EventType: models.MetricTimerWait,
			Timestamp: now,
			Value:     &waited,
		}); err != nil {
			return err
		}
		fmt.Printf("You waited %s past your timer. Nice.\n", timeutil.FormatSeconds(state.SecondsWaitedPastTimer))
	}

	if state.IsOverLimit {
		fmt.Println("This puts you over today's limit. Be kind to yourself; tomorrow is a fresh start.")
		if c.Feeling != "" || c.Plan != "" {
			if _, err := ctx.Store.AddReflection(models.Reflection{
				LogID:        created.ID,
				Feeling:      c.Feeling,
				NextTimePlan: c.Plan,
				Timestamp:    now,
			}); err != nil {
				return err
			}
			fmt.Println("Reflection saved.")
		}
	}

	todayCount := len(models.LogsByDay(mustLogs(ctx))[timeutil.DayKey(now)])
	limit := currentDailyLimit(ctx, cfg)
	fmt.Printf("Logged %dmg pouch. Today: %d/%d\n", strength, todayCount, limit)

	ctx.EvaluateAchievements(now)
	maybePrintStruggleHint(ctx, now)
	return nil
}

func phaseStrength(ctx *Context, cfg models.UserConfig) int {
	phases, err := ctx.Store.GetAllPhases()
	if err == nil {
		if phase := models.FindPhase(phases, cfg.CurrentPhase); phase != nil {
			return phase.StrengthMg
		}
	}
	return cfg.BaselineStrengthMg
}

func mustLogs(ctx *Context) []models.UsageLog {
	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return nil
	}
	return logs
}
