package cli

import (
	"fmt"
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/plan"
	"github.com/pouchfree/pouchfree/internal/struggle"
)

type PhaseCmd struct {
	Show    PhaseShowCmd    `cmd:"" help:"Show the tapering plan." default:"1"`
	Advance PhaseAdvanceCmd `cmd:"" help:"Move to the next phase."`
	Extend  PhaseExtendCmd  `cmd:"" help:"Extend the current phase by two weeks."`
}

type PhaseShowCmd struct{}

func (c *PhaseShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	cfg, err := ctx.Store.GetConfig()
	if err != nil {
		return err
	}
	models.ApplyConfigDefaults(&cfg)

	phases, err := ctx.Store.GetAllPhases()
	if err != nil {
		return err
	}
	if len(phases) == 0 {
		return fmt.Errorf("no tapering plan found, run 'pouchfree init' first")
	}

	week := plan.CurrentWeek(cfg.StartDate, time.Now())
	fmt.Printf("Week %d of your journey\n\n", week)
	printPlan(phases, cfg.CurrentPhase)

	if current := models.FindPhase(phases, cfg.CurrentPhase); current != nil {
		fmt.Printf("\nPhase %d progress: %.0f%%\n", current.PhaseNumber, plan.PhaseProgress(*current, week))
	}
	return nil
}

type PhaseAdvanceCmd struct{}

func (c *PhaseAdvanceCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	cfg, err := ctx.Store.GetConfig()
	if err != nil {
		return err
	}
	models.ApplyConfigDefaults(&cfg)

	phases, err := ctx.Store.GetAllPhases()
	if err != nil {
		return err
	}

	next, ok := plan.Advance(phases, cfg.CurrentPhase)
	if !ok {
		fmt.Println("Already on the final phase. Keep going!")
		return nil
	}

	ctx.PerformAutomaticBackup()

	cfg.CurrentPhase = next
	if err := ctx.Store.SaveConfig(cfg); err != nil {
		return err
	}

	target := models.FindPhase(phases, next)
	if target != nil && target.DailyLimit == 0 {
		fmt.Printf("Phase %d: pouch-free living. You made it to the last stretch.\n", next)
	} else if target != nil {
		fmt.Printf("Phase %d: %d pouches/day at %dmg. One step closer.\n", next, target.DailyLimit, target.StrengthMg)
	} else {
		fmt.Printf("Advanced to phase %d.\n", next)
	}

	ctx.EvaluateAchievements(time.Now())
	return nil
}

type PhaseExtendCmd struct {
	Weeks int `help:"Weeks to add to the current phase." default:"2"`
}

func (c *PhaseExtendCmd) Validate() error {
	if c.Weeks < 1 {
		return fmt.Errorf("extension must be at least one week")
	}
	return nil
}

func (c *PhaseExtendCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	cfg, err := ctx.Store.GetConfig()
	if err != nil {
		return err
	}
	models.ApplyConfigDefaults(&cfg)

	phases, err := ctx.Store.GetAllPhases()
	if err != nil {
		return err
	}
	current := models.FindPhase(phases, cfg.CurrentPhase)
	if current == nil {
		return fmt.Errorf("no current phase to extend")
	}
	if current.IsExtended {
		fmt.Println("This phase was already extended once. Consider whether the plan itself needs editing.")
	}

	ctx.PerformAutomaticBackup()

	for _, p := range plan.Extend(phases, cfg.CurrentPhase, c.Weeks) {
		if err := ctx.Store.UpdatePhase(p); err != nil {
			return err
		}
	}

	fmt.Printf("Phase %d extended by %d week(s). Take your time; you're doing great.\n", cfg.CurrentPhase, c.Weeks)
	return nil
}

// maybePrintStruggleHint surfaces the extension suggestion after commands
// that change the log history.
func maybePrintStruggleHint(ctx *Context, now time.Time) {
	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return
	}
	phases, err := ctx.Store.GetAllPhases()
	if err != nil {
		return
	}
	cfg, err := ctx.Store.GetConfig()
	if err != nil {
		return
	}

	if d := struggle.Detect(logs, phases, cfg, now); d.ShouldSuggestExtension {
		fmt.Printf("Over limit %d of the last %d days. 'pouchfree phase extend' adds breathing room without losing progress.\n",
			d.OverLimitDays, constants.StruggleWindowDays)
	}
}
