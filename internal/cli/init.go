package cli

import (
	"fmt"
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/plan"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

type InitCmd struct {
	WakeTime   string `help:"Wake time (HH:MM)." default:"07:00"`
	SleepTime  string `help:"Sleep time (HH:MM)." default:"23:00"`
	Pouches    int    `help:"Current pouches per day." default:"10"`
	StrengthMg int    `help:"Current pouch strength in mg." default:"6"`
	Interval   int    `help:"Minutes between pouches; 0 derives it from your waking hours and daily limit." default:"0"`
}

func (c *InitCmd) Validate() error {
	if !timeutil.ValidateTimeFormat(c.WakeTime) {
		return fmt.Errorf("invalid wake time %q, expected HH:MM", c.WakeTime)
	}
	if !timeutil.ValidateTimeFormat(c.SleepTime) {
		return fmt.Errorf("invalid sleep time %q, expected HH:MM", c.SleepTime)
	}
	if c.Pouches < 1 {
		return fmt.Errorf("pouches per day must be at least 1")
	}
	if c.StrengthMg < 1 {
		return fmt.Errorf("strength must be at least 1mg")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}
	return nil
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	cfg := models.UserConfig{
		WakeTime:             c.WakeTime,
		SleepTime:            c.SleepTime,
		PouchIntervalMinutes: c.Interval,
		CurrentPhase:         1,
		StartDate:            time.Now(),
		BaselineDailyPouches: c.Pouches,
		BaselineStrengthMg:   c.StrengthMg,
	}
	if err := ctx.Store.SaveConfig(cfg); err != nil {
		return err
	}

	phases := plan.Generate(c.Pouches, c.StrengthMg)
	if err := ctx.Store.SavePhases(phases); err != nil {
		return err
	}

	fmt.Printf("Initialized %s at %s\n", constants.AppName, ctx.Store.GetConfigPath())
	fmt.Printf("Baseline: %d pouches/day at %dmg\n", c.Pouches, c.StrengthMg)
	fmt.Println("\nYour tapering plan:")
	printPlan(phases, 1)
	return nil
}

func printPlan(phases []models.TaperingPhase, currentPhase int) {
	for _, p := range phases {
		marker := "  "
		if p.PhaseNumber == currentPhase {
			marker = "> "
		}
		target := fmt.Sprintf("%d pouches/day at %dmg", p.DailyLimit, p.StrengthMg)
		if p.DailyLimit == 0 {
			target = "pouch-free"
		}
		weeks := fmt.Sprintf("weeks %d-%d", p.WeekStart, p.WeekEnd)
		if p.PhaseNumber == models.FinalPhaseNumber(phases) {
			weeks = fmt.Sprintf("week %d onward", p.WeekStart)
		}
		extended := ""
		if p.IsExtended {
			extended = " (extended)"
		}
		fmt.Printf("%sPhase %d: %s, %s%s\n", marker, p.PhaseNumber, target, weeks, extended)
	}
}
