package cli

import (
	"fmt"
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/nicotinefree"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	cfg, err := ctx.Store.GetConfig()
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

	p := nicotinefree.Compute(logs, phases, cfg, time.Now())

	if p.InNicotineFreePhase {
		fmt.Println("You are in the nicotine-free phase.")
	}

	if p.TodayTotalCount > 0 {
		fmt.Printf("Today: %d of %d logs at 0mg", p.TodayZeroMgCount, p.TodayTotalCount)
		if p.IsPouchFreeToday {
			fmt.Print("  - a nicotine-free day so far")
		}
		fmt.Println()
	} else {
		fmt.Println("Nothing logged today yet.")
	}

	fmt.Printf("Consecutive nicotine-free days: %d\n", p.ConsecutiveNicotineFreeDays)
	fmt.Printf("Nicotine-free days this month:  %d\n", p.TotalNicotineFreeDays)

	if p.HasFreedomWeek {
		fmt.Println("\nFreedom week reached: 7+ consecutive nicotine-free days.")
	} else {
		fmt.Printf("\nFreedom week progress: %.0f%% (%d of %d days)\n",
			p.ProgressToFreedomWeek, p.ConsecutiveNicotineFreeDays, constants.FreedomWeekDays)
	}

	return nil
}
