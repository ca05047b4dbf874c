package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/stats"
)

type StatsCmd struct {
	Monthly bool `help:"Show the trailing 30 days instead of the week."`
}

func (c *StatsCmd) Run(ctx *Context) error {
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

	s := stats.Compute(logs, cfg, time.Now())

	fmt.Printf("Day %d of your journey\n\n", s.DaysSinceStart+1)

	fmt.Printf("Current streak:  %d day(s) under limit\n", s.CurrentStreak)
	fmt.Printf("Longest streak:  %d day(s)\n", s.LongestStreak)

	switch {
	case s.ReductionPercent == nil:
		fmt.Printf("Reduction:       not enough data yet (%d of 3 days logged this week)\n", s.DaysWithData)
	case s.ReductionExceedsBaseline:
		fmt.Printf("Reduction:       currently above your %d/day baseline (avg %.1f)\n", s.BaselineDaily, s.CurrentAverage)
	default:
		fmt.Printf("Reduction:       %d%% below your %d/day baseline (avg %.1f)\n",
			*s.ReductionPercent, s.BaselineDaily, s.CurrentAverage)
	}

	data := s.WeeklyData
	total, average := s.WeeklyTotal, s.WeeklyAverage
	label := "This week"
	if c.Monthly {
		data = s.MonthlyData
		total, average = s.MonthlyTotal, s.MonthlyAverage
		label = "Last 30 days"
	}

	fmt.Printf("\n%s: %d pouches, %.1f/day average\n", label, total, average)
	for _, d := range data {
		bar := strings.Repeat("#", d.Count)
		marker := ""
		if d.Count > 0 && !d.UnderLimit {
			marker = " !"
		}
		fmt.Printf("  %s %2d %s%s\n", d.Date, d.Count, bar, marker)
	}

	if len(s.TriggerCounts) > 0 {
		fmt.Println("\nTriggers:")
		printTriggers(s.TriggerCounts)
	}

	return nil
}

func printTriggers(counts map[models.TriggerType]int) {
	type entry struct {
		trigger models.TriggerType
		count   int
	}
	entries := make([]entry, 0, len(counts))
	for t, n := range counts {
		entries = append(entries, entry{t, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].trigger < entries[j].trigger
	})
	for _, e := range entries {
		fmt.Printf("  %-12s %d\n", e.trigger, e.count)
	}
}
