// Package stats derives streaks, rolling reduction, and weekly/monthly
// aggregates from the usage log history. Compute is a pure function of the
// log set, the config, and a single sampled instant.
package stats

import (
	"math"
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

// DayStat is one calendar day's usage summary.
type DayStat struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Count      int    `json:"count"`
	UnderLimit bool   `json:"under_limit"`
}

// Stats is the full derived-statistics view.
type Stats struct {
	// Streaks of consecutive under-limit days; rest days are skipped
	CurrentStreak int
	LongestStreak int

	// Reduction vs baseline over the trailing completed week.
	// ReductionPercent is nil while fewer than MinDaysForReduction
	// completed days have data; that is "unknown", not zero.
	ReductionPercent         *int
	ReductionExceedsBaseline bool
	DaysWithData             int
	BaselineDaily            int
	CurrentAverage           float64

	TodayCount int
	TodayLimit int

	// WeeklyData and MonthlyData run oldest to newest, ending today
	WeeklyData     []DayStat
	WeeklyTotal    int
	WeeklyAverage  float64
	MonthlyData    []DayStat
	MonthlyTotal   int
	MonthlyAverage float64

	TriggerCounts map[models.TriggerType]int

	DaysSinceStart int
	TotalLogged    int
}

// Compute derives all statistics from the non-deleted log history.
func Compute(logs []models.UsageLog, cfg models.UserConfig, now time.Time) Stats {
	models.ApplyConfigDefaults(&cfg)

	byDay := models.LogsByDay(logs)
	baseline := cfg.BaselineDailyPouches

	// daily[i] is the summary for i days ago; daily[0] is today
	daily := make([]DayStat, constants.MonthlyWindowDays)
	for i := range daily {
		key := timeutil.DaysAgoKey(now, i)
		count := len(byDay[key])
		daily[i] = DayStat{
			Date:       key,
			Count:      count,
			UnderLimit: count <= baseline,
		}
	}

	s := Stats{
		BaselineDaily: baseline,
		TodayCount:    daily[0].Count,
		TodayLimit:    baseline,
		TriggerCounts: make(map[models.TriggerType]int),
		TotalLogged:   len(logs),
	}

	// Weekly view: today plus the six prior days, oldest first
	s.WeeklyData = reversed(daily[:constants.WeeklyWindowDays])
	for _, d := range s.WeeklyData {
		s.WeeklyTotal += d.Count
	}
	s.WeeklyAverage = round1(float64(s.WeeklyTotal) / float64(len(s.WeeklyData)))

	// Monthly view averages over days that actually have data
	s.MonthlyData = reversed(daily)
	monthlyDaysWithData := 0
	for _, d := range s.MonthlyData {
		s.MonthlyTotal += d.Count
		if d.Count > 0 {
			monthlyDaysWithData++
		}
	}
	if monthlyDaysWithData == 0 {
		monthlyDaysWithData = 1
	}
	s.MonthlyAverage = round1(float64(s.MonthlyTotal) / float64(monthlyDaysWithData))

	s.CurrentStreak, s.LongestStreak = streaks(daily, s.TodayCount, s.TodayLimit)

	s.computeReduction(daily, baseline)

	for _, l := range logs {
		if l.Trigger != "" && l.Trigger != models.TriggerNone {
			s.TriggerCounts[l.Trigger]++
		}
	}

	if !cfg.StartDate.IsZero() && now.After(cfg.StartDate) {
		s.DaysSinceStart = int(now.Sub(cfg.StartDate).Hours() / 24)
	}

	return s
}

// streaks walks backward from yesterday. A day with logs extends the run
// while under limit and breaks it while over limit; a day with no logs is a
// rest day and does neither. Today joins the current streak only once it
// has data, so an empty morning never claims credit early.
func streaks(daily []DayStat, todayCount, todayLimit int) (current, longest int) {
	run := 0
	currentSet := false

	for i := 1; i < len(daily); i++ {
		d := daily[i]
		switch {
		case d.Count > 0 && d.UnderLimit:
			run++
		case d.Count > 0:
			if !currentSet {
				current = run
				currentSet = true
			}
			if run > longest {
				longest = run
			}
			run = 0
		}
	}
	if !currentSet {
		current = run
	}
	if run > longest {
		longest = run
	}

	if todayCount > 0 && todayCount <= todayLimit {
		current++
	}
	return current, longest
}

// computeReduction looks at exactly the seven completed days before today,
// keeping only those with data. Below the minimum the percent stays nil:
// "not enough data" must never render as 0%.
func (s *Stats) computeReduction(daily []DayStat, baseline int) {
	total := 0
	for _, d := range daily[1 : constants.WeeklyWindowDays+1] {
		if d.Count > 0 {
			s.DaysWithData++
			total += d.Count
		}
	}

	if s.DaysWithData < constants.MinDaysForReduction || baseline <= 0 {
		return
	}

	avg := float64(total) / float64(s.DaysWithData)
	s.CurrentAverage = round1(avg)

	raw := int(math.Round((float64(baseline) - avg) / float64(baseline) * 100))
	switch {
	case raw < 0:
		// Using more than baseline: shown as 0% but flagged so the UI can
		// say so instead of pretending no progress was lost
		zero := 0
		s.ReductionPercent = &zero
		s.ReductionExceedsBaseline = true
	case raw > 100:
		hundred := 100
		s.ReductionPercent = &hundred
	default:
		s.ReductionPercent = &raw
	}
}

func reversed(in []DayStat) []DayStat {
	out := make([]DayStat, len(in))
	for i, d := range in {
		out[len(in)-1-i] = d
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
