package achievements

import (
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/nicotinefree"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

const (
	longWaitSeconds = 600
	longWaitCount   = 5
	cravingUseCount = 10
	trackedDayCount = 7
	triggerMinLogs  = 10
	triggerTopShare = 0.3
	reflectionCount = 10
	halfwayPhase    = 3
)

// UnlockWriter is the single write surface the evaluator needs. The store
// backs it with a uniqueness guarantee per achievement type, so a raced
// duplicate create is rejected rather than stored twice.
type UnlockWriter interface {
	CreateUnlock(achievementType string, unlockedAt time.Time) error
}

// Evaluate runs every unlock predicate against one consistent snapshot and
// creates an unlock for each newly satisfied one. Already-unlocked types are
// skipped, so calling it again with unchanged data writes nothing. It
// returns the types unlocked by this call, in catalog order.
func Evaluate(snap models.Snapshot, w UnlockWriter, now time.Time) ([]string, error) {
	satisfied := predicates(snap, now)

	unlocked := make(map[string]bool, len(snap.Unlocks))
	for _, u := range snap.Unlocks {
		unlocked[u.AchievementType] = true
	}

	var newly []string
	for _, a := range Catalog {
		if !satisfied[a.ID] || unlocked[a.ID] {
			continue
		}
		if err := w.CreateUnlock(a.ID, now); err != nil {
			return newly, err
		}
		newly = append(newly, a.ID)
	}
	return newly, nil
}

func predicates(snap models.Snapshot, now time.Time) map[string]bool {
	cfg := snap.Config
	models.ApplyConfigDefaults(&cfg)

	byDay := models.LogsByDay(snap.Logs)
	sat := make(map[string]bool, len(Catalog))

	// Waiting: timer_wait and craving_support_use telemetry
	var cravingUses, longWaits int
	var waitValues []float64
	for _, e := range snap.Events {
		switch e.EventType {
		case models.MetricCravingSupportUse:
			cravingUses++
		case models.MetricTimerWait:
			if e.Value == nil {
				continue
			}
			waitValues = append(waitValues, *e.Value)
			if *e.Value >= longWaitSeconds {
				longWaits++
			}
		}
	}
	sat[CravingCrusher] = cravingUses >= cravingUseCount
	sat[PatientOne] = longWaits >= longWaitCount
	if len(waitValues) >= longWaitCount {
		sum := 0.0
		for _, v := range waitValues {
			sum += v
		}
		sat[MasterOfDelay] = sum/float64(len(waitValues)) >= longWaitSeconds
	}

	// Consistency: a run of tracked days, walking back from today. An
	// empty today is pending, not a miss; any earlier gap ends the run.
	tracked := 0
	for i := 0; i < constants.MonthlyWindowDays; i++ {
		if len(byDay[timeutil.DaysAgoKey(now, i)]) > 0 {
			tracked++
		} else if i > 0 {
			break
		}
	}
	sat[DailyTracker] = tracked >= trackedDayCount

	reflectedLogs := make(map[string]bool, len(snap.Reflections))
	for _, r := range snap.Reflections {
		reflectedLogs[r.LogID] = true
		if r.Feeling != "" {
			sat[SelfCompassion] = true
		}
	}
	for _, l := range snap.Logs {
		if l.IsOverLimit && reflectedLogs[l.ID] {
			sat[HonestLogger] = true
			break
		}
	}

	triggerCounts := make(map[models.TriggerType]int)
	totalWithTrigger := 0
	for _, l := range snap.Logs {
		if l.Trigger != "" && l.Trigger != models.TriggerNone {
			triggerCounts[l.Trigger]++
			totalWithTrigger++
		}
	}
	top := 0
	for _, c := range triggerCounts {
		if c > top {
			top = c
		}
	}
	sat[PatternSpotter] = totalWithTrigger >= triggerMinLogs &&
		float64(top)/float64(totalWithTrigger) >= triggerTopShare

	// Milestones
	sat[PhasePioneer] = cfg.CurrentPhase > 1
	sat[HalfwayHero] = cfg.CurrentPhase >= halfwayPhase
	if phase := models.FindPhase(snap.Phases, cfg.CurrentPhase); phase != nil && cfg.BaselineStrengthMg > 0 {
		sat[StrengthShift] = phase.StrengthMg < cfg.BaselineStrengthMg
	}

	for _, dayLogs := range byDay {
		if models.IsNicotineFreeDay(dayLogs) {
			sat[ZeroDay] = true
			break
		}
	}
	sat[FreedomWeek] = nicotinefree.LongestRun(snap.Logs, now) >= constants.FreedomWeekDays

	// Reflection
	sat[MindfulMoment] = len(snap.Reflections) >= reflectionCount
	sat[GrowthMindset] = len(snap.Archives) > 0

	return sat
}
