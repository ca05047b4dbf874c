// Package struggle flags a rough week so the app can offer a phase
// extension instead of letting a user quietly fall behind the plan.
package struggle

import (
	"time"

	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

// Result is a one-shot recommendation, recomputed on every data change and
// never persisted. Callers track their own "dismissed" state.
type Result struct {
	IsStruggling      bool
	OverLimitDays     int
	TotalDaysWithLogs int

	CurrentDailyLimit    int
	CurrentPhaseExtended bool

	// ShouldSuggestExtension is the actionable flag: struggling and the
	// current phase has not already been extended once.
	ShouldSuggestExtension bool
}

// Detect scans the seven completed days before now. Today is excluded
// because a partial day cannot be judged over limit yet.
func Detect(logs []models.UsageLog, phases []models.TaperingPhase, cfg models.UserConfig, now time.Time) Result {
	models.ApplyConfigDefaults(&cfg)

	var r Result

	r.CurrentDailyLimit = cfg.BaselineDailyPouches
	if phase := models.FindPhase(phases, cfg.CurrentPhase); phase != nil {
		r.CurrentDailyLimit = phase.DailyLimit
		r.CurrentPhaseExtended = phase.IsExtended
	}

	byDay := models.LogsByDay(logs)
	for i := 1; i <= constants.StruggleWindowDays; i++ {
		count := len(byDay[timeutil.DaysAgoKey(now, i)])
		if count == 0 {
			continue
		}
		r.TotalDaysWithLogs++
		if count > r.CurrentDailyLimit {
			r.OverLimitDays++
		}
	}

	r.IsStruggling = r.TotalDaysWithLogs >= constants.StruggleMinDataDays &&
		r.OverLimitDays >= constants.StruggleOverLimitMin
	r.ShouldSuggestExtension = r.IsStruggling && !r.CurrentPhaseExtended

	return r
}
