package plan

import (
	"testing"
	"time"

	"github.com/pouchfree/pouchfree/internal/models"
)

func TestGenerate_DefaultBaseline(t *testing.T) {
	phases := Generate(10, 6)

	if len(phases) != 5 {
		t.Fatalf("got %d phases, want 5", len(phases))
	}

	p1 := phases[0]
	if p1.DailyLimit != 10 || p1.StrengthMg != 6 || p1.WeekStart != 1 || p1.WeekEnd != 2 {
		t.Errorf("phase 1 = %+v, want baseline hold over weeks 1-2", p1)
	}
	if phases[1].DailyLimit != 8 { // round(10*0.75)
		t.Errorf("phase 2 limit = %d, want 8", phases[1].DailyLimit)
	}
	if phases[2].DailyLimit != 6 || phases[2].StrengthMg != 4 {
		t.Errorf("phase 3 = %d pouches at %dmg, want 6 at 4", phases[2].DailyLimit, phases[2].StrengthMg)
	}
	if phases[3].DailyLimit != 3 || phases[3].StrengthMg != 2 {
		t.Errorf("phase 4 = %d pouches at %dmg, want 3 at 2", phases[3].DailyLimit, phases[3].StrengthMg)
	}
	p5 := phases[4]
	if p5.DailyLimit != 0 || p5.StrengthMg != 0 {
		t.Errorf("phase 5 = %+v, want zero limit and strength", p5)
	}
	if p5.WeekStart != 15 {
		t.Errorf("phase 5 starts week %d, want 15", p5.WeekStart)
	}
}

func TestGenerate_FloorsHold(t *testing.T) {
	// A light user never tapers below the per-phase minimums
	phases := Generate(3, 3)

	if phases[1].DailyLimit != 4 {
		t.Errorf("phase 2 limit = %d, want floor 4", phases[1].DailyLimit)
	}
	if phases[2].DailyLimit != 3 {
		t.Errorf("phase 3 limit = %d, want floor 3", phases[2].DailyLimit)
	}
	if phases[3].DailyLimit != 2 {
		t.Errorf("phase 4 limit = %d, want floor 2", phases[3].DailyLimit)
	}
	// 3mg is already at or below the step threshold, so it holds until
	// the phase 4 drop to 2mg
	if phases[2].StrengthMg != 3 {
		t.Errorf("phase 3 strength = %d, want 3", phases[2].StrengthMg)
	}
	if phases[3].StrengthMg != 2 {
		t.Errorf("phase 4 strength = %d, want 2", phases[3].StrengthMg)
	}
}

func TestGenerate_ZeroBaselineUsesDefaults(t *testing.T) {
	phases := Generate(0, 0)
	if phases[0].DailyLimit != 10 || phases[0].StrengthMg != 6 {
		t.Errorf("phase 1 = %+v, want default 10 pouches at 6mg", phases[0])
	}
}

func TestCurrentWeek(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"same day", now, 1},
		{"six days in", now.Add(-6 * 24 * time.Hour), 1},
		{"seven days in", now.Add(-7 * 24 * time.Hour), 2},
		{"four weeks in", now.Add(-28 * 24 * time.Hour), 5},
		{"zero start", time.Time{}, 1},
		{"future start", now.Add(24 * time.Hour), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CurrentWeek(tc.start, now); got != tc.want {
				t.Errorf("CurrentWeek = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPhaseProgress(t *testing.T) {
	phase := models.TaperingPhase{PhaseNumber: 2, WeekStart: 3, WeekEnd: 6}

	if got := PhaseProgress(phase, 3); got != 25 {
		t.Errorf("first week progress = %f, want 25", got)
	}
	if got := PhaseProgress(phase, 6); got != 100 {
		t.Errorf("last week progress = %f, want 100", got)
	}
	if got := PhaseProgress(phase, 10); got != 100 {
		t.Errorf("past-end progress = %f, want clamped 100", got)
	}
	if got := PhaseProgress(phase, 1); got != 0 {
		t.Errorf("pre-start progress = %f, want 0", got)
	}
}

func TestAdvance(t *testing.T) {
	phases := Generate(10, 6)

	if next, ok := Advance(phases, 1); !ok || next != 2 {
		t.Errorf("Advance(1) = %d,%v, want 2,true", next, ok)
	}
	if next, ok := Advance(phases, 5); ok || next != 5 {
		t.Errorf("Advance(5) = %d,%v, want 5,false on the final phase", next, ok)
	}
}

func TestExtend(t *testing.T) {
	phases := Generate(10, 6)

	extended := Extend(phases, 2, 2)

	if !extended[1].IsExtended {
		t.Error("phase 2 should be marked extended")
	}
	if extended[1].WeekEnd != 8 {
		t.Errorf("phase 2 weekEnd = %d, want 8", extended[1].WeekEnd)
	}
	if extended[1].WeekStart != 3 {
		t.Errorf("phase 2 weekStart = %d, want unchanged 3", extended[1].WeekStart)
	}
	// Earlier phases untouched, later phases shifted whole
	if extended[0].WeekEnd != 2 {
		t.Errorf("phase 1 weekEnd = %d, want unchanged 2", extended[0].WeekEnd)
	}
	if extended[2].WeekStart != 9 || extended[2].WeekEnd != 12 {
		t.Errorf("phase 3 weeks = %d-%d, want 9-12", extended[2].WeekStart, extended[2].WeekEnd)
	}

	// Input slice stays untouched
	if phases[1].IsExtended || phases[1].WeekEnd != 6 {
		t.Error("Extend modified its input")
	}
}
