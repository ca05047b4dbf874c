package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pouchfree/pouchfree/internal/achievements"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/nicotinefree"
	"github.com/pouchfree/pouchfree/internal/plan"
	"github.com/pouchfree/pouchfree/internal/stats"
	"github.com/pouchfree/pouchfree/internal/struggle"
	"github.com/pouchfree/pouchfree/internal/timer"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateTimer:
		content = m.viewTimer()
	case StateStats:
		content = m.viewStats()
	case StateProgress:
		content = m.viewProgress()
	case StatePlan:
		content = m.viewPlan()
	case StateAwards:
		content = m.viewAwards()
	case StateLogForm:
		content = m.form.View()
	case StateCraving:
		content = m.viewCraving()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.statusMsg,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Timer", "Stats", "Progress", "Plan", "Awards"}
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTimer() string {
	if m.timerErr != nil {
		return docStyle.Render(dangerStyle.Render(fmt.Sprintf("Timer unavailable: %v", m.timerErr)))
	}

	var lines []string
	switch m.timerState.Status {
	case timer.StatusSleeping:
		lines = append(lines,
			countdownStyle.Render("Sleeping 😴"),
			mutedStyle.Render(fmt.Sprintf("Wake window opens in %s", timeutil.FormatSeconds(m.timerState.Remaining))),
		)
	case timer.StatusCounting:
		lines = append(lines,
			countdownStyle.Render("Next pouch in "+timeutil.FormatSeconds(m.timerState.Remaining)),
			m.progressBar.ViewAs(m.timerState.Progress/100),
		)
	case timer.StatusAvailable:
		lines = append(lines, countdownStyle.Render(successStyle.Render("Pouch available")))
		if m.timerState.SecondsWaitedPastTimer > 0 {
			lines = append(lines,
				successStyle.Render(fmt.Sprintf("You've held out %s past the timer", timeutil.FormatSeconds(m.timerState.SecondsWaitedPastTimer))))
		}
	}

	today := fmt.Sprintf("Today: %d/%d pouches", len(models.LogsByDay(m.logs)[timeutil.DayKey(m.now)]), m.dailyLimit())
	if m.timerState.IsOverLimit {
		today += dangerStyle.Render("  over limit")
	}
	lines = append(lines, "", today)

	if phase := m.currentPhase(); phase != nil {
		lines = append(lines, mutedStyle.Render(
			fmt.Sprintf("Phase %d: %d pouches/day at %dmg", phase.PhaseNumber, phase.DailyLimit, phase.StrengthMg)))
	}

	if r := struggle.Detect(m.logs, m.phases, m.cfg, m.now); r.ShouldSuggestExtension {
		lines = append(lines, "", warningStyle.Render("Rough week? Extending the current phase is always an option."))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewStats() string {
	st := stats.Compute(m.logs, m.cfg, m.now)

	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("Day %d of your journey", st.DaysSinceStart+1)))
	fmt.Fprintf(&b, "Current streak: %d days under limit (longest %d)\n", st.CurrentStreak, st.LongestStreak)

	switch {
	case st.ReductionPercent == nil:
		fmt.Fprintln(&b, mutedStyle.Render("Reduction: tracking, need a few more days of data"))
	case st.ReductionExceedsBaseline:
		fmt.Fprintln(&b, warningStyle.Render(fmt.Sprintf("Above your baseline this week (%.1f/day vs %d/day)", st.CurrentAverage, st.BaselineDaily)))
	default:
		fmt.Fprintf(&b, "Reduction: %d%% below baseline (%.1f/day vs %d/day)\n", *st.ReductionPercent, st.CurrentAverage, st.BaselineDaily)
	}

	fmt.Fprintf(&b, "\nThis week: %d pouches (%.1f/day)\n", st.WeeklyTotal, st.WeeklyAverage)
	for _, d := range st.WeeklyData {
		marker := ""
		if !d.UnderLimit {
			marker = dangerStyle.Render(" !")
		}
		fmt.Fprintf(&b, "  %s %s%s\n", d.Date, strings.Repeat("#", d.Count), marker)
	}

	if len(st.TriggerCounts) > 0 {
		fmt.Fprintln(&b, "\nTriggers:")
		type tc struct {
			t models.TriggerType
			n int
		}
		var counts []tc
		for t, n := range st.TriggerCounts {
			counts = append(counts, tc{t, n})
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].n != counts[j].n {
				return counts[i].n > counts[j].n
			}
			return counts[i].t < counts[j].t
		})
		for _, c := range counts {
			fmt.Fprintf(&b, "  %-12s %d\n", c.t, c.n)
		}
	}

	return docStyle.Render(b.String())
}

func (m Model) viewProgress() string {
	p := nicotinefree.Compute(m.logs, m.phases, m.cfg, m.now)

	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render("Nicotine-free progress"))
	if p.InNicotineFreePhase {
		fmt.Fprintln(&b, "You're in the nicotine-free stretch of your plan.")
	}
	if p.TodayTotalCount > 0 {
		fmt.Fprintf(&b, "Today: %d of %d pouches at 0mg\n", p.TodayZeroMgCount, p.TodayTotalCount)
	}
	fmt.Fprintf(&b, "Streak: %d consecutive nicotine-free days\n", p.ConsecutiveNicotineFreeDays)
	fmt.Fprintf(&b, "Last 30 days: %d nicotine-free days\n", p.TotalNicotineFreeDays)

	if p.HasFreedomWeek {
		fmt.Fprintln(&b, successStyle.Render("Freedom week reached: a full week nicotine-free. 🕊️"))
	} else {
		fmt.Fprintf(&b, "Freedom week: %.0f%%\n", p.ProgressToFreedomWeek)
		fmt.Fprintln(&b, m.progressBar.ViewAs(p.ProgressToFreedomWeek/100))
	}

	return docStyle.Render(b.String())
}

func (m Model) viewPlan() string {
	var b strings.Builder
	week := plan.CurrentWeek(m.cfg.StartDate, m.now)
	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("Tapering plan — week %d", week)))

	for _, p := range m.phases {
		marker := "  "
		if p.PhaseNumber == m.cfg.CurrentPhase {
			marker = "> "
		}
		target := fmt.Sprintf("%d pouches/day at %dmg", p.DailyLimit, p.StrengthMg)
		if p.DailyLimit == 0 {
			target = "pouch-free"
		}
		span := fmt.Sprintf("weeks %d-%d", p.WeekStart, p.WeekEnd)
		if p.PhaseNumber == models.FinalPhaseNumber(m.phases) {
			span = fmt.Sprintf("week %d onward", p.WeekStart)
		}
		line := fmt.Sprintf("%sPhase %d  %-28s %s", marker, p.PhaseNumber, target, span)
		if p.PhaseNumber == m.cfg.CurrentPhase {
			line = titleStyle.Render(line)
		}
		fmt.Fprintln(&b, line)
	}

	if phase := m.currentPhase(); phase != nil {
		fmt.Fprintf(&b, "\nPhase progress: %.0f%%\n", plan.PhaseProgress(*phase, week))
		if phase.IsExtended {
			fmt.Fprintln(&b, mutedStyle.Render("This phase has been extended."))
		}
	}

	return docStyle.Render(b.String())
}

func (m Model) viewAwards() string {
	unlocked := make(map[string]models.AchievementUnlock, len(m.unlocks))
	for _, u := range m.unlocks {
		unlocked[u.AchievementType] = u
	}

	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("Achievements %d/%d", len(unlocked), len(achievements.Catalog))))
	for _, a := range achievements.Catalog {
		if u, ok := unlocked[a.ID]; ok {
			line := fmt.Sprintf("%s %-16s %s", a.Emoji, a.Name, a.Description)
			if !u.Seen {
				line += successStyle.Render("  NEW")
			}
			fmt.Fprintln(&b, line)
		} else {
			fmt.Fprintln(&b, mutedStyle.Render(fmt.Sprintf("🔒 %-16s %s", a.Name, a.Description)))
		}
	}

	return docStyle.Render(b.String())
}

func (m Model) viewCraving() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Craving Support"),
		"Most cravings pass within 5-10 minutes. You've got this!",
		"",
		"Try 4-7-8 breathing: in for 4, hold for 7, out for 8.",
		"",
		"Or pick a distraction:",
		"  🚶 Take a short walk      💧 Drink a glass of water",
		"  🎵 Listen to a song      📱 Text a friend",
		"  🧊 Hold ice cubes        🫁 Take 10 deep breaths",
		"",
		warningStyle.Render("\"Every moment you resist makes you stronger.\""),
		"",
		mutedStyle.Render("press any key to go back"),
	)
	return docStyle.Render(content)
}
