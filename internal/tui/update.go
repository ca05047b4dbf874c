package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pouchfree/pouchfree/internal/achievements"
	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/timer"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progressBar.Width = msg.Width - 8
		if m.progressBar.Width > 60 {
			m.progressBar.Width = 60
		}
	case TickMsg:
		m.now = time.Time(msg)
		m.recompute()
		cmds = append(cmds, tick())
	}

	if m.state == StateLogForm {
		return m.updateLogForm(msg, cmds)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, tea.Batch(cmds...)
		}

		if m.state == StateCraving {
			// Any other key leaves the support screen.
			m.state = m.previousState
			return m, tea.Batch(cmds...)
		}

		switch {
		case key.Matches(msg, m.keys.Tab):
			m.state = nextView(m.state)
			m.statusMsg = ""
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = prevView(m.state)
			m.statusMsg = ""
		case key.Matches(msg, m.keys.Log):
			m.openLogForm()
			cmds = append(cmds, m.form.Init())
		case key.Matches(msg, m.keys.Craving):
			m.openCravingSupport()
		}
	}

	return m, tea.Batch(cmds...)
}

func nextView(s SessionState) SessionState {
	switch s {
	case StateTimer:
		return StateStats
	case StateStats:
		return StateProgress
	case StateProgress:
		return StatePlan
	case StatePlan:
		return StateAwards
	default:
		return StateTimer
	}
}

func prevView(s SessionState) SessionState {
	switch s {
	case StateTimer:
		return StateAwards
	case StateStats:
		return StateTimer
	case StateProgress:
		return StateStats
	case StatePlan:
		return StateProgress
	default:
		return StatePlan
	}
}

func (m *Model) openLogForm() {
	strength := m.cfg.BaselineStrengthMg
	if phase := m.currentPhase(); phase != nil {
		strength = phase.StrengthMg
	}
	m.logForm = &LogFormModel{Strength: strconv.Itoa(strength)}

	options := []huh.Option[string]{huh.NewOption("skip", "")}
	for _, t := range models.Triggers {
		options = append(options, huh.NewOption(string(t), string(t)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Strength (mg)").
				Value(&m.logForm.Strength),
			huh.NewSelect[string]().
				Title("Trigger").
				Options(options...).
				Value(&m.logForm.Trigger),
		),
	)
	m.previousState = m.state
	m.state = StateLogForm
}

func (m Model) updateLogForm(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, tea.Batch(cmds...)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.submitLog()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) submitLog() {
	strength, err := strconv.Atoi(m.logForm.Strength)
	if err != nil || strength < 0 {
		m.statusMsg = dangerStyle.Render("Strength must be a non-negative number.")
		return
	}

	log := models.UsageLog{
		Timestamp:   m.now,
		StrengthMg:  strength,
		Trigger:     models.TriggerType(m.logForm.Trigger),
		IsOverLimit: m.timerState.IsOverLimit,
	}
	if _, err := m.store.AddLog(log); err != nil {
		m.statusMsg = dangerStyle.Render(fmt.Sprintf("Log failed: %v", err))
		return
	}

	if m.timerState.Status == timer.StatusAvailable && m.timerState.SecondsWaitedPastTimer > 0 {
		waited := float64(m.timerState.SecondsWaitedPastTimer)
		_, _ = m.store.AddMetricEvent(models.MetricEvent{
			EventType: models.MetricTimerWait,
			Timestamp: m.now,
			Value:     &waited,
		})
		m.statusMsg = successStyle.Render(
			fmt.Sprintf("Logged. You waited %s past your timer.", timeutil.FormatSeconds(m.timerState.SecondsWaitedPastTimer)))
	} else {
		m.statusMsg = successStyle.Render("Logged.")
	}

	m.refresh()
	m.evaluateAchievements()
}

func (m *Model) openCravingSupport() {
	_, _ = m.store.AddMetricEvent(models.MetricEvent{
		EventType: models.MetricCravingSupportUse,
		Timestamp: m.now,
	})
	m.previousState = m.state
	m.state = StateCraving
	m.evaluateAchievements()
}

// evaluateAchievements runs the unlock predicates and surfaces the newest
// unlock in the status line.
func (m *Model) evaluateAchievements() {
	snap, err := m.store.Snapshot()
	if err != nil {
		return
	}
	newly, err := achievements.Evaluate(snap, m.store, m.now)
	if err != nil || len(newly) == 0 {
		return
	}
	if unlocks, err := m.store.GetAllUnlocks(); err == nil {
		m.unlocks = unlocks
	}
	if a := achievements.Lookup(newly[len(newly)-1]); a != nil {
		m.statusMsg = successStyle.Render(fmt.Sprintf("%s Achievement unlocked: %s", a.Emoji, a.Name))
	}
}
