package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/storage"
	"github.com/pouchfree/pouchfree/internal/timer"
	"github.com/pouchfree/pouchfree/internal/timeutil"
)

type SessionState int

const (
	StateTimer SessionState = iota
	StateStats
	StateProgress
	StatePlan
	StateAwards
	StateLogForm
	StateCraving
)

// LogFormModel holds the quick-log form's field values.
type LogFormModel struct {
	Strength string
	Trigger  string
}

type Model struct {
	store         storage.Provider
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	progressBar   progress.Model

	cfg     models.UserConfig
	logs    []models.UsageLog
	phases  []models.TaperingPhase
	unlocks []models.AchievementUnlock

	now        time.Time
	timerState timer.State
	timerErr   error

	form      *huh.Form
	logForm   *LogFormModel
	statusMsg string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider) Model {
	m := Model{
		store:       store,
		state:       StateTimer,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		progressBar: progress.New(progress.WithDefaultGradient()),
		now:         time.Now(),
	}
	m.refresh()
	return m
}

// refresh re-reads stored data and recomputes the countdown. Read errors
// leave the previous data in place so the view keeps rendering.
func (m *Model) refresh() {
	if cfg, err := m.store.GetConfig(); err == nil {
		models.ApplyConfigDefaults(&cfg)
		m.cfg = cfg
	}
	if logs, err := m.store.GetAllLogs(); err == nil {
		m.logs = logs
	}
	if phases, err := m.store.GetAllPhases(); err == nil {
		m.phases = phases
	}
	if unlocks, err := m.store.GetAllUnlocks(); err == nil {
		m.unlocks = unlocks
	}
	m.recompute()
}

// recompute refreshes only the countdown state from data already in memory.
func (m *Model) recompute() {
	limit := m.dailyLimit()
	interval, err := timeutil.ResolveInterval(m.cfg.PouchIntervalMinutes, m.cfg.WakeTime, m.cfg.SleepTime, limit)
	if err != nil {
		m.timerErr = err
		return
	}

	in := timer.Input{
		LastUse:     lastLiveUse(m.logs),
		IntervalMin: interval,
		WakeTime:    m.cfg.WakeTime,
		SleepTime:   m.cfg.SleepTime,
		DailyLimit:  limit,
		TodayCount:  len(models.LogsByDay(m.logs)[timeutil.DayKey(m.now)]),
		Now:         m.now,
	}
	m.timerState, m.timerErr = in.Compute()
}

func (m *Model) dailyLimit() int {
	if phase := models.FindPhase(m.phases, m.cfg.CurrentPhase); phase != nil {
		return phase.DailyLimit
	}
	return m.cfg.BaselineDailyPouches
}

func (m *Model) currentPhase() *models.TaperingPhase {
	return models.FindPhase(m.phases, m.cfg.CurrentPhase)
}

// lastLiveUse returns the newest non-backfill log time. Backfilled logs do
// not restart the countdown.
func lastLiveUse(logs []models.UsageLog) *time.Time {
	var last *time.Time
	for i := range logs {
		if logs[i].IsBackfill {
			continue
		}
		if last == nil || logs[i].Timestamp.After(*last) {
			last = &logs[i].Timestamp
		}
	}
	return last
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Log, m.keys.Craving, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab},
		{m.keys.Log, m.keys.Craving},
		{m.keys.Quit, m.keys.Help},
	}
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}
