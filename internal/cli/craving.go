package cli

import (
	"fmt"
	"time"

	"github.com/pouchfree/pouchfree/internal/models"
	"github.com/pouchfree/pouchfree/internal/stats"
)

type CravingCmd struct{}

type distraction struct {
	emoji string
	text  string
}

var distractions = []distraction{
	{"🚶", "Take a short walk"},
	{"💧", "Drink a glass of water"},
	{"🎵", "Listen to a favorite song"},
	{"📱", "Text a friend"},
	{"🧊", "Hold ice cubes briefly"},
	{"🫁", "Take 10 deep breaths"},
	{"🎮", "Play a quick game"},
	{"📖", "Read something interesting"},
}

func (c *CravingCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()

	// Every use of the support flow is counted; ten of them unlocks an
	// achievement.
	if _, err := ctx.Store.AddMetricEvent(models.MetricEvent{
		EventType: models.MetricCravingSupportUse,
		Timestamp: now,
	}); err != nil {
		return err
	}

	fmt.Println("Craving Support")
	fmt.Println("Choose a tool to help you wait it out. You've got this!")
	fmt.Println()
	fmt.Println("Wait 5 minutes. Most cravings pass within 5-10 minutes.")
	fmt.Println()
	fmt.Println("Or try 4-7-8 breathing, four rounds:")
	fmt.Println("  breathe in for 4, hold for 7, breathe out for 8")
	fmt.Println()

	cfg, err := ctx.Store.GetConfig()
	if err != nil {
		return err
	}
	st := stats.Compute(mustLogs(ctx), cfg, now)
	if st.CurrentStreak > 0 {
		fmt.Printf("You're on a %d-day streak. Remember why you started.\n", st.CurrentStreak)
		fmt.Println()
	}

	fmt.Println("Distraction ideas:")
	for _, d := range distractions {
		fmt.Printf("  %s %s\n", d.emoji, d.text)
	}
	fmt.Println()
	fmt.Println("\"Every moment you resist makes you stronger. You're building a new version of yourself.\"")

	ctx.EvaluateAchievements(now)
	return nil
}
