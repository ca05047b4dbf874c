package cli

import (
	"fmt"

	"github.com/pouchfree/pouchfree/internal/achievements"
	"github.com/pouchfree/pouchfree/internal/models"
)

type AchievementsCmd struct {
	All bool `help:"Show locked achievements too."`
}

func (c *AchievementsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	unlocks, err := ctx.Store.GetAllUnlocks()
	if err != nil {
		return err
	}
	byType := make(map[string]models.AchievementUnlock, len(unlocks))
	for _, u := range unlocks {
		byType[u.AchievementType] = u
	}

	fmt.Printf("Unlocked %d of %d achievements\n", len(byType), len(achievements.Catalog))

	for _, category := range []achievements.Category{
		achievements.CategoryWaiting,
		achievements.CategoryConsistency,
		achievements.CategoryMilestone,
		achievements.CategoryReflection,
	} {
		printed := false
		for _, a := range achievements.ByCategory(category) {
			u, unlocked := byType[a.ID]
			if !unlocked && !c.All {
				continue
			}
			if !printed {
				fmt.Printf("\n%s\n", category)
				printed = true
			}
			if unlocked {
				marker := ""
				if !u.Seen {
					marker = "  NEW"
				}
				fmt.Printf("  %s %-16s %s (%s)%s\n", a.Emoji, a.Name, a.Description, u.UnlockedAt.Format("2006-01-02"), marker)
			} else {
				fmt.Printf("  🔒 %-16s %s\n", a.Name, a.Description)
			}
		}
	}

	// Listing counts as seeing
	for _, u := range unlocks {
		if !u.Seen {
			if err := ctx.Store.MarkUnlockSeen(u.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
