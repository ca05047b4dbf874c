// Package achievements evaluates a fixed set of unlock conditions over the
// app's aggregate data. Every condition is a pure predicate and every unlock
// happens at most once per achievement type.
package achievements

// Category groups achievements for display.
type Category string

const (
	CategoryWaiting     Category = "waiting"
	CategoryConsistency Category = "consistency"
	CategoryMilestone   Category = "milestone"
	CategoryReflection  Category = "reflection"
)

// Achievement type ids. These are stored in the database, so they never
// change even when display copy does.
const (
	PatientOne     = "patient_one"
	MasterOfDelay  = "master_of_delay"
	CravingCrusher = "craving_crusher"
	DailyTracker   = "daily_tracker"
	HonestLogger   = "honest_logger"
	PatternSpotter = "pattern_spotter"
	PhasePioneer   = "phase_pioneer"
	StrengthShift  = "strength_shift"
	HalfwayHero    = "halfway_hero"
	ZeroDay        = "zero_day"
	FreedomWeek    = "freedom_week"
	MindfulMoment  = "mindful_moment"
	GrowthMindset  = "growth_mindset"
	SelfCompassion = "self_compassion"
)

// Achievement is the display metadata for one achievement type.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Emoji       string
	Category    Category
}

// Catalog lists every achievement in display order.
var Catalog = []Achievement{
	{PatientOne, "Patient One", "Waited 10 min past timer 5 times", "⏳", CategoryWaiting},
	{MasterOfDelay, "Master of Delay", "Average wait past timer reached 10 min", "🎯", CategoryWaiting},
	{CravingCrusher, "Craving Crusher", "Used craving support 10 times", "💪", CategoryWaiting},

	{DailyTracker, "Daily Tracker", "Logged every pouch for 7 days", "📊", CategoryConsistency},
	{HonestLogger, "Honest Logger", "Logged an over-limit day with reflection", "💬", CategoryConsistency},
	{PatternSpotter, "Pattern Spotter", "Identified your top trigger", "🔍", CategoryConsistency},

	{PhasePioneer, "Phase Pioneer", "Completed Phase 1", "🚀", CategoryMilestone},
	{StrengthShift, "Strength Shift", "Successfully reduced nicotine strength", "⚡", CategoryMilestone},
	{HalfwayHero, "Halfway Hero", "Reached Phase 3", "🏆", CategoryMilestone},
	{ZeroDay, "Zero Day", "First nicotine-free day", "🌟", CategoryMilestone},
	{FreedomWeek, "Freedom Week", "7 days nicotine-free", "🦅", CategoryMilestone},

	{MindfulMoment, "Mindful Moment", "Completed 10 craving reflections", "🧘", CategoryReflection},
	{GrowthMindset, "Growth Mindset", "Restarted journey (every attempt counts!)", "🌱", CategoryReflection},
	{SelfCompassion, "Self-Compassion", "Acknowledged a hard day kindly", "💝", CategoryReflection},
}

// Lookup returns the catalog entry for an id, or nil when the id is unknown.
func Lookup(id string) *Achievement {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// ByCategory filters the catalog, preserving display order.
func ByCategory(c Category) []Achievement {
	var out []Achievement
	for _, a := range Catalog {
		if a.Category == c {
			out = append(out, a)
		}
	}
	return out
}
