// Package category assigns a muscle-group category to an exercise name via an
// ordered table of case-insensitive substring rules. Every name resolves to
// exactly one category; names matching no rule fall through to Other.
package category

import (
	"strings"

	"github.com/Mossaka/hevy-visualization/internal/models"
)

type rule struct {
	category models.Category
	keywords []string
}

// Rule order matters: earlier categories win when keywords of several
// categories appear in the same name.
var rules = []rule{
	{models.CategoryChest, []string{
		"Bench Press", "Incline Bench Press", "Chest Press", "Chest Fly",
		"Decline Bench Press", "Floor Press", "Incline Chest Press",
	}},
	{models.CategoryBack, []string{
		"Dumbbell Row", "Seated Cable Row", "Bent Over Row", "Lat Pulldown",
		"Pull Up", "Chin Up", "T Bar Row", "Iso-Lateral Row", "Chest Supported Incline Row",
		"Single Arm Cable Row", "Gorilla Row", "Wide Pull Up",
	}},
	{models.CategoryLegs, []string{
		"Squat", "Deadlift", "Romanian Deadlift", "Leg Press", "Leg Extension",
		"Lying Leg Curl", "Hip Thrust", "Bulgarian Split Squat", "Split Squat",
		"Walking Lunge", "Hip Abduction", "Hip Adduction", "Seated Leg Curl",
		"Box step up", "Sumo Deadlift",
	}},
	{models.CategoryShoulders, []string{
		"Overhead Press", "Shoulder Press", "Lateral Raise", "Rear Delt Reverse Fly",
		"Face Pull", "Arnold Press",
	}},
	{models.CategoryArms, []string{
		"Bicep Curl", "Triceps Pushdown", "Triceps Dip", "Skullcrusher",
		"Preacher Curl", "Triceps Extension", "Triceps Rope Pushdown",
		"EZ Bar Biceps Curl", "Floor Triceps Dip",
	}},
	{models.CategoryCore, []string{
		"Decline Crunch", "Cable Crunch", "Side Bend", "Dragon Flag",
		"Plank", "Ab Wheel", "Jack Knife", "Crunch", "Landmine 180",
	}},
}

// Classify maps an exercise name to its category. The first rule whose
// keyword appears in the name, case-insensitively, wins.
func Classify(exercise string) models.Category {
	lower := strings.ToLower(exercise)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return r.category
			}
		}
	}
	return models.CategoryOther
}

// Side places a set on one side of the push/pull split.
type Side int

const (
	SideNeither Side = iota
	SidePush
	SidePull
)

var pullArmKeywords = []string{"curl", "bicep"}

// PushPullSide maps a categorized exercise to the push/pull split. Chest and
// Shoulders are pushing, Back is pulling, and Arms splits on the movement:
// curls pull, everything else (triceps work) pushes. Legs, Core and Other sit
// outside the split.
func PushPullSide(cat models.Category, exercise string) Side {
	switch cat {
	case models.CategoryChest, models.CategoryShoulders:
		return SidePush
	case models.CategoryBack:
		return SidePull
	case models.CategoryArms:
		lower := strings.ToLower(exercise)
		for _, kw := range pullArmKeywords {
			if strings.Contains(lower, kw) {
				return SidePull
			}
		}
		return SidePush
	default:
		return SideNeither
	}
}

// IsUpper reports whether the category belongs to the upper body for the
// upper/lower split. Legs and Core form the lower side; Other is excluded.
func IsUpper(cat models.Category) bool {
	switch cat {
	case models.CategoryChest, models.CategoryBack, models.CategoryShoulders, models.CategoryArms:
		return true
	default:
		return false
	}
}

// IsLower reports whether the category belongs to the lower side of the
// upper/lower split.
func IsLower(cat models.Category) bool {
	return cat == models.CategoryLegs || cat == models.CategoryCore
}
