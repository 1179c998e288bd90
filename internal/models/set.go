package models

import "time"

// SetType classifies how a set was performed. Warmup sets count toward set
// totals but are excluded from volume, 1RM and personal-record calculations.
type SetType string

const (
	SetTypeNormal  SetType = "normal"
	SetTypeWarmup  SetType = "warmup"
	SetTypeFailure SetType = "failure"
	SetTypeDropset SetType = "dropset"
)

// Category is a muscle-group classification derived from the exercise name.
type Category string

const (
	CategoryChest     Category = "Chest"
	CategoryBack      Category = "Back"
	CategoryLegs      Category = "Legs"
	CategoryShoulders Category = "Shoulders"
	CategoryArms      Category = "Arms"
	CategoryCore      Category = "Core"
	CategoryOther     Category = "Other"
)

// Categories lists every category in presentation order.
var Categories = []Category{
	CategoryChest,
	CategoryBack,
	CategoryLegs,
	CategoryShoulders,
	CategoryArms,
	CategoryCore,
	CategoryOther,
}

// Set is one logged performance of an exercise: a single row of a Hevy CSV
// export. Immutable once loaded.
type Set struct {
	Workout       string    `json:"workout"`
	Start         time.Time `json:"start_time"`
	End           time.Time `json:"end_time"`
	Exercise      string    `json:"exercise"`
	SetIndex      int       `json:"set_index"`
	Type          SetType   `json:"set_type"`
	WeightLbs     float64   `json:"weight_lbs"`
	Reps          int       `json:"reps"`
	DistanceMiles float64   `json:"distance_miles,omitempty"`
	DurationSec   float64   `json:"duration_seconds,omitempty"`
	RPE           float64   `json:"rpe,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Category      Category  `json:"category"`
}

// Day returns the calendar date the set was performed on.
func (s Set) Day() time.Time {
	return time.Date(s.Start.Year(), s.Start.Month(), s.Start.Day(), 0, 0, 0, 0, time.UTC)
}

// Volume is weight times reps for this set.
func (s Set) Volume() float64 {
	return s.WeightLbs * float64(s.Reps)
}

// IsWorking reports whether the set qualifies for volume, 1RM and PR
// calculations.
func (s Set) IsWorking() bool {
	return s.Type != SetTypeWarmup
}

// WorkoutKey identifies a workout session: a title may repeat across days and
// a day may hold several differently-titled sessions.
type WorkoutKey struct {
	Title string
	Day   time.Time
}

// Workout is a named session owning an ordered sequence of sets.
type Workout struct {
	Title string    `json:"title"`
	Day   time.Time `json:"date"`
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
	Sets  []Set     `json:"sets"`
}

// Key returns the session identity.
func (w Workout) Key() WorkoutKey {
	return WorkoutKey{Title: w.Title, Day: w.Day}
}

// Duration is the session length: latest end minus earliest start among the
// rows belonging to the session.
func (w Workout) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Volume sums weight times reps over the session's working sets.
func (w Workout) Volume() float64 {
	var total float64
	for _, s := range w.Sets {
		if s.IsWorking() {
			total += s.Volume()
		}
	}
	return total
}
