// Package analysis derives every reported statistic from a loaded set of
// workout data. A Dataset is built once from the parsed sets and is immutable
// afterwards, so all query methods are safe for concurrent use.
package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mossaka/hevy-visualization/internal/models"
)

// LiftRule matches a tracked barbell lift by name. Contains must appear in
// the exercise name and none of Excludes may, so "Bench Press" matches
// without also claiming "Incline Bench Press".
type LiftRule struct {
	Name     string   `yaml:"name" json:"name"`
	Contains string   `yaml:"contains" json:"contains"`
	Excludes []string `yaml:"excludes" json:"excludes,omitempty"`
}

// Matches reports whether the exercise name belongs to this lift.
func (r LiftRule) Matches(exercise string) bool {
	if !strings.Contains(exercise, r.Contains) {
		return false
	}
	for _, ex := range r.Excludes {
		if strings.Contains(exercise, ex) {
			return false
		}
	}
	return true
}

// DefaultLifts are the main lifts tracked for progression, records and goals.
func DefaultLifts() []LiftRule {
	return []LiftRule{
		{Name: "Bench Press", Contains: "Bench Press", Excludes: []string{"Incline", "Decline", "Close"}},
		{Name: "Squat", Contains: "Squat", Excludes: []string{"Bulgarian", "Split"}},
		{Name: "Deadlift", Contains: "Deadlift", Excludes: []string{"Romanian", "Sumo"}},
		{Name: "Overhead Press", Contains: "Overhead Press"},
	}
}

// GoalConfig tunes goal derivation and progress display.
type GoalConfig struct {
	// ImprovementFactor multiplies the baseline 1RM to set the target.
	ImprovementFactor float64 `yaml:"improvement_factor"`
	// MeaningfulPct is the minimum progress, in percent, treated as real
	// movement rather than day-to-day noise.
	MeaningfulPct float64 `yaml:"meaningful_pct"`
	// BaselineDays sets how far past the first logged set of a lift the
	// baseline window extends.
	BaselineDays int `yaml:"baseline_days"`
	// RecentSets is how many of the latest qualifying sets establish the
	// current 1RM.
	RecentSets int `yaml:"recent_sets"`
}

// DefaultGoals returns the standard goal tuning.
func DefaultGoals() GoalConfig {
	return GoalConfig{
		ImprovementFactor: 1.20,
		MeaningfulPct:     5,
		BaselineDays:      30,
		RecentSets:        20,
	}
}

// Options configures dataset derivation.
type Options struct {
	Lifts        []LiftRule
	Goals        GoalConfig
	TopExercises int
}

func (o Options) withDefaults() Options {
	if len(o.Lifts) == 0 {
		o.Lifts = DefaultLifts()
	}
	if o.Goals == (GoalConfig{}) {
		o.Goals = DefaultGoals()
	}
	if o.TopExercises == 0 {
		o.TopExercises = 15
	}
	return o
}

// Dataset holds one immutable load of workout data plus indexes for the
// query methods.
type Dataset struct {
	BuildID string
	BuiltAt time.Time

	// Sets is ordered by start time.
	Sets []models.Set
	// Workouts is ordered by start time; each owns its sets.
	Workouts []models.Workout

	opts          Options
	byExercise    map[string][]models.Set
	byCategory    map[models.Category][]models.Set
	exerciseNames []string
}

// New builds a dataset from parsed sets. The sets must be non-empty and
// already ordered by start time.
func New(sets []models.Set, opts Options) (*Dataset, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("no sets to analyze")
	}

	d := &Dataset{
		BuildID:    uuid.NewString(),
		BuiltAt:    time.Now().UTC(),
		Sets:       sets,
		opts:       opts.withDefaults(),
		byExercise: make(map[string][]models.Set),
		byCategory: make(map[models.Category][]models.Set),
	}

	workouts := make(map[models.WorkoutKey]*models.Workout)
	var order []models.WorkoutKey
	for _, s := range sets {
		d.byExercise[s.Exercise] = append(d.byExercise[s.Exercise], s)
		d.byCategory[s.Category] = append(d.byCategory[s.Category], s)

		key := models.WorkoutKey{Title: s.Workout, Day: s.Day()}
		w, ok := workouts[key]
		if !ok {
			w = &models.Workout{Title: s.Workout, Day: key.Day, Start: s.Start, End: s.End}
			workouts[key] = w
			order = append(order, key)
		}
		if s.Start.Before(w.Start) {
			w.Start = s.Start
		}
		if s.End.After(w.End) {
			w.End = s.End
		}
		w.Sets = append(w.Sets, s)
	}

	for _, key := range order {
		d.Workouts = append(d.Workouts, *workouts[key])
	}
	sort.SliceStable(d.Workouts, func(i, j int) bool {
		return d.Workouts[i].Start.Before(d.Workouts[j].Start)
	})

	for name := range d.byExercise {
		d.exerciseNames = append(d.exerciseNames, name)
	}
	sort.Strings(d.exerciseNames)

	return d, nil
}

// Exercises returns every distinct exercise name, sorted.
func (d *Dataset) Exercises() []string {
	return d.exerciseNames
}

// ExerciseSets returns all sets of one exercise in chronological order, or
// false when the exercise was never logged.
func (d *Dataset) ExerciseSets(name string) ([]models.Set, bool) {
	sets, ok := d.byExercise[name]
	return sets, ok
}

// CategorySets returns all sets of one category in chronological order.
func (d *Dataset) CategorySets(cat models.Category) []models.Set {
	return d.byCategory[cat]
}

// Lifts returns the tracked lift rules in effect.
func (d *Dataset) Lifts() []LiftRule {
	return d.opts.Lifts
}

// liftSets returns the working sets matching a lift rule, in order.
func (d *Dataset) liftSets(rule LiftRule) []models.Set {
	var out []models.Set
	for _, s := range d.Sets {
		if s.IsWorking() && rule.Matches(s.Exercise) {
			out = append(out, s)
		}
	}
	return out
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns an exercise or category name into a document-name fragment,
// e.g. "Bench Press (Barbell)" becomes "bench_press_barbell".
func Slug(name string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(s, "_")
}
