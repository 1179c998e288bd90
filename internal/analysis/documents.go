package analysis

import (
	"sort"

	"github.com/Mossaka/hevy-visualization/internal/models"
)

// DatePoint is one day's best estimated 1RM for a lift.
type DatePoint struct {
	Date   string  `json:"date"`
	Est1RM float64 `json:"estimated_1rm"`
}

// LiftProgress is a tracked lift's record plus its day-by-day history.
type LiftProgress struct {
	Lift    string      `json:"lift"`
	Best    *BestSet    `json:"best_set"`
	Sets    int         `json:"sets"`
	History []DatePoint `json:"history"`
}

// WorkoutDate counts activity on one calendar day.
type WorkoutDate struct {
	Date     string `json:"date"`
	Workouts int    `json:"workouts"`
	Sets     int    `json:"sets"`
}

// RecentSet is one set inside a recent-workout listing. PR marks a working
// set heavier than every earlier working set of the same exercise.
type RecentSet struct {
	WeightLbs float64        `json:"weight_lbs"`
	Reps      int            `json:"reps"`
	Type      models.SetType `json:"set_type"`
	PR        bool           `json:"pr,omitempty"`
}

// RecentExercise groups a workout's sets by exercise in logged order.
type RecentExercise struct {
	Exercise string      `json:"exercise"`
	Sets     []RecentSet `json:"sets"`
}

// RecentWorkout is one session in the recent-workouts listing.
type RecentWorkout struct {
	Title       string           `json:"title"`
	Date        string           `json:"date"`
	DurationMin *float64         `json:"duration_min"`
	Sets        int              `json:"sets"`
	Volume      float64          `json:"volume"`
	Exercises   []RecentExercise `json:"exercises"`
}

// RecentWorkoutsPage is one window of training days, newest first. Every
// session of a selected day is included, so a day with two workouts never
// splits across pages.
type RecentWorkoutsPage struct {
	Total     int             `json:"total"`
	TotalDays int             `json:"total_days"`
	Days      int             `json:"days"`
	Page      int             `json:"page"`
	Workouts  []RecentWorkout `json:"workouts"`
}

// LiftProgression builds the tracked-lift history document.
func (d *Dataset) LiftProgression() []LiftProgress {
	out := make([]LiftProgress, 0, len(d.opts.Lifts))
	for _, rule := range d.opts.Lifts {
		sets := d.liftSets(rule)
		lp := LiftProgress{Lift: rule.Name, Sets: len(sets), Best: bestSet(sets)}

		byDay := make(map[string]float64)
		var days []string
		for _, s := range sets {
			est, ok := OneRepMax(s.WeightLbs, s.Reps)
			if !ok {
				continue
			}
			day := s.Day().Format(dateFormat)
			if _, seen := byDay[day]; !seen {
				days = append(days, day)
			}
			if est > byDay[day] {
				byDay[day] = est
			}
		}
		for _, day := range days {
			lp.History = append(lp.History, DatePoint{Date: day, Est1RM: byDay[day]})
		}
		out = append(out, lp)
	}
	return out
}

// WorkoutDates lists every training day with its session and set counts,
// ascending.
func (d *Dataset) WorkoutDates() []WorkoutDate {
	byDay := make(map[string]*WorkoutDate)
	var days []string
	for _, w := range d.Workouts {
		day := w.Day.Format(dateFormat)
		wd, ok := byDay[day]
		if !ok {
			wd = &WorkoutDate{Date: day}
			byDay[day] = wd
			days = append(days, day)
		}
		wd.Workouts++
		wd.Sets += len(w.Sets)
	}
	sort.Strings(days)

	out := make([]WorkoutDate, 0, len(days))
	for _, day := range days {
		out = append(out, *byDay[day])
	}
	return out
}

// RecentWorkouts pages through distinct training days, newest first: each
// page holds days calendar days with every session on them. Non-positive
// days falls back to 10; a negative or out-of-range page falls back to 0.
func (d *Dataset) RecentWorkouts(days, page int) RecentWorkoutsPage {
	if days <= 0 {
		days = 10
	}

	// Distinct workout days; Workouts are chronological so dayList is too.
	seen := make(map[string]struct{})
	var dayList []string
	for _, w := range d.Workouts {
		day := w.Day.Format(dateFormat)
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			dayList = append(dayList, day)
		}
	}

	if page < 0 || page*days >= len(dayList) {
		page = 0
	}

	out := RecentWorkoutsPage{
		Total:     len(d.Workouts),
		TotalDays: len(dayList),
		Days:      days,
		Page:      page,
	}

	selected := make(map[string]struct{}, days)
	for i := 0; i < days; i++ {
		idx := len(dayList) - 1 - page*days - i
		if idx < 0 {
			break
		}
		selected[dayList[idx]] = struct{}{}
	}

	// priorMax tracks the heaviest working set of each exercise before the
	// workout being rendered.
	priorMax := make(map[string]float64)
	rendered := make(map[models.WorkoutKey]RecentWorkout, len(d.Workouts))
	for _, w := range d.Workouts {
		rendered[w.Key()] = renderWorkout(w, priorMax)
	}

	for i := len(d.Workouts) - 1; i >= 0; i-- {
		w := d.Workouts[i]
		if _, ok := selected[w.Day.Format(dateFormat)]; ok {
			out.Workouts = append(out.Workouts, rendered[w.Key()])
		}
	}
	return out
}

func renderWorkout(w models.Workout, priorMax map[string]float64) RecentWorkout {
	rw := RecentWorkout{
		Title:  w.Title,
		Date:   w.Day.Format(dateFormat),
		Sets:   len(w.Sets),
		Volume: w.Volume(),
	}
	if min := w.Duration().Minutes(); min > 0 {
		rw.DurationMin = &min
	}

	var current *RecentExercise
	for _, s := range w.Sets {
		if current == nil || current.Exercise != s.Exercise {
			rw.Exercises = append(rw.Exercises, RecentExercise{Exercise: s.Exercise})
			current = &rw.Exercises[len(rw.Exercises)-1]
		}
		rs := RecentSet{WeightLbs: s.WeightLbs, Reps: s.Reps, Type: s.Type}
		if s.IsWorking() && s.WeightLbs > 0 {
			if s.WeightLbs > priorMax[s.Exercise] {
				rs.PR = true
			}
		}
		current.Sets = append(current.Sets, rs)
	}

	// Update running maxima only after the whole session is rendered, so
	// multiple heavy sets in one session flag a single PR each against the
	// history, not against each other.
	for _, s := range w.Sets {
		if s.IsWorking() && s.WeightLbs > priorMax[s.Exercise] {
			priorMax[s.Exercise] = s.WeightLbs
		}
	}

	return rw
}

// Documents builds every named derived document. The report writer and the
// HTTP document endpoint both serve from this map.
func (d *Dataset) Documents() map[string]any {
	docs := map[string]any{
		"summary":               d.Summary(),
		"exercise_frequency":    d.Frequency(d.opts.TopExercises),
		"exercise_volume":       d.TopVolume(d.opts.TopExercises),
		"weight_distribution":   d.WeightDistribution(),
		"reps_distribution":     d.RepsDistribution(),
		"rep_ranges":            d.RepRanges(),
		"category_analysis":     d.CategoryAnalysis(),
		"workout_balance":       d.Balance(),
		"time_analysis":         d.TimeAnalysis(),
		"quarterly_progression": d.QuarterlyProgression(),
		"big_three_analysis":    d.LiftProgression(),
		"personal_records":      d.PersonalRecords(),
		"lift_records":          d.LiftRecords(),
		"goal_setting":          d.GoalStatuses(),
		"workout_dates":         d.WorkoutDates(),
		"recent_workouts":       d.RecentWorkouts(0, 0),
	}
	if detail, ok := d.MonthlyDetail(""); ok {
		docs["monthly_summary"] = detail
	}
	for _, cat := range models.Categories {
		if stats, ok := d.CategoryExercises(cat); ok && len(stats) > 0 {
			docs["category_exercises_"+Slug(string(cat))] = stats
		}
	}
	for _, name := range d.exerciseNames {
		if detail, ok := d.ExerciseDetail(name); ok {
			docs["exercise_"+Slug(name)] = detail
		}
	}
	return docs
}

// DocumentNames lists every document name in sorted order.
func (d *Dataset) DocumentNames() []string {
	docs := d.Documents()
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
