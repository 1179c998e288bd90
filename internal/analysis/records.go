package analysis

import (
	"sort"

	"github.com/Mossaka/hevy-visualization/internal/models"
)

// BestSet is the single working set producing an exercise's best estimated
// 1RM. Ties on the estimate go to the earliest date.
type BestSet struct {
	WeightLbs float64 `json:"weight_lbs"`
	Reps      int     `json:"reps"`
	Date      string  `json:"date"`
	Est1RM    float64 `json:"estimated_1rm"`
}

// PersonalRecord is one exercise's all-time best.
type PersonalRecord struct {
	Exercise  string          `json:"exercise"`
	Category  models.Category `json:"category"`
	Sets      int             `json:"sets"`
	MaxWeight float64         `json:"max_weight_lbs"`
	Best      *BestSet        `json:"best_set"`
}

// RepRange is a training intensity band expressed as a percentage window of
// the estimated 1RM.
type RepRange struct {
	Goal      string  `json:"goal"`
	LowPct    float64 `json:"low_pct"`
	HighPct   float64 `json:"high_pct"`
	LowWeight float64 `json:"low_weight_lbs"`
	HighWt    float64 `json:"high_weight_lbs"`
	Reps      string  `json:"reps"`
}

// LiftRecord is a tracked lift's record plus working-weight recommendations
// derived from it.
type LiftRecord struct {
	Lift            string     `json:"lift"`
	Best            *BestSet   `json:"best_set"`
	Sets            int        `json:"sets"`
	MaxWeight       float64    `json:"max_weight_lbs"`
	Recommendations []RepRange `json:"recommendations,omitempty"`
}

// GoalStatus reports progress toward a tracked lift's strength goal.
type GoalStatus struct {
	Lift        string   `json:"lift"`
	Baseline1RM *float64 `json:"baseline_1rm"`
	Current1RM  *float64 `json:"current_1rm"`
	Target1RM   *float64 `json:"target_1rm"`
	// ProgressPct is clamped to [0, 100]; nil when no baseline exists.
	ProgressPct *float64 `json:"progress_pct"`
	// RemainingLbs is how far the target still is, floored at zero.
	RemainingLbs *float64 `json:"remaining_lbs"`
	// Meaningful is set when progress clears the configured noise
	// threshold.
	Meaningful bool `json:"meaningful"`
}

// PersonalRecords returns every exercise's record, best estimate first.
// Exercises with no working set carrying both weight and reps have a nil
// best set and sort last.
func (d *Dataset) PersonalRecords() []PersonalRecord {
	out := make([]PersonalRecord, 0, len(d.exerciseNames))
	for _, name := range d.exerciseNames {
		sets := d.byExercise[name]
		pr := PersonalRecord{
			Exercise: name,
			Category: sets[0].Category,
			Sets:     len(sets),
			Best:     bestSet(sets),
		}
		for _, s := range sets {
			if s.IsWorking() && s.WeightLbs > pr.MaxWeight {
				pr.MaxWeight = s.WeightLbs
			}
		}
		out = append(out, pr)
	}
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := out[i].Best, out[j].Best
		if (bi == nil) != (bj == nil) {
			return bj == nil
		}
		if bi == nil {
			return out[i].Exercise < out[j].Exercise
		}
		return bi.Est1RM > bj.Est1RM
	})
	return out
}

// LiftRecords returns the tracked lifts' records with working-weight
// recommendations.
func (d *Dataset) LiftRecords() []LiftRecord {
	out := make([]LiftRecord, 0, len(d.opts.Lifts))
	for _, rule := range d.opts.Lifts {
		sets := d.liftSets(rule)
		rec := LiftRecord{Lift: rule.Name, Sets: len(sets), Best: bestSet(sets)}
		for _, s := range sets {
			if s.IsWorking() && s.WeightLbs > rec.MaxWeight {
				rec.MaxWeight = s.WeightLbs
			}
		}
		if rec.Best != nil {
			rec.Recommendations = recommendations(rec.Best.Est1RM)
		}
		out = append(out, rec)
	}
	return out
}

// GoalStatuses reports every tracked lift's progress toward a target of
// baseline times the configured improvement factor. The baseline is the best
// estimate inside the opening window of the lift's history; the current value
// is the best estimate over the most recent qualifying sets.
func (d *Dataset) GoalStatuses() []GoalStatus {
	goals := d.opts.Goals
	out := make([]GoalStatus, 0, len(d.opts.Lifts))
	for _, rule := range d.opts.Lifts {
		sets := d.liftSets(rule)
		gs := GoalStatus{Lift: rule.Name}
		if len(sets) == 0 {
			out = append(out, gs)
			continue
		}

		windowEnd := sets[0].Start.AddDate(0, 0, goals.BaselineDays)
		var baselineSets, recentSets []models.Set
		for _, s := range sets {
			if s.Start.Before(windowEnd) {
				baselineSets = append(baselineSets, s)
			}
		}
		recentSets = sets
		if len(recentSets) > goals.RecentSets {
			recentSets = recentSets[len(recentSets)-goals.RecentSets:]
		}

		if b := bestSet(baselineSets); b != nil {
			gs.Baseline1RM = &b.Est1RM
			target := b.Est1RM * goals.ImprovementFactor
			gs.Target1RM = &target
		}
		if c := bestSet(recentSets); c != nil {
			gs.Current1RM = &c.Est1RM
		}
		if gs.Baseline1RM != nil && gs.Current1RM != nil {
			if pct, ok := GoalProgress(*gs.Baseline1RM, *gs.Target1RM, *gs.Current1RM); ok {
				gs.ProgressPct = &pct
				gs.Meaningful = pct >= goals.MeaningfulPct
			}
			remaining := *gs.Target1RM - *gs.Current1RM
			if remaining < 0 {
				remaining = 0
			}
			gs.RemainingLbs = &remaining
		}
		out = append(out, gs)
	}
	return out
}

// GoalProgress maps current strength onto the baseline-to-target span as a
// percentage clamped to [0, 100]. Undefined when the span is empty.
func GoalProgress(baseline, target, current float64) (float64, bool) {
	span := target - baseline
	if span == 0 {
		return 0, false
	}
	pct := (current - baseline) / span * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

// bestSet scans working sets in chronological order and keeps the first set
// reaching the highest estimated 1RM, so ties resolve to the earliest date.
func bestSet(sets []models.Set) *BestSet {
	var best *BestSet
	for _, s := range sets {
		if !s.IsWorking() {
			continue
		}
		est, ok := OneRepMax(s.WeightLbs, s.Reps)
		if !ok {
			continue
		}
		if best == nil || est > best.Est1RM {
			best = &BestSet{
				WeightLbs: s.WeightLbs,
				Reps:      s.Reps,
				Date:      s.Day().Format(dateFormat),
				Est1RM:    est,
			}
		}
	}
	return best
}

// recommendations derives working-weight bands from an estimated 1RM.
func recommendations(est1RM float64) []RepRange {
	band := func(goal string, low, high float64, reps string) RepRange {
		return RepRange{
			Goal:      goal,
			LowPct:    low,
			HighPct:   high,
			LowWeight: est1RM * low / 100,
			HighWt:    est1RM * high / 100,
			Reps:      reps,
		}
	}
	return []RepRange{
		band("hypertrophy", 65, 80, "8-12"),
		band("strength", 80, 90, "3-6"),
		band("power", 30, 60, "1-5"),
	}
}
