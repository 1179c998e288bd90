package analysis

import (
	"sort"

	"github.com/Mossaka/hevy-visualization/internal/category"
	"github.com/Mossaka/hevy-visualization/internal/models"
)

// ExerciseCount pairs an exercise with how many sets it was logged for,
// warmups included.
type ExerciseCount struct {
	Exercise string `json:"exercise"`
	Sets     int    `json:"sets"`
}

// ExerciseVolume pairs an exercise with its total working volume.
type ExerciseVolume struct {
	Exercise string  `json:"exercise"`
	Volume   float64 `json:"volume"`
}

// CategoryAggregate summarizes one category's share of the training log.
type CategoryAggregate struct {
	Category  models.Category `json:"category"`
	Sets      int             `json:"sets"`
	Volume    float64         `json:"volume"`
	AvgWeight *float64        `json:"avg_weight_lbs"`
	AvgReps   *float64        `json:"avg_reps"`
	// SetsPct is this category's share of all sets, in percent.
	SetsPct float64 `json:"sets_pct"`
	// VolumePct is this category's share of total working volume.
	VolumePct float64 `json:"volume_pct"`
}

// ExerciseStats aggregates one exercise's history.
type ExerciseStats struct {
	Exercise  string          `json:"exercise"`
	Category  models.Category `json:"category"`
	Sets      int             `json:"sets"`
	Volume    float64         `json:"volume"`
	AvgWeight *float64        `json:"avg_weight_lbs"`
	MaxWeight float64         `json:"max_weight_lbs"`
	AvgReps   *float64        `json:"avg_reps"`
	MaxReps   int             `json:"max_reps"`
	// Est1RM is the best Brzycki estimate over working sets, nil when no
	// working set has both weight and reps.
	Est1RM *float64 `json:"estimated_1rm"`
	First  string   `json:"first_logged"`
	Last   string   `json:"last_logged"`
}

// Summary is the top-level overview of the whole log.
type Summary struct {
	Workouts       int                 `json:"workouts"`
	TrainingDays   int                 `json:"training_days"`
	Exercises      int                 `json:"exercises"`
	TotalSets      int                 `json:"total_sets"`
	TotalVolume    float64             `json:"total_volume_lbs"`
	FirstWorkout   string              `json:"first_workout"`
	LastWorkout    string              `json:"last_workout"`
	AvgDurationMin *float64            `json:"avg_duration_min"`
	TopByVolume    []ExerciseVolume    `json:"top_exercises_by_volume"`
	Categories     []CategoryAggregate `json:"categories"`
}

// BalanceReport holds the structural training ratios. Each ratio is nil when
// its denominator has no volume.
type BalanceReport struct {
	PushVolume  float64  `json:"push_volume"`
	PullVolume  float64  `json:"pull_volume"`
	PushPull    *float64 `json:"push_pull_ratio"`
	UpperVolume float64  `json:"upper_volume"`
	LowerVolume float64  `json:"lower_volume"`
	UpperLower  *float64 `json:"upper_lower_ratio"`
}

const dateFormat = "2006-01-02"

// Summary builds the overview document.
func (d *Dataset) Summary() Summary {
	days := make(map[string]struct{})
	var totalVolume float64
	for _, s := range d.Sets {
		days[s.Day().Format(dateFormat)] = struct{}{}
		if s.IsWorking() {
			totalVolume += s.Volume()
		}
	}

	var durTotal float64
	var durCount int
	for _, w := range d.Workouts {
		if min := w.Duration().Minutes(); min > 0 {
			durTotal += min
			durCount++
		}
	}
	var avgDur *float64
	if durCount > 0 {
		v := durTotal / float64(durCount)
		avgDur = &v
	}

	return Summary{
		Workouts:       len(d.Workouts),
		TrainingDays:   len(days),
		Exercises:      len(d.exerciseNames),
		TotalSets:      len(d.Sets),
		TotalVolume:    totalVolume,
		FirstWorkout:   d.Workouts[0].Day.Format(dateFormat),
		LastWorkout:    d.Workouts[len(d.Workouts)-1].Day.Format(dateFormat),
		AvgDurationMin: avgDur,
		TopByVolume:    d.TopVolume(5),
		Categories:     d.CategoryAnalysis(),
	}
}

// Frequency returns the topN most frequently logged exercises by set count.
// Ties break alphabetically so the ordering is stable across rebuilds.
func (d *Dataset) Frequency(topN int) []ExerciseCount {
	counts := make([]ExerciseCount, 0, len(d.exerciseNames))
	for _, name := range d.exerciseNames {
		counts = append(counts, ExerciseCount{Exercise: name, Sets: len(d.byExercise[name])})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Sets > counts[j].Sets
	})
	return truncate(counts, topN)
}

// TopVolume returns the topN exercises by total working volume.
func (d *Dataset) TopVolume(topN int) []ExerciseVolume {
	volumes := make([]ExerciseVolume, 0, len(d.exerciseNames))
	for _, name := range d.exerciseNames {
		volumes = append(volumes, ExerciseVolume{Exercise: name, Volume: workingVolume(d.byExercise[name])})
	}
	sort.SliceStable(volumes, func(i, j int) bool {
		return volumes[i].Volume > volumes[j].Volume
	})
	return truncate(volumes, topN)
}

// WeightDistribution returns the weight of every working set with a recorded
// weight, in chronological order.
func (d *Dataset) WeightDistribution() []float64 {
	var out []float64
	for _, s := range d.Sets {
		if s.IsWorking() && s.WeightLbs > 0 {
			out = append(out, s.WeightLbs)
		}
	}
	return out
}

// RepsDistribution returns the rep count of every working set with recorded
// reps, in chronological order.
func (d *Dataset) RepsDistribution() []int {
	var out []int
	for _, s := range d.Sets {
		if s.IsWorking() && s.Reps > 0 {
			out = append(out, s.Reps)
		}
	}
	return out
}

// RepBand is one slice of the rep-range breakdown.
type RepBand struct {
	Range string  `json:"range"`
	Sets  int     `json:"sets"`
	Pct   float64 `json:"pct"`
}

// RepRangeBreakdown splits working sets into heavy (1-5), moderate (6-12)
// and high (13+) rep bands.
type RepRangeBreakdown struct {
	Heavy    RepBand `json:"heavy"`
	Moderate RepBand `json:"moderate"`
	High     RepBand `json:"high"`
}

// RepRanges counts working sets with recorded reps per training band.
func (d *Dataset) RepRanges() RepRangeBreakdown {
	var heavy, moderate, high, total int
	for _, s := range d.Sets {
		if !s.IsWorking() || s.Reps <= 0 {
			continue
		}
		total++
		switch {
		case s.Reps <= 5:
			heavy++
		case s.Reps <= 12:
			moderate++
		default:
			high++
		}
	}
	pct := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total) * 100
	}
	return RepRangeBreakdown{
		Heavy:    RepBand{Range: "1-5", Sets: heavy, Pct: pct(heavy)},
		Moderate: RepBand{Range: "6-12", Sets: moderate, Pct: pct(moderate)},
		High:     RepBand{Range: "13+", Sets: high, Pct: pct(high)},
	}
}

// CategoryAnalysis aggregates every category, ordered by volume descending.
// Categories with no sets are omitted.
func (d *Dataset) CategoryAnalysis() []CategoryAggregate {
	totalSets := len(d.Sets)
	var totalVolume float64
	for _, s := range d.Sets {
		if s.IsWorking() {
			totalVolume += s.Volume()
		}
	}

	var out []CategoryAggregate
	for _, cat := range models.Categories {
		sets := d.byCategory[cat]
		if len(sets) == 0 {
			continue
		}
		agg := CategoryAggregate{Category: cat, Sets: len(sets), Volume: workingVolume(sets)}
		agg.AvgWeight, agg.AvgReps = averages(sets)
		if totalSets > 0 {
			agg.SetsPct = float64(agg.Sets) / float64(totalSets) * 100
		}
		if totalVolume > 0 {
			agg.VolumePct = agg.Volume / totalVolume * 100
		}
		out = append(out, agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Volume > out[j].Volume
	})
	return out
}

// Balance computes the push/pull and upper/lower volume ratios over working
// sets.
func (d *Dataset) Balance() BalanceReport {
	var r BalanceReport
	for _, s := range d.Sets {
		if !s.IsWorking() {
			continue
		}
		v := s.Volume()
		switch category.PushPullSide(s.Category, s.Exercise) {
		case category.SidePush:
			r.PushVolume += v
		case category.SidePull:
			r.PullVolume += v
		}
		if category.IsUpper(s.Category) {
			r.UpperVolume += v
		} else if category.IsLower(s.Category) {
			r.LowerVolume += v
		}
	}
	r.PushPull = ptr(Ratio(r.PushVolume, r.PullVolume))
	r.UpperLower = ptr(Ratio(r.UpperVolume, r.LowerVolume))
	return r
}

// CategoryExercises aggregates each exercise within one category, ordered by
// volume descending. ok is false when the category name is unknown.
func (d *Dataset) CategoryExercises(cat models.Category) ([]ExerciseStats, bool) {
	known := false
	for _, c := range models.Categories {
		if c == cat {
			known = true
			break
		}
	}
	if !known {
		return nil, false
	}

	seen := make(map[string]struct{})
	var out []ExerciseStats
	for _, s := range d.byCategory[cat] {
		if _, ok := seen[s.Exercise]; ok {
			continue
		}
		seen[s.Exercise] = struct{}{}
		if stats, ok := d.ExerciseDetail(s.Exercise); ok {
			out = append(out, stats)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Volume > out[j].Volume
	})
	return out, true
}

// ExerciseDetail aggregates one exercise's full history. ok is false when the
// exercise was never logged; callers surface that as "no data", never as a
// zeroed aggregate.
func (d *Dataset) ExerciseDetail(name string) (ExerciseStats, bool) {
	sets, ok := d.byExercise[name]
	if !ok {
		return ExerciseStats{}, false
	}

	stats := ExerciseStats{
		Exercise: name,
		Category: sets[0].Category,
		Sets:     len(sets),
		Volume:   workingVolume(sets),
		First:    sets[0].Day().Format(dateFormat),
		Last:     sets[len(sets)-1].Day().Format(dateFormat),
	}
	stats.AvgWeight, stats.AvgReps = averages(sets)

	var best float64
	var bestOK bool
	for _, s := range sets {
		if s.WeightLbs > stats.MaxWeight {
			stats.MaxWeight = s.WeightLbs
		}
		if s.Reps > stats.MaxReps {
			stats.MaxReps = s.Reps
		}
		if !s.IsWorking() {
			continue
		}
		if est, ok := OneRepMax(s.WeightLbs, s.Reps); ok && est > best {
			best = est
			bestOK = true
		}
	}
	stats.Est1RM = ptr(best, bestOK)

	return stats, true
}

func workingVolume(sets []models.Set) float64 {
	var total float64
	for _, s := range sets {
		if s.IsWorking() {
			total += s.Volume()
		}
	}
	return total
}

// averages computes mean weight and reps over working sets with a recorded
// value, nil when none qualify.
func averages(sets []models.Set) (avgWeight, avgReps *float64) {
	var wSum, rSum float64
	var wN, rN int
	for _, s := range sets {
		if !s.IsWorking() {
			continue
		}
		if s.WeightLbs > 0 {
			wSum += s.WeightLbs
			wN++
		}
		if s.Reps > 0 {
			rSum += float64(s.Reps)
			rN++
		}
	}
	if wN > 0 {
		v := wSum / float64(wN)
		avgWeight = &v
	}
	if rN > 0 {
		v := rSum / float64(rN)
		avgReps = &v
	}
	return avgWeight, avgReps
}

func truncate[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
