package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Mossaka/hevy-visualization/internal/models"
)

// PeriodSummary aggregates one calendar bucket: a day, month, quarter or
// year.
type PeriodSummary struct {
	Period         string   `json:"period"`
	Workouts       int      `json:"workouts"`
	Sets           int      `json:"sets"`
	Volume         float64  `json:"volume"`
	AvgWeight      *float64 `json:"avg_weight_lbs"`
	AvgReps        *float64 `json:"avg_reps"`
	AvgDurationMin *float64 `json:"avg_duration_min"`
}

// TimeAnalysis bundles the month- and year-level views.
type TimeAnalysis struct {
	Monthly []PeriodSummary `json:"monthly"`
	Yearly  []PeriodSummary `json:"yearly"`
}

// MonthlyDetail is the drill-down for one calendar month.
type MonthlyDetail struct {
	PeriodSummary
	TrainingDays int              `json:"training_days"`
	TopByVolume  []ExerciseVolume `json:"top_exercises_by_volume"`
	// VolumeChangePct compares against the previous calendar month with
	// data; nil when no such month exists or its volume is zero.
	VolumeChangePct *float64 `json:"volume_change_pct"`
}

// QuarterSummary aggregates one quarter of training.
type QuarterSummary struct {
	Quarter           string  `json:"quarter"`
	Workouts          int     `json:"workouts"`
	Sets              int     `json:"sets"`
	Volume            float64 `json:"volume"`
	AvgVolumePerVisit float64 `json:"avg_volume_per_workout"`
	// VolumeChangePct is quarter-over-quarter; nil for the first quarter,
	// where NoPriorData is set instead.
	VolumeChangePct *float64 `json:"volume_change_pct"`
	NoPriorData     bool     `json:"no_prior_data,omitempty"`
	// Lifts maps tracked lift name to its best estimated 1RM within the
	// quarter, nil when the lift was not trained.
	Lifts map[string]*float64 `json:"lift_1rms"`
	// Regression is set when volume dropped and at least one tracked lift's
	// 1RM dropped versus the previous quarter.
	Regression  bool             `json:"regression"`
	TopByVolume []ExerciseVolume `json:"top_exercises_by_volume"`
}

// LiftChange tracks one lift's best estimated 1RM across two periods.
type LiftChange struct {
	Lift string   `json:"lift"`
	A    *float64 `json:"a_1rm"`
	B    *float64 `json:"b_1rm"`
	// ChangePct is nil unless the lift has an estimate in both periods.
	ChangePct *float64 `json:"change_pct"`
}

// PeriodComparison contrasts two period labels.
type PeriodComparison struct {
	A                 PeriodSummary `json:"a"`
	B                 PeriodSummary `json:"b"`
	AWorkoutsPerWeek  *float64      `json:"a_workouts_per_week"`
	BWorkoutsPerWeek  *float64      `json:"b_workouts_per_week"`
	VolumeChangePct   *float64      `json:"volume_change_pct"`
	SetsChangePct     *float64      `json:"sets_change_pct"`
	WorkoutsChangePct *float64      `json:"workouts_change_pct"`
	Lifts             []LiftChange  `json:"lifts"`
	// NewExercises were trained in B but not A; DroppedExercises the
	// reverse.
	NewExercises     []string `json:"new_exercises"`
	DroppedExercises []string `json:"dropped_exercises"`
}

// DailySummaries buckets the log by calendar day, ascending.
func (d *Dataset) DailySummaries() []PeriodSummary {
	return d.bucket(func(t time.Time) string {
		return t.Format(dateFormat)
	})
}

// MonthlySummaries buckets the log by calendar month, ascending, labelled
// "2006-01".
func (d *Dataset) MonthlySummaries() []PeriodSummary {
	return d.bucket(func(t time.Time) string {
		return t.Format("2006-01")
	})
}

// YearlySummaries buckets the log by year, ascending.
func (d *Dataset) YearlySummaries() []PeriodSummary {
	return d.bucket(func(t time.Time) string {
		return t.Format("2006")
	})
}

// TimeAnalysis builds the combined monthly and yearly view.
func (d *Dataset) TimeAnalysis() TimeAnalysis {
	return TimeAnalysis{
		Monthly: d.MonthlySummaries(),
		Yearly:  d.YearlySummaries(),
	}
}

// MonthlyDetail drills into one "2006-01" month. An empty month selects the
// most recent one with data. ok is false when the month has no sets.
func (d *Dataset) MonthlyDetail(month string) (MonthlyDetail, bool) {
	months := d.MonthlySummaries()
	if month == "" {
		month = months[len(months)-1].Period
	}

	idx := -1
	for i, m := range months {
		if m.Period == month {
			idx = i
			break
		}
	}
	if idx == -1 {
		return MonthlyDetail{}, false
	}

	detail := MonthlyDetail{PeriodSummary: months[idx]}
	if idx > 0 {
		detail.VolumeChangePct = ptr(PercentChange(months[idx-1].Volume, months[idx].Volume))
	}

	days := make(map[string]struct{})
	volumes := make(map[string]float64)
	for _, s := range d.Sets {
		if s.Start.Format("2006-01") != month {
			continue
		}
		days[s.Day().Format(dateFormat)] = struct{}{}
		if s.IsWorking() {
			volumes[s.Exercise] += s.Volume()
		}
	}
	detail.TrainingDays = len(days)
	detail.TopByVolume = topVolumes(volumes, 5)

	return detail, true
}

// QuarterlyProgression summarizes every quarter in order and flags
// regressions.
func (d *Dataset) QuarterlyProgression() []QuarterSummary {
	labels, byQuarter := d.splitByQuarter()

	out := make([]QuarterSummary, 0, len(labels))
	for i, label := range labels {
		sets := byQuarter[label]
		q := QuarterSummary{
			Quarter: label,
			Sets:    len(sets),
			Volume:  workingVolume(sets),
			Lifts:   make(map[string]*float64, len(d.opts.Lifts)),
		}

		workouts := make(map[models.WorkoutKey]struct{})
		volumes := make(map[string]float64)
		for _, s := range sets {
			workouts[models.WorkoutKey{Title: s.Workout, Day: s.Day()}] = struct{}{}
			if s.IsWorking() {
				volumes[s.Exercise] += s.Volume()
			}
		}
		q.Workouts = len(workouts)
		if q.Workouts > 0 {
			q.AvgVolumePerVisit = q.Volume / float64(q.Workouts)
		}
		q.TopByVolume = topVolumes(volumes, 5)

		for _, rule := range d.opts.Lifts {
			q.Lifts[rule.Name] = bestOneRepMax(sets, rule)
		}

		if i == 0 {
			q.NoPriorData = true
		} else {
			prev := out[i-1]
			q.VolumeChangePct = ptr(PercentChange(prev.Volume, q.Volume))
			q.Regression = isRegression(prev, q)
		}

		out = append(out, q)
	}
	return out
}

// isRegression requires both a volume drop and a strength drop in at least
// one tracked lift that has a 1RM in both quarters.
func isRegression(prev, cur QuarterSummary) bool {
	if cur.Volume >= prev.Volume {
		return false
	}
	for name, est := range cur.Lifts {
		prevEst := prev.Lifts[name]
		if est != nil && prevEst != nil && *est < *prevEst {
			return true
		}
	}
	return false
}

// ComparePeriods contrasts two period labels. Labels may be a year "2025", a
// month "2025-03" or a quarter "2025-Q1"; the two need not be the same
// granularity.
func (d *Dataset) ComparePeriods(a, b string) (PeriodComparison, error) {
	setsA, err := d.periodSets(a)
	if err != nil {
		return PeriodComparison{}, err
	}
	setsB, err := d.periodSets(b)
	if err != nil {
		return PeriodComparison{}, err
	}

	cmp := PeriodComparison{
		A: d.summarize(a, setsA),
		B: d.summarize(b, setsB),
	}
	cmp.VolumeChangePct = ptr(PercentChange(cmp.A.Volume, cmp.B.Volume))
	cmp.SetsChangePct = ptr(PercentChange(float64(cmp.A.Sets), float64(cmp.B.Sets)))
	cmp.WorkoutsChangePct = ptr(PercentChange(float64(cmp.A.Workouts), float64(cmp.B.Workouts)))
	cmp.AWorkoutsPerWeek = workoutsPerWeek(cmp.A.Workouts, setsA)
	cmp.BWorkoutsPerWeek = workoutsPerWeek(cmp.B.Workouts, setsB)

	for _, rule := range d.opts.Lifts {
		lc := LiftChange{
			Lift: rule.Name,
			A:    bestOneRepMax(setsA, rule),
			B:    bestOneRepMax(setsB, rule),
		}
		if lc.A != nil && lc.B != nil {
			lc.ChangePct = ptr(PercentChange(*lc.A, *lc.B))
		}
		cmp.Lifts = append(cmp.Lifts, lc)
	}
	cmp.NewExercises, cmp.DroppedExercises = exerciseDiff(setsA, setsB)

	return cmp, nil
}

func (d *Dataset) periodSets(label string) ([]models.Set, error) {
	match, err := periodMatcher(label)
	if err != nil {
		return nil, err
	}
	var sets []models.Set
	for _, s := range d.Sets {
		if match(s.Start) {
			sets = append(sets, s)
		}
	}
	return sets, nil
}

// workoutsPerWeek spreads the workout count over the period's active span,
// first to last training day inclusive.
func workoutsPerWeek(workouts int, sets []models.Set) *float64 {
	if workouts == 0 || len(sets) == 0 {
		return nil
	}
	days := sets[len(sets)-1].Day().Sub(sets[0].Day()).Hours()/24 + 1
	v := float64(workouts) / (days / 7)
	return &v
}

func exerciseDiff(a, b []models.Set) (added, dropped []string) {
	names := func(sets []models.Set) map[string]struct{} {
		out := make(map[string]struct{})
		for _, s := range sets {
			out[s.Exercise] = struct{}{}
		}
		return out
	}
	inA, inB := names(a), names(b)
	for name := range inB {
		if _, ok := inA[name]; !ok {
			added = append(added, name)
		}
	}
	for name := range inA {
		if _, ok := inB[name]; !ok {
			dropped = append(dropped, name)
		}
	}
	sort.Strings(added)
	sort.Strings(dropped)
	return added, dropped
}

// periodMatcher parses a period label into a predicate over timestamps.
func periodMatcher(label string) (func(time.Time) bool, error) {
	if y, q, ok := parseQuarter(label); ok {
		return func(t time.Time) bool {
			return t.Year() == y && quarterOf(t.Month()) == q
		}, nil
	}
	if t, err := time.Parse("2006-01", label); err == nil {
		return func(ts time.Time) bool {
			return ts.Year() == t.Year() && ts.Month() == t.Month()
		}, nil
	}
	if t, err := time.Parse("2006", label); err == nil {
		return func(ts time.Time) bool {
			return ts.Year() == t.Year()
		}, nil
	}
	return nil, fmt.Errorf("invalid period %q: want 2006, 2006-01 or 2006-Q1", label)
}

func parseQuarter(label string) (year, quarter int, ok bool) {
	parts := strings.SplitN(label, "-Q", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	quarter, err = strconv.Atoi(parts[1])
	if err != nil || quarter < 1 || quarter > 4 {
		return 0, 0, false
	}
	return year, quarter, true
}

func quarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

func quarterLabel(t time.Time) string {
	return fmt.Sprintf("%d-Q%d", t.Year(), quarterOf(t.Month()))
}

func (d *Dataset) splitByQuarter() ([]string, map[string][]models.Set) {
	byQuarter := make(map[string][]models.Set)
	var labels []string
	for _, s := range d.Sets {
		label := quarterLabel(s.Start)
		if _, ok := byQuarter[label]; !ok {
			labels = append(labels, label)
		}
		byQuarter[label] = append(byQuarter[label], s)
	}
	// Sets are chronological, so labels already are too.
	return labels, byQuarter
}

func bestOneRepMax(sets []models.Set, rule LiftRule) *float64 {
	var best float64
	var ok bool
	for _, s := range sets {
		if !s.IsWorking() || !rule.Matches(s.Exercise) {
			continue
		}
		if est, defined := OneRepMax(s.WeightLbs, s.Reps); defined && est > best {
			best = est
			ok = true
		}
	}
	return ptr(best, ok)
}

func (d *Dataset) bucket(label func(time.Time) string) []PeriodSummary {
	byLabel := make(map[string][]models.Set)
	var labels []string
	for _, s := range d.Sets {
		l := label(s.Start)
		if _, ok := byLabel[l]; !ok {
			labels = append(labels, l)
		}
		byLabel[l] = append(byLabel[l], s)
	}
	sort.Strings(labels)

	out := make([]PeriodSummary, 0, len(labels))
	for _, l := range labels {
		out = append(out, d.summarize(l, byLabel[l]))
	}
	return out
}

func (d *Dataset) summarize(label string, sets []models.Set) PeriodSummary {
	p := PeriodSummary{Period: label, Sets: len(sets), Volume: workingVolume(sets)}
	p.AvgWeight, p.AvgReps = averages(sets)

	type span struct{ start, end time.Time }
	spans := make(map[models.WorkoutKey]span)
	for _, s := range sets {
		key := models.WorkoutKey{Title: s.Workout, Day: s.Day()}
		sp, ok := spans[key]
		if !ok {
			spans[key] = span{s.Start, s.End}
			continue
		}
		if s.Start.Before(sp.start) {
			sp.start = s.Start
		}
		if s.End.After(sp.end) {
			sp.end = s.End
		}
		spans[key] = sp
	}
	p.Workouts = len(spans)

	var durTotal float64
	var durCount int
	for _, sp := range spans {
		if min := sp.end.Sub(sp.start).Minutes(); min > 0 {
			durTotal += min
			durCount++
		}
	}
	if durCount > 0 {
		v := durTotal / float64(durCount)
		p.AvgDurationMin = &v
	}

	return p
}

func topVolumes(volumes map[string]float64, n int) []ExerciseVolume {
	out := make([]ExerciseVolume, 0, len(volumes))
	for name, v := range volumes {
		out = append(out, ExerciseVolume{Exercise: name, Volume: v})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].Exercise < out[j].Exercise
	})
	return truncate(out, n)
}
