package analysis

import (
	"testing"

	"github.com/Mossaka/hevy-visualization/internal/models"
)

func TestMonthlySummaries(t *testing.T) {
	ds := buildDataset(t,
		testSet(t, "2025-01-06 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 100, 10),
		testSet(t, "2025-01-13 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 105, 10),
		testSet(t, "2025-02-03 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 110, 10),
	)

	months := ds.MonthlySummaries()
	if len(months) != 2 {
		t.Fatalf("len(months) = %d, want 2", len(months))
	}
	if months[0].Period != "2025-01" || months[1].Period != "2025-02" {
		t.Errorf("periods = %q, %q; want 2025-01, 2025-02", months[0].Period, months[1].Period)
	}
	if months[0].Volume != 2050 || months[0].Workouts != 2 {
		t.Errorf("january = %+v, want volume 2050 over 2 workouts", months[0])
	}
}

func TestMonthlyDetail(t *testing.T) {
	ds := buildDataset(t,
		testSet(t, "2025-01-06 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 100, 10),
		testSet(t, "2025-02-03 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 150, 10),
	)

	detail, ok := ds.MonthlyDetail("2025-02")
	if !ok {
		t.Fatal("MonthlyDetail(2025-02) reported no data")
	}
	if detail.VolumeChangePct == nil || *detail.VolumeChangePct != 50 {
		t.Errorf("VolumeChangePct = %v, want 50", detail.VolumeChangePct)
	}
	if detail.TrainingDays != 1 {
		t.Errorf("TrainingDays = %d, want 1", detail.TrainingDays)
	}

	// Default month is the latest with data.
	latest, ok := ds.MonthlyDetail("")
	if !ok || latest.Period != "2025-02" {
		t.Errorf("MonthlyDetail(\"\") = %+v, want 2025-02", latest)
	}

	if _, ok := ds.MonthlyDetail("2024-12"); ok {
		t.Error("MonthlyDetail for empty month should report no data")
	}
}

// The first month carries no baseline, so its change is undefined.
func TestMonthlyDetailFirstMonth(t *testing.T) {
	ds := buildDataset(t,
		testSet(t, "2025-01-06 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 100, 10),
	)
	detail, ok := ds.MonthlyDetail("2025-01")
	if !ok {
		t.Fatal("MonthlyDetail reported no data")
	}
	if detail.VolumeChangePct != nil {
		t.Errorf("VolumeChangePct = %v, want nil for first month", *detail.VolumeChangePct)
	}
}

func TestQuarterlyProgression(t *testing.T) {
	ds := buildDataset(t,
		testSet(t, "2025-01-06 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 200, 5),
		testSet(t, "2025-04-07 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 220, 5),
	)

	quarters := ds.QuarterlyProgression()
	if len(quarters) != 2 {
		t.Fatalf("len(quarters) = %d, want 2", len(quarters))
	}

	q1, q2 := quarters[0], quarters[1]
	if q1.Quarter != "2025-Q1" || q2.Quarter != "2025-Q2" {
		t.Errorf("labels = %q, %q; want 2025-Q1, 2025-Q2", q1.Quarter, q2.Quarter)
	}
	if !q1.NoPriorData || q1.VolumeChangePct != nil {
		t.Errorf("first quarter should carry the no-prior-data marker, got %+v", q1)
	}
	if q2.VolumeChangePct == nil || *q2.VolumeChangePct != 10 {
		t.Errorf("q2 change = %v, want 10", q2.VolumeChangePct)
	}
	if q2.Lifts["Bench Press"] == nil {
		t.Error("q2 should carry a Bench Press 1RM")
	}
}

// Regression demands both a volume drop and a strength drop; either alone is
// not enough.
func TestRegressionFlag(t *testing.T) {
	lift := func(est float64) *float64 { return &est }

	tests := []struct {
		name string
		prev QuarterSummary
		cur  QuarterSummary
		want bool
	}{
		{
			name: "both drop",
			prev: QuarterSummary{Volume: 1000, Lifts: map[string]*float64{"Bench Press": lift(200)}},
			cur:  QuarterSummary{Volume: 900, Lifts: map[string]*float64{"Bench Press": lift(190)}},
			want: true,
		},
		{
			name: "volume drops, strength holds",
			prev: QuarterSummary{Volume: 1000, Lifts: map[string]*float64{"Bench Press": lift(200)}},
			cur:  QuarterSummary{Volume: 900, Lifts: map[string]*float64{"Bench Press": lift(205)}},
			want: false,
		},
		{
			name: "strength drops, volume holds",
			prev: QuarterSummary{Volume: 1000, Lifts: map[string]*float64{"Bench Press": lift(200)}},
			cur:  QuarterSummary{Volume: 1100, Lifts: map[string]*float64{"Bench Press": lift(190)}},
			want: false,
		},
		{
			name: "lift untrained in one quarter",
			prev: QuarterSummary{Volume: 1000, Lifts: map[string]*float64{"Bench Press": nil}},
			cur:  QuarterSummary{Volume: 900, Lifts: map[string]*float64{"Bench Press": lift(190)}},
			want: false,
		},
	}

	for _, tt := range tests {
		if got := isRegression(tt.prev, tt.cur); got != tt.want {
			t.Errorf("%s: isRegression = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestComparePeriods(t *testing.T) {
	ds := buildDataset(t,
		testSet(t, "2025-01-06 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 100, 10),
		testSet(t, "2025-02-03 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 150, 10),
	)

	cmp, err := ds.ComparePeriods("2025-01", "2025-02")
	if err != nil {
		t.Fatalf("ComparePeriods error = %v", err)
	}
	if cmp.VolumeChangePct == nil || *cmp.VolumeChangePct != 50 {
		t.Errorf("VolumeChangePct = %v, want 50", cmp.VolumeChangePct)
	}

	// Mixed granularity is allowed.
	if _, err := ds.ComparePeriods("2025-Q1", "2025"); err != nil {
		t.Errorf("quarter vs year comparison error = %v", err)
	}

	// A period with no data compares as zero volume, and the change against
	// it is undefined.
	cmp, err = ds.ComparePeriods("2024-Q4", "2025-Q1")
	if err != nil {
		t.Fatalf("ComparePeriods error = %v", err)
	}
	if cmp.VolumeChangePct != nil {
		t.Errorf("change from empty baseline = %v, want nil", *cmp.VolumeChangePct)
	}

	if _, err := ds.ComparePeriods("last month", "2025-01"); err == nil {
		t.Error("garbage period label should error")
	}
}

func TestComparePeriodsLiftsAndExercises(t *testing.T) {
	ds := buildDataset(t,
		testSet(t, "2025-01-06 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 100, 10),
		testSet(t, "2025-01-06 18:10", "Push Day", "Squat (Barbell)", models.SetTypeNormal, 200, 5),
		testSet(t, "2025-02-03 18:00", "Push Day", "Bench Press (Barbell)", models.SetTypeNormal, 150, 10),
		testSet(t, "2025-02-03 18:10", "Push Day", "Deadlift (Barbell)", models.SetTypeNormal, 300, 3),
	)

	cmp, err := ds.ComparePeriods("2025-01", "2025-02")
	if err != nil {
		t.Fatalf("ComparePeriods error = %v", err)
	}

	var bench LiftChange
	for _, lc := range cmp.Lifts {
		if lc.Lift == "Bench Press" {
			bench = lc
		}
	}
	if bench.A == nil || bench.B == nil || bench.ChangePct == nil {
		t.Fatalf("bench change = %+v, want estimates in both periods", bench)
	}
	if got := *bench.ChangePct; got < 49.99 || got > 50.01 {
		t.Errorf("bench ChangePct = %v, want ~50", got)
	}

	if got := cmp.NewExercises; len(got) != 1 || got[0] != "Deadlift (Barbell)" {
		t.Errorf("NewExercises = %v, want [Deadlift (Barbell)]", got)
	}
	if got := cmp.DroppedExercises; len(got) != 1 || got[0] != "Squat (Barbell)" {
		t.Errorf("DroppedExercises = %v, want [Squat (Barbell)]", got)
	}

	// One training day spans one day, so one workout is 7 per week.
	if cmp.AWorkoutsPerWeek == nil || *cmp.AWorkoutsPerWeek != 7 {
		t.Errorf("AWorkoutsPerWeek = %v, want 7", cmp.AWorkoutsPerWeek)
	}
	if cmp.WorkoutsChangePct == nil || *cmp.WorkoutsChangePct != 0 {
		t.Errorf("WorkoutsChangePct = %v, want 0", cmp.WorkoutsChangePct)
	}
}

func TestPeriodMatcher(t *testing.T) {
	valid := []string{"2025", "2025-03", "2025-Q1", "2025-Q4"}
	for _, label := range valid {
		if _, err := periodMatcher(label); err != nil {
			t.Errorf("periodMatcher(%q) error = %v", label, err)
		}
	}
	invalid := []string{"", "Q1", "2025-Q5", "2025-13", "march"}
	for _, label := range invalid {
		if _, err := periodMatcher(label); err == nil {
			t.Errorf("periodMatcher(%q) should error", label)
		}
	}
}
