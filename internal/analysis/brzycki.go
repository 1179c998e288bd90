package analysis

// OneRepMax estimates a one-rep max from a set's weight and reps using the
// Brzycki formula. The formula is only trusted up to 10 reps; beyond that a
// linear extrapolation takes over. Returns false when either input is zero.
func OneRepMax(weightLbs float64, reps int) (float64, bool) {
	if weightLbs == 0 || reps == 0 {
		return 0, false
	}
	if reps > 10 {
		return weightLbs * (1 + float64(reps)/30), true
	}
	return weightLbs / (1.0278 - 0.0278*float64(reps)), true
}

// PercentChange is the relative change from earlier to later, in percent.
// Undefined when the baseline is zero.
func PercentChange(earlier, later float64) (float64, bool) {
	if earlier == 0 {
		return 0, false
	}
	return (later - earlier) / earlier * 100, true
}

// Ratio divides num by den, undefined when the denominator is zero.
func Ratio(num, den float64) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// ptr converts a defined value into a nullable field, mapping "undefined" to
// nil rather than a sentinel number.
func ptr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
