// Package hevy reads Hevy workout CSV exports into the domain model.
package hevy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Mossaka/hevy-visualization/internal/category"
	"github.com/Mossaka/hevy-visualization/internal/models"
)

// timeLayout matches the Hevy export timestamp, e.g. "5 Mar 2025, 18:04".
const timeLayout = "2 Jan 2006, 15:04"

// requiredColumns must all be present in the header row.
var requiredColumns = []string{
	"title", "start_time", "end_time", "exercise_title",
	"set_index", "set_type", "weight_lbs", "reps",
}

// Stats counts the outcome of a parse.
type Stats struct {
	Rows    int
	Parsed  int
	Skipped int
}

// Parse reads one Hevy CSV export. Malformed rows are skipped and counted,
// never fatal; only a missing or invalid header fails the whole file.
func Parse(r io.Reader) ([]models.Set, Stats, error) {
	var stats Stats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, stats, fmt.Errorf("missing column %q", name)
		}
	}

	var sets []models.Set
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Unreadable row, keep going.
			stats.Rows++
			stats.Skipped++
			continue
		}
		stats.Rows++

		s, ok := parseRow(col, record)
		if !ok {
			stats.Skipped++
			continue
		}
		sets = append(sets, s)
		stats.Parsed++
	}

	return sets, stats, nil
}

func parseRow(col map[string]int, record []string) (models.Set, bool) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	title := field("title")
	exercise := field("exercise_title")
	if title == "" || exercise == "" {
		return models.Set{}, false
	}

	start, err := time.Parse(timeLayout, field("start_time"))
	if err != nil {
		return models.Set{}, false
	}
	end, err := time.Parse(timeLayout, field("end_time"))
	if err != nil {
		return models.Set{}, false
	}

	setIndex, err := strconv.Atoi(field("set_index"))
	if err != nil {
		return models.Set{}, false
	}

	weight := parseOptionalFloat(field("weight_lbs"))
	reps := parseOptionalInt(field("reps"))
	if weight < 0 || reps < 0 {
		return models.Set{}, false
	}

	return models.Set{
		Workout:       title,
		Start:         start,
		End:           end,
		Exercise:      exercise,
		SetIndex:      setIndex,
		Type:          parseSetType(field("set_type")),
		WeightLbs:     weight,
		Reps:          reps,
		DistanceMiles: clampZero(parseOptionalFloat(field("distance_miles"))),
		DurationSec:   clampZero(parseOptionalFloat(field("duration_seconds"))),
		RPE:           clampZero(parseOptionalFloat(field("rpe"))),
		Notes:         field("exercise_notes"),
		Category:      category.Classify(exercise),
	}, true
}

// clampZero drops the garbage sentinel from optional fields: a cell that
// holds something unparseable is treated like a blank one.
func clampZero(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

func parseSetType(s string) models.SetType {
	switch strings.ToLower(s) {
	case "warmup":
		return models.SetTypeWarmup
	case "failure":
		return models.SetTypeFailure
	case "dropset":
		return models.SetTypeDropset
	default:
		return models.SetTypeNormal
	}
}

// parseOptionalFloat treats blank cells as zero, matching exports where
// weight, distance, duration or RPE are simply absent.
func parseOptionalFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return -1
	}
	return f
}

func parseOptionalInt(s string) int {
	if s == "" {
		return 0
	}
	// Some exports write reps as "8.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return -1
	}
	return int(f)
}
