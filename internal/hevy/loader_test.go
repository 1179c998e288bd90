package hevy

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mossaka/hevy-visualization/internal/analysis"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestLoadDirUnion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_export.csv", `title,start_time,end_time,exercise_title,set_index,set_type,weight_lbs,reps,distance_miles,duration_seconds,rpe,exercise_notes
Pull Day,"8 Jan 2025, 18:00","8 Jan 2025, 19:00",Lat Pulldown (Cable),0,normal,120,10,,,,
`)
	writeFile(t, dir, "a_export.csv", `title,start_time,end_time,exercise_title,set_index,set_type,weight_lbs,reps,distance_miles,duration_seconds,rpe,exercise_notes
Push Day,"6 Jan 2025, 18:00","6 Jan 2025, 19:00",Bench Press (Barbell),0,normal,185,5,,,,
`)
	writeFile(t, dir, "notes.txt", "not a csv")

	sets, stats, err := LoadDir(dir, discardLogger())
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if stats.Files != 2 || stats.Parsed != 2 {
		t.Errorf("stats = %+v, want 2 files, 2 parsed", stats)
	}
	if len(sets) != 2 {
		t.Fatalf("len(sets) = %d, want 2", len(sets))
	}
	// Union is ordered by start time regardless of file name order.
	if sets[0].Exercise != "Bench Press (Barbell)" {
		t.Errorf("first set = %q, want the earlier bench set", sets[0].Exercise)
	}
}

// A file whose header is broken is skipped; the others still load.
func TestLoadDirSkipsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.csv", "just,some,garbage\n1,2,3\n")
	writeFile(t, dir, "good.csv", `title,start_time,end_time,exercise_title,set_index,set_type,weight_lbs,reps,distance_miles,duration_seconds,rpe,exercise_notes
Push Day,"6 Jan 2025, 18:00","6 Jan 2025, 19:00",Bench Press (Barbell),0,normal,185,5,,,,
`)

	sets, stats, err := LoadDir(dir, discardLogger())
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if stats.Files != 1 || len(sets) != 1 {
		t.Errorf("stats = %+v with %d sets, want 1 file and 1 set", stats, len(sets))
	}
}

// Zero valid sets is the one hard failure.
func TestLoadDirEmpty(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := LoadDir(dir, discardLogger()); err == nil {
		t.Error("LoadDir over an empty dir should fail")
	}

	writeFile(t, dir, "empty.csv", `title,start_time,end_time,exercise_title,set_index,set_type,weight_lbs,reps,distance_miles,duration_seconds,rpe,exercise_notes
`)
	if _, _, err := LoadDir(dir, discardLogger()); err == nil {
		t.Error("LoadDir with only an empty export should fail")
	}
}

func TestStoreReload(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "export.csv", `title,start_time,end_time,exercise_title,set_index,set_type,weight_lbs,reps,distance_miles,duration_seconds,rpe,exercise_notes
Push Day,"6 Jan 2025, 18:00","6 Jan 2025, 19:00",Bench Press (Barbell),0,normal,185,5,,,,
`)

	store := NewStore(dir, analysis.Options{}, discardLogger())
	if store.Dataset() != nil {
		t.Fatal("Dataset should be nil before the first Reload")
	}
	if _, err := store.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	ds := store.Dataset()
	if ds == nil || len(ds.Sets) != 1 {
		t.Fatalf("Dataset = %+v, want 1 set", ds)
	}

	// A failed reload keeps the previous dataset in place.
	badStore := NewStore(filepath.Join(dir, "missing"), analysis.Options{}, discardLogger())
	if _, err := badStore.Reload(); err == nil {
		t.Error("Reload of a missing dir should fail")
	}

	os.Remove(filepath.Join(dir, "export.csv"))
	if _, err := store.Reload(); err == nil {
		t.Error("Reload with no data should fail")
	}
	if store.Dataset() != ds {
		t.Error("failed Reload must not replace the current dataset")
	}
}
