package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mossaka/hevy-visualization/internal/analysis"
	"github.com/Mossaka/hevy-visualization/internal/hevy"
)

const testCSV = `title,start_time,end_time,exercise_title,set_index,set_type,weight_lbs,reps,distance_miles,duration_seconds,rpe,exercise_notes
Push Day,"6 Jan 2025, 18:00","6 Jan 2025, 19:05",Bench Press (Barbell),0,warmup,135,10,,,,
Push Day,"6 Jan 2025, 18:00","6 Jan 2025, 19:05",Bench Press (Barbell),1,normal,185,5,,,,
Push Day,"6 Jan 2025, 18:00","6 Jan 2025, 19:05",Bench Press (Barbell),2,normal,185,8,,,,
Leg Day,"8 Jan 2025, 18:00","8 Jan 2025, 19:00",Squat (Barbell),0,normal,225,5,,,,
`

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "export.csv"), []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := hevy.NewStore(dir, analysis.Options{}, log)
	if _, err := store.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return New(store, "test-key", log)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHandleSummary(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/api/v1/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary analysis.Summary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if summary.Workouts != 2 {
		t.Errorf("workouts = %d, want 2", summary.Workouts)
	}
	if summary.TotalSets != 4 {
		t.Errorf("total_sets = %d, want 4", summary.TotalSets)
	}
	// Warmups stay out of the volume.
	if want := 185*5 + 185*8 + 225*5; summary.TotalVolume != float64(want) {
		t.Errorf("total_volume = %v, want %d", summary.TotalVolume, want)
	}
}

func TestHandleExerciseDetail(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/api/v1/exercises/Bench%20Press%20(Barbell)")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var detail analysis.ExerciseStats
	if err := json.NewDecoder(rec.Body).Decode(&detail); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if detail.Sets != 3 || detail.Volume != 2405 {
		t.Errorf("detail = %d sets, %v volume; want 3 and 2405", detail.Sets, detail.Volume)
	}
}

func TestHandleExerciseDetailNotFound(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/api/v1/exercises/Snatch")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleCategoryUnknown(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/api/v1/categories/Cardio")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleCompare(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/api/v1/compare?a=2025-01&b=2025-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = get(t, s, "/api/v1/compare?a=2025-01")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing b: status = %d, want 400", rec.Code)
	}

	rec = get(t, s, "/api/v1/compare?a=whenever&b=2025-01")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad label: status = %d, want 400", rec.Code)
	}
}

func TestHandleRecentWorkoutsDefaults(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/api/v1/workouts/recent?days=nope&page=-3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var page analysis.RecentWorkoutsPage
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if page.Days != 10 || page.Page != 0 {
		t.Errorf("defaults = days %d page %d, want 10 and 0", page.Days, page.Page)
	}
}

func TestHandleDocument(t *testing.T) {
	s := testServer(t)
	if rec := get(t, s, "/api/v1/documents/summary"); rec.Code != http.StatusOK {
		t.Errorf("summary doc: status = %d, want 200", rec.Code)
	}
	if rec := get(t, s, "/api/v1/documents/never_heard_of_it"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown doc: status = %d, want 404", rec.Code)
	}

	rec := get(t, s, "/api/v1/documents")
	var names []string
	if err := json.NewDecoder(rec.Body).Decode(&names); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(names) == 0 {
		t.Error("document list is empty")
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleReloadAuth(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reload/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/reload/", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/reload/", nil)
	req.Header.Set("X-API-Key", "test-key")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("good key: status = %d, want 200", rec.Code)
	}
}
