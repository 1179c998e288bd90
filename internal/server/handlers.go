package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Mossaka/hevy-visualization/internal/analysis"
	"github.com/Mossaka/hevy-visualization/internal/metrics"
	"github.com/Mossaka/hevy-visualization/internal/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.store.Dataset()
	if ds == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"build_id": ds.BuildID,
		"built_at": ds.BuiltAt,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Reload()
	if err != nil {
		s.log.Error("reload failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"build_id": s.store.Dataset().BuildID,
		"files":    stats.Files,
		"rows":     stats.Rows,
		"parsed":   stats.Parsed,
		"skipped":  stats.Skipped,
	})
}

// dataset fetches the current dataset, answering 503 while none is loaded.
func (s *Server) dataset(w http.ResponseWriter) *analysis.Dataset {
	ds := s.store.Dataset()
	if ds == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "dataset not loaded"})
	}
	return ds
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.Summary())
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.Exercises())
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.Frequency(queryInt(r, "top", 15)))
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.TopVolume(queryInt(r, "top", 15)))
}

func (s *Server) handleExerciseDetail(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise name"})
		return
	}
	detail, ok := ds.ExerciseDetail(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data for exercise " + name})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.CategoryAnalysis())
}

func (s *Server) handleCategoryExercises(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	cat := models.Category(chi.URLParam(r, "category"))
	stats, ok := ds.CategoryExercises(cat)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown category " + string(cat)})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.Balance())
}

func (s *Server) handleWeightDistribution(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.WeightDistribution())
}

func (s *Server) handleRepRanges(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.RepRanges())
}

func (s *Server) handleRepsDistribution(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.RepsDistribution())
}

func (s *Server) handleTimeAnalysis(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.TimeAnalysis())
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	month := r.URL.Query().Get("month")
	detail, ok := ds.MonthlyDetail(month)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data for month " + month})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleQuarters(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.QuarterlyProgression())
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a and b parameters required"})
		return
	}
	cmp, err := ds.ComparePeriods(a, b)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.PersonalRecords())
}

func (s *Server) handleLiftRecords(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.LiftRecords())
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.GoalStatuses())
}

func (s *Server) handleRecentWorkouts(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	days := queryInt(r, "days", 10)
	page := queryInt(r, "page", 0)
	writeJSON(w, http.StatusOK, ds.RecentWorkouts(days, page))
}

func (s *Server) handleWorkoutDates(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.WorkoutDates())
}

func (s *Server) handleDocumentList(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	writeJSON(w, http.StatusOK, ds.DocumentNames())
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	ds := s.dataset(w)
	if ds == nil {
		return
	}
	name := chi.URLParam(r, "name")
	doc, ok := ds.Documents()[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown document " + name})
		return
	}
	metrics.DocumentRequestsTotal.WithLabelValues(name).Inc()
	writeJSON(w, http.StatusOK, doc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// queryInt reads an integer query parameter, falling back to def on absence
// or garbage.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
