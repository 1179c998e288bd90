package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mossaka/hevy-visualization/internal/hevy"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  *hevy.Store
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. apiKey guards the
// mutating endpoints; empty disables them.
func New(store *hevy.Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Reload endpoint (API key required)
	s.router.Route("/api/v1/reload", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleReload)
	})

	// Read-only analytics endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/summary", s.handleSummary)
	s.router.Get("/api/v1/exercises", s.handleExercises)
	s.router.Get("/api/v1/exercises/frequency", s.handleFrequency)
	s.router.Get("/api/v1/exercises/volume", s.handleVolume)
	s.router.Get("/api/v1/exercises/{name}", s.handleExerciseDetail)
	s.router.Get("/api/v1/categories", s.handleCategories)
	s.router.Get("/api/v1/categories/{category}", s.handleCategoryExercises)
	s.router.Get("/api/v1/balance", s.handleBalance)
	s.router.Get("/api/v1/distributions/weight", s.handleWeightDistribution)
	s.router.Get("/api/v1/distributions/reps", s.handleRepsDistribution)
	s.router.Get("/api/v1/distributions/ranges", s.handleRepRanges)
	s.router.Get("/api/v1/time", s.handleTimeAnalysis)
	s.router.Get("/api/v1/monthly", s.handleMonthly)
	s.router.Get("/api/v1/quarters", s.handleQuarters)
	s.router.Get("/api/v1/compare", s.handleCompare)
	s.router.Get("/api/v1/records", s.handleRecords)
	s.router.Get("/api/v1/records/lifts", s.handleLiftRecords)
	s.router.Get("/api/v1/goals", s.handleGoals)
	s.router.Get("/api/v1/workouts/recent", s.handleRecentWorkouts)
	s.router.Get("/api/v1/workouts/dates", s.handleWorkoutDates)
	s.router.Get("/api/v1/documents", s.handleDocumentList)
	s.router.Get("/api/v1/documents/{name}", s.handleDocument)
}

// SetMCP mounts the MCP transport at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
	s.router.Handle("/mcp/*", h)
}
