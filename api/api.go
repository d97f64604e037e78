// Package api serves the workout app's JSON endpoints.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Mr-LMN/CircuitsAPP/chipper"
	"github.com/Mr-LMN/CircuitsAPP/live"
	"github.com/Mr-LMN/CircuitsAPP/models"
)

// Store is the document store the handlers read from and write to.
type Store interface {
	Workout(ctx context.Context, id string) (*models.Workout, error)
	Session(ctx context.Context, id string) (*models.Session, error)
	Score(ctx context.Context, id string) (*models.Score, error)
	Profiles(ctx context.Context) ([]models.Profile, error)
	SaveWorkoutSteps(ctx context.Context, id string, steps []chipper.Step) error
	SaveSessionTimer(ctx context.Context, id string, timer models.TimerState) error
}

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	Categories     chipper.CategorySanitizer
}

// API provides application-wide context to the handlers.
type API struct {
	store      Store
	hub        *live.Hub
	categories chipper.CategorySanitizer
	logger     *zap.Logger
	upgrader   websocket.Upgrader
}

// NewAPI creates a new API instance. A nil category sanitizer keeps categories as submitted.
func NewAPI(store Store, hub *live.Hub, categories chipper.CategorySanitizer, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	if categories == nil {
		categories = chipper.IdentityCategory
	}
	return &API{
		store:      store,
		hub:        hub,
		categories: categories,
		logger:     logger,
		upgrader: websocket.Upgrader{
			// Live screens may be served from another origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the HTTP handler with the middleware chain and every route.
func (a *API) Router(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", userHeader},
		AllowCredentials: true,
	})
	r.Use(corsMiddleware.Handler)

	r.Route("/api/v1", func(r chi.Router) {
		// Workouts
		r.Get("/workouts/{workoutId}", a.GetWorkout)
		r.Get("/workouts/{workoutId}/chipper", a.GetChipper)
		r.Get("/timer/{workoutId}", a.GetTimer)
		r.Get("/log-score/{workoutId}", a.GetLogScore)

		// Chipper editing helpers
		r.Post("/chipper/check", a.CheckSteps)
		r.Get("/chipper/default-step", a.DefaultStep)

		// Live sessions
		r.Get("/live/{sessionId}", a.GetLiveSession)
		r.Get("/live/{sessionId}/ws", a.handleWebSocket)
		r.Put("/sessions/{sessionId}/timer", a.UpdateSessionTimer)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/admin/workouts/{workoutId}", a.GetEditableWorkout)
			r.Put("/admin/workouts/{workoutId}/steps", a.SaveSteps)
			r.Get("/dashboard/personal-bests/{scoreId}", a.GetPersonalBest)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// --- Helper Functions ---

func (a *API) respondWithError(w http.ResponseWriter, code int, message string) {
	a.respondWithJSON(w, code, map[string]string{"error": message})
}

func (a *API) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		a.logger.Error("failed to marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
