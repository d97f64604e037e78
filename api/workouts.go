package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Mr-LMN/CircuitsAPP/models"
	"github.com/Mr-LMN/CircuitsAPP/store"
)

// loadWorkout fetches a workout and writes the error response itself when it fails.
func (a *API) loadWorkout(w http.ResponseWriter, r *http.Request, id, notFoundMsg string) (*models.Workout, bool) {
	workout, err := a.store.Workout(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.respondWithError(w, http.StatusNotFound, notFoundMsg)
		} else {
			a.logger.Error("failed to get workout", zap.String("workout", id), zap.Error(err))
			a.respondWithError(w, http.StatusInternalServerError, "Failed to get workout")
		}
		return nil, false
	}
	return workout, true
}

func (a *API) GetWorkout(w http.ResponseWriter, r *http.Request) {
	workout, ok := a.loadWorkout(w, r, chi.URLParam(r, "workoutId"), "Workout not found")
	if !ok {
		return
	}
	a.respondWithJSON(w, http.StatusOK, workout)
}

// GetEditableWorkout loads a workout for the admin editor.
func (a *API) GetEditableWorkout(w http.ResponseWriter, r *http.Request) {
	workout, ok := a.loadWorkout(w, r, chi.URLParam(r, "workoutId"), "Workout not found")
	if !ok {
		return
	}
	a.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"workout": models.NewEditableWorkout(*workout),
	})
}

// GetTimer loads the workout shown by the timer page, echoing the session it runs under.
func (a *API) GetTimer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	workout, ok := a.loadWorkout(w, r, chi.URLParam(r, "workoutId"), "Workout not found")
	if !ok {
		return
	}
	var session *string
	if sessionID != "" {
		session = &sessionID
	}
	a.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"workout":   workout,
		"sessionId": session,
	})
}

// GetLogScore loads a workout and every profile a score can be logged for.
func (a *API) GetLogScore(w http.ResponseWriter, r *http.Request) {
	workout, ok := a.loadWorkout(w, r, chi.URLParam(r, "workoutId"), "Workout not found")
	if !ok {
		return
	}
	profiles, err := a.store.Profiles(r.Context())
	if err != nil {
		a.logger.Error("failed to list profiles", zap.Error(err))
		a.respondWithError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}
	a.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"workout":  workout,
		"profiles": profiles,
	})
}
