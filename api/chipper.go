package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Mr-LMN/CircuitsAPP/chipper"
	"github.com/Mr-LMN/CircuitsAPP/store"
)

type stepsRequest struct {
	Steps []chipper.RawStep `json:"steps"`
}

type checkResponse struct {
	Incomplete []bool `json:"incomplete"`
	Rows       []int  `json:"rows"`
	Complete   bool   `json:"complete"`
}

func checkSteps(steps []chipper.RawStep) checkResponse {
	resp := checkResponse{
		Incomplete: make([]bool, len(steps)),
		Rows:       chipper.IncompleteRows(steps),
	}
	for _, row := range resp.Rows {
		resp.Incomplete[row] = true
	}
	resp.Complete = len(resp.Rows) == 0
	return resp
}

func decodeSteps(r *http.Request) ([]chipper.RawStep, error) {
	var req stepsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return req.Steps, nil
}

// GetChipper returns the stored steps of a workout grouped by rep count.
func (a *API) GetChipper(w http.ResponseWriter, r *http.Request) {
	workout, ok := a.loadWorkout(w, r, chi.URLParam(r, "workoutId"), "Workout not found")
	if !ok {
		return
	}
	a.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"workoutId": workout.ID,
		"groups":    chipper.GroupValue(workout.Steps),
	})
}

// CheckSteps flags the rows of an editing form that still need a name or reps.
func (a *API) CheckSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := decodeSteps(r)
	if err != nil {
		a.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	a.respondWithJSON(w, http.StatusOK, checkSteps(steps))
}

// DefaultStep returns a blank row for the editor, seeded from the rep scheme.
func (a *API) DefaultStep(w http.ResponseWriter, r *http.Request) {
	index := 0
	if v := r.URL.Query().Get("index"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			a.respondWithError(w, http.StatusBadRequest, "index must be a non-negative integer")
			return
		}
		index = n
	}
	a.respondWithJSON(w, http.StatusOK, chipper.NewStep(index, r.URL.Query().Get("category")))
}

// SaveSteps normalizes the submitted steps and stores them on the workout.
// Incomplete rows are saved with defaults and reported back.
func (a *API) SaveSteps(w http.ResponseWriter, r *http.Request) {
	workoutID := chi.URLParam(r, "workoutId")
	steps, err := decodeSteps(r)
	if err != nil {
		a.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	normalized := chipper.Normalize(steps, a.categories)
	if err := a.store.SaveWorkoutSteps(r.Context(), workoutID, normalized); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.respondWithError(w, http.StatusNotFound, "Workout not found")
			return
		}
		a.logger.Error("failed to save steps", zap.String("workout", workoutID), zap.Error(err))
		a.respondWithError(w, http.StatusInternalServerError, "Failed to save steps")
		return
	}
	a.logger.Info("chipper steps saved",
		zap.String("workout", workoutID),
		zap.String("user", userFromContext(r.Context())),
		zap.Int("steps", len(normalized)))

	a.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"steps": normalized,
		"check": checkSteps(steps),
	})
}
