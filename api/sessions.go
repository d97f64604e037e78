package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Mr-LMN/CircuitsAPP/chipper"
	"github.com/Mr-LMN/CircuitsAPP/live"
	"github.com/Mr-LMN/CircuitsAPP/models"
	"github.com/Mr-LMN/CircuitsAPP/stations"
	"github.com/Mr-LMN/CircuitsAPP/store"
)

const timerAction = "timer"

type liveSessionResponse struct {
	Session  *models.Session  `json:"session"`
	Workout  *models.Workout  `json:"workout"`
	Stations [][]string       `json:"stations"`
	Chipper  []chipper.Bucket `json:"chipper,omitempty"`
}

// GetLiveSession loads a session and its workout for the live screen.
func (a *API) GetLiveSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionId")

	session, err := a.store.Session(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.respondWithError(w, http.StatusNotFound, "Session not found")
		} else {
			a.logger.Error("failed to get session", zap.String("session", sessionID), zap.Error(err))
			a.respondWithError(w, http.StatusInternalServerError, "Failed to get session")
		}
		return
	}

	workout, ok := a.loadWorkout(w, r, session.WorkoutID, "Workout for this session not found")
	if !ok {
		return
	}

	resp := liveSessionResponse{
		Session:  session,
		Workout:  workout,
		Stations: stations.Normalize(session.StationAssignments, workout.Stations),
	}
	if workout.Type == models.WorkoutTypeChipper {
		resp.Chipper = chipper.GroupValue(workout.Steps)
	}
	a.respondWithJSON(w, http.StatusOK, resp)
}

// UpdateSessionTimer stores the session clock and pushes it to the live screens.
func (a *API) UpdateSessionTimer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var timer models.TimerState
	if err := json.NewDecoder(r.Body).Decode(&timer); err != nil {
		a.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if timer.ElapsedMs < 0 {
		a.respondWithError(w, http.StatusBadRequest, "elapsedMs must not be negative")
		return
	}
	timer.UpdatedAt = time.Now().UTC()

	if err := a.store.SaveSessionTimer(r.Context(), sessionID, timer); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.respondWithError(w, http.StatusNotFound, "Session not found")
			return
		}
		a.logger.Error("failed to save timer", zap.String("session", sessionID), zap.Error(err))
		a.respondWithError(w, http.StatusInternalServerError, "Failed to save timer")
		return
	}

	source, _ := userFromRequest(r)
	a.hub.Broadcast(sessionID, live.Message{Action: timerAction, Data: timer, Source: source})
	a.respondWithJSON(w, http.StatusOK, timer)
}

func (a *API) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", zap.String("session", sessionID), zap.Error(err))
		return
	}
	a.hub.Add(sessionID, conn)

	// Screens only listen; reading keeps control frames flowing and notices the close.
	go func() {
		defer func() {
			a.hub.Remove(sessionID, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					a.logger.Warn("live connection closed", zap.String("session", sessionID), zap.Error(err))
				}
				return
			}
		}
	}()
}
