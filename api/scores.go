package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Mr-LMN/CircuitsAPP/models"
	"github.com/Mr-LMN/CircuitsAPP/store"
)

// GetPersonalBest loads a score with the session and workout it was logged for, when they still exist.
func (a *API) GetPersonalBest(w http.ResponseWriter, r *http.Request) {
	scoreID := chi.URLParam(r, "scoreId")
	if scoreID == "" {
		a.respondWithError(w, http.StatusBadRequest, "A score identifier is required.")
		return
	}

	score, err := a.store.Score(r.Context(), scoreID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.respondWithError(w, http.StatusNotFound, "Personal best not found.")
		} else {
			a.logger.Error("failed to get score", zap.String("score", scoreID), zap.Error(err))
			a.respondWithError(w, http.StatusInternalServerError, "Failed to get score")
		}
		return
	}

	var (
		session *models.Session
		workout *models.Workout
	)
	g, ctx := errgroup.WithContext(r.Context())
	if score.SessionID != "" {
		g.Go(func() error {
			s, err := a.store.Session(ctx, score.SessionID)
			session, err = s, optional(err)
			return err
		})
	}
	if score.WorkoutID != "" {
		g.Go(func() error {
			wo, err := a.store.Workout(ctx, score.WorkoutID)
			workout, err = wo, optional(err)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Error("failed to load personal best", zap.String("score", scoreID), zap.Error(err))
		a.respondWithError(w, http.StatusInternalServerError, "Failed to load personal best")
		return
	}

	a.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"score":   score,
		"session": session,
		"workout": workout,
	})
}

// optional treats a missing document as no error.
func optional(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
