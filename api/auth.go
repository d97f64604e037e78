package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const userHeader = "X-User-Email"

type contextKey string

const userContextKey contextKey = "user"

var errUnauthenticated = errors.New("unauthenticated: user email header missing")

// userFromRequest reads the caller's email from the request headers.
func userFromRequest(r *http.Request) (string, error) {
	userEmail := strings.TrimSpace(r.Header.Get(userHeader))
	if userEmail == "" {
		return "", errUnauthenticated
	}
	if !isValidEmail(userEmail) {
		return "", errors.New("invalid user email format")
	}
	return userEmail, nil
}

// requireUser sends anonymous callers back to the home page.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := userFromRequest(r)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the user set by requireUser.
func userFromContext(ctx context.Context) string {
	user, _ := ctx.Value(userContextKey).(string)
	return user
}

func isValidEmail(email string) bool {
	// Very basic email format check
	return len(email) > 0 && strings.Contains(email, "@")
}
