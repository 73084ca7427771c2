package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds every request; when the deadline fires the database driver
// releases the connection and the error surfaces as a 500 upstream.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
