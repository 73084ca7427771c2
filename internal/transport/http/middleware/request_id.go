package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// maxRequestIDLen bounds the inbound X-Request-ID so a hostile client cannot
// inflate the access log.
const maxRequestIDLen = 64

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" || len(reqID) > maxRequestIDLen {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), reqID)))
	})
}
