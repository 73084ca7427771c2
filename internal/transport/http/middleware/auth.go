package middleware

import (
	"errors"
	"net/http"

	"promoback/internal/domain/promoter"
	"promoback/internal/transport/http/api"
)

// Auth resolves X-Session-Token to a principal. Missing or invalid tokens
// pass through anonymously; the Require* wrappers decide who gets in.
func Auth(store *promoter.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Session-Token")
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := store.BySessionToken(r.Context(), token)
			if err != nil {
				if !errors.Is(err, promoter.ErrNotFound) {
					api.Error(w, err)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			// A deactivated promoter cannot hold a live session; sessions are
			// deleted on deactivation, but a racing request is cut off here.
			if promoter.StateOf(p) != promoter.StateActive {
				next.ServeHTTP(w, r)
				return
			}

			_ = store.TouchLastSeen(r.Context(), p.ID)
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetPrincipal(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "требуется авторизация")
			return
		}
		next(w, r)
	}
}

func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipal(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "требуется авторизация")
			return
		}
		if !p.Admin {
			api.Fail(w, http.StatusForbidden, "требуются права администратора")
			return
		}
		next(w, r)
	}
}
