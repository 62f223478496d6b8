package middleware

import (
	"net/http"

	"github.com/frahmantamala/workforce-portal/internal"
)

// Readiness is satisfied by the store.
type Readiness interface {
	Ready() bool
}

// RequireReady answers 503 while the database is not loaded.
func RequireReady(ready Readiness) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ready == nil || !ready.Ready() {
				writeAppError(w, internal.ErrStoreNotReady)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
