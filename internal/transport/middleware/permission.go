package middleware

import (
	"net/http"

	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/pkg/logger"
)

// RequireRoles lets the request through only when the authenticated caller
// holds one of roles. It must run after the access guard.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := internal.IdentityFromContext(r.Context())
			if !ok {
				writeAppError(w, internal.ErrMissingToken)
				return
			}

			if !id.HasRole(roles...) {
				logger.From(r.Context()).Warn("access denied: role not allowed",
					"user_id", id.UserID,
					"role", id.Role,
					"required_roles", roles)
				writeAppError(w, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
