package middleware

import (
	"net/http"

	"github.com/go-marketplace-gate/internal/domain"
)

// RequireRole returns middleware that allows access only to callers whose
// effective role is one of the provided kinds (e.g. domain.KindAdmin).
func RequireRole(allowed ...domain.RoleKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := CallerFromContext(r.Context())
			if !ok || c.Role.Kind == domain.KindAnonymous {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, k := range allowed {
				if c.Role.Kind == k {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "forbidden")
		})
	}
}
