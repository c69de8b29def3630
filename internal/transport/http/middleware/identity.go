package middleware

import (
	"context"
	"net/http"

	"github.com/go-marketplace-gate/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Caller is the arbitrated identity of the current request.
type Caller struct {
	Context domain.IdentityContext
	Role    domain.EffectiveRole
}

type identityResolver interface {
	Resolve(ctx context.Context, r *http.Request) (domain.IdentityContext, domain.EffectiveRole)
}

// Identity resolves the caller once per request and stores it in the context.
// It never rejects; authorization is left to RequireRole and the page gate.
func Identity(resolver identityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ic, role := resolver.Resolve(r.Context(), r)
			ctx := WithCaller(r.Context(), Caller{Context: ic, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, identityKey, c)
}

// CallerFromContext extracts the resolved caller from the request context.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(identityKey).(Caller)
	return c, ok
}
