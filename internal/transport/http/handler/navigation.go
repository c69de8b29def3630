package handler

import (
	"context"
	"net/http"

	"github.com/go-marketplace-gate/internal/application/identity"
	"github.com/go-marketplace-gate/internal/domain"
	"github.com/go-marketplace-gate/internal/pkg/id"
	"github.com/go-marketplace-gate/internal/transport/http/middleware"
)

type navigationGate interface {
	Evaluate(ctx context.Context, r *http.Request, navKey, targetPath string) (identity.Verdict, error)
}

// NavigationHandler exposes the edge decision to client-side routers.
type NavigationHandler struct {
	gate navigationGate
}

func NewNavigationHandler(gate navigationGate) *NavigationHandler {
	return &NavigationHandler{gate: gate}
}

// Decide answers whether the caller may navigate to ?path=.
func (h *NavigationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")
	if p == "" {
		writeError(w, http.StatusBadRequest, "path required")
		return
	}
	navKey := cookieValue(r, identity.NavCookie)
	if !id.Valid(navKey) {
		navKey = ""
	}
	v, err := h.gate.Evaluate(r.Context(), r, navKey, p)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NavigationEnvelope{
		Path:   p,
		Role:   v.Role.String(),
		Class:  v.Class.String(),
		Allow:  v.Decision.Allow,
		Target: v.Decision.Target,
	})
}

// WhoAmI reports the caller resolved by the identity middleware.
func (h *NavigationHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	c, _ := middleware.CallerFromContext(r.Context())
	env := IdentityEnvelope{Role: c.Role.String(), AdminPresent: c.Context.AdminPresent}
	if c.Role.Kind == domain.KindSeller {
		env.SellerStatus = c.Role.Status
	}
	if sc := c.Context.SellerCredential; sc != nil {
		env.SellerID = sc.SellerID
	}
	if us := c.Context.UserSession; us != nil {
		env.UserID = us.UserID
	}
	writeJSON(w, http.StatusOK, env)
}
