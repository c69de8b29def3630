package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-marketplace-gate/internal/application/identity"
	"github.com/go-marketplace-gate/internal/domain"
	"github.com/go-marketplace-gate/internal/pkg/id"
)

type pageGate interface {
	Evaluate(ctx context.Context, r *http.Request, navKey, targetPath string) (identity.Verdict, error)
}

// Gate runs the edge decision for every page navigation. Allowed requests
// continue with the caller in context; everything else is redirected before
// any page content is produced.
func Gate(g pageGate, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			navKey := navID(w, r, secureCookies)
			if !isNavigation(r) {
				// Subresources of a page never supersede the page itself.
				navKey = ""
			}

			v, err := g.Evaluate(r.Context(), r, navKey, r.URL.Path)
			if err != nil {
				if errors.Is(err, domain.ErrSuperseded) {
					writeJSONError(w, http.StatusConflict, "navigation superseded")
					return
				}
				slog.Error("edge gate failed", "path", r.URL.Path, "err", err)
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if !v.Decision.Allow {
				gateRedirects.WithLabelValues(v.Decision.Target).Inc()
				w.Header().Set("Cache-Control", "no-store")
				http.Redirect(w, r, v.Decision.Target, http.StatusFound)
				return
			}
			ctx := WithCaller(r.Context(), Caller{Context: v.Identity, Role: v.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isNavigation reports whether r loads a top-level document. Fetch metadata
// headers decide when the browser sends them; otherwise an HTML-accepting
// GET counts as a navigation.
func isNavigation(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	mode, dest := r.Header.Get("Sec-Fetch-Mode"), r.Header.Get("Sec-Fetch-Dest")
	if mode != "" || dest != "" {
		return mode == "navigate" || dest == "document"
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// navID returns the browsing-session key, issuing one on first visit or when
// the cookie does not hold a ULID.
func navID(w http.ResponseWriter, r *http.Request, secure bool) string {
	if c, err := r.Cookie(identity.NavCookie); err == nil && id.Valid(c.Value) {
		return c.Value
	}
	v := id.New()
	http.SetCookie(w, &http.Cookie{
		Name:     identity.NavCookie,
		Value:    v,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return v
}
