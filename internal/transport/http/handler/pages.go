package handler

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-marketplace-gate/internal/transport/http/middleware"
)

// NewPageHandler serves navigations that passed the edge gate. With a
// frontend URL the request is proxied to the page renderer; otherwise a
// small JSON placeholder names the path and the caller's role.
func NewPageHandler(frontendURL string) (http.Handler, error) {
	if frontendURL == "" {
		return http.HandlerFunc(stubPage), nil
	}
	target, err := url.Parse(frontendURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid frontend url %q", frontendURL)
	}
	return httputil.NewSingleHostReverseProxy(target), nil
}

func stubPage(w http.ResponseWriter, r *http.Request) {
	c, _ := middleware.CallerFromContext(r.Context())
	writeJSON(w, http.StatusOK, struct {
		Path string `json:"path"`
		Role string `json:"role"`
	}{r.URL.Path, c.Role.String()})
}
