package handler

import (
	"net/http"
	"time"

	"github.com/go-marketplace-gate/internal/application/identity"
	"github.com/go-marketplace-gate/internal/application/session"
)

// SessionHandler handles shopper session endpoints.
type SessionHandler struct {
	svc     session.Service
	cookies CookieJar
	now     func() time.Time
}

func NewSessionHandler(svc session.Service, cookies CookieJar) *SessionHandler {
	return &SessionHandler{svc: svc, cookies: cookies, now: time.Now}
}

func (h *SessionHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req session.GoogleSignInRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.SignInWithGoogle(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	h.cookies.Set(w, identity.SessionCookie, res.Session.SessionID, h.ttl(res.Session.ExpiresAt))
	writeJSON(w, http.StatusOK, SessionEnvelope{Session: toSafeSession(res.Session), Shopper: res.Shopper, Created: res.Created})
}

func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Refresh(r.Context(), cookieValue(r, identity.SessionCookie))
	if err != nil {
		httpError(w, err)
		return
	}
	h.cookies.Set(w, identity.SessionCookie, sess.SessionID, h.ttl(sess.ExpiresAt))
	writeJSON(w, http.StatusOK, SessionEnvelope{Session: toSafeSession(sess)})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), cookieValue(r, identity.SessionCookie)); err != nil {
		httpError(w, err)
		return
	}
	h.cookies.Clear(w, identity.SessionCookie)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

func (h *SessionHandler) ttl(expiresAt int64) time.Duration {
	return time.Unix(expiresAt, 0).Sub(h.now())
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
