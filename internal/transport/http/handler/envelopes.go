package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-marketplace-gate/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// RecoveryEnvelope wraps password-recovery responses.
type RecoveryEnvelope struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	VerifiedIdentifier string `json:"verified_identifier,omitempty"`
}

// CredentialEnvelope wraps admin and seller login responses.
type CredentialEnvelope struct {
	Bearer    string              `json:"Bearer"`
	Role      string              `json:"role"`
	Status    domain.SellerStatus `json:"status,omitempty"`
	ExpiresIn int64               `json:"expires_in"`
}

// SessionEnvelope wraps shopper session responses.
type SessionEnvelope struct {
	Session *SafeSession    `json:"session,omitempty"`
	Shopper *domain.Shopper `json:"shopper,omitempty"`
	Created bool            `json:"created,omitempty"`
}

// SafeSession is the client view of a session; the id travels only in the cookie.
type SafeSession struct {
	UserID          string `json:"user_id"`
	Email           string `json:"email"`
	ProfileComplete bool   `json:"profile_complete"`
	ExpiresAt       int64  `json:"expires_at"`
}

// NavigationEnvelope is the edge decision for a path.
type NavigationEnvelope struct {
	Path   string `json:"path"`
	Role   string `json:"role"`
	Class  string `json:"class"`
	Allow  bool   `json:"allow"`
	Target string `json:"target,omitempty"`
}

// IdentityEnvelope describes who the caller currently is.
type IdentityEnvelope struct {
	Role         string              `json:"role"`
	SellerStatus domain.SellerStatus `json:"seller_status,omitempty"`
	AdminPresent bool                `json:"admin_present"`
	SellerID     string              `json:"seller_id,omitempty"`
	UserID       string              `json:"user_id,omitempty"`
}

func toSafeSession(s *domain.Session) *SafeSession {
	if s == nil {
		return nil
	}
	return &SafeSession{UserID: s.UserID, Email: s.Email, ProfileComplete: s.ProfileComplete, ExpiresAt: s.ExpiresAt}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// statusOf maps a domain sentinel to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrOTPInvalid),
		errors.Is(err, domain.ErrOTPExpired), errors.Is(err, domain.ErrPreconditionFailed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrSuperseded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// httpError writes err with the status of its sentinel. Internal errors are
// logged and never echoed to the client.
func httpError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "err", err)
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}
