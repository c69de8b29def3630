package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-marketplace-gate/internal/application/recovery"
	"github.com/go-marketplace-gate/internal/domain"
)

// PasswordRecoveryHandler handles the seller OTP recovery flow.
type PasswordRecoveryHandler struct {
	svc recovery.Service
}

func NewPasswordRecoveryHandler(svc recovery.Service) *PasswordRecoveryHandler {
	return &PasswordRecoveryHandler{svc: svc}
}

func (h *PasswordRecoveryHandler) Action(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "request":
		var req recovery.RequestCodeRequest
		if !decodeRecovery(w, r, &req) {
			return
		}
		if err := h.svc.RequestCode(r.Context(), req); err != nil {
			recoveryError(w, err)
			return
		}
		// Same answer whether or not the identifier belongs to a seller.
		writeJSON(w, http.StatusOK, RecoveryEnvelope{Success: true, Message: "if the account exists, a code has been sent"})
	case "verify":
		var req recovery.VerifyCodeRequest
		if !decodeRecovery(w, r, &req) {
			return
		}
		identifier, err := h.svc.VerifyCode(r.Context(), req)
		if err != nil {
			recoveryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RecoveryEnvelope{Success: true, Message: "code verified", VerifiedIdentifier: identifier})
	case "reset":
		var req recovery.ResetPasswordRequest
		if !decodeRecovery(w, r, &req) {
			return
		}
		if err := h.svc.CompletePasswordReset(r.Context(), req); err != nil {
			recoveryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RecoveryEnvelope{Success: true, Message: "password updated"})
	default:
		writeJSON(w, http.StatusBadRequest, RecoveryEnvelope{Success: false, Message: "unknown action"})
	}
}

func decodeRecovery(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, RecoveryEnvelope{Success: false, Message: "invalid request body"})
		return false
	}
	return true
}

// recoveryError keeps the recovery envelope shape on client errors.
func recoveryError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		httpError(w, err)
		return
	}
	msg := err.Error()
	switch {
	case errors.Is(err, domain.ErrOTPExpired):
		msg = "code expired, request a new one"
	case errors.Is(err, domain.ErrOTPInvalid):
		msg = "invalid code"
	}
	writeJSON(w, status, RecoveryEnvelope{Success: false, Message: msg})
}
