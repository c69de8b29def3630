package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-marketplace-gate/internal/application/account"
	"github.com/go-marketplace-gate/internal/application/identity"
)

// AccountHandler handles seller registration and the admin/seller credential endpoints.
type AccountHandler struct {
	svc     account.Service
	cookies CookieJar
}

func NewAccountHandler(svc account.Service, cookies CookieJar) *AccountHandler {
	return &AccountHandler{svc: svc, cookies: cookies}
}

func (h *AccountHandler) RegisterSeller(w http.ResponseWriter, r *http.Request) {
	var req account.RegisterSellerRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.svc.RegisterSeller(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *AccountHandler) SellerLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.svc.SellerLogin, identity.SellerTokenCookie)
}

func (h *AccountHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.svc.AdminLogin, identity.AdminTokenCookie)
}

func (h *AccountHandler) SellerLogout(w http.ResponseWriter, _ *http.Request) {
	h.cookies.Clear(w, identity.SellerTokenCookie)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

func (h *AccountHandler) AdminLogout(w http.ResponseWriter, _ *http.Request) {
	h.cookies.Clear(w, identity.AdminTokenCookie)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

func (h *AccountHandler) UpdateSellerStatus(w http.ResponseWriter, r *http.Request) {
	var req account.UpdateStatusRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.UpdateSellerStatus(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "status updated"})
}

type loginFunc func(ctx context.Context, req account.LoginRequest) (*account.Credential, error)

func (h *AccountHandler) login(w http.ResponseWriter, r *http.Request, fn loginFunc, cookie string) {
	var req account.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	cred, err := fn(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	h.cookies.Set(w, cookie, cred.Token, cred.ExpiresIn)
	writeJSON(w, http.StatusOK, CredentialEnvelope{
		Bearer:    cred.Token,
		Role:      cred.Role,
		Status:    cred.Status,
		ExpiresIn: int64(cred.ExpiresIn.Seconds()),
	})
}
