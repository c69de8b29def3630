package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-marketplace-gate/internal/application/account"
	"github.com/go-marketplace-gate/internal/application/recovery"
	"github.com/go-marketplace-gate/internal/application/session"
	"github.com/go-marketplace-gate/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockRecoverySvc struct{ mock.Mock }

func (m *mockRecoverySvc) RequestCode(ctx context.Context, req recovery.RequestCodeRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockRecoverySvc) VerifyCode(ctx context.Context, req recovery.VerifyCodeRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *mockRecoverySvc) CompletePasswordReset(ctx context.Context, req recovery.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

type mockAccountSvc struct{ mock.Mock }

func (m *mockAccountSvc) RegisterSeller(ctx context.Context, req account.RegisterSellerRequest) (*domain.Seller, error) {
	args := m.Called(ctx, req)
	if s, _ := args.Get(0).(*domain.Seller); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountSvc) SellerLogin(ctx context.Context, req account.LoginRequest) (*account.Credential, error) {
	args := m.Called(ctx, req)
	if c, _ := args.Get(0).(*account.Credential); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountSvc) AdminLogin(ctx context.Context, req account.LoginRequest) (*account.Credential, error) {
	args := m.Called(ctx, req)
	if c, _ := args.Get(0).(*account.Credential); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountSvc) UpdateSellerStatus(ctx context.Context, sellerID string, req account.UpdateStatusRequest) error {
	return m.Called(ctx, sellerID, req).Error(0)
}

type mockSessionSvc struct{ mock.Mock }

func (m *mockSessionSvc) SignInWithGoogle(ctx context.Context, req session.GoogleSignInRequest) (*session.SignInResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*session.SignInResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionSvc) Refresh(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionSvc) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

// --- helpers ---

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// withURLParam injects a chi URL param so handlers can be called directly.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(v))
}
