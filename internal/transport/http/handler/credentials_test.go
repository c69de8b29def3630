package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-marketplace-gate/internal/application/account"
	"github.com/go-marketplace-gate/internal/application/identity"
	"github.com/go-marketplace-gate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cookieNamed(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSellerLogin_SetsCookie(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("SellerLogin", mock.Anything, account.LoginRequest{Email: "s@x.com", Password: "pw"}).Return(&account.Credential{
		Token: "tok", Role: domain.RoleSeller, Status: domain.SellerPending, ExpiresIn: time.Hour,
	}, nil)

	h := NewAccountHandler(svc, CookieJar{Secure: true})
	rr := httptest.NewRecorder()
	h.SellerLogin(rr, httptest.NewRequest(http.MethodPost, "/v1/sellers/login", jsonBody(t, map[string]string{"email": "s@x.com", "password": "pw"})))

	assert.Equal(t, http.StatusOK, rr.Code)
	c := cookieNamed(rr, identity.SellerTokenCookie)
	require.NotNil(t, c)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)

	var env CredentialEnvelope
	decodeBody(t, rr, &env)
	assert.Equal(t, CredentialEnvelope{Bearer: "tok", Role: domain.RoleSeller, Status: domain.SellerPending, ExpiresIn: 3600}, env)
}

func TestAdminLogin_Unauthorized(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("AdminLogin", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized))

	h := NewAccountHandler(svc, CookieJar{})
	rr := httptest.NewRecorder()
	h.AdminLogin(rr, httptest.NewRequest(http.MethodPost, "/v1/admin/login", jsonBody(t, map[string]string{"email": "a@x.com", "password": "no"})))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Nil(t, cookieNamed(rr, identity.AdminTokenCookie))
}

func TestRegisterSeller(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("RegisterSeller", mock.Anything, mock.Anything).Return(&domain.Seller{SellerID: "s1", PasswordHash: "secret-hash", Status: domain.SellerPending}, nil).Once()
	svc.On("RegisterSeller", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("email taken: %w", domain.ErrConflict)).Once()

	h := NewAccountHandler(svc, CookieJar{})
	body := map[string]string{"email": "s@x.com", "shop_name": "S", "password": "hunter22"}

	rr := httptest.NewRecorder()
	h.RegisterSeller(rr, httptest.NewRequest(http.MethodPost, "/v1/sellers", jsonBody(t, body)))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret-hash")

	rr = httptest.NewRecorder()
	h.RegisterSeller(rr, httptest.NewRequest(http.MethodPost, "/v1/sellers", jsonBody(t, body)))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestUpdateSellerStatus(t *testing.T) {
	svc := &mockAccountSvc{}
	svc.On("UpdateSellerStatus", mock.Anything, "s1", account.UpdateStatusRequest{Status: domain.SellerApproved}).Return(nil)

	h := NewAccountHandler(svc, CookieJar{})
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/sellers/s1/status", jsonBody(t, map[string]string{"status": "approved"}))
	rr := httptest.NewRecorder()
	h.UpdateSellerStatus(rr, withURLParam(req, "id", "s1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestLogoutClearsCookies(t *testing.T) {
	h := NewAccountHandler(&mockAccountSvc{}, CookieJar{})

	rr := httptest.NewRecorder()
	h.SellerLogout(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	c := cookieNamed(rr, identity.SellerTokenCookie)
	require.NotNil(t, c)
	assert.Less(t, c.MaxAge, 0)

	rr = httptest.NewRecorder()
	h.AdminLogout(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	require.NotNil(t, cookieNamed(rr, identity.AdminTokenCookie))
}
