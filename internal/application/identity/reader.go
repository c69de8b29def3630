package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-marketplace-gate/internal/domain"
	jwtinfra "github.com/go-marketplace-gate/internal/infrastructure/jwt"
)

// Cookie names carrying the three identity signals and the navigation id.
const (
	AdminTokenCookie  = "admin_token"
	SellerTokenCookie = "seller_token"
	SessionCookie     = "session_id"
	NavCookie         = "nav_id"
)

type tokenVerifier interface {
	Verify(token string) (*jwtinfra.Claims, error)
}

type sessionLookup interface {
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
}

// SignalReader extracts the identity signals of a request. Every signal is
// read independently and any failure leaves that signal absent.
type SignalReader struct {
	tokens   tokenVerifier
	sessions sessionLookup
	now      func() time.Time
}

func NewSignalReader(tokens tokenVerifier, sessions sessionLookup) *SignalReader {
	return &SignalReader{tokens: tokens, sessions: sessions, now: time.Now}
}

// Read never fails; unreadable signals degrade to absent.
func (r *SignalReader) Read(ctx context.Context, req *http.Request) domain.IdentityContext {
	var ic domain.IdentityContext

	if claims := r.verify(cookieValue(req, AdminTokenCookie)); claims != nil && claims.Role == domain.RoleAdmin {
		ic.AdminPresent = true
	}
	if tok := cookieValue(req, SellerTokenCookie); tok != "" {
		if claims := r.verify(tok); claims != nil {
			ic.SellerCredential = sellerCredential(tok, claims)
		}
	}

	// API clients send a single bearer token; its signed role decides which slot it fills.
	if tok := bearerToken(req); tok != "" {
		if claims := r.verify(tok); claims != nil {
			switch claims.Role {
			case domain.RoleAdmin:
				ic.AdminPresent = true
			case domain.RoleSeller:
				if ic.SellerCredential == nil {
					ic.SellerCredential = sellerCredential(tok, claims)
				}
			}
		}
	}

	ic.UserSession = r.session(ctx, cookieValue(req, SessionCookie))
	return ic
}

func (r *SignalReader) verify(token string) *jwtinfra.Claims {
	if token == "" || r.tokens == nil {
		return nil
	}
	claims, err := r.tokens.Verify(token)
	if err != nil {
		return nil
	}
	return claims
}

func (r *SignalReader) session(ctx context.Context, sessionID string) *domain.UserSession {
	if sessionID == "" || r.sessions == nil {
		return nil
	}
	s, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		if ctx.Err() == nil {
			slog.Debug("session lookup failed", "err", err)
		}
		return nil
	}
	if !s.Active(r.now()) {
		return nil
	}
	return &domain.UserSession{
		SessionID:       s.SessionID,
		UserID:          s.UserID,
		Email:           s.Email,
		ProfileComplete: s.ProfileComplete,
	}
}

func sellerCredential(token string, claims *jwtinfra.Claims) *domain.SellerCredential {
	return &domain.SellerCredential{
		Token:    token,
		SellerID: claims.SubjectID,
		Profile:  domain.SellerProfile{Role: claims.Role, Status: claims.Status},
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
