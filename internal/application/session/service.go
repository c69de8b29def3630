package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-marketplace-gate/internal/domain"
	"github.com/go-marketplace-gate/internal/infrastructure/google"
	"github.com/go-marketplace-gate/internal/pkg/id"
	"github.com/go-marketplace-gate/internal/pkg/token"
	"github.com/go-marketplace-gate/internal/pkg/validate"
)

const defaultSessionExpiry = 30 * 24 * time.Hour

type GoogleSignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type SignInResult struct {
	Session *domain.Session
	Shopper *domain.Shopper
	Created bool
}

// Service manages shopper browsing sessions. A session id is an opaque
// random token; the edge gate looks it up on every navigation.
type Service interface {
	SignInWithGoogle(ctx context.Context, req GoogleSignInRequest) (*SignInResult, error)
	Refresh(ctx context.Context, sessionID string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type googleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

type shopperStore interface {
	GetByGoogleSub(ctx context.Context, sub string) (*domain.Shopper, error)
	Put(ctx context.Context, u *domain.Shopper) error
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Extend(ctx context.Context, sessionID string, expiresAt int64) error
	Disable(ctx context.Context, sessionID string) error
}

type service struct {
	google   googleVerifier
	shoppers shopperStore
	sessions sessionStore
	expiry   time.Duration
	now      func() time.Time
}

type ServiceDeps struct {
	GoogleVerifier googleVerifier
	ShopperRepo    shopperStore
	SessionRepo    sessionStore
	Expiry         time.Duration
	Clock          func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		google:   deps.GoogleVerifier,
		shoppers: deps.ShopperRepo,
		sessions: deps.SessionRepo,
		expiry:   deps.Expiry,
		now:      deps.Clock,
	}
	if s.expiry <= 0 {
		s.expiry = defaultSessionExpiry
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) SignInWithGoogle(ctx context.Context, req GoogleSignInRequest) (*SignInResult, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	if s.google == nil {
		return nil, fmt.Errorf("google sign-in not configured: %w", domain.ErrUnauthorized)
	}
	p, err := s.google.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}
	if !p.EmailVerified {
		return nil, fmt.Errorf("google email not verified: %w", domain.ErrUnauthorized)
	}

	shopper, created, err := s.findOrCreate(ctx, p)
	if err != nil {
		return nil, err
	}

	sessionID, err := token.NewOpaque()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrInternal)
	}
	now := s.now().UTC()
	sess := &domain.Session{
		SessionID:       sessionID,
		UserID:          shopper.UserID,
		Email:           shopper.Email,
		ProfileComplete: shopper.ProfileComplete,
		Enable:          true,
		ExpiresAt:       now.Add(s.expiry).Unix(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("put session: %w", err)
	}
	slog.Info("shopper signed in", "user_id", shopper.UserID, "new_account", created)
	return &SignInResult{Session: sess, Shopper: shopper, Created: created}, nil
}

func (s *service) findOrCreate(ctx context.Context, p *google.Payload) (*domain.Shopper, bool, error) {
	existing, err := s.shoppers.GetByGoogleSub(ctx, p.Sub)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup shopper: %w", err)
	}

	now := s.now().UTC()
	u := &domain.Shopper{
		UserID:    id.New(),
		Email:     strings.ToLower(p.Email),
		GoogleSub: p.Sub,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.ProfileComplete = u.FirstName != "" && u.LastName != ""
	if err := s.shoppers.Put(ctx, u); err != nil {
		return nil, false, fmt.Errorf("put shopper: %w", err)
	}
	return u, true, nil
}

// Refresh pushes an active session's expiry forward by the configured lifetime.
func (s *service) Refresh(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.active(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.ExpiresAt = s.now().Add(s.expiry).Unix()
	if err := s.sessions.Extend(ctx, sessionID, sess.ExpiresAt); err != nil {
		return nil, fmt.Errorf("extend session: %w", err)
	}
	return sess, nil
}

// Logout is idempotent; unknown or already-ended sessions are not an error.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Disable(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		slog.Warn("failed to disable session", "err", err)
		return fmt.Errorf("disable session: %w", err)
	}
	return nil
}

func (s *service) active(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("no session: %w", domain.ErrUnauthorized)
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("session not found: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if !sess.Active(s.now()) {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	return sess, nil
}
