package http

import (
	"context"
	"time"

	"github.com/go-marketplace-gate/internal/application/identity"
	"github.com/go-marketplace-gate/internal/domain"
	"github.com/go-marketplace-gate/internal/infrastructure/google"
	jwtinfra "github.com/go-marketplace-gate/internal/infrastructure/jwt"
)

// SellerRepository is the minimal interface the router requires from a seller store.
type SellerRepository interface {
	Put(ctx context.Context, s *domain.Seller) error
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Seller, error)
	UpdatePasswordHash(ctx context.Context, sellerID, hash string) error
	UpdateStatus(ctx context.Context, sellerID string, status domain.SellerStatus) error
}

// ShopperRepository is the minimal interface the router requires from a shopper store.
type ShopperRepository interface {
	Put(ctx context.Context, u *domain.Shopper) error
	GetByGoogleSub(ctx context.Context, sub string) (*domain.Shopper, error)
}

// SessionRepository is the minimal interface the router requires from a session store.
type SessionRepository interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Extend(ctx context.Context, sessionID string, expiresAt int64) error
	Disable(ctx context.Context, sessionID string) error
}

// CodeStore is the verification-code store behind password recovery.
type CodeStore interface {
	Issue(namespace, identifier string) (string, time.Time, error)
	Verify(namespace, identifier, candidate string) domain.VerifyResult
	Peek(namespace, identifier string) (domain.VerificationCode, bool)
	Consume(namespace, identifier string) bool
	Sweep() int
}

// CodeDispatcher delivers verification codes out of band.
type CodeDispatcher interface {
	SendCode(ctx context.Context, identifier, code string, expiresAt time.Time) error
}

// TokenProvider signs and verifies admin and seller credentials.
type TokenProvider interface {
	Sign(subjectID, email, role string, status domain.SellerStatus) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
	Expiry() time.Duration
}

// GoogleVerifier validates Google ID tokens for shopper sign-in.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

// Deps holds all infrastructure dependencies for the router. Optional
// collaborators (Tokens, Google, Dispatcher) may be left nil.
type Deps struct {
	SellerRepo  SellerRepository
	ShopperRepo ShopperRepository
	SessionRepo SessionRepository
	CodeStore   CodeStore
	Dispatcher  CodeDispatcher
	Tokens      TokenProvider
	Google      GoogleVerifier
	RouteTable  map[string]domain.RouteClass
	Generations *identity.Generations
}
