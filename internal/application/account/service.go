package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-marketplace-gate/internal/domain"
	"github.com/go-marketplace-gate/internal/pkg/id"
	"github.com/go-marketplace-gate/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type RegisterSellerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone" validate:"omitempty,e164"`
	ShopName string  `json:"shop_name" validate:"required,max=120"`
	Password string  `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateStatusRequest struct {
	Status domain.SellerStatus `json:"status" validate:"required,oneof=pending approved"`
}

// Credential is a signed token together with the claims baked into it.
type Credential struct {
	Token     string
	SubjectID string
	Role      string
	Status    domain.SellerStatus
	ExpiresIn time.Duration
}

// Service issues the admin and seller credentials the edge gate reads.
// Role and status are bound into the token at issuance.
type Service interface {
	RegisterSeller(ctx context.Context, req RegisterSellerRequest) (*domain.Seller, error)
	SellerLogin(ctx context.Context, req LoginRequest) (*Credential, error)
	AdminLogin(ctx context.Context, req LoginRequest) (*Credential, error)
	UpdateSellerStatus(ctx context.Context, sellerID string, req UpdateStatusRequest) error
}

type sellerStore interface {
	Put(ctx context.Context, s *domain.Seller) error
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	UpdateStatus(ctx context.Context, sellerID string, status domain.SellerStatus) error
}

type tokenSigner interface {
	Sign(subjectID, email, role string, status domain.SellerStatus) (string, error)
	Expiry() time.Duration
}

type service struct {
	sellers           sellerStore
	signer            tokenSigner
	adminEmail        string
	adminPasswordHash string
	hashCost          int
	now               func() time.Time
}

type ServiceDeps struct {
	SellerRepo        sellerStore
	Signer            tokenSigner
	AdminEmail        string
	AdminPasswordHash string
	HashCost          int
}

func NewService(deps ServiceDeps) Service {
	cost := deps.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &service{
		sellers:           deps.SellerRepo,
		signer:            deps.Signer,
		adminEmail:        strings.ToLower(strings.TrimSpace(deps.AdminEmail)),
		adminPasswordHash: deps.AdminPasswordHash,
		hashCost:          cost,
		now:               time.Now,
	}
}

// RegisterSeller creates a pending seller account. An administrator approves it later.
func (s *service) RegisterSeller(ctx context.Context, req RegisterSellerRequest) (*domain.Seller, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	if _, err := s.sellers.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup seller: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", domain.ErrInternal)
	}
	now := s.now().UTC()
	seller := &domain.Seller{
		SellerID:     id.New(),
		Email:        req.Email,
		Phone:        req.Phone,
		ShopName:     strings.TrimSpace(req.ShopName),
		PasswordHash: string(hash),
		Role:         domain.RoleSeller,
		Status:       domain.SellerPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.sellers.Put(ctx, seller); err != nil {
		return nil, fmt.Errorf("put seller: %w", err)
	}
	slog.Info("seller registered", "seller_id", seller.SellerID)
	return seller, nil
}

func (s *service) SellerLogin(ctx context.Context, req LoginRequest) (*Credential, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	seller, err := s.sellers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("lookup seller: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	// Only the stored role is signed; an account without it gets no seller powers.
	return s.issue(seller.SellerID, seller.Email, seller.Role, seller.Status)
}

func (s *service) AdminLogin(_ context.Context, req LoginRequest) (*Credential, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	if s.adminEmail == "" || s.adminPasswordHash == "" {
		return nil, fmt.Errorf("admin login disabled: %w", domain.ErrUnauthorized)
	}
	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.adminEmail)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password))
	if !emailOK || passErr != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.issue("admin", s.adminEmail, domain.RoleAdmin, "")
}

func (s *service) UpdateSellerStatus(ctx context.Context, sellerID string, req UpdateStatusRequest) error {
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	if err := s.sellers.UpdateStatus(ctx, sellerID, req.Status); err != nil {
		return fmt.Errorf("update seller status: %w", err)
	}
	slog.Info("seller status changed", "seller_id", sellerID, "status", req.Status)
	return nil
}

func (s *service) issue(subjectID, email, role string, status domain.SellerStatus) (*Credential, error) {
	if s.signer == nil {
		return nil, fmt.Errorf("token signing not configured: %w", domain.ErrInternal)
	}
	tok, err := s.signer.Sign(subjectID, email, role, status)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", domain.ErrInternal)
	}
	return &Credential{Token: tok, SubjectID: subjectID, Role: role, Status: status, ExpiresIn: s.signer.Expiry()}, nil
}
