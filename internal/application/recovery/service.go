package recovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-marketplace-gate/internal/domain"
	"github.com/go-marketplace-gate/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

type RequestCodeRequest struct {
	Identifier string `json:"identifier" validate:"required,identifier"`
}

type VerifyCodeRequest struct {
	Identifier string `json:"identifier" validate:"required,identifier"`
	Code       string `json:"code" validate:"required,len=6,number"`
}

type ResetPasswordRequest struct {
	Identifier      string `json:"identifier" validate:"required,identifier"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Service is the seller password-recovery protocol: request a code, verify
// it, then set a new password. Verification never consumes the code; the
// reset does, and only after the new hash is stored.
type Service interface {
	RequestCode(ctx context.Context, req RequestCodeRequest) error
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (verifiedIdentifier string, err error)
	CompletePasswordReset(ctx context.Context, req ResetPasswordRequest) error
}

type codeStore interface {
	Issue(namespace, identifier string) (string, time.Time, error)
	Verify(namespace, identifier, candidate string) domain.VerifyResult
	Peek(namespace, identifier string) (domain.VerificationCode, bool)
	Consume(namespace, identifier string) bool
}

type credentialStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Seller, error)
	UpdatePasswordHash(ctx context.Context, sellerID, hash string) error
}

type codeDispatcher interface {
	SendCode(ctx context.Context, identifier, code string, expiresAt time.Time) error
}

type service struct {
	codes      codeStore
	sellers    credentialStore
	dispatcher codeDispatcher
	hash       func(password string) (string, error)
}

type ServiceDeps struct {
	CodeStore  codeStore
	SellerRepo credentialStore
	Dispatcher codeDispatcher
	HashCost   int
}

func NewService(deps ServiceDeps) Service {
	cost := deps.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &service{
		codes:      deps.CodeStore,
		sellers:    deps.SellerRepo,
		dispatcher: deps.Dispatcher,
		hash: func(password string) (string, error) {
			b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
			return string(b), err
		},
	}
}

func (s *service) RequestCode(ctx context.Context, req RequestCodeRequest) error {
	req.Identifier = normalizeIdentifier(req.Identifier)
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	code, expiresAt, err := s.codes.Issue(domain.NamespacePasswordReset, req.Identifier)
	if err != nil {
		return fmt.Errorf("issue code: %w", domain.ErrInternal)
	}
	codesIssued.WithLabelValues(domain.NamespacePasswordReset).Inc()

	if s.dispatcher == nil {
		slog.Warn("no code dispatcher configured", "identifier", maskIdentifier(req.Identifier))
		dispatchFailures.Inc()
		return nil
	}
	if err := s.dispatcher.SendCode(ctx, req.Identifier, code, expiresAt); err != nil {
		slog.Warn("failed to dispatch password reset code", "identifier", maskIdentifier(req.Identifier), "err", err)
		dispatchFailures.Inc()
	}
	return nil
}

func (s *service) VerifyCode(_ context.Context, req VerifyCodeRequest) (string, error) {
	req.Identifier = normalizeIdentifier(req.Identifier)
	req.Code = strings.TrimSpace(req.Code)
	if err := validate.Struct(&req); err != nil {
		return "", fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	res := s.codes.Verify(domain.NamespacePasswordReset, req.Identifier, req.Code)
	verifications.WithLabelValues(res.String()).Inc()
	switch res {
	case domain.VerifyValid:
		return req.Identifier, nil
	case domain.VerifyExpired:
		return "", fmt.Errorf("OTP has expired, request a new one: %w", domain.ErrOTPExpired)
	default:
		return "", fmt.Errorf("invalid OTP: %w", domain.ErrOTPInvalid)
	}
}

func (s *service) CompletePasswordReset(ctx context.Context, req ResetPasswordRequest) error {
	req.Identifier = normalizeIdentifier(req.Identifier)
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	if len(req.NewPassword) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrBadRequest)
	}
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("passwords do not match: %w", domain.ErrBadRequest)
	}
	if _, ok := s.codes.Peek(domain.NamespacePasswordReset, req.Identifier); !ok {
		resets.WithLabelValues("precondition_failed").Inc()
		return fmt.Errorf("verify OTP first: %w", domain.ErrPreconditionFailed)
	}

	seller, err := s.lookup(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resets.WithLabelValues("not_found").Inc()
			return fmt.Errorf("seller not found: %w", domain.ErrNotFound)
		}
		resets.WithLabelValues("error").Inc()
		slog.Error("seller lookup failed during password reset", "identifier", maskIdentifier(req.Identifier), "err", err)
		return fmt.Errorf("lookup seller: %w", domain.ErrInternal)
	}

	hash, err := s.hash(req.NewPassword)
	if err != nil {
		resets.WithLabelValues("error").Inc()
		return fmt.Errorf("hash password: %w", domain.ErrInternal)
	}
	if err := s.sellers.UpdatePasswordHash(ctx, seller.SellerID, hash); err != nil {
		// The code stays live so the caller can retry with it.
		resets.WithLabelValues("error").Inc()
		slog.Error("failed to persist new password hash", "seller_id", seller.SellerID, "err", err)
		return fmt.Errorf("update password: %w", domain.ErrInternal)
	}

	s.codes.Consume(domain.NamespacePasswordReset, req.Identifier)
	resets.WithLabelValues("success").Inc()
	slog.Info("seller password reset", "seller_id", seller.SellerID)
	return nil
}

func (s *service) lookup(ctx context.Context, identifier string) (*domain.Seller, error) {
	if isPhone(identifier) {
		return s.sellers.GetByPhone(ctx, identifier)
	}
	return s.sellers.GetByEmail(ctx, identifier)
}

func isPhone(identifier string) bool { return strings.HasPrefix(identifier, "+") }

// normalizeIdentifier trims whitespace and lower-cases emails so the same
// address always maps to the same code key.
func normalizeIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if isPhone(identifier) {
		return identifier
	}
	return strings.ToLower(identifier)
}

func maskIdentifier(identifier string) string {
	if at := strings.IndexByte(identifier, '@'); at > 1 {
		return identifier[:1] + "***" + identifier[at:]
	}
	if len(identifier) > 4 {
		return "***" + identifier[len(identifier)-4:]
	}
	return "***"
}
