package google

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-marketplace-gate/internal/domain"
	"google.golang.org/api/idtoken"
)

// Payload holds the verified claims of a Google ID token that shopper
// sign-in needs.
type Payload struct {
	Sub           string
	Email         string
	EmailVerified bool
	FirstName     string
	LastName      string
}

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// Verifier checks Google ID tokens issued for one OAuth client.
type Verifier struct {
	clientID string
	validate validateFunc
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify validates the token signature, audience and expiry. Any failure
// is reported as domain.ErrUnauthorized.
func (v *Verifier) Verify(ctx context.Context, token string) (*Payload, error) {
	p, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", domain.ErrUnauthorized)
	}
	if p.Subject == "" {
		return nil, fmt.Errorf("google token without subject: %w", domain.ErrUnauthorized)
	}
	return &Payload{
		Sub:           p.Subject,
		Email:         strings.TrimSpace(claim(p, "email")),
		EmailVerified: p.Claims["email_verified"] == true,
		FirstName:     claim(p, "given_name"),
		LastName:      claim(p, "family_name"),
	}, nil
}

func claim(p *idtoken.Payload, key string) string {
	s, _ := p.Claims[key].(string)
	return s
}
