package identity

import (
	"testing"

	"github.com/go-marketplace-gate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sellerCred(role string, status domain.SellerStatus) *domain.SellerCredential {
	return &domain.SellerCredential{Token: "t", SellerID: "s1", Profile: domain.SellerProfile{Role: role, Status: status}}
}

func TestResolve_AdminWinsOverEveryCombination(t *testing.T) {
	sellers := []*domain.SellerCredential{
		nil,
		sellerCred(domain.RoleSeller, domain.SellerPending),
		sellerCred(domain.RoleSeller, domain.SellerApproved),
		sellerCred("shopper", ""),
	}
	sessions := []*domain.UserSession{nil, {SessionID: "x", UserID: "u1"}}

	for _, s := range sellers {
		for _, u := range sessions {
			got := Resolve(domain.IdentityContext{AdminPresent: true, SellerCredential: s, UserSession: u})
			assert.Equal(t, domain.AdminRole, got)
		}
	}
}

func TestResolve_SellerBeatsShopper(t *testing.T) {
	got := Resolve(domain.IdentityContext{
		SellerCredential: sellerCred(domain.RoleSeller, domain.SellerApproved),
		UserSession:      &domain.UserSession{UserID: "u1"},
	})
	assert.Equal(t, domain.SellerRole(domain.SellerApproved), got)
}

func TestResolve_NonSellerProfileIsIgnored(t *testing.T) {
	got := Resolve(domain.IdentityContext{
		SellerCredential: sellerCred("admin", ""),
		UserSession:      &domain.UserSession{UserID: "u1"},
	})
	assert.Equal(t, domain.ShopperRole, got)

	got = Resolve(domain.IdentityContext{SellerCredential: sellerCred("", "")})
	assert.Equal(t, domain.AnonymousRole, got)
}

func TestResolve_ShopperAndAnonymous(t *testing.T) {
	assert.Equal(t, domain.ShopperRole, Resolve(domain.IdentityContext{UserSession: &domain.UserSession{UserID: "u1"}}))
	assert.Equal(t, domain.AnonymousRole, Resolve(domain.IdentityContext{}))
}
