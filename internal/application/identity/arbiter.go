package identity

import "github.com/go-marketplace-gate/internal/domain"

// Resolve picks the effective role by fixed precedence:
// admin, then a seller credential whose profile role is seller, then a
// shopper session, else anonymous.
func Resolve(ic domain.IdentityContext) domain.EffectiveRole {
	switch {
	case ic.AdminPresent:
		return domain.AdminRole
	case ic.SellerCredential != nil && ic.SellerCredential.Profile.Role == domain.RoleSeller:
		return domain.SellerRole(ic.SellerCredential.Profile.Status)
	case ic.UserSession != nil:
		return domain.ShopperRole
	default:
		return domain.AnonymousRole
	}
}
