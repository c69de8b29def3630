package identity

import "github.com/go-marketplace-gate/internal/domain"

// Decide maps (role, class) to a navigation decision for requestPath.
// A redirect that would land on requestPath itself is turned into Allow.
func Decide(role domain.EffectiveRole, class domain.RouteClass, requestPath string) domain.Decision {
	d := decide(role, class)
	if !d.Allow && cleanPath(d.Target) == cleanPath(requestPath) {
		return domain.AllowDecision()
	}
	return d
}

func decide(role domain.EffectiveRole, class domain.RouteClass) domain.Decision {
	switch role.Kind {
	case domain.KindAdmin:
		if class == domain.RouteAdminOnly {
			return domain.AllowDecision()
		}
		return domain.RedirectTo(AdminHomePath)

	case domain.KindSeller:
		switch class {
		case domain.RouteAdminOnly:
			return domain.RedirectTo(AdminLoginPath)
		case domain.RouteSellerRestricted:
			if role.Status == domain.SellerApproved {
				return domain.RedirectTo(SellerHomePath)
			}
			return domain.RedirectTo(SellerWaitPath)
		}
		return domain.AllowDecision()

	default: // shopper, anonymous
		switch class {
		case domain.RouteAdminOnly:
			return domain.RedirectTo(AdminLoginPath)
		case domain.RouteSellerOnly:
			return domain.RedirectTo(SellerLoginPath)
		}
		return domain.AllowDecision()
	}
}
