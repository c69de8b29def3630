package domain

import "fmt"

// Role names carried in signed credential claims.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// SellerStatus is the approval state of a seller account.
type SellerStatus string

const (
	SellerPending  SellerStatus = "pending"
	SellerApproved SellerStatus = "approved"
)

// SellerProfile is the role/status snapshot bound to a seller credential at issuance.
type SellerProfile struct {
	Role   string       `json:"role"`
	Status SellerStatus `json:"status"`
}

// SellerCredential is a verified seller token plus its profile snapshot.
type SellerCredential struct {
	Token    string
	SellerID string
	Profile  SellerProfile
}

// UserSession is the shopper's session record as seen by the edge.
type UserSession struct {
	SessionID       string
	UserID          string
	Email           string
	ProfileComplete bool
}

// IdentityContext holds the three independent, possibly-absent identity
// signals of one request. It is never persisted.
type IdentityContext struct {
	AdminPresent     bool
	SellerCredential *SellerCredential
	UserSession      *UserSession
}

// RoleKind discriminates EffectiveRole.
type RoleKind int

const (
	KindAnonymous RoleKind = iota
	KindShopper
	KindSeller
	KindAdmin
)

// EffectiveRole is the single persona in control of a request.
// Status is meaningful only for KindSeller.
type EffectiveRole struct {
	Kind   RoleKind
	Status SellerStatus
}

var (
	AnonymousRole = EffectiveRole{Kind: KindAnonymous}
	ShopperRole   = EffectiveRole{Kind: KindShopper}
	AdminRole     = EffectiveRole{Kind: KindAdmin}
)

// SellerRole returns the seller role with the given approval status.
func SellerRole(status SellerStatus) EffectiveRole {
	return EffectiveRole{Kind: KindSeller, Status: status}
}

func (r EffectiveRole) String() string {
	switch r.Kind {
	case KindAdmin:
		return "admin"
	case KindSeller:
		return fmt.Sprintf("seller(%s)", r.Status)
	case KindShopper:
		return "shopper"
	default:
		return "anonymous"
	}
}
