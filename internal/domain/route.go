package domain

import "fmt"

// RouteClass is the access class of a request path.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAdminOnly
	RouteAdminLogin
	RouteSellerOnly
	RouteSellerRestricted
)

var routeClassNames = map[RouteClass]string{
	RoutePublic:           "public",
	RouteAdminOnly:        "admin_only",
	RouteAdminLogin:       "admin_login",
	RouteSellerOnly:       "seller_only",
	RouteSellerRestricted: "seller_restricted",
}

func (c RouteClass) String() string {
	if n, ok := routeClassNames[c]; ok {
		return n
	}
	return "public"
}

// ParseRouteClass maps a configuration name back to its RouteClass.
func ParseRouteClass(name string) (RouteClass, error) {
	for c, n := range routeClassNames {
		if n == name {
			return c, nil
		}
	}
	return RoutePublic, fmt.Errorf("unknown route class %q: %w", name, ErrBadRequest)
}

// Decision is the edge verdict for one navigation. Target is set only when Allow is false.
type Decision struct {
	Allow  bool   `json:"allow"`
	Target string `json:"target,omitempty"`
}

// AllowDecision lets the navigation proceed.
func AllowDecision() Decision { return Decision{Allow: true} }

// RedirectTo sends the navigation elsewhere.
func RedirectTo(target string) Decision { return Decision{Target: target} }
