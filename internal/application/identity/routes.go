package identity

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-marketplace-gate/internal/domain"
	"gopkg.in/yaml.v3"
)

// Redirect targets.
const (
	AdminHomePath   = "/admin/home"
	AdminLoginPath  = "/admin/login"
	SellerHomePath  = "/seller/home"
	SellerLoginPath = "/seller/auth/login"
	SellerWaitPath  = "/seller/auth/login/wait"
)

// DefaultRouteTable maps path prefixes to access classes.
func DefaultRouteTable() map[string]domain.RouteClass {
	return map[string]domain.RouteClass{
		"/":                            domain.RouteSellerRestricted,
		"/admin":                       domain.RouteAdminOnly,
		AdminLoginPath:                 domain.RouteAdminLogin,
		"/auth":                        domain.RouteSellerRestricted,
		"/shop":                        domain.RouteSellerRestricted,
		"/seller":                      domain.RouteSellerOnly,
		"/seller/auth":                 domain.RouteSellerRestricted,
		SellerWaitPath:                 domain.RouteSellerOnly,
		"/seller/auth/forgot-password": domain.RoutePublic,
	}
}

type routeRule struct {
	prefix string
	class  domain.RouteClass
}

// RouteClassifier does longest-prefix matching on whole path segments.
// The root prefix matches only "/" itself.
type RouteClassifier struct {
	rules []routeRule
}

func NewRouteClassifier(table map[string]domain.RouteClass) *RouteClassifier {
	rules := make([]routeRule, 0, len(table))
	for p, c := range table {
		rules = append(rules, routeRule{prefix: cleanPath(p), class: c})
	}
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].prefix) != len(rules[j].prefix) {
			return len(rules[i].prefix) > len(rules[j].prefix)
		}
		return rules[i].prefix < rules[j].prefix
	})
	return &RouteClassifier{rules: rules}
}

// Classify returns the class of the longest matching prefix, or RoutePublic.
func (c *RouteClassifier) Classify(p string) domain.RouteClass {
	p = cleanPath(p)
	for _, r := range c.rules {
		if matchPrefix(r.prefix, p) {
			return r.class
		}
	}
	return domain.RoutePublic
}

func matchPrefix(prefix, p string) bool {
	if prefix == "/" {
		return p == "/"
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

type routeFile struct {
	Routes []struct {
		Prefix string `yaml:"prefix"`
		Class  string `yaml:"class"`
	} `yaml:"routes"`
}

// LoadRouteTable reads a YAML route table of the form
//
//	routes:
//	  - prefix: /admin
//	    class: admin_only
func LoadRouteTable(file string) (map[string]domain.RouteClass, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read route table: %w", err)
	}
	return ParseRouteTable(b)
}

func ParseRouteTable(b []byte) (map[string]domain.RouteClass, error) {
	var f routeFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse route table: %w", err)
	}
	if len(f.Routes) == 0 {
		return nil, fmt.Errorf("route table has no routes: %w", domain.ErrBadRequest)
	}
	table := make(map[string]domain.RouteClass, len(f.Routes))
	for _, r := range f.Routes {
		if r.Prefix == "" {
			return nil, fmt.Errorf("route with empty prefix: %w", domain.ErrBadRequest)
		}
		c, err := domain.ParseRouteClass(r.Class)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", r.Prefix, err)
		}
		table[r.Prefix] = c
	}
	return table, nil
}
