package identity

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-marketplace-gate/internal/domain"
)

type signalReader interface {
	Read(ctx context.Context, r *http.Request) domain.IdentityContext
}

// Verdict is the full result of one gate evaluation.
type Verdict struct {
	Identity domain.IdentityContext
	Role     domain.EffectiveRole
	Class    domain.RouteClass
	Decision domain.Decision
}

// Gate folds all identity signals into one synchronous decision per navigation.
type Gate struct {
	reader     signalReader
	classifier *RouteClassifier
	nav        *Generations
}

func NewGate(reader signalReader, classifier *RouteClassifier, nav *Generations) *Gate {
	return &Gate{reader: reader, classifier: classifier, nav: nav}
}

// Evaluate decides whether r may reach targetPath. navKey identifies the
// browsing session; when non-empty, a decision overtaken by a newer
// navigation on the same key is discarded with domain.ErrSuperseded.
func (g *Gate) Evaluate(ctx context.Context, r *http.Request, navKey, targetPath string) (Verdict, error) {
	var token uint64
	if navKey != "" && g.nav != nil {
		token = g.nav.Begin(navKey)
	}

	ic := g.reader.Read(ctx, r)
	if navKey != "" && g.nav != nil && !g.nav.Current(navKey, token) {
		supersededDecisions.Inc()
		return Verdict{}, fmt.Errorf("decision for %s: %w", targetPath, domain.ErrSuperseded)
	}

	v := g.Classify(Resolve(ic), targetPath)
	v.Identity = ic
	decisions.WithLabelValues(roleLabel(v.Role), outcomeLabel(v.Decision)).Inc()
	return v, nil
}

// Classify runs the pure half of the pipeline for an already-resolved role.
func (g *Gate) Classify(role domain.EffectiveRole, targetPath string) Verdict {
	class := g.classifier.Classify(targetPath)
	return Verdict{Role: role, Class: class, Decision: Decide(role, class, targetPath)}
}

// Resolve reads and arbitrates the signals of r without classifying a path.
func (g *Gate) Resolve(ctx context.Context, r *http.Request) (domain.IdentityContext, domain.EffectiveRole) {
	ic := g.reader.Read(ctx, r)
	return ic, Resolve(ic)
}

func roleLabel(r domain.EffectiveRole) string {
	switch r.Kind {
	case domain.KindAdmin:
		return "admin"
	case domain.KindSeller:
		return "seller"
	case domain.KindShopper:
		return "shopper"
	default:
		return "anonymous"
	}
}

func outcomeLabel(d domain.Decision) string {
	if d.Allow {
		return "allow"
	}
	return "redirect"
}
