package identity

import (
	"context"
	"sync"
	"time"
)

type generation struct {
	n        uint64
	lastSeen time.Time
}

// Generations hands out a monotonically increasing token per navigation key.
// A decision computed under token n is stale once Begin has been called again
// for the same key.
type Generations struct {
	mu   sync.Mutex
	gens map[string]*generation
	now  func() time.Time
}

func NewGenerations() *Generations {
	return &Generations{gens: make(map[string]*generation), now: time.Now}
}

// Begin starts a new navigation for key and returns its token.
func (g *Generations) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	gen, ok := g.gens[key]
	if !ok {
		gen = &generation{}
		g.gens[key] = gen
	}
	gen.n++
	gen.lastSeen = g.now()
	return gen.n
}

// Current reports whether token is still the latest navigation for key.
func (g *Generations) Current(key string, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	gen, ok := g.gens[key]
	return ok && gen.n == token
}

// Prune forgets keys idle for longer than maxIdle.
func (g *Generations) Prune(maxIdle time.Duration) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	cutoff := g.now().Add(-maxIdle)
	n := 0
	for k, v := range g.gens {
		if v.lastSeen.Before(cutoff) {
			delete(g.gens, k)
			n++
		}
	}
	return n
}

// Run prunes idle keys every interval until ctx is cancelled.
func (g *Generations) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Prune(maxIdle)
		}
	}
}
