package memory

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/go-marketplace-gate/internal/domain"
)

// DefaultCodeTTL is how long an issued code stays usable.
const DefaultCodeTTL = 10 * time.Minute

var codeSpace = big.NewInt(1_000_000)

type codeKey struct {
	namespace  string
	identifier string
}

// CodeStore is a process-local store of pending verification codes.
// Every operation runs under one mutex, so issue/verify/consume on the same
// key are linearizable and never observe a torn entry.
type CodeStore struct {
	mu    sync.Mutex
	codes map[codeKey]*domain.VerificationCode
	ttl   time.Duration
	now   func() time.Time
	rand  func() (string, error)
}

// Option configures a CodeStore.
type Option func(*CodeStore)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *CodeStore) { s.now = now }
}

// WithTTL overrides DefaultCodeTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *CodeStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithGenerator replaces the random code source.
func WithGenerator(gen func() (string, error)) Option {
	return func(s *CodeStore) { s.rand = gen }
}

func NewCodeStore(opts ...Option) *CodeStore {
	s := &CodeStore{
		codes: make(map[codeKey]*domain.VerificationCode),
		ttl:   DefaultCodeTTL,
		now:   time.Now,
		rand:  generateCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue stores a fresh code for the key, replacing any live one.
func (s *CodeStore) Issue(namespace, identifier string) (string, time.Time, error) {
	code, err := s.rand()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate code: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	v := &domain.VerificationCode{
		Namespace:  namespace,
		Identifier: identifier,
		Code:       code,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.ttl),
		State:      domain.CodeIssued,
	}
	s.codes[codeKey{namespace, identifier}] = v
	return code, v.ExpiresAt, nil
}

// Verify checks candidate against the live code. A match marks the entry
// verified and leaves it in place for a later Consume.
func (s *CodeStore) Verify(namespace, identifier, candidate string) domain.VerifyResult {
	k := codeKey{namespace, identifier}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.codes[k]
	if !ok {
		return domain.VerifyNotFound
	}
	if s.now().After(v.ExpiresAt) {
		delete(s.codes, k)
		return domain.VerifyExpired
	}
	if subtle.ConstantTimeCompare([]byte(v.Code), []byte(strings.TrimSpace(candidate))) != 1 {
		return domain.VerifyMismatch
	}
	v.State = domain.CodeVerified
	return domain.VerifyValid
}

// Peek returns a copy of the live entry. Expired entries are dropped and reported absent.
func (s *CodeStore) Peek(namespace, identifier string) (domain.VerificationCode, bool) {
	k := codeKey{namespace, identifier}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.codes[k]
	if !ok {
		return domain.VerificationCode{}, false
	}
	if s.now().After(v.ExpiresAt) {
		delete(s.codes, k)
		return domain.VerificationCode{}, false
	}
	return *v, true
}

// Consume deletes the entry and reports whether one was present.
func (s *CodeStore) Consume(namespace, identifier string) bool {
	k := codeKey{namespace, identifier}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.codes[k]
	delete(s.codes, k)
	return ok
}

// Sweep removes every expired entry and returns how many were dropped.
func (s *CodeStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for k, v := range s.codes {
		if now.After(v.ExpiresAt) {
			delete(s.codes, k)
			n++
		}
	}
	return n
}

// Len reports the number of stored entries, expired ones included.
func (s *CodeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}

// Run sweeps every interval until ctx is cancelled.
func (s *CodeStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("swept expired verification codes", "count", n)
			}
		}
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
