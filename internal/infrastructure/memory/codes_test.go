package memory

import (
	"context"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-marketplace-gate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const ns = domain.NamespacePasswordReset

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// sequence returns a generator yielding the given codes in order.
func sequence(codes ...string) func() (string, error) {
	var i int
	var mu sync.Mutex
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		c := codes[i%len(codes)]
		i++
		return c, nil
	}
}

func TestIssue_SixDigitCodeAndTTL(t *testing.T) {
	clk := newFakeClock()
	s := NewCodeStore(WithClock(clk.Now))

	code, exp, err := s.Issue(ns, "a@x.com")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
	assert.Equal(t, clk.Now().Add(10*time.Minute), exp)

	v, ok := s.Peek(ns, "a@x.com")
	require.True(t, ok)
	assert.Equal(t, domain.CodeIssued, v.State)
	assert.Equal(t, clk.Now(), v.IssuedAt)
}

func TestIssue_SecondIssueInvalidatesFirst(t *testing.T) {
	s := NewCodeStore(WithGenerator(sequence("111111", "222222")))

	first, _, err := s.Issue(ns, "a@x.com")
	require.NoError(t, err)
	_, _, err = s.Issue(ns, "a@x.com")
	require.NoError(t, err)

	res := s.Verify(ns, "a@x.com", first)
	assert.Contains(t, []domain.VerifyResult{domain.VerifyMismatch, domain.VerifyNotFound}, res)
	assert.Equal(t, domain.VerifyValid, s.Verify(ns, "a@x.com", "222222"))
}

func TestIssue_KeysAreIndependentAcrossNamespaces(t *testing.T) {
	s := NewCodeStore(WithGenerator(sequence("111111", "222222")))
	_, _, _ = s.Issue(ns, "a@x.com")
	_, _, _ = s.Issue("email-confirm", "a@x.com")

	assert.Equal(t, domain.VerifyValid, s.Verify(ns, "a@x.com", "111111"))
	assert.Equal(t, domain.VerifyValid, s.Verify("email-confirm", "a@x.com", "222222"))
}

func TestVerify_NotFound(t *testing.T) {
	s := NewCodeStore()
	assert.Equal(t, domain.VerifyNotFound, s.Verify(ns, "nobody@x.com", "123456"))
}

func TestVerify_ValidDoesNotDelete(t *testing.T) {
	s := NewCodeStore(WithGenerator(sequence("123456")))
	_, _, _ = s.Issue(ns, "a@x.com")

	assert.Equal(t, domain.VerifyValid, s.Verify(ns, "a@x.com", " 123456 "))
	v, ok := s.Peek(ns, "a@x.com")
	require.True(t, ok)
	assert.Equal(t, domain.CodeVerified, v.State)
	assert.Equal(t, domain.VerifyValid, s.Verify(ns, "a@x.com", "123456"))
}

func TestVerify_Mismatch(t *testing.T) {
	s := NewCodeStore(WithGenerator(sequence("123456")))
	_, _, _ = s.Issue(ns, "a@x.com")
	assert.Equal(t, domain.VerifyMismatch, s.Verify(ns, "a@x.com", "654321"))
	assert.Equal(t, 1, s.Len())
}

func TestVerify_ExpiredDeletesEntry(t *testing.T) {
	clk := newFakeClock()
	s := NewCodeStore(WithClock(clk.Now), WithGenerator(sequence("123456")))
	_, _, _ = s.Issue(ns, "a@x.com")

	clk.Advance(10*time.Minute + time.Second)
	assert.Equal(t, domain.VerifyExpired, s.Verify(ns, "a@x.com", "123456"))
	assert.Equal(t, domain.VerifyNotFound, s.Verify(ns, "a@x.com", "123456"))
}

func TestVerify_ExactlyAtExpiryStillValid(t *testing.T) {
	clk := newFakeClock()
	s := NewCodeStore(WithClock(clk.Now), WithGenerator(sequence("123456")))
	_, _, _ = s.Issue(ns, "a@x.com")

	clk.Advance(10 * time.Minute)
	assert.Equal(t, domain.VerifyValid, s.Verify(ns, "a@x.com", "123456"))
}

func TestPeek_DropsExpired(t *testing.T) {
	clk := newFakeClock()
	s := NewCodeStore(WithClock(clk.Now))
	_, _, _ = s.Issue(ns, "a@x.com")
	clk.Advance(11 * time.Minute)

	_, ok := s.Peek(ns, "a@x.com")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestConsume_AbsentKeyReturnsFalse(t *testing.T) {
	s := NewCodeStore()
	assert.False(t, s.Consume(ns, "nobody@x.com"))
}

func TestConsume_ExactlyOnce(t *testing.T) {
	s := NewCodeStore()
	_, _, _ = s.Issue(ns, "a@x.com")
	assert.True(t, s.Consume(ns, "a@x.com"))
	assert.False(t, s.Consume(ns, "a@x.com"))
	assert.Equal(t, domain.VerifyNotFound, s.Verify(ns, "a@x.com", "000000"))
}

func TestConsume_ConcurrentCallersSeeOneWinner(t *testing.T) {
	s := NewCodeStore()
	_, _, _ = s.Issue(ns, "a@x.com")

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Consume(ns, "a@x.com") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestConcurrentIssueAndVerify_NeverTorn(t *testing.T) {
	s := NewCodeStore(WithGenerator(sequence("111111", "222222")))
	_, _, _ = s.Issue(ns, "a@x.com")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, _ = s.Issue(ns, "a@x.com")
		}()
		go func() {
			defer wg.Done()
			res := s.Verify(ns, "a@x.com", "111111")
			assert.Contains(t, []domain.VerifyResult{domain.VerifyValid, domain.VerifyMismatch}, res)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, s.Len())
}

func TestSweep_RemovesOnlyExpired(t *testing.T) {
	clk := newFakeClock()
	s := NewCodeStore(WithClock(clk.Now))
	_, _, _ = s.Issue(ns, "old@x.com")
	clk.Advance(6 * time.Minute)
	_, _, _ = s.Issue(ns, "new@x.com")
	clk.Advance(5 * time.Minute)

	assert.Equal(t, 1, s.Sweep())
	_, ok := s.Peek(ns, "new@x.com")
	assert.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestRun_SweepsAndStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := newFakeClock()
	s := NewCodeStore(WithClock(clk.Now))
	_, _, _ = s.Issue(ns, "a@x.com")
	clk.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestWithTTL_IgnoresNonPositive(t *testing.T) {
	s := NewCodeStore(WithTTL(0))
	assert.Equal(t, DefaultCodeTTL, s.ttl)
	s = NewCodeStore(WithTTL(time.Minute))
	assert.Equal(t, time.Minute, s.ttl)
}
