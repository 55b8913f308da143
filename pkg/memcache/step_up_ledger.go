package mem

import (
	"context"
	"sync"
	"time"
)

// StepUpLedger remembers which step-up tokens were already exchanged and
// how many codes were tried against each.
type StepUpLedger interface {
	// MarkUsed records jti for ttl. It returns false when jti was already
	// recorded and has not yet expired.
	MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error)
	// RecordAttempt counts one code submission against jti and returns the
	// total, including this one. The count lives for ttl.
	RecordAttempt(ctx context.Context, jti string, ttl time.Duration) (int64, error)
}

type attemptCount struct {
	n         int64
	expiresAt time.Time
}

type UsedTokens struct {
	mu        sync.Mutex
	data      map[string]time.Time
	attempts  map[string]attemptCount
	now       func() time.Time
	lastSweep time.Time
}

func NewUsedTokens() *UsedTokens {
	return &UsedTokens{
		data:     make(map[string]time.Time),
		attempts: make(map[string]attemptCount),
		now:      time.Now,
	}
}

func (s *UsedTokens) MarkUsed(_ context.Context, jti string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	if expiresAt, ok := s.data[jti]; ok && now.Before(expiresAt) {
		return false, nil
	}
	s.data[jti] = now.Add(ttl)
	return true, nil
}

func (s *UsedTokens) RecordAttempt(_ context.Context, jti string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	ac, ok := s.attempts[jti]
	if !ok || !now.Before(ac.expiresAt) {
		ac = attemptCount{expiresAt: now.Add(ttl)}
	}
	ac.n++
	s.attempts[jti] = ac
	return ac.n, nil
}

// sweep drops expired entries at most once a minute.
func (s *UsedTokens) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < time.Minute {
		return
	}
	s.lastSweep = now
	for k, exp := range s.data {
		if !now.Before(exp) {
			delete(s.data, k)
		}
	}
	for k, ac := range s.attempts {
		if !now.Before(ac.expiresAt) {
			delete(s.attempts, k)
		}
	}
}

func (s *UsedTokens) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
