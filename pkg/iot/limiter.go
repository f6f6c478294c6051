package iot

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore keeps one token bucket per helmet: helmet_id -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(helmetID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[helmetID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[helmetID] = limiter
	}
	return limiter
}

// SetLimiter replaces the helmet's bucket; the new bucket starts full.
func (s *RateLimiterStore) SetLimiter(helmetID string, helmetRate rate.Limit, helmetBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[helmetID] = rate.NewLimiter(helmetRate, helmetBurst)
}

func (s *RateLimiterStore) Allow(helmetID string) bool {
	return s.GetLimiter(helmetID).Allow()
}
