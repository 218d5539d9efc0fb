package monitor

import (
	"strconv"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore keeps one token bucket per actor: actor key -> rate limiter
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

// ActorKey is the limiter key of an authenticated user.
func ActorKey(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

func (s *RateLimiterStore) GetLimiter(actor string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[actor]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[actor] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(actor string, actorRate rate.Limit, actorBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[actor] = rate.NewLimiter(actorRate, actorBurst)
}

func (s *RateLimiterStore) Allow(actor string) bool {
	return s.GetLimiter(actor).Allow()
}
