package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRateLimiterStore_Basic(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter(ActorKey(1))
	if limiter == nil {
		t.Fatal("expected limiter, got nil")
	}
	if limiter.Limit() != 1 {
		t.Errorf("expected limit 1, got %v", limiter.Limit())
	}
}

func TestRateLimiterStore_CustomLimit(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter(ActorKey(2), 5, 10)
	limiter := store.GetLimiter(ActorKey(2))

	if limiter.Limit() != 5 {
		t.Errorf("expected limit 5, got %v", limiter.Limit())
	}
	if limiter.Burst() != 10 {
		t.Errorf("expected burst 10, got %v", limiter.Burst())
	}
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	actor := uuid.NewString()

	var wg sync.WaitGroup

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.GetLimiter(actor) == nil {
				t.Error("expected limiter, got nil")
			}
		}()
	}

	wg.Wait()

	if store.GetLimiter(actor) == nil {
		t.Error("expected limiter to exist after concurrent access")
	}
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2) // 2 events/sec

	actor := uuid.NewString()

	if !store.Allow(actor) || !store.Allow(actor) {
		t.Fatal("expected first two calls to be allowed")
	}
	if store.Allow(actor) {
		t.Error("expected third call to be rate limited")
	}

	// other actors have their own bucket
	if !store.Allow(uuid.NewString()) {
		t.Error("expected a different actor to be allowed")
	}

	time.Sleep(600 * time.Millisecond)
	if !store.Allow(actor) {
		t.Error("expected one token to be available after refill")
	}
}

func TestActorKey(t *testing.T) {
	if got := ActorKey(42); got != "user:42" {
		t.Errorf("expected user:42, got %s", got)
	}
}
