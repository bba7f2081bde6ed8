package providers

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows initial burst", func(t *testing.T) {
		limiter := NewRateLimiter(600)

		start := time.Now()
		for i := 0; i < 5; i++ {
			if !limiter.TryConsume() {
				t.Fatalf("request %d rejected", i)
			}
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("took too long: %v", elapsed)
		}
	})

	t.Run("try consume drains bucket", func(t *testing.T) {
		limiter := NewRateLimiter(60)
		frozen := time.Now()
		limiter.now = func() time.Time { return frozen }
		limiter.lastUpdate = frozen
		limiter.tokens = 3

		for i := 0; i < 3; i++ {
			if !limiter.TryConsume() {
				t.Fatalf("TryConsume %d should succeed", i+1)
			}
		}
		if limiter.TryConsume() {
			t.Error("TryConsume should fail on an empty bucket")
		}
		if after := limiter.RetryAfter(); after != time.Second {
			t.Errorf("RetryAfter() = %v, want 1s", after)
		}

		status := limiter.Status()
		if status.TotalConsumed != 3 || status.TotalRejected != 1 {
			t.Errorf("consumed/rejected = %d/%d", status.TotalConsumed, status.TotalRejected)
		}
	})

	t.Run("refills over time", func(t *testing.T) {
		limiter := NewRateLimiter(60)
		now := time.Now()
		limiter.now = func() time.Time { return now }
		limiter.lastUpdate = now
		limiter.tokens = 0

		if limiter.TryConsume() {
			t.Fatal("expected empty bucket")
		}
		now = now.Add(time.Second)
		if !limiter.TryConsume() {
			t.Error("expected one token after one second at 60 rpm")
		}
	})

	t.Run("set limit clamps tokens", func(t *testing.T) {
		limiter := NewRateLimiter(60)
		limiter.SetLimit(5)
		if status := limiter.Status(); status.TokensLimit != 5 || status.TokensAvailable > 5 {
			t.Errorf("status = %+v", status)
		}
	})

	t.Run("record 429 drains without retry-after", func(t *testing.T) {
		limiter := NewRateLimiter(60)

		limiter.Record429(0)

		status := limiter.Status()
		if status.Last429Time.IsZero() {
			t.Error("Last429Time should be set")
		}
		if status.TokensAvailable != 0 {
			t.Errorf("TokensAvailable = %d, want 0", status.TokensAvailable)
		}
		if limiter.TryConsume() {
			t.Error("TryConsume should fail right after a 429")
		}
	})

	t.Run("record 429 honors retry-after", func(t *testing.T) {
		limiter := NewRateLimiter(60)
		now := time.Now()
		limiter.now = func() time.Time { return now }
		limiter.lastUpdate = now

		limiter.Record429(5 * time.Second)

		if after := limiter.RetryAfter(); after != 5*time.Second {
			t.Errorf("RetryAfter() = %v, want 5s", after)
		}
		if status := limiter.Status(); status.TokensAvailable != 0 || status.Utilization != 1 {
			t.Errorf("status = %+v", status)
		}

		now = now.Add(4 * time.Second)
		if limiter.TryConsume() {
			t.Error("TryConsume should fail before retry-after elapses")
		}
		now = now.Add(time.Second)
		if !limiter.TryConsume() {
			t.Error("TryConsume should succeed once retry-after elapses")
		}
	})

	t.Run("concurrent requests", func(t *testing.T) {
		limiter := NewRateLimiter(6000)

		var wg sync.WaitGroup
		var failures atomic.Int32
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !limiter.TryConsume() {
					failures.Add(1)
				}
			}()
		}
		wg.Wait()

		if failures.Load() > 0 {
			t.Errorf("had %d errors", failures.Load())
		}
		if status := limiter.Status(); status.TotalConsumed != 10 {
			t.Errorf("TotalConsumed = %d, want 10", status.TotalConsumed)
		}
	})
}
