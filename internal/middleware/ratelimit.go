package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hedgeshield/hedgeshield/internal/pkg/apperrors"
	"github.com/hedgeshield/hedgeshield/internal/pkg/logger"
	"github.com/hedgeshield/hedgeshield/internal/pkg/metrics"
)

// RateLimiter admits or rejects a request for a client key. Implementations
// must make the prune-check-append sequence atomic per key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// SlidingWindowLimiter is the in-process backend: per-key ordered admission
// timestamps inside a trailing window, capacity regenerating continuously as
// entries age out. A janitor sweeps keys that have gone idle for a full
// window so the map does not grow without bound.
type SlidingWindowLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	cap     int
	buckets map[string][]time.Time

	now  func() time.Time
	stop chan struct{}
}

func NewSlidingWindowLimiter(window time.Duration, cap int) *SlidingWindowLimiter {
	l := &SlidingWindowLimiter{
		window:  window,
		cap:     cap,
		buckets: make(map[string][]time.Time),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.janitor()
	return l
}

// Allow prunes the key's bucket, checks capacity and records the admission
// under one lock. A rejected attempt leaves the bucket untouched.
func (l *SlidingWindowLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	bucket := l.buckets[key]
	kept := bucket[:0]
	for _, t := range bucket {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.cap {
		l.buckets[key] = kept
		return false, nil
	}

	l.buckets[key] = append(kept, now)
	return true, nil
}

func (l *SlidingWindowLimiter) Stop() {
	close(l.stop)
}

func (l *SlidingWindowLimiter) janitor() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweep drops keys whose newest admission has aged out of the window.
func (l *SlidingWindowLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, bucket := range l.buckets {
		if len(bucket) == 0 || !bucket[len(bucket)-1].After(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// RateLimitMiddleware gates every request on the limiter, keyed by client IP,
// before any handler logic runs. A limiter backend failure fails open.
func RateLimitMiddleware(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter backend failed, admitting request",
				"client_ip", c.ClientIP(), "error", err.Error())
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimitRejects.Inc()
			appErr := apperrors.New(apperrors.ErrRateLimited, "rate_limit", nil)
			c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
			return
		}
		c.Next()
	}
}
