// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

type RateLimitConfig struct {
	Limit    redis_rate.Limit
	Prefix   string
	KeyFunc  func(*http.Request) string
	FailOpen bool
}

// RateLimiter counts requests in Redis when a client is configured and
// falls back to per-process token buckets otherwise (or when Redis errors).
type RateLimiter struct {
	limiter  *redis_rate.Limiter
	fallback *localLimiter
	config   RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "ratelimit"
	}

	rl := &RateLimiter{
		fallback: newLocalLimiter(),
		config:   cfg,
	}
	if rdb != nil {
		rl.limiter = redis_rate.NewLimiter(rdb)
	}
	return rl
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.config.Prefix + ":" + rl.config.KeyFunc(r)

		res, err := rl.allow(r.Context(), key)
		if err != nil {
			if rl.config.FailOpen {
				slog.Warn("rate limiter error, failing open",
					"error", err,
					"key", key,
				)
				next.ServeHTTP(w, r)
				return
			}
			core.Message(
				w,
				http.StatusServiceUnavailable,
				"Service unavailable",
			)
			return
		}

		setRateLimitHeaders(w, res, rl.config.Limit)

		if res.Allowed == 0 {
			writeRateLimitExceeded(w, res)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(
	ctx context.Context,
	key string,
) (*redis_rate.Result, error) {
	if rl.limiter == nil {
		return rl.fallback.allow(key, rl.config.Limit)
	}

	res, err := rl.limiter.Allow(ctx, key, rl.config.Limit)
	if err != nil {
		slog.Debug("redis rate limiter unavailable, using local",
			"error", err,
		)
		return rl.fallback.allow(key, rl.config.Limit)
	}
	return res, nil
}

func KeyByIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return "ip:" + strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return "ip:" + xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	return "ip:" + ip
}

func setRateLimitHeaders(
	w http.ResponseWriter,
	res *redis_rate.Result,
	limit redis_rate.Limit,
) {
	h := w.Header()

	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(
		time.Now().Add(res.ResetAfter).Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, res *redis_rate.Result) {
	retryAfter := int(res.RetryAfter.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	core.Message(w, http.StatusTooManyRequests, fmt.Sprintf(
		"Rate limit exceeded. Retry after %d seconds.",
		retryAfter,
	))
}

// localLimiter keeps one token bucket per key in process memory. Buckets
// idle longer than localIdleTTL are swept on access.
type localLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	lastSweep time.Time
	now       func() time.Time
}

type localBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

const localIdleTTL = 10 * time.Minute

func newLocalLimiter() *localLimiter {
	return &localLimiter{
		buckets: make(map[string]*localBucket),
		now:     time.Now,
	}
}

func (l *localLimiter) allow(
	key string,
	limit redis_rate.Limit,
) (*redis_rate.Result, error) {
	if limit.Rate <= 0 || limit.Period <= 0 {
		return nil, fmt.Errorf("invalid local limit %d/%s", limit.Rate, limit.Period)
	}

	interval := limit.Period / time.Duration(limit.Rate)
	now := l.now()

	l.mu.Lock()
	l.sweepLocked(now)
	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{
			limiter: rate.NewLimiter(rate.Every(interval), limit.Burst),
		}
		l.buckets[key] = b
	}
	b.seen = now
	allowed := b.limiter.AllowN(now, 1)
	remaining := max(int(b.limiter.TokensAt(now)), 0)
	l.mu.Unlock()

	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  remaining,
		RetryAfter: -1,
		ResetAfter: interval,
	}
	if allowed {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}

	return res, nil
}

func (l *localLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < localIdleTTL {
		return
	}
	l.lastSweep = now

	for key, b := range l.buckets {
		if now.Sub(b.seen) > localIdleTTL {
			delete(l.buckets, key)
		}
	}
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return redis_rate.Limit{
		Rate:   rate,
		Burst:  burst,
		Period: time.Minute,
	}
}
