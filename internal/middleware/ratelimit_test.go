// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hit(h http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/book", nil)
	req.RemoteAddr = ip + ":5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func assertLimitsAfterBurst(t *testing.T, h http.Handler) {
	t.Helper()

	for i := 0; i < 2; i++ {
		rec := hit(h, "10.0.0.1")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := hit(h, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2").Code)
}

func TestRateLimiter_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rl := NewRateLimiter(rdb, RateLimitConfig{
		Limit:    PerMinute(2, 2),
		Prefix:   "test",
		FailOpen: true,
	})

	assertLimitsAfterBurst(t, rl.Handler(okHandler(nil)))
}

func TestRateLimiter_LocalFallback(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{
		Limit:    PerMinute(2, 2),
		FailOpen: true,
	})

	assertLimitsAfterBurst(t, rl.Handler(okHandler(nil)))
}

func TestKeyByIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	assert.Equal(t, "ip:192.0.2.7", KeyByIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.1")
	assert.Equal(t, "ip:198.51.100.1", KeyByIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.9")
	assert.Equal(t, "ip:198.51.100.9", KeyByIP(req))
}

func TestLocalLimiter_SweepsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newLocalLimiter()
	l.now = func() time.Time { return now }

	_, err := l.allow("a", PerMinute(1, 1))
	require.NoError(t, err)
	require.Len(t, l.buckets, 1)

	now = now.Add(localIdleTTL + time.Second)
	_, err = l.allow("b", PerMinute(1, 1))
	require.NoError(t, err)

	assert.NotContains(t, l.buckets, "a")
	assert.Contains(t, l.buckets, "b")
}

func TestLocalLimiter_RejectsZeroRate(t *testing.T) {
	_, err := newLocalLimiter().allow("a", PerMinute(0, 1))
	assert.Error(t, err)
}
