package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fakeLimiter 记录被检查的 Key，按预设结果放行或拒绝
type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

func newRateLimitedEngine(cfg RateLimitConfig, limiter RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) { c.Set("user_id", "u-1") })
	engine.Use(RateLimit(cfg, limiter))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return engine
}

func doPing(engine *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowed(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	engine := newRateLimitedEngine(RateLimitConfig{Enabled: true, RequestsPerSecond: 10}, limiter)

	w := doPing(engine)

	assert.Equal(t, http.StatusOK, w.Code)
	// Key 按 prefix:user_id:path 构建
	assert.Equal(t, []string{"ratelimit:u-1:/ping"}, limiter.keys)
}

func TestRateLimitExceeded(t *testing.T) {
	limiter := &fakeLimiter{allowed: false}
	engine := newRateLimitedEngine(RateLimitConfig{Enabled: true, RequestsPerSecond: 1}, limiter)

	w := doPing(engine)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimitFailOpen(t *testing.T) {
	// 限流器故障时放行，不影响业务
	limiter := &fakeLimiter{err: errors.New("redis: connection refused")}
	engine := newRateLimitedEngine(RateLimitConfig{Enabled: true, RequestsPerSecond: 10}, limiter)

	w := doPing(engine)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	limiter := &fakeLimiter{allowed: false}
	engine := newRateLimitedEngine(RateLimitConfig{Enabled: false}, limiter)

	w := doPing(engine)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, limiter.keys)
}
