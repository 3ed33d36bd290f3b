// Package ratelimit is a fixed-window request limiter backed by Redis, so
// the window survives restarts and is shared across instances.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Policy struct {
	MaxRequests int
	Window      time.Duration
}

// AIPolicy throttles the AI endpoints, which fan out to a metered provider.
var AIPolicy = Policy{MaxRequests: 30, Window: time.Minute}

type Limiter struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

func NewLimiter(rdb *redis.Client, logger zerolog.Logger) *Limiter {
	return &Limiter{rdb: rdb, logger: logger}
}

type Result struct {
	Allowed   bool
	Remaining int
	ResetIn   int // seconds until the window resets
}

// Check counts a hit against the identifier's window. Redis being down
// fails open: the request is allowed and the error logged.
func (l *Limiter) Check(ctx context.Context, scope, identifier string, p Policy) Result {
	key := fmt.Sprintf("rl:%s:%s", scope, identifier)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("rate limit check failed, allowing")
		return Result{Allowed: true, Remaining: p.MaxRequests, ResetIn: int(p.Window.Seconds())}
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, p.Window).Err(); err != nil {
			l.logger.Warn().Err(err).Str("key", key).Msg("rate limit expire failed")
		}
	}

	resetIn := int(p.Window.Seconds())
	if ttl, err := l.rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		resetIn = int(ttl.Seconds())
	}

	if count > int64(p.MaxRequests) {
		return Result{Allowed: false, Remaining: 0, ResetIn: resetIn}
	}
	return Result{Allowed: true, Remaining: p.MaxRequests - int(count), ResetIn: resetIn}
}

// Middleware applies a policy per client IP on a route group.
func (l *Limiter) Middleware(scope string, p Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := l.Check(c.Request.Context(), scope, clientIdentifier(c), p)
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(res.ResetIn))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests",
				"message":    fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", res.ResetIn),
				"retryAfter": res.ResetIn,
			})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Next()
	}
}

// clientIdentifier picks the real client IP out of the usual proxy headers.
func clientIdentifier(c *gin.Context) string {
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
