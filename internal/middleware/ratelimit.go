package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	KeyPrefix         string
}

// windowCounter is a fixed-window request counter per client
type windowCounter struct {
	client *redis.Client
	cfg    RateLimitConfig
}

// hit counts one request for clientID and returns the running count in the
// current window together with the time left in it.
func (c windowCounter) hit(ctx context.Context, clientID string) (int64, time.Duration, error) {
	key := c.cfg.KeyPrefix + ":" + clientID

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, c.cfg.Window).Err(); err != nil {
			return count, c.cfg.Window, err
		}
		return count, c.cfg.Window, nil
	}

	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = c.cfg.Window
	}
	return count, ttl, nil
}

// RateLimitMiddleware limits each client address to cfg.RequestsPerWindow
// requests per window. Redis failures let the request through.
func RateLimitMiddleware(redisClient *redis.Client, cfg RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	counter := windowCounter{client: redisClient, cfg: cfg}
	limit := strconv.Itoa(cfg.RequestsPerWindow)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := clientIP(r.RemoteAddr)

			count, ttl, err := counter.hit(r.Context(), clientID)
			if err != nil {
				logger.Error("Rate limit counter unavailable",
					zap.Error(err),
					zap.String("client_id", clientID),
				)
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(cfg.RequestsPerWindow) - count
			if remaining < 0 {
				remaining = 0
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.RequestsPerWindow) {
				logger.Warn("Rate limit exceeded",
					zap.String("client_id", clientID),
					zap.String("path", r.URL.Path),
					zap.Int64("count", count),
				)

				h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
				h.Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
				RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port so every connection from one host shares a bucket.
// RealIP runs earlier in the chain.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
