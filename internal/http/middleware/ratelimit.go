package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"portfolioapi/internal/metrics"
)

const rateLimitMessage = "Rate limit exceeded"

// RateLimit enforces a per-client-IP token bucket held in process memory.
// rps is the refill rate and burst the bucket size.
func RateLimit(rps float64, burst int) fiber.Handler {
	var limiters sync.Map // client key -> *rate.Limiter

	return func(c *fiber.Ctx) error {
		key := "ip:" + ClientIPFromCtx(c)
		v, ok := limiters.Load(key)
		if !ok {
			v, _ = limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(rps), burst))
		}
		if !v.(*rate.Limiter).Allow() {
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": rateLimitMessage})
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		return c.Next()
	}
}

// RedisRateLimit is a fixed-window limiter shared by every replica through
// Redis. Each client may make floor(rps*window)+burst requests per window.
// A nil client falls back to RateLimit. When Redis errors the request is let
// through and the failure logged.
func RedisRateLimit(client *redis.Client, log *zap.Logger, rps float64, burst int, window time.Duration) fiber.Handler {
	if client == nil {
		return RateLimit(rps, burst)
	}
	windowSeconds := int64(window.Seconds())
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	allowed := int64(rps*float64(windowSeconds)) + int64(burst)

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		bucket := time.Now().Unix() / windowSeconds
		key := fmt.Sprintf("rl:ip:%s:%d", ClientIPFromCtx(c), bucket)

		cnt, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limit check failed", zap.Error(err))
			return c.Next()
		}
		if cnt == 1 {
			_ = client.Expire(ctx, key, time.Duration(windowSeconds+1)*time.Second).Err()
		}
		if cnt > allowed {
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", windowSeconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": rateLimitMessage})
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		return c.Next()
	}
}
