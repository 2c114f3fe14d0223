package middleware

import (
	"fmt"
	"strconv"
	"time"

	"flux-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// incrWindow increments the counter and gives it a TTL whenever it has none,
// in one atomic step.
var incrWindow = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RateLimiter counts requests per client IP in fixed Redis windows.
type RateLimiter struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
	log    *zap.Logger
}

func NewRateLimiter(client *redis.Client, prefix string, max int, window time.Duration, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
		max:    int64(max),
		window: window,
		log:    log,
	}
}

// Handler lets the request through when Redis is unavailable: a cache outage
// must not block applicants.
func (r *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r.client == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := fmt.Sprintf("rate_limit:%s:%s", r.prefix, c.IP())

		count, err := incrWindow.Run(ctx, r.client, []string{key}, r.window.Milliseconds()).Int64()
		if err != nil {
			r.log.Warn("⚠️ rate limiter unavailable", zap.Error(err))
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(r.max, 10))
		remaining := r.max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > r.max {
			ttl, err := r.client.TTL(ctx, key).Result()
			retryAfter := int(ttl.Seconds())
			if err != nil || retryAfter <= 0 {
				retryAfter = int(r.window.Seconds())
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return utils.HandleError(c, fiber.StatusTooManyRequests,
				fmt.Sprintf("Too many submissions. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}
