package middlewares

import (
	"time"

	helper "campus_events_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func ipLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// GlobalRateLimiter guards every /api endpoint per client IP.
func GlobalRateLimiter() fiber.Handler {
	return ipLimiter(100, time.Minute, "Too many requests. Please try again later.")
}

func LoginRateLimiter() fiber.Handler {
	return ipLimiter(5, time.Minute, "Too many login attempts. Please wait a minute and try again.")
}

func RegisterRateLimiter() fiber.Handler {
	return ipLimiter(3, 5*time.Minute, "Too many sign-up attempts. Please wait a few minutes.")
}
