package middleware

import (
	"time"

	"github.com/fadilmartias/design-evaluator/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// SessionCookie identifies a browser's evaluation workflow.
const SessionCookie = "dqe_session"

// RateLimiter limits requests per browser session, falling back to the client
// IP for callers without a session cookie. Reads of the page and of /state
// are not limited: the page reloads itself every second while evaluating.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   expiration,
		Next:         pollingRead,
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusTooManyRequests,
				Message: "Too many requests, please slow down",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

func pollingRead(c *fiber.Ctx) bool {
	if c.Method() != fiber.MethodGet {
		return false
	}
	switch c.Path() {
	case "/", "/state":
		return true
	}
	return false
}

func clientKey(c *fiber.Ctx) string {
	if id := c.Cookies(SessionCookie); id != "" {
		return "session:" + id
	}
	return "ip:" + c.IP()
}
