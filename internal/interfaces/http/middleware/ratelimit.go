package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/infrastructure/ratelimit"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

// RateLimiter limits requests per client IP and scope using a shared store
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	rule    ratelimit.Rule
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, rule ratelimit.Rule, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		rule:    rule,
		logger:  logger,
	}
}

// Limit returns a middleware counting requests under scope, e.g. "login".
// A nil RateLimiter lets every request through.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.rule)
		if err != nil {
			// an unavailable store must not block all traffic
			rl.logger.Warnw("rate limiter unavailable", "scope", scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			rl.logger.Warnw("rate limit exceeded", "scope", scope, "client_ip", c.ClientIP())
			utils.AbortWithError(c, errors.NewTooManyRequestsError("Too many requests, please try again later"))
			return
		}

		c.Next()
	}
}
