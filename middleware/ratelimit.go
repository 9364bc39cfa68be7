package middleware

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"archblog/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimit rejects a client once it exceeds the window's allowance. Clients
// are keyed by prefix and IP.
func RateLimit(fw *limiter.FixedWindow, prefix, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := fw.Allow(c.Request.Context(), prefix+":"+c.ClientIP())
		if err != nil {
			log.Printf("rate limiter unavailable: %v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(fw.Limit(), 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))

		if !res.Allowed {
			retry := int(math.Ceil(time.Until(res.ResetAt).Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}

		c.Next()
	}
}
