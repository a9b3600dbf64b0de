package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Simple in-memory, per-IP rate limiter for the auth routes. Good enough for
// a single instance; a shared limiter would need external state.
const (
	rateLimitWindow = 15 * time.Minute
	rateLimitMax    = 100
)

type visitor struct {
	count     int
	resetTime time.Time
}

var (
	visitorsMu sync.Mutex
	visitors   = make(map[string]*visitor)
)

func RateLimitMiddleware(c *gin.Context) {
	ip := c.ClientIP()
	now := time.Now()

	visitorsMu.Lock()
	v, ok := visitors[ip]
	if !ok || now.After(v.resetTime) {
		v = &visitor{resetTime: now.Add(rateLimitWindow)}
		visitors[ip] = v
	}
	v.count++
	blocked := v.count > rateLimitMax
	visitorsMu.Unlock()

	if blocked {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
		c.Abort()
		return
	}

	c.Next()
}
