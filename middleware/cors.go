package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CorsMiddleware allows the webapp origins listed in ALLOWED_ORIGINS
// (comma-separated); an empty list allows any origin, which is the
// development default.
func CorsMiddleware(c *gin.Context) {
	allowed := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	origin := c.Request.Header.Get("Origin")

	switch {
	case os.Getenv("ALLOWED_ORIGINS") == "":
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	default:
		for _, a := range allowed {
			if strings.TrimSpace(a) == origin {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				break
			}
		}
	}

	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}
