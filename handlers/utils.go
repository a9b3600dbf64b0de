package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const chatTimeout = 45 * time.Second

func contextWithChatTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), chatTimeout)
}

// HandleHealth is the liveness probe.
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
