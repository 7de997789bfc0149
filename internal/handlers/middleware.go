package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"

	msgUnauthorized = "Unauthorized"
)

// userIdMiddleware admits requests carrying a valid bearer token and stores
// the token's user id under userIDKey. Everything else gets 403.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		h.deny(c, "missing Authorization header")
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		h.deny(c, "invalid Authorization header format")
		return
	}

	userId, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		h.deny(c, "invalid or expired token")
		return
	}

	c.Set(userIDKey, userId)
	c.Next()
}

func (h *Handler) deny(c *gin.Context, reason string) {
	if h.log != nil {
		h.log.Infow("auth_denied", "reason", reason, "path", c.Request.URL.Path)
	}
	c.AbortWithStatusJSON(http.StatusForbidden, envelope{Success: false, Message: msgUnauthorized})
}

// requestLogger writes one line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
