package handlers

import (
	"github.com/gin-gonic/gin"
)

// envelope is the body of every auth and recipe response.
type envelope struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	Data        any    `json:"data,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

func respondData(c *gin.Context, code int, data any) {
	c.JSON(code, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, code int, msg string) {
	c.JSON(code, envelope{Success: true, Message: msg})
}

func respondError(c *gin.Context, code int, msg string) {
	c.JSON(code, envelope{Success: false, Message: msg})
}

// logAndRespondError logs the cause under logKey and answers with the fixed
// client message; err never reaches the client.
func (h *Handler) logAndRespondError(c *gin.Context, code int, msg, logKey string, err error, kv ...any) {
	if h.log != nil && err != nil {
		fields := append([]any{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	respondError(c, code, msg)
}
