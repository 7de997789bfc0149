package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe_service/internal/metrics"
	"recipe_service/internal/service"
)

const (
	msgEmptyCredentials     = "username or password can not be empty"
	msgIncorrectCredentials = "Incorrect username or password"
	msgLoginFailed          = "login failed."
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"okay"`
}

type loginUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// @Summary      Log in
// @Description  Exchanges username and password for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "success, accessToken, data{id,username}"
// @Failure      400   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Username) == "" || input.Password == "" {
		h.metrics.ObserveLogin(metrics.LoginRejected)
		respondError(c, http.StatusBadRequest, msgEmptyCredentials)
		return
	}

	token, user, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidPassword) {
			h.metrics.ObserveLogin(metrics.LoginRejected)
			if h.log != nil {
				h.log.Infow("login_rejected", "username", input.Username)
			}
			respondError(c, http.StatusBadRequest, msgIncorrectCredentials)
			return
		}
		h.metrics.ObserveLogin(metrics.LoginError)
		h.logAndRespondError(c, http.StatusInternalServerError, msgLoginFailed, "login_failed", err, "username", input.Username)
		return
	}

	h.metrics.ObserveLogin(metrics.LoginSuccess)
	c.JSON(http.StatusOK, envelope{
		Success:     true,
		AccessToken: token,
		Data:        loginUser{ID: user.ID, Username: user.Username},
	})
}
