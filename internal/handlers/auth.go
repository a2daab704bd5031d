package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/backend/internal/apierr"
	"github.com/trendlens/backend/internal/auth"
	"github.com/trendlens/backend/internal/models"
	"github.com/trendlens/backend/internal/util"
)

// Register serves POST /api/auth/register.
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithAPIError(c, apierr.Validation(err.Error()))
		return
	}

	resp, err := h.auth.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			util.RespondWithAPIError(c, apierr.Conflict("An account with this email already exists."))
		case errors.Is(err, auth.ErrUsernameExists):
			util.RespondWithAPIError(c, apierr.Conflict("Username is already taken."))
		default:
			util.RespondWithAPIError(c, apierr.Internal("Failed to register user", err))
		}
		return
	}

	util.RespondData(c, resp)
}

// Login serves POST /api/auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithAPIError(c, apierr.Validation(err.Error()))
		return
	}

	resp, err := h.auth.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			util.RespondWithAPIError(c, apierr.InvalidCredentials())
		case errors.Is(err, auth.ErrAccountDeactivated):
			util.RespondWithAPIError(c, apierr.AccountDeactivated())
		default:
			util.RespondWithAPIError(c, apierr.Internal("Failed to log in", err))
		}
		return
	}

	util.RespondData(c, resp)
}

// Me serves GET /api/auth/me for the authenticated user.
func (h *Handlers) Me(c *gin.Context) {
	value, ok := c.Get(auth.ContextUserKey)
	if !ok {
		util.RespondWithAPIError(c, apierr.NoToken())
		return
	}
	user, ok := value.(*models.User)
	if !ok {
		util.RespondWithAPIError(c, apierr.Internal("Failed to load user", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
