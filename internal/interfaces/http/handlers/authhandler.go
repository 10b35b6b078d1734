package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/application/user/usecases"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/config"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

// sessionAuthenticator resolves the caller's session without aborting the request.
type sessionAuthenticator interface {
	Authenticate(c *gin.Context) (*authorization.Session, error)
}

type AuthHandler struct {
	registerUseCase usecases.RegisterExecutor
	loginUseCase    usecases.LoginExecutor
	logoutUseCase   usecases.LogoutExecutor
	authenticator   sessionAuthenticator
	cookieConfig    config.CookieConfig
	logger          logger.Interface
}

func NewAuthHandler(
	registerUC usecases.RegisterExecutor,
	loginUC usecases.LoginExecutor,
	logoutUC usecases.LogoutExecutor,
	authenticator sessionAuthenticator,
	cookieConfig config.CookieConfig,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUC,
		loginUseCase:    loginUC,
		logoutUseCase:   logoutUC,
		authenticator:   authenticator,
		cookieConfig:    cookieConfig,
		logger:          logger,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	utils.SetSessionCookie(c, h.cookieConfig, result.Token, maxAge)
	utils.OKResponse(c, result.User)
}

// Logout handles POST /api/auth/logout. The cookie is cleared even when the
// session is already invalid.
func (h *AuthHandler) Logout(c *gin.Context) {
	if session, err := h.authenticator.Authenticate(c); err == nil && session != nil {
		if err := h.revoke(c.Request.Context(), session); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	utils.ClearSessionCookie(c, h.cookieConfig)
	utils.MessageResponse(c, "Logged out")
}

func (h *AuthHandler) revoke(ctx context.Context, session *authorization.Session) error {
	return h.logoutUseCase.Execute(ctx, usecases.LogoutCommand{
		UserID:    session.UserID,
		SessionID: session.SessionID,
		ExpiresAt: session.ExpiresAt,
	})
}
