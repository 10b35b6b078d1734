package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/infrastructure/auth"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/config"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RevocationChecker reports sessions ended by logout
type RevocationChecker interface {
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type AuthMiddleware struct {
	verifier     TokenVerifier
	revocations  RevocationChecker
	cookieConfig config.CookieConfig
	logger       logger.Interface
}

// NewAuthMiddleware accepts a nil revocation checker, in which case tokens stay
// valid until they expire.
func NewAuthMiddleware(verifier TokenVerifier, revocations RevocationChecker, cookieConfig config.CookieConfig, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:     verifier,
		revocations:  revocations,
		cookieConfig: cookieConfig,
		logger:       logger,
	}
}

// Authenticate resolves the session of the request. It fails with an
// unauthorized error when no token is present or the token is invalid,
// expired or revoked.
func (m *AuthMiddleware) Authenticate(c *gin.Context) (*authorization.Session, error) {
	if session := GetSession(c); session != nil {
		return session, nil
	}

	token := utils.GetSessionToken(c, m.cookieConfig)
	if token == "" {
		return nil, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}

	claims, err := m.verifier.Verify(token)
	if err != nil {
		m.logger.Debugw("failed to verify session token", "error", err)
		return nil, errors.NewUnauthorizedError(constants.ErrMsgInvalidToken)
	}

	if m.revocations != nil {
		revoked, err := m.revocations.IsRevoked(c.Request.Context(), claims.SessionID())
		if err != nil {
			// the denylist is an extra check on top of a valid signature
			m.logger.Warnw("failed to check session revocation", "error", err)
		} else if revoked {
			return nil, errors.NewUnauthorizedError(constants.ErrMsgInvalidToken)
		}
	}

	session := &authorization.Session{
		UserID:    claims.UserID,
		Role:      claims.Role,
		SessionID: claims.SessionID(),
		ExpiresAt: claims.ExpiresAtTime(),
	}
	setSession(c, session)
	return session, nil
}

// RequireAuth rejects requests without a valid session with 401
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := m.Authenticate(c); err != nil {
			if utils.GetSessionToken(c, m.cookieConfig) != "" {
				utils.ClearSessionCookie(c, m.cookieConfig)
			}
			utils.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireRole rejects sessions whose role is not in roles with 403
func (m *AuthMiddleware) RequireRole(roles ...authorization.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authorization.RequireRole(GetSession(c), roles...); err != nil {
			m.logger.Warnw("role check failed", "path", c.Request.URL.Path, "required_roles", roles)
			utils.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func setSession(c *gin.Context, session *authorization.Session) {
	c.Set(constants.ContextKeySession, session)
	c.Set(constants.ContextKeyUserID, session.UserID)
	c.Set(constants.ContextKeyUserRole, session.Role)
	c.Set(constants.ContextKeySessionID, session.SessionID)
}

// GetSession returns the session stored by the auth middleware, or nil
func GetSession(c *gin.Context) *authorization.Session {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return nil
	}
	session, _ := value.(*authorization.Session)
	return session
}
