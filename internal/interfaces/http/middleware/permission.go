package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

// PolicyEnforcer decides whether a role may perform action on resource
type PolicyEnforcer interface {
	Enforce(role authorization.UserRole, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission must run after the auth middleware
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			utils.AbortWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
			return
		}

		allowed, err := m.enforcer.Enforce(session.Role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", session.UserID, "resource", resource, "action", action)
			utils.AbortWithError(c, errors.NewInternalError("Permission check failed"))
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", session.UserID, "role", session.Role, "resource", resource, "action", action)
			utils.AbortWithError(c, errors.NewForbiddenError(constants.ErrMsgForbidden))
			return
		}

		c.Next()
	}
}
