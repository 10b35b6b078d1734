package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

// publicPrefixes never require a session
var publicPrefixes = []string{
	constants.APIPrefix + "/auth/",
	"/health",
	"/login",
	"/register",
	"/uploads/",
	"/internal/metrics",
}

// roleAreas maps page prefixes to the only role allowed below them
var roleAreas = []struct {
	prefix string
	role   authorization.UserRole
}{
	{"/manager", authorization.RoleManager},
	{"/tech", authorization.RoleTechnician},
	{"/dashboard", authorization.RoleTenant},
}

// PathGate applies the route level gate in front of every route. API callers
// get a JSON 401/403, browser navigation is redirected to loginPath.
func PathGate(authMW *AuthMiddleware, loginPath string) gin.HandlerFunc {
	if loginPath == "" {
		loginPath = "/login"
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isPublicPath(path) {
			c.Next()
			return
		}

		isAPI := strings.HasPrefix(path, constants.APIPrefix+"/") || path == constants.APIPrefix

		session, err := authMW.Authenticate(c)
		if err != nil {
			hadToken := utils.GetSessionToken(c, authMW.cookieConfig) != ""
			if hadToken {
				utils.ClearSessionCookie(c, authMW.cookieConfig)
			}
			if isAPI {
				utils.AbortWithError(c, err)
				return
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		if required, ok := requiredRole(path); ok && session.Role != required {
			if isAPI {
				utils.AbortWithError(c, errors.NewForbiddenError(constants.ErrMsgForbidden))
				return
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		noCache(c)
		c.Next()
	}
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if path == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func requiredRole(path string) (authorization.UserRole, bool) {
	for _, area := range roleAreas {
		if path == area.prefix || strings.HasPrefix(path, area.prefix+"/") {
			return area.role, true
		}
	}
	return "", false
}

func noCache(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}
