package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/shared/config"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
)

// DefaultSessionCookie is used when the cookie config leaves the name empty
const DefaultSessionCookie = "session"

func sessionCookieName(cookieConfig config.CookieConfig) string {
	if cookieConfig.Name == "" {
		return DefaultSessionCookie
	}
	return cookieConfig.Name
}

// SetSessionCookie stores the signed session token as an HttpOnly cookie
func SetSessionCookie(c *gin.Context, cookieConfig config.CookieConfig, token string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		sessionCookieName(cookieConfig),
		token,
		maxAge,
		cookiePath(cookieConfig),
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		sessionCookieName(cookieConfig),
		"",
		-1,
		cookiePath(cookieConfig),
		cookieConfig.Domain,
		cookieConfig.Secure,
		true,
	)
}

// GetSessionToken retrieves the session token from the cookie, falling back to a Bearer header
func GetSessionToken(c *gin.Context, cookieConfig config.CookieConfig) string {
	token, err := c.Cookie(sessionCookieName(cookieConfig))
	if err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	return ""
}

func cookiePath(cookieConfig config.CookieConfig) string {
	if cookieConfig.Path == "" {
		return "/"
	}
	return cookieConfig.Path
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
