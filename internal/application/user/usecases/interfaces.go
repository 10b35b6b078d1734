package usecases

import (
	"context"
	"time"

	"github.com/fixdesk/fixdesk/internal/infrastructure/auth"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
	// SpendComparison costs as much as a failed Matches
	SpendComparison(password string)
}

type TokenIssuer interface {
	Issue(userID string, role authorization.UserRole) (string, *auth.Claims, error)
}

// SessionRevoker records logged-out sessions until their token expires
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID, userID string, expiresAt time.Time) error
}
