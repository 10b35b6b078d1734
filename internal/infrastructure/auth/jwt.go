package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/biztime"
)

// ErrInvalidToken covers malformed, tampered and expired session tokens
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the payload of a session token. The registered ID claim (jti)
// identifies the session for revocation.
type Claims struct {
	UserID string                 `json:"userId"`
	Role   authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// SessionID returns the jti of the token
func (c *Claims) SessionID() string {
	return c.ID
}

// ExpiresAtTime returns the expiry, or the zero time when the claim is absent
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// JWTService signs and verifies HS256 session tokens
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL is the lifetime of newly issued tokens
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the user carrying a fresh session id
func (s *JWTService) Issue(userID string, role authorization.UserRole) (string, *Claims, error) {
	now := biztime.NowUTC()

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, claims, nil
}

// Verify parses the token and checks signature, expiry and role
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(biztime.NowUTC),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" || !claims.Role.IsValid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
