package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/fixdesk/fixdesk/internal/domain/user/value_objects"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
)

func mustName(t *testing.T, s string) *vo.Name {
	t.Helper()
	n, err := vo.NewName(s)
	require.NoError(t, err)
	return n
}

func mustEmail(t *testing.T, s string) *vo.Email {
	t.Helper()
	e, err := vo.NewEmail(s)
	require.NoError(t, err)
	return e
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(mustName(t, "Tom Tech"), mustEmail(t, "Tom@Example.com"), "$2a$10$hash", authorization.RoleTechnician)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(u.ID())
	assert.NoError(t, parseErr)
	assert.Equal(t, "Tom Tech", u.Name())
	assert.Equal(t, "tom@example.com", u.Email())
	assert.Equal(t, authorization.RoleTechnician, u.Role())
	assert.True(t, u.IsTechnician())
	assert.Equal(t, u.CreatedAt(), u.UpdatedAt())
}

func TestNewUser_Invalid(t *testing.T) {
	name := mustName(t, "Tom Tech")
	email := mustEmail(t, "tom@example.com")

	tests := []struct {
		name  string
		build func() (*User, error)
	}{
		{"missing name", func() (*User, error) { return NewUser(nil, email, "h", authorization.RoleTenant) }},
		{"missing email", func() (*User, error) { return NewUser(name, nil, "h", authorization.RoleTenant) }},
		{"missing hash", func() (*User, error) { return NewUser(name, email, "", authorization.RoleTenant) }},
		{"unknown role", func() (*User, error) { return NewUser(name, email, "h", authorization.UserRole("ADMIN")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := tt.build()
			assert.Error(t, err)
			assert.Nil(t, u)
		})
	}
}

func TestReconstructUser(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	u, err := ReconstructUser("u-1", mustName(t, "Mary Manager"), mustEmail(t, "mary@example.com"), "hash", authorization.RoleManager, created, created)
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID())
	assert.Equal(t, created, u.CreatedAt())

	_, err = ReconstructUser("", mustName(t, "Mary Manager"), mustEmail(t, "mary@example.com"), "hash", authorization.RoleManager, created, created)
	assert.Error(t, err)
}
