package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "github.com/fixdesk/fixdesk/internal/domain/user/value_objects"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/biztime"
)

// User is an account holding exactly one role. The role never changes after registration.
type User struct {
	id           string
	name         *vo.Name
	email        *vo.Email
	passwordHash string
	role         authorization.UserRole
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a user with a fresh id
func NewUser(name *vo.Name, email *vo.Email, passwordHash string, role authorization.UserRole) (*User, error) {
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		id:           uuid.NewString(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(id string, name *vo.Name, email *vo.Email, passwordHash string, role authorization.UserRole, createdAt, updatedAt time.Time) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Name() string {
	return u.name.String()
}

func (u *User) Email() string {
	return u.email.String()
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) IsTechnician() bool {
	return u.role.IsTechnician()
}
