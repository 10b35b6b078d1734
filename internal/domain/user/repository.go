package user

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/shared/authorization"
)

// Repository defines the interface for user data operations
type Repository interface {
	// Create persists a new user. Returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *User) error

	// GetByID returns ErrUserNotFound when no user has the id
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByIDs returns the users found, keyed by id. Missing ids are skipped.
	GetByIDs(ctx context.Context, ids []string) (map[string]*User, error)

	// GetByEmail returns ErrUserNotFound when no user has the email
	GetByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ListByRole returns every user currently holding role, ordered by name
	ListByRole(ctx context.Context, role authorization.UserRole) ([]*User, error)

	// ListIDsByRole is the id-only variant used for notification fan-out
	ListIDsByRole(ctx context.Context, role authorization.UserRole) ([]string, error)
}
