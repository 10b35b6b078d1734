package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fixdesk/fixdesk/internal/domain/user"
	vo "github.com/fixdesk/fixdesk/internal/domain/user/value_objects"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
)

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, u *user.User) error
	GetByEmailFunc    func(ctx context.Context, email string) (*user.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	ListByRoleFunc    func(ctx context.Context, role authorization.UserRole) ([]*user.User, error)

	created []*user.User
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, u); err != nil {
			return err
		}
	}
	m.created = append(m.created, u)
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*user.User, error) {
	return map[string]*user.User{}, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role authorization.UserRole) ([]*user.User, error) {
	if m.ListByRoleFunc != nil {
		return m.ListByRoleFunc(ctx, role)
	}
	return nil, nil
}

func (m *mockUserRepository) ListIDsByRole(ctx context.Context, role authorization.UserRole) ([]string, error) {
	return nil, nil
}

// fakeHasher "hashes" by prefixing, which keeps tests fast
type fakeHasher struct {
	HashErr error
	spent   int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Matches(hash, password string) bool {
	return strings.TrimPrefix(hash, "hashed:") == password
}

func (h *fakeHasher) SpendComparison(password string) {
	h.spent++
}

type mockRevoker struct {
	RevokeFunc func(ctx context.Context, sessionID, userID string, expiresAt time.Time) error

	revoked []string
}

func (m *mockRevoker) Revoke(ctx context.Context, sessionID, userID string, expiresAt time.Time) error {
	if m.RevokeFunc != nil {
		if err := m.RevokeFunc(ctx, sessionID, userID, expiresAt); err != nil {
			return err
		}
	}
	m.revoked = append(m.revoked, sessionID)
	return nil
}

func newUser(t *testing.T, name, email, passwordHash string, role authorization.UserRole) *user.User {
	t.Helper()
	n, err := vo.NewName(name)
	require.NoError(t, err)
	e, err := vo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(n, e, passwordHash, role)
	require.NoError(t, err)
	return u
}
