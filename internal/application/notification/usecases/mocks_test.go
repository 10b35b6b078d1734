package usecases

import (
	"context"
	"sync"

	"github.com/fixdesk/fixdesk/internal/domain/notification"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
)

type mockNotificationRepository struct {
	CreateFunc             func(ctx context.Context, n *notification.Notification) error
	BulkCreateFunc         func(ctx context.Context, ns []*notification.Notification) error
	ListRecentByUserIDFunc func(ctx context.Context, userID string, limit int) ([]*notification.Notification, error)
	CountUnreadFunc        func(ctx context.Context, userID string) (int64, error)
	MarkAllReadFunc        func(ctx context.Context, userID string) (int64, error)
	DeleteAllFunc          func(ctx context.Context) error
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepository) BulkCreate(ctx context.Context, ns []*notification.Notification) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, ns)
	}
	return nil
}

func (m *mockNotificationRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	if m.ListRecentByUserIDFunc != nil {
		return m.ListRecentByUserIDFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepository) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, u *user.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*user.User, error)
	GetByIDsFunc      func(ctx context.Context, ids []string) (map[string]*user.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*user.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	ListByRoleFunc    func(ctx context.Context, role authorization.UserRole) ([]*user.User, error)
	ListIDsByRoleFunc func(ctx context.Context, role authorization.UserRole) ([]string, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
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
	if m.ListIDsByRoleFunc != nil {
		return m.ListIDsByRoleFunc(ctx, role)
	}
	return nil, nil
}

type sentEmail struct {
	to      string
	name    string
	message string
}

type mockEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (m *mockEmailSender) SendNotification(ctx context.Context, toAddress, toName, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{to: toAddress, name: toName, message: message})
	return m.err
}

// inlineRunner runs tasks synchronously so tests can assert right after Dispatch
type inlineRunner struct {
	names []string
}

func (r *inlineRunner) Go(name string, fn func()) {
	r.names = append(r.names, name)
	fn()
}

type countingMetrics struct {
	created   int
	delivered int
	failed    int
}

func (m *countingMetrics) NotificationsCreated(n int) { m.created += n }

func (m *countingMetrics) EmailDelivered(ok bool) {
	if ok {
		m.delivered++
		return
	}
	m.failed++
}
