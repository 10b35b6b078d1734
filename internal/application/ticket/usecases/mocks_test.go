package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fixdesk/fixdesk/internal/application/ticket/dto"
	"github.com/fixdesk/fixdesk/internal/domain/notification"
	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	uservo "github.com/fixdesk/fixdesk/internal/domain/user/value_objects"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
)

const (
	tenantID     = "0190a1b2-0000-7000-8000-000000000001"
	managerID    = "0190a1b2-0000-7000-8000-000000000002"
	technicianID = "0190a1b2-0000-7000-8000-000000000003"
	otherTechID  = "0190a1b2-0000-7000-8000-000000000004"
	ticketID     = "0190a1b2-0000-7000-8000-0000000000aa"
)

type mockTicketRepository struct {
	CreateFunc         func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc        func(ctx context.Context, id string) (*ticket.Ticket, error)
	ListFunc           func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error)
	CountFunc          func(ctx context.Context, filter ticket.TicketFilter) (int64, error)
	CompareAndSwapFunc func(ctx context.Context, t *ticket.Ticket, expectedStatus vo.TicketStatus, expectedAssignee *string) (bool, error)
	DeleteAllFunc      func(ctx context.Context) error
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepository) Count(ctx context.Context, filter ticket.TicketFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockTicketRepository) CompareAndSwap(ctx context.Context, t *ticket.Ticket, expectedStatus vo.TicketStatus, expectedAssignee *string) (bool, error) {
	if m.CompareAndSwapFunc != nil {
		return m.CompareAndSwapFunc(ctx, t, expectedStatus, expectedAssignee)
	}
	return true, nil
}

func (m *mockTicketRepository) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}

type mockActivityLogRepository struct {
	AppendFunc         func(ctx context.Context, l *ticket.ActivityLog) error
	ListByTicketIDFunc func(ctx context.Context, ticketID string) ([]*ticket.ActivityLog, error)
	appended           []*ticket.ActivityLog
}

func (m *mockActivityLogRepository) Append(ctx context.Context, l *ticket.ActivityLog) error {
	m.appended = append(m.appended, l)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, l)
	}
	return nil
}

func (m *mockActivityLogRepository) ListByTicketID(ctx context.Context, ticketID string) ([]*ticket.ActivityLog, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockUserRepository struct {
	users map[string]*user.User
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[string]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*user.User, error) {
	result := make(map[string]*user.User)
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role authorization.UserRole) ([]*user.User, error) {
	var result []*user.User
	for _, u := range m.users {
		if u.Role() == role {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockUserRepository) ListIDsByRole(ctx context.Context, role authorization.UserRole) ([]string, error) {
	users, _ := m.ListByRole(ctx, role)
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID())
	}
	return ids, nil
}

type sentNotification struct {
	userID  string
	message string
}

type mockNotificationSink struct {
	NotifyErr   error
	managerIDs  []string
	notified    []sentNotification
	dispatched  []*notification.Notification
	dispatchCnt int
}

func (m *mockNotificationSink) Notify(ctx context.Context, userID, message string) (*notification.Notification, error) {
	if m.NotifyErr != nil {
		return nil, m.NotifyErr
	}
	m.notified = append(m.notified, sentNotification{userID: userID, message: message})
	return notification.NewNotification(userID, message)
}

func (m *mockNotificationSink) NotifyManagers(ctx context.Context, message string) ([]*notification.Notification, error) {
	if m.NotifyErr != nil {
		return nil, m.NotifyErr
	}
	var items []*notification.Notification
	for _, id := range m.managerIDs {
		m.notified = append(m.notified, sentNotification{userID: id, message: message})
		item, err := notification.NewNotification(id, message)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (m *mockNotificationSink) Dispatch(ctx context.Context, items []*notification.Notification) {
	m.dispatchCnt++
	m.dispatched = append(m.dispatched, items...)
}

// passthroughTx runs fn directly. rolledBack records whether fn failed.
type passthroughTx struct {
	calls      int
	rolledBack bool
}

func (p *passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	err := fn(ctx)
	p.rolledBack = err != nil
	return err
}

type recordingMetrics struct {
	created    []string
	assigned   int
	changes    [][2]string
	notes      int
	rejections [][2]string
}

func (m *recordingMetrics) TicketCreated(priority string) { m.created = append(m.created, priority) }
func (m *recordingMetrics) TicketAssigned()               { m.assigned++ }
func (m *recordingMetrics) StatusChanged(from, to string) {
	m.changes = append(m.changes, [2]string{from, to})
}
func (m *recordingMetrics) NoteAdded() { m.notes++ }
func (m *recordingMetrics) Rejected(operation, reason string) {
	m.rejections = append(m.rejections, [2]string{operation, reason})
}

func newUser(t *testing.T, id, name, email string, role authorization.UserRole) *user.User {
	t.Helper()
	n, err := uservo.NewName(name)
	require.NoError(t, err)
	e, err := uservo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.ReconstructUser(id, n, e, "hash", role, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func defaultUsers(t *testing.T) *mockUserRepository {
	return newMockUserRepository(
		newUser(t, tenantID, "Tina Tenant", "tina@example.com", authorization.RoleTenant),
		newUser(t, managerID, "Mary Manager", "mary@example.com", authorization.RoleManager),
		newUser(t, technicianID, "Tom Tech", "tom@example.com", authorization.RoleTechnician),
		newUser(t, otherTechID, "Tara Tech", "tara@example.com", authorization.RoleTechnician),
	)
}

func strPtr(s string) *string { return &s }

func ticketIn(t *testing.T, status vo.TicketStatus, assignee *string) *ticket.Ticket {
	t.Helper()
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tk, err := ticket.ReconstructTicket(
		ticketID,
		"Leaking Faucet",
		"Kitchen faucet drips all night",
		vo.PriorityMedium,
		status,
		tenantID,
		assignee,
		nil,
		created,
		created,
	)
	require.NoError(t, err)
	return tk
}

func repoReturning(tk *ticket.Ticket) *mockTicketRepository {
	return &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*ticket.Ticket, error) {
			if id != tk.ID() {
				return nil, ticket.ErrTicketNotFound
			}
			return tk, nil
		},
	}
}

func newTestProjector() *dto.Projector {
	return dto.NewProjector(nil)
}
