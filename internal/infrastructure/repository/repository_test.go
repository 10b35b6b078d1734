package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixdesk/fixdesk/internal/domain/notification"
	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	tvo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	uvo "github.com/fixdesk/fixdesk/internal/domain/user/value_objects"
	"github.com/fixdesk/fixdesk/internal/infrastructure/persistence/testdb"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/db"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

func newTestUser(t *testing.T, name, email string, role authorization.UserRole) *user.User {
	t.Helper()
	n, err := uvo.NewName(name)
	require.NoError(t, err)
	e, err := uvo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(n, e, "$2a$10$hash", role)
	require.NoError(t, err)
	return u
}

func newTestTicket(t *testing.T, tenantID string, priority tvo.Priority, images ...string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket("Leaking faucet", "Kitchen faucet drips all night", priority, tenantID, images)
	require.NoError(t, err)
	return tk
}

// =====================================================================
// UserRepository
// =====================================================================

func TestUserRepository_CreateAndGet(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewUserRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	u := newTestUser(t, "Tina Tenant", "Tina@Example.com", authorization.RoleTenant)
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "tina@example.com", byID.Email())
	assert.Equal(t, authorization.RoleTenant, byID.Role())
	assert.Equal(t, u.CreatedAt().UnixMilli(), byID.CreatedAt().UnixMilli())

	byEmail, err := repo.GetByEmail(ctx, "tina@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), byEmail.ID())

	exists, err := repo.ExistsByEmail(ctx, "tina@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewUserRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser(t, "First User", "dup@example.com", authorization.RoleTenant)))
	err := repo.Create(ctx, newTestUser(t, "Second User", "dup@example.com", authorization.RoleManager))
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestUserRepository_ListByRole(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewUserRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	bob := newTestUser(t, "Bob Builder", "bob@example.com", authorization.RoleTechnician)
	amy := newTestUser(t, "Amy Fixer", "amy@example.com", authorization.RoleTechnician)
	mgr := newTestUser(t, "Mona Manager", "mona@example.com", authorization.RoleManager)
	for _, u := range []*user.User{bob, amy, mgr} {
		require.NoError(t, repo.Create(ctx, u))
	}

	techs, err := repo.ListByRole(ctx, authorization.RoleTechnician)
	require.NoError(t, err)
	require.Len(t, techs, 2)
	assert.Equal(t, "Amy Fixer", techs[0].Name())
	assert.Equal(t, "Bob Builder", techs[1].Name())

	ids, err := repo.ListIDsByRole(ctx, authorization.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, []string{mgr.ID()}, ids)

	found, err := repo.GetByIDs(ctx, []string{bob.ID(), "missing"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, bob.ID())

	require.NoError(t, repo.DeleteAll(ctx))
	ids, err = repo.ListIDsByRole(ctx, authorization.RoleManager)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

// =====================================================================
// TicketRepository
// =====================================================================

func TestTicketRepository_CreateWithImages(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	tk := newTestTicket(t, "tenant-1", tvo.PriorityHigh, "/uploads/a.png", "/uploads/b.png")
	require.NoError(t, repo.Create(ctx, tk))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, tvo.StatusOpen, found.Status())
	assert.Equal(t, tvo.PriorityHigh, found.Priority())
	assert.Nil(t, found.AssignedToID())
	require.Len(t, found.Images(), 2)
	assert.Equal(t, "/uploads/a.png", found.Images()[0].ImageURL())
	assert.Equal(t, "/uploads/b.png", found.Images()[1].ImageURL())

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
}

func TestTicketRepository_ListAndCount(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	first := newTestTicket(t, "tenant-1", tvo.PriorityLow)
	second := newTestTicket(t, "tenant-2", tvo.PriorityHigh)
	third := newTestTicket(t, "tenant-1", tvo.PriorityHigh)
	for _, tk := range []*ticket.Ticket{first, second, third} {
		require.NoError(t, repo.Create(ctx, tk))
	}

	require.NoError(t, third.AssignTo("tech-1"))
	swapped, err := repo.CompareAndSwap(ctx, third, tvo.StatusOpen, nil)
	require.NoError(t, err)
	require.True(t, swapped)

	tenantID := "tenant-1"
	techID := "tech-1"
	high := tvo.PriorityHigh

	tests := []struct {
		name    string
		filter  ticket.TicketFilter
		wantIDs []string
	}{
		{"all newest first", ticket.TicketFilter{}, []string{third.ID(), second.ID(), first.ID()}},
		{"by tenant", ticket.TicketFilter{TenantID: &tenantID}, []string{third.ID(), first.ID()}},
		{"by assignee", ticket.TicketFilter{AssignedToID: &techID}, []string{third.ID()}},
		{"by priority", ticket.TicketFilter{Priority: &high}, []string{third.ID(), second.ID()}},
		{"pending statuses", ticket.TicketFilter{Statuses: tvo.PendingStatuses()}, []string{third.ID(), second.ID(), first.ID()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(tickets))
			for _, tk := range tickets {
				ids = append(ids, tk.ID())
			}
			assert.Equal(t, tt.wantIDs, ids)

			count, err := repo.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.wantIDs)), count)
		})
	}
}

func TestTicketRepository_CompareAndSwap(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	tk := newTestTicket(t, "tenant-1", tvo.PriorityMedium)
	require.NoError(t, repo.Create(ctx, tk))

	winner, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	loser, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)

	require.NoError(t, winner.AssignTo("tech-a"))
	require.NoError(t, loser.AssignTo("tech-b"))

	ok, err := repo.CompareAndSwap(ctx, winner, tvo.StatusOpen, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CompareAndSwap(ctx, loser, tvo.StatusOpen, nil)
	require.NoError(t, err)
	assert.False(t, ok, "stale writer must not overwrite the assignee")

	stored, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, tvo.StatusAssigned, stored.Status())
	require.NotNil(t, stored.AssignedToID())
	assert.Equal(t, "tech-a", *stored.AssignedToID())

	t.Run("status update requires the expected assignee", func(t *testing.T) {
		require.NoError(t, stored.ChangeStatus(tvo.StatusInProgress, "tech-a"))

		other := "tech-b"
		ok, err := repo.CompareAndSwap(ctx, stored, tvo.StatusAssigned, &other)
		require.NoError(t, err)
		assert.False(t, ok)

		owner := "tech-a"
		ok, err = repo.CompareAndSwap(ctx, stored, tvo.StatusAssigned, &owner)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestTicketRepository_DeleteAll(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewTicketRepository(gdb)
	logRepo := NewActivityLogRepository(gdb)
	ctx := context.Background()

	tk := newTestTicket(t, "tenant-1", tvo.PriorityLow, "/uploads/x.png")
	require.NoError(t, repo.Create(ctx, tk))
	entry, err := ticket.NewActivityLog(tk.ID(), "tenant-1", ticket.ActionTicketCreated)
	require.NoError(t, err)
	require.NoError(t, logRepo.Append(ctx, entry))

	require.NoError(t, repo.DeleteAll(ctx))

	count, err := repo.Count(ctx, ticket.TicketFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)

	logs, err := logRepo.ListByTicketID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Empty(t, logs)
}

// =====================================================================
// ActivityLogRepository
// =====================================================================

func TestActivityLogRepository_NewestFirst(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewActivityLogRepository(gdb)
	ctx := context.Background()

	actions := []string{ticket.ActionTicketCreated, "Ticket assigned to Bob", "Status changed from ASSIGNED to IN_PROGRESS"}
	for _, action := range actions {
		entry, err := ticket.NewActivityLog("ticket-1", "user-1", action)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, entry))
	}

	logs, err := repo.ListByTicketID(ctx, "ticket-1")
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, actions[2], logs[0].Action())
	assert.Equal(t, actions[0], logs[2].Action())
}

// =====================================================================
// NotificationRepository
// =====================================================================

func TestNotificationRepository(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewNotificationRepository(gdb)
	ctx := context.Background()

	var batch []*notification.Notification
	for i := 0; i < 12; i++ {
		n, err := notification.NewNotification("user-1", "New ticket created: Leak")
		require.NoError(t, err)
		batch = append(batch, n)
	}
	require.NoError(t, repo.BulkCreate(ctx, batch))

	other, err := notification.NewNotification("user-2", "hello")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	recent, err := repo.ListRecentByUserID(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, batch[11].ID(), recent[0].ID())

	unread, err := repo.CountUnread(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), unread)

	changed, err := repo.MarkAllRead(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), changed)

	changed, err = repo.MarkAllRead(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, changed)

	unread, err = repo.CountUnread(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread, "other users are untouched")

	require.NoError(t, repo.DeleteAll(ctx))
	recent, err = repo.ListRecentByUserID(ctx, "user-2", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRepositories_JoinTransaction(t *testing.T) {
	gdb := testdb.Open(t)
	tm := db.NewTransactionManager(gdb)
	tickets := NewTicketRepository(gdb)
	notifications := NewNotificationRepository(gdb)
	ctx := context.Background()

	tk := newTestTicket(t, "tenant-1", tvo.PriorityLow)
	err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := tickets.Create(txCtx, tk); err != nil {
			return err
		}
		n, err := notification.NewNotification("manager-1", "New ticket created: Leaking faucet")
		if err != nil {
			return err
		}
		if err := notifications.Create(txCtx, n); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	count, err := tickets.Count(ctx, ticket.TicketFilter{})
	require.NoError(t, err)
	assert.Zero(t, count, "rolled back with the notification")

	unread, err := notifications.CountUnread(ctx, "manager-1")
	require.NoError(t, err)
	assert.Zero(t, unread)
}
