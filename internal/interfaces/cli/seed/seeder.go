package seed

import (
	"context"
	"fmt"

	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	uservo "github.com/fixdesk/fixdesk/internal/domain/user/value_objects"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

type userStore interface {
	Create(ctx context.Context, u *user.User) error
	DeleteAll(ctx context.Context) error
}

type ticketStore interface {
	Create(ctx context.Context, t *ticket.Ticket) error
	DeleteAll(ctx context.Context) error
}

type activityLogStore interface {
	Append(ctx context.Context, log *ticket.ActivityLog) error
}

type notificationStore interface {
	DeleteAll(ctx context.Context) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

type transactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result counts what a seed run wrote
type Result struct {
	Users   int
	Tickets int
	Logs    int
}

// Seeder wipes the ticketing tables and optionally loads demo fixtures
type Seeder struct {
	users         userStore
	tickets       ticketStore
	logs          activityLogStore
	notifications notificationStore
	hasher        passwordHasher
	tx            transactionRunner
	logger        logger.Interface
}

func NewSeeder(
	users userStore,
	tickets ticketStore,
	logs activityLogStore,
	notifications notificationStore,
	hasher passwordHasher,
	tx transactionRunner,
	log logger.Interface,
) *Seeder {
	return &Seeder{
		users:         users,
		tickets:       tickets,
		logs:          logs,
		notifications: notifications,
		hasher:        hasher,
		tx:            tx,
		logger:        log,
	}
}

// Reset deletes all notifications, tickets with their logs and images, then users.
func (s *Seeder) Reset(ctx context.Context) error {
	return s.tx.RunInTransaction(ctx, s.reset)
}

// Run resets the database and writes the fixtures in a single transaction.
func (s *Seeder) Run(ctx context.Context, fixtures *Fixtures) (*Result, error) {
	result := &Result{}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.reset(ctx); err != nil {
			return err
		}

		users, err := s.createUsers(ctx, fixtures)
		if err != nil {
			return err
		}
		result.Users = len(users)

		for _, tf := range fixtures.Tickets {
			logs, err := s.createTicket(ctx, tf, users)
			if err != nil {
				return fmt.Errorf("ticket %q: %w", tf.Title, err)
			}
			result.Tickets++
			result.Logs += logs
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("seed completed", "users", result.Users, "tickets", result.Tickets, "activity_logs", result.Logs)
	return result, nil
}

func (s *Seeder) reset(ctx context.Context) error {
	s.logger.Infow("clearing database")

	if err := s.notifications.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.tickets.DeleteAll(ctx); err != nil {
		return err
	}
	return s.users.DeleteAll(ctx)
}

func (s *Seeder) createUsers(ctx context.Context, fixtures *Fixtures) (map[string]*user.User, error) {
	hash, err := s.hasher.Hash(fixtures.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	users := make(map[string]*user.User, len(fixtures.Users))
	for _, uf := range fixtures.Users {
		name, err := uservo.NewName(uf.Name)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", uf.Key, err)
		}
		email, err := uservo.NewEmail(uf.Email)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", uf.Key, err)
		}
		role, ok := authorization.ParseUserRole(uf.Role)
		if !ok {
			return nil, fmt.Errorf("user %q: unknown role %q", uf.Key, uf.Role)
		}

		u, err := user.NewUser(name, email, hash, role)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", uf.Key, err)
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		users[uf.Key] = u
	}

	return users, nil
}

// createTicket opens the ticket and replays assignment and status changes up
// to the fixture's status, recording the same trail the HTTP flow would.
func (s *Seeder) createTicket(ctx context.Context, tf TicketFixture, users map[string]*user.User) (int, error) {
	priority, err := vo.NewPriority(tf.Priority)
	if err != nil {
		return 0, err
	}
	target := vo.StatusOpen
	if tf.Status != "" {
		if target, err = vo.NewTicketStatus(tf.Status); err != nil {
			return 0, err
		}
	}

	tenant := users[tf.Tenant]
	if tenant == nil || tenant.Role() != authorization.RoleTenant {
		return 0, fmt.Errorf("tenant %q is not a tenant account", tf.Tenant)
	}

	t, err := ticket.NewTicket(tf.Title, tf.Description, priority, tenant.ID(), tf.ImageURLs)
	if err != nil {
		return 0, err
	}

	trail := []pendingLog{{userID: tenant.ID(), action: ticket.ActionTicketCreated}}

	if target != vo.StatusOpen {
		tech := users[tf.Assignee]
		if tech == nil || !tech.IsTechnician() {
			return 0, fmt.Errorf("assignee %q is not a technician", tf.Assignee)
		}
		manager := users[tf.AssignedBy]
		if manager == nil || manager.Role() != authorization.RoleManager {
			return 0, fmt.Errorf("assigned_by %q is not a manager", tf.AssignedBy)
		}

		if err := t.AssignTo(tech.ID()); err != nil {
			return 0, err
		}
		trail = append(trail, pendingLog{userID: manager.ID(), action: ticket.AssignedAction(tech.Name())})

		for t.Status() != target {
			from := t.Status()
			next, ok := from.Next()
			if !ok {
				return 0, fmt.Errorf("cannot reach status %s", target)
			}
			if err := t.ChangeStatus(next, tech.ID()); err != nil {
				return 0, err
			}
			trail = append(trail, pendingLog{userID: tech.ID(), action: ticket.StatusChangedAction(from, next)})
		}
	}

	if err := s.tickets.Create(ctx, t); err != nil {
		return 0, err
	}

	for _, entry := range trail {
		log, err := ticket.NewActivityLog(t.ID(), entry.userID, entry.action)
		if err != nil {
			return 0, err
		}
		if err := s.logs.Append(ctx, log); err != nil {
			return 0, err
		}
	}

	return len(trail), nil
}

type pendingLog struct {
	userID string
	action string
}
