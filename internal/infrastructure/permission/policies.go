package permission

import (
	"fmt"

	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

// Resources
const (
	ResourceTicket       = "ticket"
	ResourceNotification = "notification"
	ResourceUser         = "user"
	ResourceUpload       = "upload"
	ResourceMetrics      = "metrics"
)

// Actions
const (
	ActionCreate       = "create"
	ActionRead         = "read"
	ActionUpdate       = "update"
	ActionAssign       = "assign"
	ActionUpdateStatus = "update_status"
	ActionNote         = "note"
	ActionList         = "list"
)

// Policy grants Role the Action on Resource
type Policy struct {
	Role     authorization.UserRole
	Resource string
	Action   string
}

// DefaultPolicies is the role matrix of the maintenance workflow. Ticket
// ownership is checked separately per ticket.
func DefaultPolicies() []Policy {
	policies := []Policy{
		{authorization.RoleTenant, ResourceTicket, ActionCreate},
		{authorization.RoleManager, ResourceTicket, ActionAssign},
		{authorization.RoleTechnician, ResourceTicket, ActionUpdateStatus},
		{authorization.RoleManager, ResourceUser, ActionList},
	}

	for _, role := range authorization.AllRoles {
		policies = append(policies,
			Policy{role, ResourceTicket, ActionRead},
			Policy{role, ResourceTicket, ActionNote},
			Policy{role, ResourceNotification, ActionRead},
			Policy{role, ResourceNotification, ActionUpdate},
			Policy{role, ResourceUpload, ActionCreate},
			Policy{role, ResourceMetrics, ActionRead},
		)
	}

	return policies
}

// SeedDefaultPolicies inserts any default policy missing from the store.
// Existing rows, including operator additions, are left alone.
func SeedDefaultPolicies(e *Enforcer, log logger.Interface) error {
	for _, p := range DefaultPolicies() {
		if err := e.AddPolicy(p.Role, p.Resource, p.Action); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", p.Role,
				"resource", p.Resource,
				"action", p.Action)
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p.Role, p.Resource, p.Action, err)
		}
	}

	log.Infow("permission policies initialized", "count", len(DefaultPolicies()))
	return nil
}
