package authorization

import (
	"time"

	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
)

// Session is the verified content of a session credential
type Session struct {
	UserID    string
	Role      UserRole
	SessionID string
	ExpiresAt time.Time
}

// RequireRole fails with a forbidden error unless the session role is one of allowed
func RequireRole(session *Session, allowed ...UserRole) error {
	if session == nil {
		return errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}
	for _, role := range allowed {
		if session.Role == role {
			return nil
		}
	}
	return errors.NewForbiddenError(constants.ErrMsgForbidden)
}

// CanAccessTicket decides whether a caller may see a ticket instance.
// Managers see every ticket, tenants their own, technicians the ones assigned to them.
// Unknown roles are denied.
func CanAccessTicket(tenantID string, assignedToID *string, userID string, role UserRole) bool {
	switch role {
	case RoleManager:
		return true
	case RoleTenant:
		return tenantID == userID
	case RoleTechnician:
		return assignedToID != nil && *assignedToID == userID
	default:
		return false
	}
}
