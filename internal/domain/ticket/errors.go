package ticket

import "errors"

var (
	ErrTicketNotFound = errors.New("ticket not found")

	// Lifecycle rules, wrapped by RuleViolation
	ErrNotOpen           = errors.New("ticket is not open")
	ErrAlreadyAssigned   = errors.New("ticket is already assigned")
	ErrNotAssigned       = errors.New("ticket has no assignee")
	ErrNotAssignee       = errors.New("caller is not the assignee")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTicketClosed      = errors.New("ticket is done")
)

// RuleViolation is a rejected lifecycle operation. Message is safe to show to callers.
type RuleViolation struct {
	Rule    error
	Message string
}

func (e *RuleViolation) Error() string {
	return e.Message
}

func (e *RuleViolation) Unwrap() error {
	return e.Rule
}

func violation(rule error, message string) error {
	return &RuleViolation{Rule: rule, Message: message}
}
