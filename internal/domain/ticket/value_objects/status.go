package value_objects

import "fmt"

type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusAssigned   TicketStatus = "ASSIGNED"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusDone       TicketStatus = "DONE"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusAssigned:   true,
	StatusInProgress: true,
	StatusDone:       true,
}

// Lifecycle only moves forward, one step at a time. DONE is terminal.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen:       {StatusAssigned},
	StatusAssigned:   {StatusInProgress},
	StatusInProgress: {StatusDone},
	StatusDone:       {},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	for _, allowed := range ticketStatusTransitions[ts] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

// Next returns the only status reachable from ts, false for DONE
func (ts TicketStatus) Next() (TicketStatus, bool) {
	next := ticketStatusTransitions[ts]
	if len(next) == 0 {
		return "", false
	}
	return next[0], true
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsDone() bool {
	return ts == StatusDone
}

// RequiresAssignee reports whether a ticket in this status must carry an assignee
func (ts TicketStatus) RequiresAssignee() bool {
	return ts == StatusAssigned || ts == StatusInProgress || ts == StatusDone
}

// IsPending reports whether work on the ticket is still outstanding
func (ts TicketStatus) IsPending() bool {
	return ts == StatusOpen || ts == StatusAssigned || ts == StatusInProgress
}

// PendingStatuses lists the statuses counted as outstanding work
func PendingStatuses() []TicketStatus {
	return []TicketStatus{StatusOpen, StatusAssigned, StatusInProgress}
}

// AllStatuses lists every status in lifecycle order
func AllStatuses() []TicketStatus {
	return []TicketStatus{StatusOpen, StatusAssigned, StatusInProgress, StatusDone}
}

func NewTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}
