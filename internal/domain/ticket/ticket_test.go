package ticket

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
)

// =====================================================================
// Helpers
// =====================================================================

func newOpenTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Leaking Faucet", "Kitchen faucet drips all night", vo.PriorityMedium, "tenant-1", nil)
	require.NoError(t, err)
	return tk
}

func newTicketInStatus(t *testing.T, status vo.TicketStatus, assignee string) *Ticket {
	t.Helper()
	var assignedTo *string
	if status.RequiresAssignee() {
		assignedTo = &assignee
	}
	now := time.Now().UTC()
	tk, err := ReconstructTicket("ticket-1", "Leaking Faucet", "Kitchen faucet drips", vo.PriorityMedium, status, "tenant-1", assignedTo, nil, now, now)
	require.NoError(t, err)
	return tk
}

func assertAssigneeInvariant(t *testing.T, tk *Ticket) {
	t.Helper()
	assert.Equal(t, tk.Status().RequiresAssignee(), tk.AssignedToID() != nil,
		"status %s with assignee %v", tk.Status(), tk.AssignedToID())
}

// =====================================================================
// NewTicket
// =====================================================================

func TestNewTicket(t *testing.T) {
	tk, err := NewTicket("  Broken <b>window</b> ", "Glass cracked & \"sharp\"", vo.PriorityHigh, "tenant-1",
		[]string{"/uploads/a.png", "https://cdn.example.com/b.jpg"})
	require.NoError(t, err)

	assert.NotEmpty(t, tk.ID())
	assert.Equal(t, "Broken &lt;b&gt;window&lt;/b&gt;", tk.Title())
	assert.Equal(t, "Glass cracked &amp; &#34;sharp&#34;", tk.Description())
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Nil(t, tk.AssignedToID())
	assert.Equal(t, "tenant-1", tk.TenantID())
	require.Len(t, tk.Images(), 2)
	assert.Equal(t, tk.ID(), tk.Images()[0].TicketID())
	assert.Equal(t, "/uploads/a.png", tk.Images()[0].ImageURL())
	assertAssigneeInvariant(t, tk)
}

func TestNewTicket_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		priority    vo.Priority
		tenantID    string
		images      []string
	}{
		{"blank title", "   ", "description here", vo.PriorityLow, "tenant-1", nil},
		{"blank description", "A title", "\t\n", vo.PriorityLow, "tenant-1", nil},
		{"bad priority", "A title", "description", vo.Priority("CRITICAL"), "tenant-1", nil},
		{"no tenant", "A title", "description", vo.PriorityLow, "", nil},
		{"too many images", "A title", "description", vo.PriorityLow, "tenant-1", strings.Split("a,b,c,d,e,f", ",")},
		{"blank image url", "A title", "description", vo.PriorityLow, "tenant-1", []string{" "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.title, tt.description, tt.priority, tt.tenantID, tt.images)
			assert.Error(t, err)
			assert.Nil(t, tk)
		})
	}
}

func TestReconstructTicket_RejectsBrokenInvariant(t *testing.T) {
	now := time.Now()
	tech := "tech-1"

	_, err := ReconstructTicket("t1", "x", "y", vo.PriorityLow, vo.StatusOpen, "u1", &tech, nil, now, now)
	assert.Error(t, err)

	_, err = ReconstructTicket("t1", "x", "y", vo.PriorityLow, vo.StatusAssigned, "u1", nil, nil, now, now)
	assert.Error(t, err)
}

// =====================================================================
// AssignTo
// =====================================================================

func TestAssignTo(t *testing.T) {
	tk := newOpenTicket(t)

	require.NoError(t, tk.AssignTo("tech-1"))

	assert.Equal(t, vo.StatusAssigned, tk.Status())
	require.NotNil(t, tk.AssignedToID())
	assert.Equal(t, "tech-1", *tk.AssignedToID())
	assert.True(t, tk.IsAssignedTo("tech-1"))
	assertAssigneeInvariant(t, tk)
}

func TestAssignTo_NonOpenStatuses(t *testing.T) {
	for _, status := range []vo.TicketStatus{vo.StatusAssigned, vo.StatusInProgress, vo.StatusDone} {
		t.Run(status.String(), func(t *testing.T) {
			tk := newTicketInStatus(t, status, "tech-1")

			err := tk.AssignTo("tech-2")

			assert.ErrorIs(t, err, ErrNotOpen)
			assert.Equal(t, "Cannot assign ticket in "+status.String()+" status. Must be OPEN.", err.Error())
			assert.Equal(t, status, tk.Status())
			assert.Equal(t, "tech-1", *tk.AssignedToID())
		})
	}
}

func TestAssignTo_AlreadyAssignedWhileOpen(t *testing.T) {
	// A row with an assignee but OPEN status can only come from a corrupted store;
	// the aggregate still refuses to overwrite the assignee.
	tk := newOpenTicket(t)
	existing := "tech-1"
	tk.assignedToID = &existing

	err := tk.AssignTo("tech-2")

	assert.ErrorIs(t, err, ErrAlreadyAssigned)
	assert.Equal(t, "tech-1", *tk.AssignedToID())
}

func TestAssignTo_EmptyTechnician(t *testing.T) {
	tk := newOpenTicket(t)
	assert.Error(t, tk.AssignTo(""))
	assert.Equal(t, vo.StatusOpen, tk.Status())
}

// =====================================================================
// ChangeStatus
// =====================================================================

func TestChangeStatus_AllPairs(t *testing.T) {
	legal := map[[2]vo.TicketStatus]bool{
		{vo.StatusAssigned, vo.StatusInProgress}: true,
		{vo.StatusInProgress, vo.StatusDone}:     true,
	}

	for _, from := range vo.AllStatuses() {
		for _, to := range vo.AllStatuses() {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				tk := newTicketInStatus(t, from, "tech-1")

				err := tk.ChangeStatus(to, "tech-1")

				if legal[[2]vo.TicketStatus{from, to}] {
					require.NoError(t, err)
					assert.Equal(t, to, tk.Status())
				} else {
					var rv *RuleViolation
					require.True(t, errors.As(err, &rv), "expected rule violation, got %v", err)
					assert.NotErrorIs(t, err, ErrNotAssignee)
					assert.Equal(t, from, tk.Status())
				}
				assertAssigneeInvariant(t, tk)
			})
		}
	}
}

func TestChangeStatus_Messages(t *testing.T) {
	tests := []struct {
		name    string
		from    vo.TicketStatus
		to      vo.TicketStatus
		rule    error
		message string
	}{
		{"skip in progress", vo.StatusAssigned, vo.StatusDone, ErrInvalidTransition,
			"Invalid status transition. From ASSIGNED, you can only move to IN_PROGRESS."},
		{"repeat in progress", vo.StatusInProgress, vo.StatusInProgress, ErrInvalidTransition,
			"Invalid status transition. From IN_PROGRESS, you can only move to DONE."},
		{"done is terminal", vo.StatusDone, vo.StatusInProgress, ErrTicketClosed,
			"Ticket is already DONE and cannot be updated."},
		{"open has no assignee", vo.StatusOpen, vo.StatusInProgress, ErrNotAssigned,
			"Ticket is OPEN and has no assignee yet."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTicketInStatus(t, tt.from, "tech-1")
			err := tk.ChangeStatus(tt.to, "tech-1")
			assert.ErrorIs(t, err, tt.rule)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestChangeStatus_NotAssignee(t *testing.T) {
	tk := newTicketInStatus(t, vo.StatusAssigned, "tech-1")

	err := tk.ChangeStatus(vo.StatusInProgress, "tech-2")

	assert.ErrorIs(t, err, ErrNotAssignee)
	assert.Equal(t, "You are not assigned to this ticket", err.Error())
	assert.Equal(t, vo.StatusAssigned, tk.Status())
}

// =====================================================================
// Notes
// =====================================================================

func TestEnsureAcceptsNotes(t *testing.T) {
	for _, status := range vo.AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			tk := newTicketInStatus(t, status, "tech-1")
			err := tk.EnsureAcceptsNotes()
			if status.IsDone() {
				assert.ErrorIs(t, err, ErrTicketClosed)
				assert.Equal(t, "Cannot add notes to a completed ticket", err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

// =====================================================================
// Full lifecycle
// =====================================================================

func TestLifecycle_Scenario(t *testing.T) {
	tk := newOpenTicket(t)
	require.NoError(t, tk.AssignTo("tech-1"))
	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress, "tech-1"))
	require.NoError(t, tk.ChangeStatus(vo.StatusDone, "tech-1"))

	assert.Equal(t, vo.StatusDone, tk.Status())
	assert.ErrorIs(t, tk.EnsureAcceptsNotes(), ErrTicketClosed)
	assert.ErrorIs(t, tk.AssignTo("tech-2"), ErrNotOpen)
	assertAssigneeInvariant(t, tk)
}

func TestAssignedToID_ReturnsCopy(t *testing.T) {
	tk := newTicketInStatus(t, vo.StatusAssigned, "tech-1")
	id := tk.AssignedToID()
	*id = "someone-else"
	assert.Equal(t, "tech-1", *tk.AssignedToID())
}
