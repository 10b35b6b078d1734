package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	apperrors "github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

func newAssignUseCase(repo *mockTicketRepository, logs *mockActivityLogRepository, users *mockUserRepository, sink *mockNotificationSink, tx *passthroughTx, metrics *recordingMetrics) *AssignTicketUseCase {
	return NewAssignTicketUseCase(repo, logs, users, tx, sink, newTestProjector(), metrics, logger.NewNopLogger())
}

func TestAssignTicketUseCase_Execute_Success(t *testing.T) {
	tk := ticketIn(t, vo.StatusOpen, nil)
	repo := repoReturning(tk)

	var casStatus vo.TicketStatus
	var casAssignee *string
	repo.CompareAndSwapFunc = func(ctx context.Context, got *ticket.Ticket, expectedStatus vo.TicketStatus, expectedAssignee *string) (bool, error) {
		casStatus = expectedStatus
		casAssignee = expectedAssignee
		return true, nil
	}

	logs := &mockActivityLogRepository{}
	sink := &mockNotificationSink{}
	tx := &passthroughTx{}
	metrics := &recordingMetrics{}

	uc := newAssignUseCase(repo, logs, defaultUsers(t), sink, tx, metrics)
	result, err := uc.Execute(context.Background(), AssignTicketCommand{
		TicketID:     ticketID,
		TechnicianID: technicianID,
		ManagerID:    managerID,
	})
	require.NoError(t, err)

	assert.Equal(t, "ASSIGNED", result.Status)
	require.NotNil(t, result.AssignedToID)
	assert.Equal(t, technicianID, *result.AssignedToID)
	require.NotNil(t, result.AssignedTo)
	assert.Equal(t, "Tom Tech", result.AssignedTo.Name)

	assert.Equal(t, vo.StatusOpen, casStatus)
	assert.Nil(t, casAssignee)

	require.Len(t, logs.appended, 1)
	assert.Equal(t, "Ticket assigned to Tom Tech", logs.appended[0].Action())
	assert.Equal(t, managerID, logs.appended[0].UserID())

	assert.Equal(t, []sentNotification{
		{userID: technicianID, message: "You have been assigned to Ticket #" + ticketID},
		{userID: tenantID, message: "A technician has been assigned to your ticket."},
	}, sink.notified)
	assert.Len(t, sink.dispatched, 2)
	assert.Equal(t, 1, metrics.assigned)
	assert.Equal(t, 1, tx.calls)
}

func TestAssignTicketUseCase_Execute_NonOpenStatuses(t *testing.T) {
	for _, status := range []vo.TicketStatus{vo.StatusAssigned, vo.StatusInProgress, vo.StatusDone} {
		t.Run(status.String(), func(t *testing.T) {
			tk := ticketIn(t, status, strPtr(otherTechID))
			repo := repoReturning(tk)
			repo.CompareAndSwapFunc = func(ctx context.Context, got *ticket.Ticket, s vo.TicketStatus, a *string) (bool, error) {
				t.Fatal("no write expected")
				return false, nil
			}
			logs := &mockActivityLogRepository{}
			sink := &mockNotificationSink{}
			metrics := &recordingMetrics{}

			uc := newAssignUseCase(repo, logs, defaultUsers(t), sink, &passthroughTx{}, metrics)
			_, err := uc.Execute(context.Background(), AssignTicketCommand{TicketID: ticketID, TechnicianID: technicianID, ManagerID: managerID})

			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidStateError(err))
			assert.Equal(t, "Cannot assign ticket in "+status.String()+" status. Must be OPEN.", apperrors.GetAppError(err).Message)
			assert.Empty(t, logs.appended)
			assert.Empty(t, sink.notified)
			assert.Equal(t, [][2]string{{"assign", "invalid_state"}}, metrics.rejections)
		})
	}
}

func TestAssignTicketUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name         string
		ticketID     string
		technicianID string
		wantType     apperrors.ErrorType
		wantMessage  string
	}{
		{
			name:         "ticket not found",
			ticketID:     "0190a1b2-0000-7000-8000-0000000000ff",
			technicianID: technicianID,
			wantType:     apperrors.ErrorTypeNotFound,
			wantMessage:  "Ticket not found",
		},
		{
			name:         "malformed technician id",
			ticketID:     ticketID,
			technicianID: "'; DROP TABLE users; --",
			wantType:     apperrors.ErrorTypeValidation,
			wantMessage:  "Invalid technician ID or user is not a technician.",
		},
		{
			name:         "unknown technician",
			ticketID:     ticketID,
			technicianID: "0190a1b2-0000-7000-8000-0000000000ee",
			wantType:     apperrors.ErrorTypeValidation,
			wantMessage:  "Invalid technician ID or user is not a technician.",
		},
		{
			name:         "user is not a technician",
			ticketID:     ticketID,
			technicianID: managerID,
			wantType:     apperrors.ErrorTypeValidation,
			wantMessage:  "Invalid technician ID or user is not a technician.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repoReturning(ticketIn(t, vo.StatusOpen, nil))
			logs := &mockActivityLogRepository{}
			sink := &mockNotificationSink{}

			uc := newAssignUseCase(repo, logs, defaultUsers(t), sink, &passthroughTx{}, &recordingMetrics{})
			_, err := uc.Execute(context.Background(), AssignTicketCommand{TicketID: tt.ticketID, TechnicianID: tt.technicianID, ManagerID: managerID})

			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
			assert.Equal(t, tt.wantMessage, appErr.Message)
			assert.Empty(t, logs.appended)
			assert.Empty(t, sink.dispatched)
		})
	}
}

func TestAssignTicketUseCase_Execute_LostRace(t *testing.T) {
	tests := []struct {
		name      string
		reread    *ticket.Ticket
		wantType  apperrors.ErrorType
		wantLabel string
	}{
		{
			name:      "another manager assigned first",
			reread:    ticketIn(t, vo.StatusAssigned, strPtr(otherTechID)),
			wantType:  apperrors.ErrorTypeInvalidState,
			wantLabel: "invalid_state",
		},
		{
			name:      "row changed but still open",
			reread:    ticketIn(t, vo.StatusOpen, nil),
			wantType:  apperrors.ErrorTypeConflict,
			wantLabel: "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reads := 0
			repo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id string) (*ticket.Ticket, error) {
					reads++
					if reads == 1 {
						return ticketIn(t, vo.StatusOpen, nil), nil
					}
					return tt.reread, nil
				},
				CompareAndSwapFunc: func(ctx context.Context, got *ticket.Ticket, s vo.TicketStatus, a *string) (bool, error) {
					return false, nil
				},
			}
			logs := &mockActivityLogRepository{}
			sink := &mockNotificationSink{}
			tx := &passthroughTx{}
			metrics := &recordingMetrics{}

			uc := newAssignUseCase(repo, logs, defaultUsers(t), sink, tx, metrics)
			_, err := uc.Execute(context.Background(), AssignTicketCommand{TicketID: ticketID, TechnicianID: technicianID, ManagerID: managerID})

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType))
			assert.Equal(t, 2, reads)
			assert.True(t, tx.rolledBack)
			assert.Empty(t, logs.appended)
			assert.Empty(t, sink.notified)
			assert.Equal(t, [][2]string{{"assign", tt.wantLabel}}, metrics.rejections)
			assert.Zero(t, metrics.assigned)
		})
	}
}

func TestAssignTicketUseCase_Execute_InfrastructureFailure(t *testing.T) {
	repo := repoReturning(ticketIn(t, vo.StatusOpen, nil))
	repo.CompareAndSwapFunc = func(ctx context.Context, got *ticket.Ticket, s vo.TicketStatus, a *string) (bool, error) {
		return false, errors.New("connection reset")
	}
	sink := &mockNotificationSink{}

	uc := newAssignUseCase(repo, &mockActivityLogRepository{}, defaultUsers(t), sink, &passthroughTx{}, &recordingMetrics{})
	_, err := uc.Execute(context.Background(), AssignTicketCommand{TicketID: ticketID, TechnicianID: technicianID, ManagerID: managerID})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	assert.NotContains(t, appErr.Message, "connection reset")
	assert.Zero(t, sink.dispatchCnt)
}
