package ticket

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/application/ticket/dto"
	"github.com/fixdesk/fixdesk/internal/application/ticket/usecases"
)

type mockCreateTicketUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error)
}

func (m *mockCreateTicketUC) Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &dto.TicketDTO{}, nil
}

type mockAssignTicketUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error)
}

func (m *mockAssignTicketUC) Execute(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &dto.TicketDTO{}, nil
}

type mockUpdateStatusUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.UpdateStatusCommand) (*dto.TicketDTO, error)
}

func (m *mockUpdateStatusUC) Execute(ctx context.Context, cmd usecases.UpdateStatusCommand) (*dto.TicketDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &dto.TicketDTO{}, nil
}

type mockAddNoteUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.AddNoteCommand) (*dto.ActivityLogDTO, error)
}

func (m *mockAddNoteUC) Execute(ctx context.Context, cmd usecases.AddNoteCommand) (*dto.ActivityLogDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &dto.ActivityLogDTO{}, nil
}

type mockGetTicketUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error)
}

func (m *mockGetTicketUC) Execute(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &dto.TicketDTO{}, nil
}

type mockListTicketsUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.ListTicketsQuery) ([]*dto.TicketDTO, error)
}

func (m *mockListTicketsUC) Execute(ctx context.Context, query usecases.ListTicketsQuery) ([]*dto.TicketDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return []*dto.TicketDTO{}, nil
}

type mockGetMetricsUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.GetMetricsQuery) (*dto.MetricsDTO, error)
}

func (m *mockGetMetricsUC) Execute(ctx context.Context, query usecases.GetMetricsQuery) (*dto.MetricsDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &dto.MetricsDTO{}, nil
}

type handlerMocks struct {
	create  *mockCreateTicketUC
	assign  *mockAssignTicketUC
	status  *mockUpdateStatusUC
	note    *mockAddNoteUC
	get     *mockGetTicketUC
	list    *mockListTicketsUC
	metrics *mockGetMetricsUC
}

func newHandlerMocks() *handlerMocks {
	return &handlerMocks{
		create:  &mockCreateTicketUC{},
		assign:  &mockAssignTicketUC{},
		status:  &mockUpdateStatusUC{},
		note:    &mockAddNoteUC{},
		get:     &mockGetTicketUC{},
		list:    &mockListTicketsUC{},
		metrics: &mockGetMetricsUC{},
	}
}
