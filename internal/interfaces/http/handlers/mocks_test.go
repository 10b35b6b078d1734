package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	notificationdto "github.com/fixdesk/fixdesk/internal/application/notification/dto"
	notificationusecases "github.com/fixdesk/fixdesk/internal/application/notification/usecases"
	uploadusecases "github.com/fixdesk/fixdesk/internal/application/upload/usecases"
	userdto "github.com/fixdesk/fixdesk/internal/application/user/dto"
	userusecases "github.com/fixdesk/fixdesk/internal/application/user/usecases"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
)

type mockRegisterUC struct {
	ExecuteFunc func(ctx context.Context, cmd userusecases.RegisterCommand) (*userdto.UserDTO, error)
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd userusecases.RegisterCommand) (*userdto.UserDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &userdto.UserDTO{}, nil
}

type mockLoginUC struct {
	ExecuteFunc func(ctx context.Context, cmd userusecases.LoginCommand) (*userusecases.LoginResult, error)
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd userusecases.LoginCommand) (*userusecases.LoginResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &userusecases.LoginResult{}, nil
}

type mockLogoutUC struct {
	calls []userusecases.LogoutCommand
	err   error
}

func (m *mockLogoutUC) Execute(ctx context.Context, cmd userusecases.LogoutCommand) error {
	m.calls = append(m.calls, cmd)
	return m.err
}

type mockAuthenticator struct {
	session *authorization.Session
	err     error
}

func (m *mockAuthenticator) Authenticate(c *gin.Context) (*authorization.Session, error) {
	return m.session, m.err
}

type mockListUsersUC struct {
	ExecuteFunc func(ctx context.Context, query userusecases.ListUsersByRoleQuery) ([]*userdto.UserDTO, error)
}

func (m *mockListUsersUC) Execute(ctx context.Context, query userusecases.ListUsersByRoleQuery) ([]*userdto.UserDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return nil, nil
}

type mockListNotificationsUC struct {
	ExecuteFunc func(ctx context.Context, query notificationusecases.ListNotificationsQuery) (*notificationdto.NotificationListDTO, error)
}

func (m *mockListNotificationsUC) Execute(ctx context.Context, query notificationusecases.ListNotificationsQuery) (*notificationdto.NotificationListDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &notificationdto.NotificationListDTO{}, nil
}

type mockMarkAllReadUC struct {
	ExecuteFunc func(ctx context.Context, cmd notificationusecases.MarkAllReadCommand) (*notificationusecases.MarkAllReadResult, error)
}

func (m *mockMarkAllReadUC) Execute(ctx context.Context, cmd notificationusecases.MarkAllReadCommand) (*notificationusecases.MarkAllReadResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &notificationusecases.MarkAllReadResult{}, nil
}

type mockUploadUC struct {
	ExecuteFunc func(ctx context.Context, cmd uploadusecases.UploadImagesCommand) (*uploadusecases.UploadImagesResult, error)
}

func (m *mockUploadUC) Execute(ctx context.Context, cmd uploadusecases.UploadImagesCommand) (*uploadusecases.UploadImagesResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &uploadusecases.UploadImagesResult{}, nil
}
