package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/application/notification/usecases"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

type NotificationHandler struct {
	listUseCase        usecases.ListNotificationsExecutor
	markAllReadUseCase usecases.MarkAllReadExecutor
	logger             logger.Interface
}

func NewNotificationHandler(
	listUC usecases.ListNotificationsExecutor,
	markAllReadUC usecases.MarkAllReadExecutor,
	logger logger.Interface,
) *NotificationHandler {
	return &NotificationHandler{
		listUseCase:        listUC,
		markAllReadUseCase: markAllReadUC,
		logger:             logger,
	}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListNotificationsQuery{UserID: session.UserID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// MarkAllRead handles PATCH /api/notifications
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	if _, err := h.markAllReadUseCase.Execute(c.Request.Context(), usecases.MarkAllReadCommand{UserID: session.UserID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, "Marked as read")
}
