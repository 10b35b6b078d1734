package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/application/user/usecases"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

type UserHandler struct {
	listByRoleUseCase usecases.ListUsersByRoleExecutor
	logger            logger.Interface
}

func NewUserHandler(listByRoleUC usecases.ListUsersByRoleExecutor, logger logger.Interface) *UserHandler {
	return &UserHandler{
		listByRoleUseCase: listByRoleUC,
		logger:            logger,
	}
}

// ListUsers handles GET /api/users?role=
func (h *UserHandler) ListUsers(c *gin.Context) {
	result, err := h.listByRoleUseCase.Execute(c.Request.Context(), usecases.ListUsersByRoleQuery{Role: c.Query("role")})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
