package ticket

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/application/ticket/usecases"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC usecases.CreateTicketExecutor
	assignTicketUC usecases.AssignTicketExecutor
	updateStatusUC usecases.UpdateStatusExecutor
	addNoteUC      usecases.AddNoteExecutor
	getTicketUC    usecases.GetTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getMetricsUC   usecases.GetMetricsExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	assignTicketUC usecases.AssignTicketExecutor,
	updateStatusUC usecases.UpdateStatusExecutor,
	addNoteUC usecases.AddNoteExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getMetricsUC usecases.GetMetricsExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC: createTicketUC,
		assignTicketUC: assignTicketUC,
		updateStatusUC: updateStatusUC,
		addNoteUC:      addNoteUC,
		getTicketUC:    getTicketUC,
		listTicketsUC:  listTicketsUC,
		getMetricsUC:   getMetricsUC,
		logger:         logger,
	}
}

// CreateTicket handles POST /api/tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(session.UserID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// ListTickets handles GET /api/tickets?status=
func (h *TicketHandler) ListTickets(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		UserID:   session.UserID,
		UserRole: session.Role,
		Status:   c.Query("status"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// GetTicket handles GET /api/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TicketID: c.Param("id"),
		UserID:   session.UserID,
		UserRole: session.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// AssignTicket handles POST /api/tickets/:id/status (and the /assign alias)
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.assignTicketUC.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		TicketID:     c.Param("id"),
		TechnicianID: req.TechnicianID,
		ManagerID:    session.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// UpdateStatus handles PATCH /api/tickets/:id/status
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.updateStatusUC.Execute(c.Request.Context(), usecases.UpdateStatusCommand{
		TicketID:     c.Param("id"),
		TechnicianID: session.UserID,
		Status:       req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// AddNote handles POST /api/tickets/:id/notes
func (h *TicketHandler) AddNote(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.addNoteUC.Execute(c.Request.Context(), usecases.AddNoteCommand{
		TicketID: c.Param("id"),
		UserID:   session.UserID,
		UserRole: session.Role,
		Note:     req.Note,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// GetMetrics handles GET /api/metrics
func (h *TicketHandler) GetMetrics(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	result, err := h.getMetricsUC.Execute(c.Request.Context(), usecases.GetMetricsQuery{
		UserID:   session.UserID,
		UserRole: session.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
