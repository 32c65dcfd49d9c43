package support

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parley/internal/application/support/usecases"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/interfaces/http/middleware"
	"parley/internal/shared/utils"
)

// AdminHandler serves the staff side of the support desk.
type AdminHandler struct {
	listTickets  usecases.ListTicketsExecutor
	getTicket    usecases.GetAdminTicketExecutor
	reply        usecases.AdminReplyExecutor
	closeTicket  usecases.CloseTicketExecutor
	deleteTicket usecases.DeleteTicketExecutor
	changeStatus usecases.ChangeStatusExecutor
	broadcast    usecases.BroadcastExecutor
}

func NewAdminHandler(
	listTickets usecases.ListTicketsExecutor,
	getTicket usecases.GetAdminTicketExecutor,
	reply usecases.AdminReplyExecutor,
	closeTicket usecases.CloseTicketExecutor,
	deleteTicket usecases.DeleteTicketExecutor,
	changeStatus usecases.ChangeStatusExecutor,
	broadcast usecases.BroadcastExecutor,
) *AdminHandler {
	return &AdminHandler{
		listTickets:  listTickets,
		getTicket:    getTicket,
		reply:        reply,
		closeTicket:  closeTicket,
		deleteTicket: deleteTicket,
		changeStatus: changeStatus,
		broadcast:    broadcast,
	}
}

// ListTickets handles GET /support/admin/tickets.
func (h *AdminHandler) ListTickets(c *gin.Context) {
	result, err := h.listTickets.Execute(c.Request.Context(), usecases.ListTicketsCommand{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tickets retrieved", gin.H{
		"tickets": toTicketSummaryResponses(result.Tickets),
	})
}

// GetTicket handles GET /support/admin/tickets/:id.
func (h *AdminHandler) GetTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicket.Execute(c.Request.Context(), usecases.GetAdminTicketCommand{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket retrieved", toAdminTicketResponse(result))
}

// Reply handles POST /support/admin/reply.
func (h *AdminHandler) Reply(c *gin.Context) {
	adminID := middleware.UserID(c)

	var req AdminReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.reply.Execute(c.Request.Context(), usecases.AdminReplyCommand{
		AdminID:  adminID,
		TicketID: req.TicketID,
		Text:     req.Text,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reply sent", toMessageResponse(result.Message, nil))
}

// Close handles POST /support/admin/close.
func (h *AdminHandler) Close(c *gin.Context) {
	var req TicketIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.closeTicket.Execute(c.Request.Context(), usecases.CloseTicketCommand{TicketID: req.TicketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket closed", ChangeStatusResponse{
		TicketID: result.Ticket.ID(),
		Status:   result.Ticket.Status().String(),
	})
}

// Delete handles POST /support/admin/delete.
func (h *AdminHandler) Delete(c *gin.Context) {
	var req TicketIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicket.Execute(c.Request.Context(), usecases.DeleteTicketCommand{TicketID: req.TicketID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket deleted", nil)
}

// ChangeStatus handles POST /support/admin/status/:id, the legacy status
// endpoint kept for older admin panels.
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.changeStatus.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID: ticketID,
		Status:   req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated", ChangeStatusResponse{
		TicketID: result.Ticket.ID(),
		Status:   result.Ticket.Status().String(),
	})
}

// BroadcastTargets handles GET /support/admin/broadcast.
func (h *AdminHandler) BroadcastTargets(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Broadcast targets retrieved", BroadcastTargetsResponse{
		Targets: []string{
			vo.TargetAll.String(),
			vo.TargetOpenTickets.String(),
			vo.TargetSpecificTeam.String(),
		},
	})
}

// Broadcast handles POST /support/admin/broadcast.
func (h *AdminHandler) Broadcast(c *gin.Context) {
	adminID := middleware.UserID(c)

	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.broadcast.Execute(c.Request.Context(), usecases.BroadcastCommand{
		AdminID:     adminID,
		Target:      req.Target,
		TeamID:      req.TeamID,
		Text:        req.Text,
		BroadcastID: req.BroadcastID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Broadcast completed", BroadcastResponse{
		BroadcastID:    result.BroadcastID,
		TicketsCreated: result.TicketsCreated,
		MessagesSent:   result.MessagesSent,
		Errors:         result.Errors,
	})
}
