package support

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"parley/internal/application/support/usecases"
	"parley/internal/application/translation"
	"parley/internal/infrastructure/nonce"
	"parley/internal/interfaces/http/middleware"
	"parley/internal/shared/displaytime"
	"parley/internal/shared/utils"
)

// Translator resolves the text translation operation for the chat widget.
type Translator interface {
	Translate(ctx context.Context, cmd translation.Command) (*translation.Result, error)
}

// UserHandler serves the end-user side of the support desk.
type UserHandler struct {
	getTicket   usecases.GetTicketExecutor
	postMessage usecases.PostMessageExecutor
	markRead    usecases.MarkReadExecutor
	unreadCount usecases.UnreadCountExecutor
	translator  Translator
	nonces      nonce.Store
}

func NewUserHandler(
	getTicket usecases.GetTicketExecutor,
	postMessage usecases.PostMessageExecutor,
	markRead usecases.MarkReadExecutor,
	unreadCount usecases.UnreadCountExecutor,
	translator Translator,
	nonces nonce.Store,
) *UserHandler {
	return &UserHandler{
		getTicket:   getTicket,
		postMessage: postMessage,
		markRead:    markRead,
		unreadCount: unreadCount,
		translator:  translator,
		nonces:      nonces,
	}
}

// GetNonce handles GET /support/nonce. Issuing is idempotent: the caller
// always receives the currently valid nonce for its session.
func (h *UserHandler) GetNonce(c *gin.Context) {
	userID := middleware.UserID(c)

	value, err := h.nonces.Issue(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to issue nonce")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Nonce issued", NonceResponse{Nonce: value})
}

// GetTicket handles GET /support/ticket.
func (h *UserHandler) GetTicket(c *gin.Context) {
	userID := middleware.UserID(c)

	result, err := h.getTicket.Execute(c.Request.Context(), usecases.GetTicketCommand{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket retrieved", toTicketResponse(result))
}

// PostMessage handles POST /support/message.
func (h *UserHandler) PostMessage(c *gin.Context) {
	userID := middleware.UserID(c)

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.postMessage.Execute(c.Request.Context(), usecases.PostMessageCommand{
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	status := http.StatusOK
	if result.TicketCreated {
		status = http.StatusCreated
	}
	utils.SuccessResponse(c, status, "Message posted", PostMessageResponse{
		TicketID:      result.Ticket.ID(),
		MessageID:     result.Message.ID(),
		TicketCreated: result.TicketCreated,
		CreatedAt:     displaytime.Format(result.Message.CreatedAt()),
	})
}

// MarkRead handles POST /support/mark_read.
func (h *UserHandler) MarkRead(c *gin.Context) {
	userID := middleware.UserID(c)

	result, err := h.markRead.Execute(c.Request.Context(), usecases.MarkReadCommand{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket marked as read", MarkReadResponse{
		TicketID:          result.TicketID,
		LastSeenMessageID: result.LastSeenMessageID,
	})
}

// UnreadCount handles GET /support/unread_count.
func (h *UserHandler) UnreadCount(c *gin.Context) {
	userID := middleware.UserID(c)

	result, err := h.unreadCount.Execute(c.Request.Context(), usecases.UnreadCountCommand{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Unread count retrieved", UnreadCountResponse{
		UnreadCount: result.UnreadAdminCount,
	})
}

// Translate handles POST /support/translate.
func (h *UserHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.translator.Translate(c.Request.Context(), translation.Command{
		Text:   req.Text,
		Target: req.Target,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Translation completed", TranslateResponse{
		Translated: result.Translated,
		Source:     result.Source,
		Target:     result.Target,
		Changed:    result.Changed,
		Method:     result.Method,
		Note:       result.Note,
	})
}
