package support

import (
	"parley/internal/application/support/usecases"
	"parley/internal/domain/support"
	"parley/internal/shared/displaytime"
	"parley/internal/shared/utils"
)

type MessageResponse struct {
	ID         uint   `json:"id"`
	SenderRole string `json:"sender_role"`
	SenderID   uint   `json:"sender_id"`
	SenderName string `json:"sender_name,omitempty"`
	Text       string `json:"text"`
	CreatedAt  string `json:"created_at"`
}

func toMessageResponse(m *support.Message, senderNames map[uint]string) MessageResponse {
	resp := MessageResponse{
		ID:         m.ID(),
		SenderRole: m.SenderRole().String(),
		SenderID:   m.SenderID(),
		Text:       m.Text(),
		CreatedAt:  displaytime.Format(m.CreatedAt()),
	}
	if senderNames != nil && m.SenderRole().IsUser() {
		resp.SenderName = senderNames[m.SenderID()]
	}
	return resp
}

func toMessageResponses(messages []*support.Message, senderNames map[uint]string) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m, senderNames))
	}
	return out
}

// TicketResponse is the user-facing ticket view. TicketID is null when the
// user has never posted.
type TicketResponse struct {
	TicketID         *uint             `json:"ticket_id"`
	Status           string            `json:"status,omitempty"`
	CreatedAt        string            `json:"created_at,omitempty"`
	UpdatedAt        string            `json:"updated_at,omitempty"`
	Messages         []MessageResponse `json:"messages"`
	UnreadAdminCount int               `json:"unread_admin_count"`
}

func toTicketResponse(result *usecases.GetTicketResult) TicketResponse {
	resp := TicketResponse{
		Messages:         []MessageResponse{},
		UnreadAdminCount: result.UnreadAdminCount,
	}
	if result.Ticket == nil {
		return resp
	}

	id := result.Ticket.ID()
	resp.TicketID = &id
	resp.Status = result.Ticket.Status().String()
	resp.CreatedAt = displaytime.Format(result.Ticket.CreatedAt())
	resp.UpdatedAt = displaytime.Format(result.Ticket.UpdatedAt())
	resp.Messages = toMessageResponses(result.Messages, nil)
	return resp
}

type PostMessageRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

func (r *PostMessageRequest) Validate() error {
	return utils.ValidateStruct(r)
}

type PostMessageResponse struct {
	TicketID      uint   `json:"ticket_id"`
	MessageID     uint   `json:"message_id"`
	TicketCreated bool   `json:"ticket_created"`
	CreatedAt     string `json:"created_at"`
}

type MarkReadResponse struct {
	TicketID          uint `json:"ticket_id"`
	LastSeenMessageID uint `json:"last_seen_message_id"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

type NonceResponse struct {
	Nonce string `json:"nonce"`
}

type TicketSummaryResponse struct {
	TicketID           uint   `json:"ticket_id"`
	UserID             uint   `json:"user_id"`
	UserName           string `json:"user_name,omitempty"`
	TeamName           string `json:"team_name,omitempty"`
	Status             string `json:"status"`
	UnreadUserMessages int    `json:"unread_user_messages"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func toTicketSummaryResponses(summaries []*usecases.TicketSummary) []TicketSummaryResponse {
	out := make([]TicketSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp := TicketSummaryResponse{
			TicketID:           s.Ticket.ID(),
			UserID:             s.Ticket.UserID(),
			Status:             s.Ticket.Status().String(),
			UnreadUserMessages: s.UnreadUserMessages,
			CreatedAt:          displaytime.Format(s.Ticket.CreatedAt()),
			UpdatedAt:          displaytime.Format(s.Ticket.UpdatedAt()),
		}
		if s.User != nil {
			resp.UserName = s.User.Name
		}
		if s.Team != nil {
			resp.TeamName = s.Team.Name
		}
		out = append(out, resp)
	}
	return out
}

type AdminTicketResponse struct {
	TicketID  uint              `json:"ticket_id"`
	UserID    uint              `json:"user_id"`
	UserName  string            `json:"user_name,omitempty"`
	TeamName  string            `json:"team_name,omitempty"`
	Status    string            `json:"status"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
	Messages  []MessageResponse `json:"messages"`
}

func toAdminTicketResponse(result *usecases.GetAdminTicketResult) AdminTicketResponse {
	resp := AdminTicketResponse{
		TicketID:  result.Ticket.ID(),
		UserID:    result.Ticket.UserID(),
		Status:    result.Ticket.Status().String(),
		CreatedAt: displaytime.Format(result.Ticket.CreatedAt()),
		UpdatedAt: displaytime.Format(result.Ticket.UpdatedAt()),
		Messages:  toMessageResponses(result.Messages, result.SenderNames),
	}
	if result.User != nil {
		resp.UserName = result.User.Name
	}
	if result.Team != nil {
		resp.TeamName = result.Team.Name
	}
	return resp
}

type AdminReplyRequest struct {
	TicketID uint   `json:"ticket_id" validate:"required"`
	Text     string `json:"text" validate:"required,max=5000"`
}

func (r *AdminReplyRequest) Validate() error {
	return utils.ValidateStruct(r)
}

type TicketIDRequest struct {
	TicketID uint `json:"ticket_id" validate:"required"`
}

func (r *TicketIDRequest) Validate() error {
	return utils.ValidateStruct(r)
}

type BroadcastRequest struct {
	Target      string `json:"target" validate:"required,oneof=all open_tickets specific_team"`
	TeamID      uint   `json:"team_id"`
	Text        string `json:"text" validate:"required,max=5000"`
	BroadcastID string `json:"broadcast_id"`
}

func (r *BroadcastRequest) Validate() error {
	return utils.ValidateStruct(r)
}

type BroadcastResponse struct {
	BroadcastID    string   `json:"broadcast_id"`
	TicketsCreated int      `json:"tickets_created"`
	MessagesSent   int      `json:"messages_sent"`
	Errors         []string `json:"errors,omitempty"`
}

// BroadcastTargetsResponse lists the valid targets for broadcast forms.
// Rendering the form itself is the host platform's concern.
type BroadcastTargetsResponse struct {
	Targets []string `json:"targets"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r *ChangeStatusRequest) Validate() error {
	return utils.ValidateStruct(r)
}

type ChangeStatusResponse struct {
	TicketID uint   `json:"ticket_id"`
	Status   string `json:"status"`
}

type TranslateRequest struct {
	Text   string `json:"text" validate:"required"`
	Target string `json:"target" validate:"omitempty,len=2"`
}

func (r *TranslateRequest) Validate() error {
	return utils.ValidateStruct(r)
}

type TranslateResponse struct {
	Translated string `json:"translated"`
	Source     string `json:"source"`
	Target     string `json:"target"`
	Changed    bool   `json:"changed"`
	Method     string `json:"method,omitempty"`
	Note       string `json:"note,omitempty"`
}
