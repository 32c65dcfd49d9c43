package support

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/application/support/usecases"
	"parley/internal/application/translation"
	domainsupport "parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/interfaces/http/handlers/testutil"
	apperrors "parley/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockGetTicketUC struct {
	result *usecases.GetTicketResult
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, _ usecases.GetTicketCommand) (*usecases.GetTicketResult, error) {
	return m.result, m.err
}

type mockPostMessageUC struct {
	result *usecases.PostMessageResult
	err    error
	cmd    usecases.PostMessageCommand
}

func (m *mockPostMessageUC) Execute(_ context.Context, cmd usecases.PostMessageCommand) (*usecases.PostMessageResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockMarkReadUC struct {
	result *usecases.MarkReadResult
	err    error
}

func (m *mockMarkReadUC) Execute(_ context.Context, _ usecases.MarkReadCommand) (*usecases.MarkReadResult, error) {
	return m.result, m.err
}

type mockUnreadCountUC struct {
	result *usecases.UnreadCountResult
	err    error
}

func (m *mockUnreadCountUC) Execute(_ context.Context, _ usecases.UnreadCountCommand) (*usecases.UnreadCountResult, error) {
	return m.result, m.err
}

type mockTranslator struct {
	result *translation.Result
	err    error
	called bool
}

func (m *mockTranslator) Translate(_ context.Context, _ translation.Command) (*translation.Result, error) {
	m.called = true
	return m.result, m.err
}

type mockNonceStore struct {
	value string
	valid bool
	err   error
}

func (m *mockNonceStore) Issue(_ context.Context, _ uint) (string, error) {
	return m.value, m.err
}

func (m *mockNonceStore) Validate(_ context.Context, _ uint, _ string) (bool, error) {
	return m.valid, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type userDeps struct {
	getTicket   usecases.GetTicketExecutor
	postMessage usecases.PostMessageExecutor
	markRead    usecases.MarkReadExecutor
	unreadCount usecases.UnreadCountExecutor
	translator  Translator
	nonces      *mockNonceStore
}

func newTestUserHandler(deps userDeps) *UserHandler {
	if deps.nonces == nil {
		deps.nonces = &mockNonceStore{value: "abc123"}
	}
	return NewUserHandler(
		deps.getTicket,
		deps.postMessage,
		deps.markRead,
		deps.unreadCount,
		deps.translator,
		deps.nonces,
	)
}

func reconstructTicket(t *testing.T, id, userID uint, status vo.TicketStatus) *domainsupport.Ticket {
	t.Helper()
	ticket, err := domainsupport.ReconstructTicket(id, userID, status, time.Now().UTC(), time.Now().UTC())
	require.NoError(t, err)
	return ticket
}

func reconstructMessage(t *testing.T, id, ticketID uint, role vo.SenderRole, senderID uint, text string) *domainsupport.Message {
	t.Helper()
	msg, err := domainsupport.ReconstructMessage(id, ticketID, role, senderID, text, "", time.Now().UTC())
	require.NoError(t, err)
	return msg
}

// =====================================================================
// GetNonce
// =====================================================================

func TestUserHandler_GetNonce_Success(t *testing.T) {
	handler := newTestUserHandler(userDeps{nonces: &mockNonceStore{value: "deadbeef"}})

	c, w := testutil.NewTestContext(http.MethodGet, "/support/nonce", nil)
	testutil.SetAuthContext(c, 7, "user")

	handler.GetNonce(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deadbeef")
}

func TestUserHandler_GetNonce_StoreError(t *testing.T) {
	handler := newTestUserHandler(userDeps{nonces: &mockNonceStore{err: errors.New("redis down")}})

	c, w := testutil.NewTestContext(http.MethodGet, "/support/nonce", nil)
	testutil.SetAuthContext(c, 7, "user")

	handler.GetNonce(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// =====================================================================
// GetTicket
// =====================================================================

func TestUserHandler_GetTicket_NoTicket(t *testing.T) {
	mockUC := &mockGetTicketUC{result: &usecases.GetTicketResult{}}
	handler := newTestUserHandler(userDeps{getTicket: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/support/ticket", nil)
	testutil.SetAuthContext(c, 7, "user")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), `"ticket_id":null`)
}

func TestUserHandler_GetTicket_WithMessages(t *testing.T) {
	ticket := reconstructTicket(t, 3, 7, vo.StatusOpen)
	mockUC := &mockGetTicketUC{result: &usecases.GetTicketResult{
		Ticket: ticket,
		Messages: []*domainsupport.Message{
			reconstructMessage(t, 1, 3, vo.RoleUser, 7, "hello"),
			reconstructMessage(t, 2, 3, vo.RoleAdmin, 1, "hi there"),
		},
		UnreadAdminCount: 1,
	}}
	handler := newTestUserHandler(userDeps{getTicket: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/support/ticket", nil)
	testutil.SetAuthContext(c, 7, "user")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, string(resp.Data), `"ticket_id":3`)
	assert.Contains(t, string(resp.Data), `"unread_admin_count":1`)
	assert.Contains(t, string(resp.Data), "hi there")
}

// =====================================================================
// PostMessage
// =====================================================================

func TestUserHandler_PostMessage_CreatesTicket(t *testing.T) {
	ticket := reconstructTicket(t, 5, 7, vo.StatusOpen)
	mockUC := &mockPostMessageUC{result: &usecases.PostMessageResult{
		Ticket:        ticket,
		Message:       reconstructMessage(t, 9, 5, vo.RoleUser, 7, "need help"),
		TicketCreated: true,
	}}
	handler := newTestUserHandler(userDeps{postMessage: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/support/message", PostMessageRequest{Text: "need help"})
	testutil.SetAuthContext(c, 7, "user")

	handler.PostMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(7), mockUC.cmd.UserID)
	assert.Equal(t, "need help", mockUC.cmd.Text)
}

func TestUserHandler_PostMessage_ExistingTicket(t *testing.T) {
	ticket := reconstructTicket(t, 5, 7, vo.StatusOpen)
	mockUC := &mockPostMessageUC{result: &usecases.PostMessageResult{
		Ticket:  ticket,
		Message: reconstructMessage(t, 10, 5, vo.RoleUser, 7, "more details"),
	}}
	handler := newTestUserHandler(userDeps{postMessage: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/support/message", PostMessageRequest{Text: "more details"})
	testutil.SetAuthContext(c, 7, "user")

	handler.PostMessage(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_PostMessage_EmptyText(t *testing.T) {
	handler := newTestUserHandler(userDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/support/message", map[string]string{"text": ""})
	testutil.SetAuthContext(c, 7, "user")

	handler.PostMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestUserHandler_PostMessage_UseCaseError(t *testing.T) {
	mockUC := &mockPostMessageUC{err: apperrors.NewValidationError("message text is required")}
	handler := newTestUserHandler(userDeps{postMessage: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/support/message", PostMessageRequest{Text: "<script></script>"})
	testutil.SetAuthContext(c, 7, "user")

	handler.PostMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// MarkRead / UnreadCount
// =====================================================================

func TestUserHandler_MarkRead_Success(t *testing.T) {
	mockUC := &mockMarkReadUC{result: &usecases.MarkReadResult{TicketID: 3, LastSeenMessageID: 12}}
	handler := newTestUserHandler(userDeps{markRead: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/support/mark_read", nil)
	testutil.SetAuthContext(c, 7, "user")

	handler.MarkRead(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, string(resp.Data), `"last_seen_message_id":12`)
}

func TestUserHandler_UnreadCount_Success(t *testing.T) {
	mockUC := &mockUnreadCountUC{result: &usecases.UnreadCountResult{UnreadAdminCount: 4}}
	handler := newTestUserHandler(userDeps{unreadCount: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/support/unread_count", nil)
	testutil.SetAuthContext(c, 7, "user")

	handler.UnreadCount(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, string(resp.Data), `"unread_count":4`)
}

// =====================================================================
// Translate
// =====================================================================

func TestUserHandler_Translate_Success(t *testing.T) {
	translator := &mockTranslator{result: &translation.Result{
		Translated: "thank you",
		Source:     "ms",
		Target:     "en",
		Changed:    true,
		Method:     translation.MethodExternal,
	}}
	handler := newTestUserHandler(userDeps{translator: translator})

	c, w := testutil.NewTestContext(http.MethodPost, "/support/translate", TranslateRequest{Text: "terima kasih"})
	testutil.SetAuthContext(c, 7, "user")

	handler.Translate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, translator.called)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, string(resp.Data), `"translated":"thank you"`)
	assert.Contains(t, string(resp.Data), `"changed":true`)
}

func TestUserHandler_Translate_EmptyText(t *testing.T) {
	translator := &mockTranslator{}
	handler := newTestUserHandler(userDeps{translator: translator})

	c, w := testutil.NewTestContext(http.MethodPost, "/support/translate", map[string]string{"text": ""})
	testutil.SetAuthContext(c, 7, "user")

	handler.Translate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, translator.called)
}

func TestUserHandler_Translate_BadTargetLength(t *testing.T) {
	translator := &mockTranslator{}
	handler := newTestUserHandler(userDeps{translator: translator})

	c, w := testutil.NewTestContext(http.MethodPost, "/support/translate", TranslateRequest{Text: "hello", Target: "english"})
	testutil.SetAuthContext(c, 7, "user")

	handler.Translate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, translator.called)
}
