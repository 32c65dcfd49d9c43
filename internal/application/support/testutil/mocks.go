// Package testutil provides mock implementations for testing the support
// application layer.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"parley/internal/domain/directory"
	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/logger"
)

// MockTicketRepository is an in-memory support.TicketRepository.
type MockTicketRepository struct {
	mu      sync.RWMutex
	tickets map[uint]*support.Ticket
	nextID  uint

	saveError     error
	updateError   error
	getError      error
	listError     error
	deleteError   error
	failSaveUsers map[uint]bool
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{tickets: make(map[uint]*support.Ticket)}
}

func (m *MockTicketRepository) Save(ctx context.Context, ticket *support.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	if m.failSaveUsers[ticket.UserID()] {
		return fmt.Errorf("save failed for user %d", ticket.UserID())
	}
	if ticket.ID() == 0 {
		m.nextID++
		if err := ticket.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.tickets[ticket.ID()] = ticket
	return nil
}

func (m *MockTicketRepository) Update(ctx context.Context, ticket *support.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	if _, ok := m.tickets[ticket.ID()]; !ok {
		return fmt.Errorf("ticket not found")
	}
	m.tickets[ticket.ID()] = ticket
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*support.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	ticket, ok := m.tickets[ticketID]
	if !ok {
		return nil, fmt.Errorf("ticket not found")
	}
	return ticket, nil
}

func (m *MockTicketRepository) GetOpenByUserID(ctx context.Context, userID uint) (*support.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	var latest *support.Ticket
	for _, t := range m.tickets {
		if t.UserID() == userID && t.IsOpen() {
			if latest == nil || t.ID() > latest.ID() {
				latest = t
			}
		}
	}
	return latest, nil
}

func (m *MockTicketRepository) ListOpen(ctx context.Context) ([]*support.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}
	var out []*support.Ticket
	for _, t := range m.tickets {
		if t.IsOpen() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *MockTicketRepository) List(ctx context.Context) ([]*support.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}
	out := make([]*support.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *MockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return m.deleteError
	}
	if _, ok := m.tickets[ticketID]; !ok {
		return fmt.Errorf("ticket not found")
	}
	delete(m.tickets, ticketID)
	return nil
}

// AddTicket seeds a ticket, assigning an ID when unset.
func (m *MockTicketRepository) AddTicket(ticket *support.Ticket) {
	_ = m.Save(context.Background(), ticket)
}

func (m *MockTicketRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tickets)
}

// FailSaveForUser makes Save fail only for tickets belonging to userID.
func (m *MockTicketRepository) FailSaveForUser(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaveUsers == nil {
		m.failSaveUsers = make(map[uint]bool)
	}
	m.failSaveUsers[userID] = true
}

func (m *MockTicketRepository) SetSaveError(err error)   { m.saveError = err }
func (m *MockTicketRepository) SetUpdateError(err error) { m.updateError = err }
func (m *MockTicketRepository) SetGetError(err error)    { m.getError = err }
func (m *MockTicketRepository) SetListError(err error)   { m.listError = err }
func (m *MockTicketRepository) SetDeleteError(err error) { m.deleteError = err }

// MockMessageRepository is an in-memory support.MessageRepository.
type MockMessageRepository struct {
	mu       sync.RWMutex
	messages map[uint]*support.Message
	nextID   uint

	saveError  error
	listError  error
	countError error
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{messages: make(map[uint]*support.Message)}
}

func (m *MockMessageRepository) Save(ctx context.Context, message *support.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	if message.ID() == 0 {
		m.nextID++
		if err := message.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.messages[message.ID()] = message
	return nil
}

func (m *MockMessageRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*support.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}
	var out []*support.Message
	for _, msg := range m.messages {
		if msg.TicketID() == ticketID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *MockMessageRepository) Latest(ctx context.Context, ticketID uint) (*support.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}
	var latest *support.Message
	for _, msg := range m.messages {
		if msg.TicketID() == ticketID && (latest == nil || msg.ID() > latest.ID()) {
			latest = msg
		}
	}
	return latest, nil
}

func (m *MockMessageRepository) CountSince(ctx context.Context, ticketID uint, role vo.SenderRole, afterID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.countError != nil {
		return 0, m.countError
	}
	var count int64
	for _, msg := range m.messages {
		if msg.TicketID() == ticketID && msg.SenderRole() == role && msg.ID() > afterID {
			count++
		}
	}
	return count, nil
}

func (m *MockMessageRepository) HasBroadcast(ctx context.Context, ticketID uint, broadcastID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.countError != nil {
		return false, m.countError
	}
	for _, msg := range m.messages {
		if msg.TicketID() == ticketID && msg.BroadcastID() == broadcastID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockMessageRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, msg := range m.messages {
		if msg.TicketID() == ticketID {
			delete(m.messages, id)
		}
	}
	return nil
}

// AddMessage seeds a message, assigning an ID when unset.
func (m *MockMessageRepository) AddMessage(message *support.Message) {
	_ = m.Save(context.Background(), message)
}

func (m *MockMessageRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}

func (m *MockMessageRepository) SetSaveError(err error)  { m.saveError = err }
func (m *MockMessageRepository) SetListError(err error)  { m.listError = err }
func (m *MockMessageRepository) SetCountError(err error) { m.countError = err }

// MockNotificationRepository is an in-memory support.NotificationRepository
// keyed by (user, ticket).
type MockNotificationRepository struct {
	mu     sync.RWMutex
	rows   map[string]*support.Notification
	nextID uint

	saveError error
	getError  error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{rows: make(map[string]*support.Notification)}
}

func notifKey(userID, ticketID uint) string {
	return fmt.Sprintf("%d:%d", userID, ticketID)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *support.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	if n.ID() == 0 {
		m.nextID++
		if err := n.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.rows[notifKey(n.UserID(), n.TicketID())] = n
	return nil
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *support.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	key := notifKey(n.UserID(), n.TicketID())
	if _, ok := m.rows[key]; !ok {
		return fmt.Errorf("notification not found")
	}
	m.rows[key] = n
	return nil
}

func (m *MockNotificationRepository) GetByUserAndTicket(ctx context.Context, userID, ticketID uint) (*support.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	return m.rows[notifKey(userID, ticketID)], nil
}

func (m *MockNotificationRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, n := range m.rows {
		if n.TicketID() == ticketID {
			delete(m.rows, key)
		}
	}
	return nil
}

// AddNotification seeds a row, assigning an ID when unset.
func (m *MockNotificationRepository) AddNotification(n *support.Notification) {
	_ = m.Save(context.Background(), n)
}

func (m *MockNotificationRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

func (m *MockNotificationRepository) SetSaveError(err error) { m.saveError = err }
func (m *MockNotificationRepository) SetGetError(err error)  { m.getError = err }

// MockDirectoryRepository is an in-memory directory.Repository.
type MockDirectoryRepository struct {
	mu    sync.RWMutex
	users map[uint]*directory.User
	teams map[uint]*directory.Team

	listError error
}

func NewMockDirectoryRepository() *MockDirectoryRepository {
	return &MockDirectoryRepository{
		users: make(map[uint]*directory.User),
		teams: make(map[uint]*directory.Team),
	}
}

func (m *MockDirectoryRepository) GetUser(ctx context.Context, userID uint) (*directory.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *MockDirectoryRepository) GetUsers(ctx context.Context, userIDs []uint) (map[uint]*directory.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[uint]*directory.User)
	for _, id := range userIDs {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *MockDirectoryRepository) ListUsers(ctx context.Context, offset, limit int) ([]*directory.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}
	all := m.sortedUsers()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockDirectoryRepository) CountUsers(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MockDirectoryRepository) GetTeam(ctx context.Context, teamID uint) (*directory.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.teams[teamID]
	if !ok {
		return nil, fmt.Errorf("team not found")
	}
	return t, nil
}

func (m *MockDirectoryRepository) ListTeamUsers(ctx context.Context, teamID uint) ([]*directory.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*directory.User
	for _, u := range m.sortedUsers() {
		if u.TeamID != nil && *u.TeamID == teamID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockDirectoryRepository) sortedUsers() []*directory.User {
	out := make([]*directory.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MockDirectoryRepository) AddUser(u *directory.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *MockDirectoryRepository) AddTeam(t *directory.Team) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[t.ID] = t
}

func (m *MockDirectoryRepository) SetListError(err error) { m.listError = err }

// MockTxRunner runs the function directly without a database.
type MockTxRunner struct {
	mu          sync.Mutex
	calls       int
	failCommits map[int]error
}

func NewMockTxRunner() *MockTxRunner { return &MockTxRunner{} }

func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failCommits[call]; ok {
		return err
	}
	return nil
}

// FailCommit makes the nth transaction (1-based) fail after its function
// runs, simulating a commit error.
func (m *MockTxRunner) FailCommit(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommits == nil {
		m.failCommits = make(map[int]error)
	}
	m.failCommits[n] = err
}

// MockLocker satisfies the per-key locker without blocking.
type MockLocker struct {
	mu    sync.Mutex
	Locks []string
}

func NewMockLocker() *MockLocker { return &MockLocker{} }

func (m *MockLocker) Lock(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Locks = append(m.Locks, key)
}

func (m *MockLocker) Unlock(key string) {}

// MockSanitizer trims whitespace, mirroring the real policy's minimum.
type MockSanitizer struct{}

func NewMockSanitizer() *MockSanitizer { return &MockSanitizer{} }

func (m *MockSanitizer) Sanitize(text string) string {
	return strings.TrimSpace(text)
}

// MockIDGenerator mints sequential run IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator { return &MockIDGenerator{} }

func (m *MockIDGenerator) NewID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("run-%d", m.next)
}

// MockLogger records log calls.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{entries: make([]LogEntry, 0)}
}

func (m *MockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg})
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg) }

func (m *MockLogger) With(args ...any) logger.Interface  { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) { m.log("DEBUG", msg) }
func (m *MockLogger) Infow(msg string, keysAndValues ...interface{})  { m.log("INFO", msg) }
func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{})  { m.log("WARN", msg) }
func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) { m.log("ERROR", msg) }

// Entries returns a copy of the recorded log calls.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}
