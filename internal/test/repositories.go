package test

import (
	"context"
	"sync"

	domainErrors "github.com/avolkoff/orderpanel/internal/domain/errors"
	"github.com/avolkoff/orderpanel/internal/domain/model"
)

// AdminRepositoryStub stores operator accounts in-memory for tests.
type AdminRepositoryStub struct {
	Admins map[string]*model.Admin
	Next   int64
	Err    error
}

// NewAdminRepositoryStub constructs stub repository with initialized maps.
func NewAdminRepositoryStub() *AdminRepositoryStub {
	return &AdminRepositoryStub{Admins: make(map[string]*model.Admin), Next: 1}
}

// Create registers an admin unless it already exists or the stub has an explicit error.
func (s *AdminRepositoryStub) Create(_ context.Context, login, passwordHash string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Admins == nil {
		s.Admins = make(map[string]*model.Admin)
	}
	if _, exists := s.Admins[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	admin := &model.Admin{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Admins[login] = admin
	return admin, nil
}

// GetByLogin fetches an admin by login or returns not found.
func (s *AdminRepositoryStub) GetByLogin(_ context.Context, login string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.Admins[login]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize read-side behaviour.
type OrderRepositoryStub struct {
	GetFn          func(context.Context, int64) (*model.Order, error)
	ListFn         func(context.Context, *model.OrderStatus, int, int) ([]model.OrderView, error)
	StatusCountsFn func(context.Context) ([]model.StatusCount, error)

	Views  []model.OrderView
	Counts []model.StatusCount
}

// Get returns the configured order or not found.
func (s *OrderRepositoryStub) Get(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	for _, v := range s.Views {
		if v.ID == id {
			order := v.Order
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns configured views.
func (s *OrderRepositoryStub) List(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.OrderView, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, status, limit, offset)
	}
	return s.Views, nil
}

// StatusCounts returns configured counts.
func (s *OrderRepositoryStub) StatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	if s.StatusCountsFn != nil {
		return s.StatusCountsFn(ctx)
	}
	return s.Counts, nil
}

// HistoryRepositoryStub serves transition history for tests.
type HistoryRepositoryStub struct {
	ListByOrderFn func(context.Context, int64, int) ([]model.HistoryEntry, error)
	Entries       []model.HistoryEntry
}

// ListByOrder returns configured entries.
func (s *HistoryRepositoryStub) ListByOrder(ctx context.Context, orderID int64, limit int) ([]model.HistoryEntry, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderID, limit)
	}
	return s.Entries, nil
}

// NotifierStub records emitted notification events.
type NotifierStub struct {
	Events []NotifiedEvent
}

// NotifiedEvent captures one Notify invocation.
type NotifiedEvent struct {
	UserID  int64
	OrderID int64
	Status  model.OrderStatus
}

// Notify appends the event.
func (s *NotifierStub) Notify(userID, orderID int64, status model.OrderStatus) {
	s.Events = append(s.Events, NotifiedEvent{UserID: userID, OrderID: orderID, Status: status})
}

// MailerStub records outgoing mail and optionally fails. Safe for use from
// delivery workers.
type MailerStub struct {
	mu   sync.Mutex
	sent []SentMail
	Err  error
}

// SentMail captures one Send invocation.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// Send records the message.
func (s *MailerStub) Send(_ context.Context, to, subject, body string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// Sent returns a copy of recorded messages.
func (s *MailerStub) Sent() []SentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentMail(nil), s.sent...)
}
