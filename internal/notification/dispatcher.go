package notification

import (
	"context"
	"log/slog"
	"sync"

	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/domain/repository"
)

// Event describes one order status change to deliver to a user.
type Event struct {
	UserID  int64
	OrderID int64
	Status  model.OrderStatus
}

// Dispatcher accepts order status change events for best-effort delivery.
type Dispatcher interface {
	Notify(userID, orderID int64, status model.OrderStatus)
}

// Service delivers notifications asynchronously: each event becomes an
// in-app notification row, plus an email when the user opted in. Delivery
// happens outside any transition lock; failures are logged and dropped.
type Service struct {
	users         repository.UserRepository
	notifications repository.NotificationRepository
	mailer        Mailer
	logger        *slog.Logger

	queue  chan Event
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex

	workers int
}

// NewService constructs the notification service with a bounded queue.
func NewService(users repository.UserRepository, notifications repository.NotificationRepository, mailer Mailer, queueSize, workers int, logger *slog.Logger) *Service {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		users:         users,
		notifications: notifications,
		mailer:        mailer,
		logger:        logger,
		queue:         make(chan Event, queueSize),
		workers:       workers,
	}
}

// Start launches delivery workers.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}
}

// Stop cancels workers and waits for in-flight deliveries to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// Notify enqueues an event without blocking. When the queue is full the
// event is dropped with a warning; delivery is fire-and-forget.
func (s *Service) Notify(userID, orderID int64, status model.OrderStatus) {
	ev := Event{UserID: userID, OrderID: orderID, Status: status}
	select {
	case s.queue <- ev:
	default:
		s.logger.Warn("notification queue full, dropping event",
			slog.Int64("user_id", userID),
			slog.Int64("order_id", orderID),
			slog.String("status", string(status)),
		)
	}
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.queue:
			s.deliver(ctx, ev)
		}
	}
}

func (s *Service) deliver(ctx context.Context, ev Event) {
	title, message, typ := composeMessage(ev.OrderID, ev.Status)

	n := &model.Notification{
		UserID:      ev.UserID,
		Title:       title,
		Message:     message,
		Type:        typ,
		ReferenceID: ev.OrderID,
	}
	if err := s.notifications.Append(ctx, n); err != nil {
		s.logger.Error("store notification failed",
			slog.Int64("user_id", ev.UserID),
			slog.Int64("order_id", ev.OrderID),
			slog.String("error", err.Error()),
		)
		return
	}

	s.sendEmail(ctx, ev, title, message)
}

// sendEmail forwards the notification to the mailer when the user opted
// into email order updates and has an address on file.
func (s *Service) sendEmail(ctx context.Context, ev Event, title, message string) {
	user, err := s.users.GetByID(ctx, ev.UserID)
	if err != nil {
		s.logger.Error("load user for email notification failed",
			slog.Int64("user_id", ev.UserID),
			slog.String("error", err.Error()),
		)
		return
	}

	if !user.EmailOrderUpdates || user.Email == "" {
		return
	}

	if err := s.mailer.Send(ctx, user.Email, title, message); err != nil {
		s.logger.Error("send email notification failed",
			slog.Int64("user_id", ev.UserID),
			slog.String("error", err.Error()),
		)
	}
}
