package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/avolkoff/orderpanel/internal/domain/errors"
	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/domain/repository"
)

// MemoryStore is an in-memory repository.UnitRunner with transactional
// semantics: a failing unit restores the pre-call snapshot, so tests can
// assert all-or-nothing behaviour. Individual steps fail via the Fail*
// fields.
type MemoryStore struct {
	mu sync.Mutex

	OrdersByID    map[int64]model.Order
	UsersByID     map[int64]model.User
	Transactions  []model.Transaction
	History       []model.HistoryEntry
	Notifications []model.Notification

	FailOrderUpdate  error
	FailLedger       error
	FailTransactions error
	FailHistory      error
	FailNotification error
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		OrdersByID: make(map[int64]model.Order),
		UsersByID:  make(map[int64]model.User),
	}
}

// SeedOrder stores an order.
func (s *MemoryStore) SeedOrder(o model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OrdersByID[o.ID] = o
}

// SeedUser stores a user.
func (s *MemoryStore) SeedUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UsersByID[u.ID] = u
}

// Order returns a stored order by id.
func (s *MemoryStore) Order(id int64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.OrdersByID[id]
	return o, ok
}

// NotificationCount returns how many notifications were stored.
func (s *MemoryStore) NotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Notifications)
}

// User returns a stored user by id.
func (s *MemoryStore) User(id int64) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.UsersByID[id]
	return u, ok
}

// GetByID implements repository.UserRepository.
func (s *MemoryStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.UsersByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := u
	return &copied, nil
}

// Append implements repository.NotificationRepository.
func (s *MemoryStore) Append(_ context.Context, n *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNotification != nil {
		return s.FailNotification
	}
	record := *n
	record.ID = int64(len(s.Notifications) + 1)
	s.Notifications = append(s.Notifications, record)
	return nil
}

// WithinUnit runs fn against the store; on error every mutation made inside
// the unit is rolled back.
func (s *MemoryStore) WithinUnit(_ context.Context, fn func(repository.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.clone()
	if err := fn(&memoryUnit{store: s}); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	orders        map[int64]model.Order
	users         map[int64]model.User
	transactions  []model.Transaction
	history       []model.HistoryEntry
	notifications []model.Notification
}

func (s *MemoryStore) clone() memorySnapshot {
	orders := make(map[int64]model.Order, len(s.OrdersByID))
	for k, v := range s.OrdersByID {
		orders[k] = v
	}
	users := make(map[int64]model.User, len(s.UsersByID))
	for k, v := range s.UsersByID {
		users[k] = v
	}
	return memorySnapshot{
		orders:        orders,
		users:         users,
		transactions:  append([]model.Transaction(nil), s.Transactions...),
		history:       append([]model.HistoryEntry(nil), s.History...),
		notifications: append([]model.Notification(nil), s.Notifications...),
	}
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.OrdersByID = snap.orders
	s.UsersByID = snap.users
	s.Transactions = snap.transactions
	s.History = snap.history
	s.Notifications = snap.notifications
}

type memoryUnit struct {
	store *MemoryStore
}

func (u *memoryUnit) Orders() repository.OrderUnit { return u }
func (u *memoryUnit) Ledger() repository.Ledger    { return u }
func (u *memoryUnit) Transactions() repository.TransactionUnit {
	return &memoryTransactions{store: u.store}
}
func (u *memoryUnit) History() repository.HistoryUnit { return &memoryHistory{store: u.store} }

func (u *memoryUnit) GetForUpdate(_ context.Context, id int64) (*model.Order, error) {
	o, ok := u.store.OrdersByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := o
	return &copied, nil
}

func (u *memoryUnit) Update(_ context.Context, order *model.Order) error {
	if u.store.FailOrderUpdate != nil {
		return u.store.FailOrderUpdate
	}
	u.store.OrdersByID[order.ID] = *order
	return nil
}

func (u *memoryUnit) adjust(userID int64, apply func(*model.User)) error {
	if u.store.FailLedger != nil {
		return u.store.FailLedger
	}
	usr, ok := u.store.UsersByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	apply(&usr)
	u.store.UsersByID[userID] = usr
	return nil
}

func (u *memoryUnit) AdjustBalance(_ context.Context, userID int64, delta decimal.Decimal) error {
	return u.adjust(userID, func(usr *model.User) { usr.Balance = usr.Balance.Add(delta) })
}

func (u *memoryUnit) AdjustInUse(_ context.Context, userID int64, delta decimal.Decimal) error {
	return u.adjust(userID, func(usr *model.User) { usr.InUse = usr.InUse.Add(delta) })
}

func (u *memoryUnit) AdjustSpent(_ context.Context, userID int64, delta decimal.Decimal) error {
	return u.adjust(userID, func(usr *model.User) { usr.Spent = usr.Spent.Add(delta) })
}

type memoryTransactions struct {
	store *MemoryStore
}

func (r *memoryTransactions) Append(_ context.Context, tx *model.Transaction) error {
	if r.store.FailTransactions != nil {
		return r.store.FailTransactions
	}
	record := *tx
	record.ID = int64(len(r.store.Transactions) + 1)
	r.store.Transactions = append(r.store.Transactions, record)
	return nil
}

type memoryHistory struct {
	store *MemoryStore
}

func (r *memoryHistory) Append(_ context.Context, entry *model.HistoryEntry) error {
	if r.store.FailHistory != nil {
		return r.store.FailHistory
	}
	record := *entry
	record.ID = int64(len(r.store.History) + 1)
	r.store.History = append(r.store.History, record)
	return nil
}
