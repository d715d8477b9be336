package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/avolkoff/orderpanel/internal/domain/errors"
	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage. Tests swap it
// for a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type adminRepository struct {
	storage *Storage
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type historyRepository struct {
	storage *Storage
}

type notificationRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Admins() repository.AdminRepository {
	return &adminRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) History() repository.HistoryRepository {
	return &historyRepository{storage: s}
}

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            balance NUMERIC NOT NULL DEFAULT 0,
            in_use NUMERIC NOT NULL DEFAULT 0,
            spent NUMERIC NOT NULL DEFAULT 0,
            email_order_updates BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS admins (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS services (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            service_id BIGINT NOT NULL REFERENCES services(id),
            amount NUMERIC NOT NULL,
            quantity BIGINT NOT NULL,
            remains BIGINT NOT NULL DEFAULT 0,
            start_count BIGINT,
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_history (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            old_status TEXT NOT NULL,
            new_status TEXT NOT NULL,
            changed_by TEXT NOT NULL,
            changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            notes TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            amount NUMERIC NOT NULL,
            type TEXT NOT NULL,
            status TEXT NOT NULL,
            reference TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            title TEXT NOT NULL,
            message TEXT NOT NULL,
            type TEXT NOT NULL,
            reference_id BIGINT NOT NULL DEFAULT 0,
            is_read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_history_order ON order_history(order_id, changed_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AdminRepository implementation ---

func (r *adminRepository) Create(ctx context.Context, login, passwordHash string) (*model.Admin, error) {
	const query = `INSERT INTO admins (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	a.Login = login
	a.PasswordHash = passwordHash
	return &a, nil
}

func (r *adminRepository) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	const query = `SELECT id, login, password_hash, created_at FROM admins WHERE login=$1`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- UserRepository implementation ---

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, username, email, balance, in_use, spent, email_order_updates, created_at
                   FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Email, &u.Balance, &u.InUse, &u.Spent, &u.EmailOrderUpdates, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, service_id, amount, quantity, remains, start_count, status, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.ServiceID, &o.Amount, &o.Quantity, &o.Remains, &o.StartCount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var o model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

const listOrdersQuery = `SELECT o.id, o.user_id, o.service_id, o.amount, o.quantity, o.remains, o.start_count, o.status, o.created_at, o.updated_at,
                                s.name, u.username
                         FROM orders o
                         JOIN services s ON o.service_id = s.id
                         JOIN users u ON o.user_id = u.id
                         ORDER BY o.created_at DESC
                         LIMIT $1 OFFSET $2`

const listOrdersByStatusQuery = `SELECT o.id, o.user_id, o.service_id, o.amount, o.quantity, o.remains, o.start_count, o.status, o.created_at, o.updated_at,
                                        s.name, u.username
                                 FROM orders o
                                 JOIN services s ON o.service_id = s.id
                                 JOIN users u ON o.user_id = u.id
                                 WHERE o.status=$1
                                 ORDER BY o.created_at DESC
                                 LIMIT $2 OFFSET $3`

func (r *orderRepository) List(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.OrderView, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		rows, err = r.storage.pool.Query(ctx, listOrdersByStatusQuery, *status, limit, offset)
	} else {
		rows, err = r.storage.pool.Query(ctx, listOrdersQuery, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderView
	for rows.Next() {
		var v model.OrderView
		if err := rows.Scan(&v.ID, &v.UserID, &v.ServiceID, &v.Amount, &v.Quantity, &v.Remains, &v.StartCount, &v.Status, &v.CreatedAt, &v.UpdatedAt, &v.ServiceName, &v.Username); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) StatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	const query = `SELECT status, COUNT(*) FROM orders GROUP BY status`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StatusCount
	for rows.Next() {
		var c model.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- HistoryRepository implementation ---

func (r *historyRepository) ListByOrder(ctx context.Context, orderID int64, limit int) ([]model.HistoryEntry, error) {
	const query = `SELECT id, order_id, old_status, new_status, changed_by, changed_at, notes
                   FROM order_history WHERE order_id=$1 ORDER BY changed_at DESC LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, orderID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.OldStatus, &e.NewStatus, &e.ChangedBy, &e.ChangedAt, &e.Notes); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Append(ctx context.Context, n *model.Notification) error {
	const query = `INSERT INTO notifications (user_id, title, message, type, reference_id, is_read)
                   VALUES ($1, $2, $3, $4, $5, FALSE)`
	_, err := r.storage.pool.Exec(ctx, query, n.UserID, n.Title, n.Message, n.Type, n.ReferenceID)
	return err
}

// --- Unit of work ---

// unitOfWork scopes repositories to a single database transaction.
type unitOfWork struct {
	tx pgx.Tx
}

func (u *unitOfWork) Orders() repository.OrderUnit            { return &unitOrders{tx: u.tx} }
func (u *unitOfWork) Ledger() repository.Ledger               { return &unitLedger{tx: u.tx} }
func (u *unitOfWork) Transactions() repository.TransactionUnit { return &unitTransactions{tx: u.tx} }
func (u *unitOfWork) History() repository.HistoryUnit          { return &unitHistory{tx: u.tx} }

type unitOrders struct {
	tx pgx.Tx
}

// GetForUpdate locks the order row for the duration of the transaction so
// concurrent transitions on the same order serialize.
func (r *unitOrders) GetForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	var o model.Order
	if err := scanOrder(r.tx.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *unitOrders) Update(ctx context.Context, order *model.Order) error {
	const query = `UPDATE orders SET status=$1, remains=$2, start_count=$3, updated_at=$4 WHERE id=$5`
	_, err := r.tx.Exec(ctx, query, order.Status, order.Remains, order.StartCount, order.UpdatedAt, order.ID)
	return err
}

type unitLedger struct {
	tx pgx.Tx
}

// Ledger adjustments are single additive statements; concurrent orders of
// the same user compose without a read-modify-write race.
func (l *unitLedger) AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) error {
	const query = `UPDATE users SET balance = balance + $1 WHERE id=$2`
	_, err := l.tx.Exec(ctx, query, delta, userID)
	return err
}

func (l *unitLedger) AdjustInUse(ctx context.Context, userID int64, delta decimal.Decimal) error {
	const query = `UPDATE users SET in_use = in_use + $1 WHERE id=$2`
	_, err := l.tx.Exec(ctx, query, delta, userID)
	return err
}

func (l *unitLedger) AdjustSpent(ctx context.Context, userID int64, delta decimal.Decimal) error {
	const query = `UPDATE users SET spent = spent + $1 WHERE id=$2`
	_, err := l.tx.Exec(ctx, query, delta, userID)
	return err
}

type unitTransactions struct {
	tx pgx.Tx
}

func (r *unitTransactions) Append(ctx context.Context, t *model.Transaction) error {
	const query = `INSERT INTO transactions (user_id, amount, type, status, reference, description, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.tx.Exec(ctx, query, t.UserID, t.Amount, t.Type, t.Status, t.Reference, t.Description, t.CreatedAt)
	return err
}

type unitHistory struct {
	tx pgx.Tx
}

func (r *unitHistory) Append(ctx context.Context, e *model.HistoryEntry) error {
	const query = `INSERT INTO order_history (order_id, old_status, new_status, changed_by, changed_at, notes)
                   VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.tx.Exec(ctx, query, e.OrderID, e.OldStatus, e.NewStatus, e.ChangedBy, e.ChangedAt, e.Notes)
	return err
}

// WithinUnit executes fn inside a database transaction. Any error rolls the
// whole unit back; nothing is partially applied.
func (s *Storage) WithinUnit(ctx context.Context, fn func(repository.UnitOfWork) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(&unitOfWork{tx: tx})
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
