package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Tx is the slice of pgx.Tx the engine needs. pgx.Tx satisfies it,
// so fakes only have to fake four methods.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Pool hands out transactional sessions. One Begin per SubmitOrder call.
type Pool interface {
	Begin(ctx context.Context) (Tx, error)
}

type pgxPool struct{ pool *pgxpool.Pool }

// NewPool adapts a pgxpool.Pool to the engine's Pool interface.
func NewPool(p *pgxpool.Pool) Pool { return pgxPool{pool: p} }

func (p pgxPool) Begin(ctx context.Context) (Tx, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Engine performs one atomic place-order episode: order header, one row
// per line item, and a relative stock decrement per item, in a single
// transaction. It holds no state between calls; the pool is the only
// shared resource.
type Engine struct {
	pool Pool
	log  *log.Entry
}

func NewEngine(pool Pool, logger *log.Entry) *Engine {
	if logger == nil {
		logger = log.WithField("component", "order-engine")
	}
	return &Engine{pool: pool, log: logger}
}

func (s Submission) Validate() error {
	if s.TotalCents < 0 {
		return ErrTotalNegative
	}
	if len(s.ShippingAddress) == 0 {
		return ErrAddressRequired
	}
	if len(s.Items) == 0 {
		return ErrItemsRequired
	}
	for i, it := range s.Items {
		if it.ProductID <= 0 {
			return fmt.Errorf("item %d: %w", i, ErrProductRequired)
		}
		if it.Qty <= 0 {
			return fmt.Errorf("item %d: %w", i, ErrItemQtyInvalid)
		}
		if it.PriceCents < 0 {
			return fmt.Errorf("item %d: %w", i, ErrItemPriceInvalid)
		}
	}
	return nil
}

// SubmitOrder validates the payload, then runs the whole write episode
// in one transaction: either every row and every decrement commits, or
// none of them are visible. The deferred rollback is a no-op after a
// successful commit and guarantees the session is returned to the pool
// on every failure path, cancellation included.
func (e *Engine) SubmitOrder(ctx context.Context, sub Submission) (int64, error) {
	if err := sub.Validate(); err != nil {
		return 0, err
	}
	status := sub.Status
	if status == "" {
		status = StatusPending
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return 0, &TxError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_cents, shipping_address, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		sub.UserID, sub.TotalCents, sub.ShippingAddress, status,
	).Scan(&orderID)
	if err != nil {
		if isFKViolation(err) {
			return 0, fmt.Errorf("user %d: %w", derefID(sub.UserID), ErrUserNotFound)
		}
		return 0, &TxError{Op: "insert order", Err: err}
	}

	// Items strictly in payload order: deterministic row-lock acquisition
	// across concurrent submissions touching the same products.
	for i, it := range sub.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, qty, price_cents)
			VALUES ($1, $2, $3, $4)`,
			orderID, it.ProductID, it.Qty, it.PriceCents,
		); err != nil {
			if isFKViolation(err) {
				return 0, fmt.Errorf("item %d: product %d: %w", i, it.ProductID, ErrProductNotFound)
			}
			return 0, &TxError{Op: "insert order item", Err: err}
		}

		// Relative, conditional decrement. Never read-then-write: the row
		// lock taken by UPDATE serializes concurrent decrements, and the
		// stock >= qty guard rejects oversell inside the same statement.
		ct, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = now()
			WHERE id = $1 AND stock >= $2`,
			it.ProductID, it.Qty,
		)
		if err != nil {
			return 0, &TxError{Op: "decrement stock", Err: err}
		}
		if ct.RowsAffected() == 0 {
			var stock int
			err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, it.ProductID).Scan(&stock)
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, fmt.Errorf("item %d: product %d: %w", i, it.ProductID, ErrProductNotFound)
			}
			if err != nil {
				return 0, &TxError{Op: "check stock", Err: err}
			}
			return 0, fmt.Errorf("product %d: have %d, want %d: %w", it.ProductID, stock, it.Qty, ErrInsufficientStock)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &TxError{Op: "commit", Err: err}
	}

	e.log.WithFields(log.Fields{
		"order_id": orderID,
		"items":    len(sub.Items),
		"total":    sub.TotalCents,
	}).Info("order submitted")
	return orderID, nil
}

func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
