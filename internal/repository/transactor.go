package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Store groups the repositories bound to one transaction
type Store interface {
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
}

// Transactor runs work that must commit or roll back as a unit
type Transactor interface {
	// WithinSession runs fn in a transaction holding an exclusive lock on
	// sessionID. The lock is released when the transaction ends, on every path.
	WithinSession(ctx context.Context, sessionID string, fn func(ctx context.Context, store Store) error) error
}

type txStore struct {
	tx *sql.Tx
}

func (s *txStore) Products() ProductRepository { return NewProductRepository(s.tx) }
func (s *txStore) Carts() CartRepository       { return NewCartRepository(s.tx) }
func (s *txStore) Orders() OrderRepository     { return NewOrderRepository(s.tx) }

type transactor struct {
	db *sql.DB
}

// NewTransactor creates a Transactor over the shared pool
func NewTransactor(db *sql.DB) Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinSession(ctx context.Context, sessionID string, fn func(ctx context.Context, store Store) error) (err error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("failed to roll back: %w", rbErr))
			}
		}
	}()

	// Transaction-scoped advisory lock: released by commit or rollback
	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, sessionID); err != nil {
		return fmt.Errorf("failed to lock session: %w", err)
	}

	if err = fn(ctx, &txStore{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
