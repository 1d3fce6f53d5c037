package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bmg-store/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactor_CommitsOrderAndClearTogether(t *testing.T) {
	ctx := context.Background()
	product := createTestProduct(t, "tx-commit", 3500)
	sessionID := uuid.NewString()

	item := &domain.CartItem{SessionID: sessionID, ProductID: product.ID, Quantity: 2, Size: "M", Color: "Black"}
	require.NoError(t, NewCartRepository(testDB).Create(ctx, item))

	var orderID int64
	err := NewTransactor(testDB).WithinSession(ctx, sessionID, func(ctx context.Context, store Store) error {
		order := newTestOrder(sessionID)
		if err := store.Orders().Create(ctx, order); err != nil {
			return err
		}
		orderID = order.ID
		_, err := store.Carts().DeleteLines(ctx, sessionID, []int64{item.ID})
		return err
	})
	require.NoError(t, err)

	_, err = NewOrderRepository(testDB).FindByID(ctx, orderID)
	assert.NoError(t, err)

	lines, err := NewCartRepository(testDB).ListBySession(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	product := createTestProduct(t, "tx-rollback", 1000)
	sessionID := uuid.NewString()
	boom := errors.New("boom")

	require.NoError(t, NewCartRepository(testDB).Create(ctx, &domain.CartItem{
		SessionID: sessionID, ProductID: product.ID, Quantity: 1, Size: "S", Color: "White",
	}))

	err := NewTransactor(testDB).WithinSession(ctx, sessionID, func(ctx context.Context, store Store) error {
		if err := store.Orders().Create(ctx, newTestOrder(sessionID)); err != nil {
			return err
		}
		if err := store.Carts().DeleteBySession(ctx, sessionID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	orders, err := NewOrderRepository(testDB).ListBySession(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	lines, err := NewCartRepository(testDB).ListBySession(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestTransactor_SerializesSameSession(t *testing.T) {
	ctx := context.Background()
	transactor := NewTransactor(testDB)
	sessionID := uuid.NewString()

	locked := make(chan struct{})
	release := make(chan struct{})
	var secondEntered atomic.Bool
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = transactor.WithinSession(ctx, sessionID, func(ctx context.Context, store Store) error {
			close(locked)
			<-release
			return nil
		})
	}()

	<-locked
	go func() {
		defer wg.Done()
		_ = transactor.WithinSession(ctx, sessionID, func(ctx context.Context, store Store) error {
			secondEntered.Store(true)
			return nil
		})
	}()

	time.Sleep(300 * time.Millisecond)
	assert.False(t, secondEntered.Load(), "second transaction entered while the session was locked")

	close(release)
	wg.Wait()
	assert.True(t, secondEntered.Load())
}

func TestTransactor_DifferentSessionsDoNotBlock(t *testing.T) {
	ctx := context.Background()
	transactor := NewTransactor(testDB)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = transactor.WithinSession(ctx, "session-a-"+uuid.NewString(), func(ctx context.Context, store Store) error {
			close(locked)
			<-release
			return nil
		})
		close(done)
	}()

	<-locked
	err := transactor.WithinSession(ctx, "session-b-"+uuid.NewString(), func(ctx context.Context, store Store) error {
		return nil
	})
	assert.NoError(t, err)

	close(release)
	<-done
}
