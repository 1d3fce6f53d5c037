package service

import (
	"context"
	"fmt"

	"bmg-store/internal/domain"
	"bmg-store/internal/repository"
	"bmg-store/internal/validation"

	"go.uber.org/zap"
)

// OrderService turns a session's cart into a persisted order
type OrderService interface {
	CreateOrder(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, sessionID string) ([]*domain.Order, error)
}

type orderService struct {
	transactor repository.Transactor
	orderRepo  repository.OrderRepository
	logger     *zap.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(transactor repository.Transactor, orderRepo repository.OrderRepository, logger *zap.Logger) OrderService {
	return &orderService{
		transactor: transactor,
		orderRepo:  orderRepo,
		logger:     logger,
	}
}

// CreateOrder reads the cart, prices it from current product data, stores the
// order with a frozen item snapshot and removes the consumed cart lines. All of
// it happens in one transaction holding the session lock, so a concurrent
// checkout of the same session sees the cart only after this one finished.
func (s *orderService) CreateOrder(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var order *domain.Order

	err := s.transactor.WithinSession(ctx, input.SessionID, func(ctx context.Context, store repository.Store) error {
		lines, err := store.Carts().ListBySession(ctx, input.SessionID)
		if err != nil {
			return fmt.Errorf("failed to read cart: %w", err)
		}

		if len(lines) == 0 {
			return ErrEmptyCart
		}

		items, total, err := domain.SnapshotLines(lines)
		if err != nil {
			return err
		}

		order = &domain.Order{
			SessionID:     input.SessionID,
			CustomerName:  input.CustomerName,
			CustomerEmail: input.CustomerEmail,
			CustomerPhone: input.CustomerPhone,
			Address:       input.Address,
			Total:         total,
			Items:         items,
			Status:        domain.OrderStatusPending,
		}

		if err := store.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("failed to store order: %w", err)
		}

		ids := make([]int64, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.ID)
		}

		if _, err := store.Carts().DeleteLines(ctx, input.SessionID, ids); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.String("session_id", order.SessionID),
		zap.Int64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)

	return order, nil
}

// ListOrders returns the session's orders, newest first
func (s *orderService) ListOrders(ctx context.Context, sessionID string) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
