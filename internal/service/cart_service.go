package service

import (
	"context"
	"errors"
	"fmt"

	"bmg-store/internal/domain"
	"bmg-store/internal/repository"
	"bmg-store/internal/validation"
)

// CartService manages the anonymous, session-scoped cart
type CartService interface {
	ListItems(ctx context.Context, sessionID string) ([]*domain.CartLine, error)
	AddItem(ctx context.Context, input domain.AddCartItemInput) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, id int64) error
	ClearCart(ctx context.Context, sessionID string) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListItems returns the cart joined with current product data
func (s *cartService) ListItems(ctx context.Context, sessionID string) ([]*domain.CartLine, error) {
	lines, err := s.cartRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return lines, nil
}

// AddItem stores a new line. The line must reference a real product variant.
// Adding the same variant again creates another line rather than merging.
func (s *cartService) AddItem(ctx context.Context, input domain.AddCartItemInput) (*domain.CartItem, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, validation.Field("productId", "Product does not exist")
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	if !product.HasSize(input.Size) {
		return nil, validation.Field("size", "Size is not available for this product")
	}
	if !product.HasColor(input.Color) {
		return nil, validation.Field("color", "Color is not available for this product")
	}

	item := &domain.CartItem{
		SessionID: input.SessionID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Size:      input.Size,
		Color:     input.Color,
	}

	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	return item, nil
}

// RemoveItem deletes a line; removing an absent line is a no-op
func (s *cartService) RemoveItem(ctx context.Context, id int64) error {
	if err := s.cartRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// ClearCart deletes every line of the session
func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.cartRepo.DeleteBySession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
