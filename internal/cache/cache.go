package cache

import (
	"context"
	"errors"

	"bmg-store/internal/domain"
)

// CatalogCache stores catalog reads for the public browsing endpoints
type CatalogCache interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	GetProducts(ctx context.Context) ([]*domain.Product, error)
	SetProducts(ctx context.Context, products []*domain.Product) error
	InvalidateProducts(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
