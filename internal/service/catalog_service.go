package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bmg-store/internal/cache"
	"bmg-store/internal/domain"
	"bmg-store/internal/repository"
	"bmg-store/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CatalogService serves the product catalog to shoppers
type CatalogService interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	cache       cache.CatalogCache
	logger      *zap.Logger
	sfg         singleflight.Group
}

// NewCatalogService creates a new instance of CatalogService. A nil cache
// disables caching.
func NewCatalogService(productRepo repository.ProductRepository, catalogCache cache.CatalogCache, logger *zap.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		cache:       catalogCache,
		logger:      logger,
	}
}

// GetProduct returns a product, reading through the cache
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if s.cache != nil {
		product, err := s.cache.GetProduct(ctx, id)
		if err == nil {
			return product, nil
		}
		s.logCacheError("get product", err)
	}

	// Shared across the flight; detached from this caller's cancellation
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sfg.Do("product:"+strconv.FormatInt(id, 10), func() (interface{}, error) {
		product, err := s.productRepo.FindByID(loadCtx, id)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			if err := s.cache.SetProduct(loadCtx, product); err != nil {
				s.logCacheError("set product", err)
			}
		}
		return product, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return v.(*domain.Product), nil
}

// ListProducts returns the whole catalog, reading through the cache
func (s *catalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if s.cache != nil {
		products, err := s.cache.GetProducts(ctx)
		if err == nil {
			return products, nil
		}
		s.logCacheError("get products", err)
	}

	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.productRepo.List(loadCtx)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			if err := s.cache.SetProducts(loadCtx, products); err != nil {
				s.logCacheError("set products", err)
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return v.([]*domain.Product), nil
}

// CreateProduct validates and stores a new catalog entry
func (s *catalogService) CreateProduct(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Sizes:       input.Sizes,
		Colors:      input.Colors,
		IsNew:       input.IsNew,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateProducts(ctx); err != nil {
			s.logCacheError("invalidate products", err)
		}
	}

	return product, nil
}

func (s *catalogService) logCacheError(op string, err error) {
	if errors.Is(err, cache.ErrCacheMiss) {
		return
	}
	s.logger.Warn("Catalog cache unavailable, falling back to database",
		zap.String("op", op),
		zap.Error(err),
	)
}
