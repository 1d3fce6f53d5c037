package service

import (
	"context"
	"fmt"

	"bmg-store/internal/domain"
	"bmg-store/internal/repository"

	"go.uber.org/zap"
)

var seedProducts = []domain.CreateProductInput{
	{
		Name:        "T-Shirt 'CHAOS'",
		Description: "Oversized t-shirt with signature CHAOS print. 100% Cotton.",
		Price:       3500,
		ImageURL:    "https://images.unsplash.com/photo-1576566588028-4147f3842f27?w=800&q=80",
		Category:    "T-Shirts",
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"Black", "White"},
		IsNew:       true,
	},
	{
		Name:        "Hoodie 'NO FUTURE'",
		Description: "Heavyweight hoodie with embroidered details. Streetwear essential.",
		Price:       6500,
		ImageURL:    "https://images.unsplash.com/photo-1556905055-8f358a7a47b2?w=800&q=80",
		Category:    "Hoodies",
		Sizes:       []string{"M", "L", "XL"},
		Colors:      []string{"Black"},
		IsNew:       true,
	},
	{
		Name:        "Cargo Pants 'TACTICAL'",
		Description: "Functional cargo pants with multiple pockets and straps.",
		Price:       5500,
		ImageURL:    "https://images.unsplash.com/photo-1517438476312-10d79c077509?w=800&q=80",
		Category:    "Pants",
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"Black", "Camo"},
	},
	{
		Name:        "Cap 'BMG'",
		Description: "Classic snapback with 3D embroidery.",
		Price:       2000,
		ImageURL:    "https://images.unsplash.com/photo-1588850561407-ed78c282e89b?w=800&q=80",
		Category:    "Accessories",
		Sizes:       []string{"One Size"},
		Colors:      []string{"Black", "Red"},
	},
}

// SeedCatalog inserts the starter catalog when the products table is empty.
// It runs once at startup, outside the request path.
func SeedCatalog(ctx context.Context, catalog CatalogService, productRepo repository.ProductRepository, logger *zap.Logger) (int, error) {
	count, err := productRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	if count > 0 {
		logger.Debug("Catalog already populated, skipping seed", zap.Int("products", count))
		return 0, nil
	}

	for _, input := range seedProducts {
		if _, err := catalog.CreateProduct(ctx, input); err != nil {
			return 0, fmt.Errorf("failed to seed product %q: %w", input.Name, err)
		}
	}

	logger.Info("Catalog seeded", zap.Int("products", len(seedProducts)))
	return len(seedProducts), nil
}
