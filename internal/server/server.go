package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bmg-store/internal/cache"
	"bmg-store/internal/config"
	"bmg-store/internal/database"
	custommiddleware "bmg-store/internal/middleware"
	"bmg-store/internal/repository"
	"bmg-store/internal/service"
	"bmg-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client

	catalog     service.CatalogService
	productRepo repository.ProductRepository
}

// NewServer wires repositories, services and handlers onto one router.
// redisClient may be nil, which disables the catalog cache and rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, dbService database.Service, redisClient *redis.Client) *Server {
	db := dbService.DB()

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))

	router.Get("/health", healthHandler(dbService))

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	transactor := repository.NewTransactor(db)

	// Initialize services
	var catalogCache cache.CatalogCache
	if redisClient != nil {
		catalogCache = cache.NewRedisCache(redisClient, cfg.Catalog.CacheTTL)
	}
	catalogService := service.NewCatalogService(productRepo, catalogCache, logger)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(transactor, orderRepo, logger)

	// Register routes
	router.Group(func(r chi.Router) {
		if redisClient != nil {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         "rate_limit",
			}, logger))
		}

		transport.NewProductHandler(catalogService, logger).RegisterRoutes(r)
		transport.NewCartHandler(cartService, logger).RegisterRoutes(r)
		transport.NewOrderHandler(orderService, logger).RegisterRoutes(r)
		transport.NewSessionHandler().RegisterRoutes(r)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          dbService,
		redis:       redisClient,
		catalog:     catalogService,
		productRepo: productRepo,
	}

	return server
}

// SeedCatalog fills an empty catalog with the starter products
func (s *Server) SeedCatalog(ctx context.Context) (int, error) {
	return service.SeedCatalog(ctx, s.catalog, s.productRepo, s.logger)
}

func healthHandler(dbService database.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := dbService.Health(r.Context())

		status := http.StatusOK
		overall := "ok"
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		custommiddleware.RespondWithJSON(w, status, map[string]interface{}{
			"status":   overall,
			"database": stats,
		})
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
