package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/config"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/events"
	custommiddleware "github.com/Gokul0616/JOSHI-BROTHERS/internal/middleware"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/repository"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/service"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	db        *sql.DB
	redis     *redis.Client
	publisher events.Publisher
}

// Options carries the optional external collaborators. Nil redis disables
// rate limiting; a nil publisher is replaced with a no-op.
type Options struct {
	Redis     *redis.Client
	Publisher events.Publisher
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, opts Options) *Server {
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	tokenExpiry := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, tokenExpiry)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, brandRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, publisher, logger)
	adminService := service.NewAdminService(productRepo, categoryRepo, brandRepo, userRepo, orderRepo)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	adminHandler := transport.NewAdminHandler(authService, catalogService, orderService, adminService, logger)

	// Create middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)

	if opts.Redis != nil {
		rateLimitConfig := custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "rate_limit",
		}
		router.Use(custommiddleware.RateLimitMiddleware(opts.Redis, rateLimitConfig, logger))
	}

	// Register routes
	authHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router, authMiddleware)
	orderHandler.RegisterRoutes(router, authMiddleware)
	adminHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     opts.Redis,
		publisher: publisher,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if err := s.publisher.Close(); err != nil {
		s.logger.Error("Failed to close event publisher", zap.Error(err))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
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
