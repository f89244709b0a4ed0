package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	cartapp "github.com/solemart/backend/internal/application/cart"
	catalogapp "github.com/solemart/backend/internal/application/catalog"
	checkoutapp "github.com/solemart/backend/internal/application/checkout"
	identityapp "github.com/solemart/backend/internal/application/identity"
	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/catalog"
	"github.com/solemart/backend/internal/domain/identity"
	"github.com/solemart/backend/internal/domain/order"
	"github.com/solemart/backend/internal/infrastructure/auth"
	"github.com/solemart/backend/internal/infrastructure/config"
	"github.com/solemart/backend/internal/infrastructure/logger"
	"github.com/solemart/backend/internal/infrastructure/persistence"
	"github.com/solemart/backend/internal/infrastructure/persistence/memory"
	redisstore "github.com/solemart/backend/internal/infrastructure/persistence/redis"
	"github.com/solemart/backend/internal/interfaces/http/handler"
	"github.com/solemart/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Solemart Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("storage", cfg.Storage.Backend),
	)

	var (
		productRepo catalog.ProductRepository
		cartRepo    cart.Repository
		orderRepo   order.Repository
		userRepo    identity.Repository
		pinger      func() error
	)

	switch cfg.Storage.Backend {
	case "gorm":
		db, err := persistence.NewDatabase(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
		log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

		productRepo = persistence.NewGormProductRepository(db.DB)
		cartRepo = persistence.NewGormCartRepository(db.DB)
		orderRepo = persistence.NewGormOrderRepository(db.DB)
		userRepo = persistence.NewGormUserRepository(db.DB)
		pinger = db.Ping
	default:
		store := memory.NewStore()
		productRepo = store.Products()
		cartRepo = store.Carts()
		orderRepo = store.Orders()
		userRepo = store.Users()
		log.Warn("Using in-memory storage, all data is lost on restart")
	}

	if cfg.Storage.CartBackend == "redis" {
		client, err := redisstore.NewClient(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		cartRepo = redisstore.NewCartRepository(client)
		log.Info("Cart storage backed by Redis", zap.String("addr", cfg.Redis.RedisAddr()))
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	userLocks := cartapp.NewUserLocks()

	authService := identityapp.NewAuthService(userRepo, jwtService, hasher)
	productService := catalogapp.NewProductService(productRepo)
	cartService := cartapp.NewCartService(cartRepo, productRepo, userLocks)
	checkoutService := checkoutapp.NewCheckoutService(orderRepo, cartRepo, productRepo, userLocks)

	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(productService),
		Cart:    handler.NewCartHandler(cartService),
		Order:   handler.NewOrderHandler(checkoutService),
		System:  handler.NewSystemHandler(pinger),
	}

	engine := router.New(cfg, log, jwtService, handlers)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
