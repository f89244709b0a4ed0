package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/solemart/backend/internal/infrastructure/auth"
	"github.com/solemart/backend/internal/infrastructure/config"
	"github.com/solemart/backend/internal/infrastructure/logger"
	"github.com/solemart/backend/internal/interfaces/http/handler"
	"github.com/solemart/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	System  *handler.SystemHandler
}

// New builds the gin engine with all middleware and routes
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", middleware.JWTAuth(jwtService), h.Auth.Me)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)

		admin := products.Group("", middleware.JWTAuth(jwtService), middleware.RequireAdmin())
		admin.POST("", h.Product.Create)
		admin.PATCH("/:id", h.Product.Update)
		admin.DELETE("/:id", h.Product.Delete)
	}

	cart := api.Group("/cart", middleware.JWTAuth(jwtService))
	{
		cart.GET("", h.Cart.List)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
	}

	orders := api.Group("/orders", middleware.JWTAuth(jwtService))
	{
		orders.POST("", h.Order.Place)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id/status", middleware.RequireAdmin(), h.Order.UpdateStatus)
	}

	return engine
}
