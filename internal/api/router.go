package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rollenspielwerkzeuge/placemat-auth/internal/api/handler"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/api/i18n"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/api/middleware"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/core/service"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/infrastructure/config"
	mongostore "github.com/rollenspielwerkzeuge/placemat-auth/internal/infrastructure/db/mongo"
	redisstore "github.com/rollenspielwerkzeuge/placemat-auth/internal/infrastructure/db/redis"
	"github.com/rollenspielwerkzeuge/placemat-auth/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, i18n.Default())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("placemat"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, hasher, log)
	tokenService := service.NewTokenService(service.TokenConfig{
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.TTLSeconds) * time.Second,
		Secret: []byte(cfg.JWT.Secret),
	})
	authHandler := handler.NewAuthHandler(authService, tokenService)

	limiter := redisstore.NewLoginLimiter(rdb, cfg.Login.MaxAttempts,
		time.Duration(cfg.Login.WindowSeconds)*time.Second)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login, middleware.LoginRateLimit(limiter, log))
	auth.GET("/me", authHandler.Me, middleware.Auth(tokenService))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
