package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/userhub/account-service/docs"
	"github.com/userhub/account-service/internal/api/handler"
	"github.com/userhub/account-service/internal/api/middleware"
	"github.com/userhub/account-service/internal/core/service"
	"github.com/userhub/account-service/internal/infrastructure/crypto"
	mongodb "github.com/userhub/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/account-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokenCacheTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("account"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokenStore := redisdb.NewTokenCache(rdb, mongodb.NewTokenStore(db), tokenCacheTTL)
	hasher := crypto.NewBcryptHasher(0)

	authService := service.NewAuthService(userRepo, tokenStore, hasher, log)
	userService := service.NewUserService(userRepo, tokenStore, hasher, log)

	userHandler := handler.NewUserHandler(userService, authService)
	adminHandler := handler.NewAdminHandler(userService)
	authRequired := middleware.TokenAuth(authService)

	// --- User routes ---
	e.POST("/user/create/", userHandler.Create)
	e.POST("/user/token/", userHandler.Token)
	e.GET("/user/current-user/", userHandler.Me, authRequired)
	e.PATCH("/user/current-user/", userHandler.UpdateMe, authRequired)
	e.DELETE("/user/current-user/", userHandler.DeleteMe, authRequired)

	// --- Admin routes (staff only) ---
	e.GET("/admin/users/", adminHandler.ListUsers, authRequired, middleware.RequireStaff())

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
