package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accessflow/accessflow/internal/api/handler"
	"github.com/accessflow/accessflow/internal/api/middleware"
	"github.com/accessflow/accessflow/internal/core/domain"
	"github.com/accessflow/accessflow/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, auth ports.AuthService, audit ports.AuditService, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("accessflow"))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)

	// --- Audit trail (admin only) ---
	auditHandler := handler.NewAuditHandler(audit)
	auditGroup := e.Group("/audit", middleware.Auth(jwtSecret), middleware.RBAC(domain.RoleAdmin))
	auditGroup.GET("", auditHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
