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

	_ "github.com/consumershield/claims-core/docs"
	"github.com/consumershield/claims-core/internal/api/handler"
	"github.com/consumershield/claims-core/internal/api/middleware"
	"github.com/consumershield/claims-core/internal/core/domain"
	"github.com/consumershield/claims-core/internal/core/ports"
	"github.com/consumershield/claims-core/internal/core/service"
	"github.com/consumershield/claims-core/internal/infrastructure/config"
	mongodb "github.com/consumershield/claims-core/internal/infrastructure/db/mongo"
	redisdb "github.com/consumershield/claims-core/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The side-effect queue is constructed and started by the caller so its
// worker lifecycle is owned by main, not by the HTTP layer.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, effects ports.SideEffectQueue, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("claims"))

	// --- Dependencies ---
	claimRepo := mongodb.NewClaimRepository(db)
	viewCache := redisdb.NewViewCache(rdb)
	claimService := service.NewClaimService(claimRepo, effects, viewCache, cfg.AllowReopen, log)
	claimHandler := handler.NewClaimHandler(claimService)

	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	authHandler := handler.NewAuthHandler(authService)

	limiter := redisdb.NewLimiter(rdb,
		cfg.RateLimit.CreateClaimLimit,
		time.Duration(cfg.RateLimit.CreateClaimWindow)*time.Second)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Claim workflow routes ---
	v1 := e.Group("/v1", authMiddleware)

	v1.POST("/claims", claimHandler.Create,
		middleware.RateLimit(limiter, "create_claim", log))
	v1.GET("/claims", claimHandler.List)
	v1.GET("/claims/:id", claimHandler.Get)

	// Route-level RBAC keeps members off the triage endpoints; the
	// service guards still decide ownership within the allowed roles.
	v1.PATCH("/claims/:id/status", claimHandler.UpdateStatus,
		middleware.RBAC(domain.RoleAgent, domain.RoleStaff, domain.RoleBranchManager,
			domain.RoleAdmin, domain.RoleTenantAdmin, domain.RoleSuperAdmin, domain.RoleMember))
	v1.PATCH("/claims/:id/assignee", claimHandler.Assign,
		middleware.RBAC(domain.RoleStaff, domain.RoleBranchManager,
			domain.RoleAdmin, domain.RoleTenantAdmin, domain.RoleSuperAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
