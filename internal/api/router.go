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

	_ "github.com/wealthvault/portfolio-api/docs"
	"github.com/wealthvault/portfolio-api/internal/api/handler"
	"github.com/wealthvault/portfolio-api/internal/api/middleware"
	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/service"
	"github.com/wealthvault/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/wealthvault/portfolio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/wealthvault/portfolio-api/internal/infrastructure/db/redis"
	"github.com/wealthvault/portfolio-api/internal/infrastructure/soa"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("wealthvault"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	ledgerRepo := mongodb.NewLedgerRepository(db)
	nomineeRepo := mongodb.NewNomineeRepository(db)
	statementCache := redisdb.NewStatementCache(rdb)

	// --- Services ---
	accessService := service.NewAccessService(userRepo, nomineeRepo, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour, cfg.AdminUsernames)
	profileService := service.NewProfileService(profileRepo, accessService, log)
	ledgerService := service.NewLedgerService(ledgerRepo, accessService, statementCache, log)
	nomineeService := service.NewNomineeService(nomineeRepo, accessService, log)

	soaClient := soa.NewClient(soa.Config{BaseURL: cfg.SoA.BaseURL, APIKey: cfg.SoA.APIKey}, log)
	reconcileService := service.NewReconcileService(profileRepo, ledgerService, soaClient, soaClient, statementCache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	investmentHandler := handler.NewInvestmentHandler(ledgerService)
	nomineeHandler := handler.NewNomineeHandler(nomineeService)
	soaHandler := handler.NewSoAHandler(reconcileService)
	roleHandler := handler.NewRoleHandler(accessService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes / operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.GET("/profile", profileHandler.GetOwn)
	v1.PUT("/profile", profileHandler.Save)
	v1.GET("/users/:principal/profile", profileHandler.Get)

	v1.POST("/investments", investmentHandler.Add)
	v1.PUT("/investments/:index", investmentHandler.Update)
	v1.DELETE("/investments/:index", investmentHandler.Delete)
	v1.GET("/users/:principal/investments", investmentHandler.List)
	v1.GET("/users/:principal/summary", investmentHandler.Summary)

	v1.POST("/nominee", nomineeHandler.Add)
	v1.PUT("/nominee", nomineeHandler.Update)
	v1.DELETE("/nominee", nomineeHandler.Remove)
	v1.GET("/nominee", nomineeHandler.GetOwn)
	v1.GET("/users/:principal/nominee", nomineeHandler.Get)

	v1.POST("/soa/holdings", soaHandler.FetchHoldings)
	v1.POST("/soa/aadhaar", soaHandler.FetchAadhaar)
	v1.POST("/soa/pan", soaHandler.FetchPAN)

	v1.GET("/me/role", roleHandler.GetRole)
	v1.GET("/me/admin", roleHandler.IsAdmin)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.POST("/roles", roleHandler.AssignRole)

	return e
}
