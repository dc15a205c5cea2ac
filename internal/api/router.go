package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identity-platform/identity-service/internal/api/handler"
	"github.com/identity-platform/identity-service/internal/api/middleware"
	"github.com/identity-platform/identity-service/internal/core/ports"
)

// RouterConfig carries the wired application services the HTTP surface
// exposes. The lookup chain and the task service are assembled by the
// caller; the router only binds them to routes.
type RouterConfig struct {
	Lookup ports.UserInfoLookup
	Tasks  ports.TaskService
	// Authenticator is non-nil only in the development profile; when nil
	// the login route is not registered.
	Authenticator ports.Authenticator
	// JWTSecret verifies the bearer tokens of incoming requests.
	JWTSecret string
	Mongo     *mongo.Database
	// Redis may be nil when the second cache level is disabled.
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Mongo, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Session(cfg.JWTSecret, cfg.Log))

	if cfg.Authenticator != nil {
		authHandler := handler.NewAuthHandler(cfg.Authenticator)
		v1.POST("/auth/login", authHandler.Login)
	}

	meHandler := handler.NewMeHandler()
	v1.GET("/me", meHandler.Get)

	userHandler := handler.NewUserHandler(cfg.Lookup)
	v1.GET("/users/:id", userHandler.Get, middleware.RBAC("admin"))

	taskHandler := handler.NewTaskHandler(cfg.Tasks)
	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks", taskHandler.List)

	return e
}
