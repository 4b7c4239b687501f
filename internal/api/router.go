package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventdesk/registration-api/internal/api/handler"
	"github.com/eventdesk/registration-api/internal/api/middleware"
	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
	"github.com/eventdesk/registration-api/internal/infrastructure/http/handlers"
)

// Dependencies carries the assembled collaborators the router wires into
// routes. The token store is constructed once at process start and
// injected here and into the token service; nothing reaches it through a
// global.
type Dependencies struct {
	TokenService ports.TokenService
	EventService ports.EventService
	TokenStore   ports.TokenStore
	Mongo        *mongo.Database
	Redis        *redis.Client // nil when the in-memory token store is used
	// Metrics is the registry the request collectors register with. Nil
	// selects the process-wide default; tests pass a fresh registry so
	// routers can be built repeatedly in one process.
	Metrics *prometheus.Registry
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Binder = handler.NewStrictBinder()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Metrics != nil {
		registerer = deps.Metrics
		gatherer = deps.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "registration",
		Registerer: registerer,
	}))

	// --- Handlers ---
	tokenHandler := handler.NewTokenHandler(deps.TokenService)
	eventHandler := handler.NewEventHandler(deps.EventService)

	gate := middleware.Auth(deps.TokenStore)
	write := middleware.RequireScope(domain.ScopeWrite)

	// --- Token endpoint ---
	e.POST("/oauth/token", tokenHandler.Issue)

	// --- Event resource: reads are anonymous, writes sit behind the gate ---
	events := e.Group("/api/events")
	events.GET("", eventHandler.List)
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create, gate, write)
	events.PUT("/:id", eventHandler.Update, gate, write)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
	e.GET("/docs/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
