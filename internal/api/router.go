package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/hairbook/booking-api/docs"
	"github.com/hairbook/booking-api/internal/api/handler"
	"github.com/hairbook/booking-api/internal/api/middleware"
	"github.com/hairbook/booking-api/internal/core/domain"
	"github.com/hairbook/booking-api/internal/core/ports"
	"github.com/hairbook/booking-api/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	AuthService    ports.AuthService
	UserService    ports.UserService
	BookingService ports.BookingService
	Tokens         ports.TokenVerifier
	Logger         zerolog.Logger

	// Readiness is optional; nil leaves /health/ready unregistered.
	Readiness *handlers.HealthDependenciesHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Metrics())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())

	// --- Health, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness) // liveness  – is the process alive?
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness) // readiness – are dependencies up?
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	locationHandler := handler.NewLocationHandler(deps.UserService)
	bookingHandler := handler.NewBookingHandler(deps.BookingService)
	authMiddleware := middleware.Auth(deps.Tokens)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// --- Gated routes ---
	api.POST("/location", locationHandler.Update, authMiddleware)
	api.POST("/bookings", bookingHandler.Create, authMiddleware)
	api.GET("/bookings", bookingHandler.List, authMiddleware)

	admin := api.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users-locations", locationHandler.ListAll)

	return e
}

// requestLogger emits one zerolog line per request. Errors are rendered by
// the central handler first so the logged status is the one the client saw.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
