package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gimnasio/gym-system/docs"
	"github.com/gimnasio/gym-system/internal/api/handler"
	"github.com/gimnasio/gym-system/internal/api/middleware"
	"github.com/gimnasio/gym-system/internal/core/domain"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Auth       *handler.AuthHandler
	Socios     *handler.SocioHandler
	Profile    *handler.ProfileHandler
	Turnos     *handler.TurnoHandler
	Accesorios *handler.AccesorioHandler
	Health     *handler.HealthHandler
	Ready      *handler.HealthDependenciesHandler
}

// RouterConfig holds the settings the router needs besides the handlers.
type RouterConfig struct {
	JWTSecret string
	Logger    zerolog.Logger
	// Registry receives the HTTP request metrics. Nil uses the default
	// prometheus registry, which also carries the domain metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Logger))
	e.Use(metricsMiddleware(cfg.Registry))

	// --- Health probes and ops endpoints (no auth required) ---
	e.GET("/health", h.Health.Liveness)
	e.GET("/health/ready", h.Ready.Readiness)
	e.GET("/metrics", metricsHandler(cfg.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/password-reset", h.Auth.RequestPasswordReset)
	auth.POST("/password-reset/confirm", h.Auth.ConfirmPasswordReset)
	auth.POST("/logout", h.Auth.Logout, authMiddleware)

	// --- Staff routes ---
	v1 := e.Group("/v1", authMiddleware)

	v1.GET("/profile", h.Profile.Get)
	v1.PATCH("/profile", h.Profile.Update)
	v1.POST("/profile/photo", h.Profile.UploadPhoto, echomiddleware.BodyLimit("6M"))

	v1.GET("/socios", h.Socios.List)
	v1.GET("/socios/stats", h.Socios.Stats)
	v1.POST("/socios", h.Socios.Create)
	v1.PATCH("/socios/:id", h.Socios.Update)
	v1.DELETE("/socios/:id", h.Socios.Delete, middleware.RBAC(domain.RoleAdmin))

	v1.GET("/turnos", h.Turnos.List)
	v1.GET("/turnos/slots", h.Turnos.Slots)
	v1.POST("/turnos", h.Turnos.Create)
	v1.PUT("/turnos/:id", h.Turnos.Update)
	v1.DELETE("/turnos/:id", h.Turnos.Delete)

	v1.GET("/accesorios", h.Accesorios.List)
	v1.GET("/accesorios/summary", h.Accesorios.Summary)
	v1.PATCH("/accesorios/:id", h.Accesorios.Update)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper:      skipOps,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	mc := echoprometheus.MiddlewareConfig{
		Subsystem: "gym",
		Skipper:   skipOps,
	}
	if reg != nil {
		mc.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(mc)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

// skipOps leaves probes, metrics scrapes and the docs UI out of logs and request metrics.
func skipOps(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/health") || p == "/metrics" || strings.HasPrefix(p, "/swagger")
}
