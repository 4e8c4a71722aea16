package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/yonder/experience-recommender/internal/api/handler"
	"github.com/yonder/experience-recommender/internal/api/middleware"
	"github.com/yonder/experience-recommender/internal/core/ports"
	"github.com/yonder/experience-recommender/internal/pkg/validation"
)

const metricsSubsystem = "http"

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Catalog         ports.CatalogService
	Recommendations ports.RecommendationService
	// Checks are extra readiness probes keyed by dependency name.
	Checks map[string]handler.Check
	// AdminJWTSecret protects admin routes when set.
	AdminJWTSecret string
	// RateLimit is requests per second per client IP on recommendation
	// routes. Zero disables limiting.
	RateLimit float64
	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	promMW, err := echoprometheus.MiddlewareConfig{
		Subsystem:                 metricsSubsystem,
		Registerer:                d.Registerer,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("prometheus middleware: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(promMW)

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Catalog, d.Checks)
	catalogHandler := handler.NewCatalogHandler(d.Catalog, d.Log)
	recoHandler := handler.NewRecommendationHandler(d.Recommendations, d.Log)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – catalog loaded, dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Catalog ---
	e.GET("/users", catalogHandler.ListUsers)
	e.GET("/users/:member_id", catalogHandler.GetUser)
	e.GET("/experiences", catalogHandler.ListExperiences)
	e.GET("/experiences/:experience_id", catalogHandler.GetExperience)

	// --- Recommendations ---
	var recoMW []echo.MiddlewareFunc
	if d.RateLimit > 0 {
		recoMW = append(recoMW, rateLimiter(d.RateLimit))
	}
	e.GET("/recommendations/:user_id", recoHandler.Get, recoMW...)

	// --- Admin ---
	var adminMW []echo.MiddlewareFunc
	if d.AdminJWTSecret != "" {
		adminMW = append(adminMW, middleware.Auth(d.AdminJWTSecret), middleware.RBAC(middleware.RoleAdmin))
	} else {
		d.Log.Warn().Msg("ADMIN_JWT_SECRET not set, admin routes are unauthenticated")
	}
	e.POST("/reload-data", catalogHandler.Reload, adminMW...)
	e.GET("/recommendations/:user_id/prompt", recoHandler.Prompt, adminMW...)

	return e, nil
}

// rateLimiter limits each client IP to perSecond requests, bursting to the
// next whole number.
func rateLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiter(store)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
