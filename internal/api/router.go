package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/menuglobal/menu-admin/internal/api/handler"
	"github.com/menuglobal/menu-admin/internal/api/middleware"
	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth        ports.AuthService
	Restaurants ports.RestaurantService
	Menu        ports.MenuService
	Images      ports.ImageHost
	Sessions    Sessions
	Checks      map[string]handler.DependencyCheck
	Logger      zerolog.Logger
	// Registry receives the HTTP request metrics. Defaults to the global registry.
	Registry *prometheus.Registry
}

// Sessions resolves callers from and writes the session carrier.
type Sessions interface {
	middleware.Resolver
	handler.SessionWriter
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
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "menu_admin",
		Registerer: registerer,
	}))
	e.Use(middleware.Auth(deps.Sessions))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions)
	userHandler := handler.NewUserHandler(deps.Auth)
	restaurantHandler := handler.NewRestaurantHandler(deps.Restaurants)
	menuHandler := handler.NewMenuHandler(deps.Menu)
	uploadHandler := handler.NewUploadHandler(deps.Images)

	staff := middleware.RBAC(domain.RoleOwner, domain.RoleManager)
	ownerOnly := middleware.RBAC(domain.RoleOwner)
	ownRestaurant := middleware.RestaurantScope("restaurantID")

	api := e.Group("/api")

	// --- Auth ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me, staff)
	api.PUT("/auth/password", authHandler.ChangePassword, staff)

	// --- Users (owner administration) ---
	users := api.Group("/users", ownerOnly)
	users.POST("", userHandler.Create)
	users.POST("/:userID/deactivate", userHandler.Deactivate)

	// --- Restaurants ---
	api.GET("/restaurants", restaurantHandler.List, ownerOnly)
	api.POST("/restaurants", restaurantHandler.Create, ownerOnly)

	tenant := api.Group("/restaurants/:restaurantID", staff, ownRestaurant)
	tenant.GET("", restaurantHandler.Get)
	tenant.GET("/categories", menuHandler.ListCategories)
	tenant.POST("/categories", menuHandler.CreateCategory)
	tenant.DELETE("/categories/:categoryID", menuHandler.DeleteCategory)
	tenant.GET("/items", menuHandler.ListItems)
	tenant.POST("/items", menuHandler.CreateItem)
	tenant.PATCH("/items/:itemID/availability", menuHandler.SetAvailability)
	tenant.DELETE("/items/:itemID", menuHandler.DeleteItem)

	// --- Uploads ---
	api.POST("/uploads", uploadHandler.Upload, staff, echomiddleware.BodyLimit("6M"))

	// --- Public menu ---
	api.GET("/public/restaurants/:slug/menu", restaurantHandler.PublicMenu)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
