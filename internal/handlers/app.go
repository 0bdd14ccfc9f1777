package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/middleware"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/services"
)

// Deps are the collaborators NewApp wires together.
type Deps struct {
	AuthService        *services.AuthService
	ItemService        *services.ItemService
	ReservationService *services.ReservationService
	AllowedOrigins     []string

	// MetricsRegistry enables request metrics and GET /metrics when non-nil.
	MetricsRegistry *prometheus.Registry
	// AccessLog enables the per-request log line.
	AccessLog bool
}

// NewApp builds the Fiber application serving the /api surface.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "grocery-store-server",
		ErrorHandler: ErrorHandler,
	})

	if d.AccessLog {
		app.Use(logger.New())
	}
	if d.MetricsRegistry != nil {
		metrics := middleware.NewMetrics(d.MetricsRegistry, "store")
		app.Use(metrics.Handler())
	}
	app.Use(recover.New())
	app.Use(middleware.CORS(d.AllowedOrigins))

	health := NewHealthHandler()
	app.Get("/health", health.HandleHealth)
	if d.MetricsRegistry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.MetricsRegistry, promhttp.HandlerOpts{})))
	}

	router := NewRouter(
		middleware.Authenticate(d.AuthService),
		NewAuthHandler(d.AuthService),
		NewItemHandler(d.ItemService),
		NewReservationHandler(d.ReservationService),
		health,
	)
	router.RegisterRoutes(app.Group("/api"))

	return app
}
