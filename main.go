package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm/logger"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/config"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/database"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/handlers"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/repositories"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/services"
	"github.com/Ghufran-ali1/Grocery-Store-Server/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, cleanup, err := setup(cfg, true)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer cleanup()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// repositorySet groups the storage backends chosen by DATABASE_DRIVER.
type repositorySet struct {
	users        repositories.UserRepository
	items        repositories.ItemRepository
	reservations repositories.ReservationRepository
	pool         *database.Pool
}

func openRepositories(cfg config.Config) (*repositorySet, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		log.Println("Using in-memory repositories; data is lost on restart")
		return &repositorySet{
			users:        repositories.NewMemoryUserRepository(),
			items:        repositories.NewMemoryItemRepository(),
			reservations: repositories.NewMemoryReservationRepository(),
		}, nil
	}

	pool, err := database.Open(database.Config{
		Driver:         cfg.DatabaseDriver,
		DSN:            cfg.DatabaseDSN,
		MaxConns:       cfg.MaxConns,
		IdleTimeout:    cfg.IdleTimeout,
		AcquireTimeout: cfg.AcquireTimeout,
		TablePrefix:    cfg.TablePrefix,
		LogLevel:       logger.Warn,
	})
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := pool.Migrate(&models.User{}, &models.Item{}, &models.Reservation{}); err != nil {
			pool.Close()
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return &repositorySet{
		users:        repositories.NewGORMUserRepository(pool),
		items:        repositories.NewGORMItemRepository(pool),
		reservations: repositories.NewGORMReservationRepository(pool),
		pool:         pool,
	}, nil
}

// setup wires repositories, services and the HTTP app. The returned cleanup
// closes the broker connection and the database pool.
func setup(cfg config.Config, accessLog bool) (*fiber.App, func(), error) {
	repos, err := openRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}

	var closers []func()
	if repos.pool != nil {
		closers = append(closers, func() {
			if stats, err := repos.pool.Stats(); err == nil {
				log.Printf("Database pool stats at shutdown: %v", stats)
			}
			if err := repos.pool.Close(); err != nil {
				log.Printf("Error closing database pool: %v", err)
			}
		})
	}

	// --- Initialize RabbitMQ Client ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.ReservationQueue})
		if err != nil {
			log.Printf("RabbitMQ unavailable, reservation events disabled: %v", err)
		} else {
			publisher = mqClient
			closers = append(closers, func() { mqClient.Close() })

			go func() {
				log.Println("Starting RabbitMQ consumer for reservations...")
				if err := mqClient.ConsumeReservationEvents(rabbitmq.LogReservationEvent); err != nil {
					log.Printf("Failed to start RabbitMQ consumer: %v", err)
				}
			}()
		}
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(repos.users, cfg.JWTSecret, cfg.TokenTTL)
	itemService := services.NewItemService(repos.items)
	if repos.pool != nil {
		itemService.WithBatchLimit(cfg.MaxConns)
	}
	reservationService := services.NewReservationService(repos.reservations, publisher)

	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	app := handlers.NewApp(handlers.Deps{
		AuthService:        authService,
		ItemService:        itemService,
		ReservationService: reservationService,
		AllowedOrigins:     cfg.AllowedOrigins,
		MetricsRegistry:    registry,
		AccessLog:          accessLog,
	})

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return app, cleanup, nil
}
