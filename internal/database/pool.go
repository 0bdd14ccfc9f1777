package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/semaphore"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// ErrAcquireTimeout is returned by Acquire when no connection slot frees up
// within the configured acquisition timeout.
var ErrAcquireTimeout = errors.New("timed out acquiring database connection")

// Config describes how to open the pool.
type Config struct {
	Driver         string // "postgres" or "sqlite"
	DSN            string
	MaxConns       int
	IdleTimeout    time.Duration
	AcquireTimeout time.Duration
	TablePrefix    string
	LogLevel       logger.LogLevel
}

// Pool is the process-wide store client. It is constructed once at startup,
// shared by every request and closed on shutdown.
type Pool struct {
	db             *gorm.DB
	slots          *semaphore.Weighted
	acquireTimeout time.Duration
	maxConns       int
}

// Open connects to the database and applies the pool limits.
func Open(cfg Config) (*Pool, error) {
	dialector, err := dialectorFor(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	logLevel := cfg.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{TablePrefix: cfg.TablePrefix},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return New(db, cfg)
}

// New wraps an already opened *gorm.DB.
func New(db *gorm.DB, cfg Config) (*Pool, error) {
	if cfg.MaxConns < 1 {
		cfg.MaxConns = 1
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = 2 * time.Second
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxConns)
	sqlDB.SetConnMaxIdleTime(cfg.IdleTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AcquireTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database pool configured: driver=%s max_conns=%d idle_timeout=%s acquire_timeout=%s",
		db.Dialector.Name(), cfg.MaxConns, cfg.IdleTimeout, cfg.AcquireTimeout)

	return &Pool{
		db:             db,
		slots:          semaphore.NewWeighted(int64(cfg.MaxConns)),
		acquireTimeout: cfg.AcquireTimeout,
		maxConns:       cfg.MaxConns,
	}, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Acquire reserves one connection slot and returns a handle bound to ctx.
// The caller must invoke release exactly once when done.
func (p *Pool) Acquire(ctx context.Context) (*gorm.DB, func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	if err := p.slots.Acquire(waitCtx, 1); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		return nil, nil, fmt.Errorf("%w after %s: %v", ErrAcquireTimeout, p.acquireTimeout, err)
	}
	return p.db.WithContext(ctx), func() { p.slots.Release(1) }, nil
}

// Migrate creates or updates the tables for the given models.
func (p *Pool) Migrate(models ...interface{}) error {
	if err := p.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Stats reports the state of the underlying connection pool.
func (p *Pool) Stats() (map[string]interface{}, error) {
	sqlDB, err := p.db.DB()
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return map[string]interface{}{
		"max_conns":        p.maxConns,
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration":    stats.WaitDuration.String(),
		"max_idle_closed":  stats.MaxIdleTimeClosed,
	}, nil
}

// Close releases every connection held by the pool.
func (p *Pool) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
