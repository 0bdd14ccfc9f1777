package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	AppPort string `validate:"required"`

	DatabaseDriver string        `validate:"oneof=postgres sqlite memory"`
	DatabaseDSN    string        `validate:"required_unless=DatabaseDriver memory"`
	MaxConns       int           `validate:"gte=1"`
	IdleTimeout    time.Duration `validate:"gte=0"`
	AcquireTimeout time.Duration `validate:"gt=0"`
	TablePrefix    string
	AutoMigrate    bool

	JWTSecret string        `validate:"required"`
	TokenTTL  time.Duration `validate:"gt=0"`

	AllowedOrigins []string

	RabbitMQURL      string `validate:"omitempty,url"`
	ReservationQueue string `validate:"required"`

	MetricsEnabled bool
}

// Load reads an optional .env file, then the process environment, and validates
// the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Could not load .env file: %v", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("SUPABASE_DB_POOLING_URL", "")
	v.SetDefault("SUPABASE_DB_URL", "")
	v.SetDefault("DB_MAX_CONNS", 2)
	v.SetDefault("DB_IDLE_TIMEOUT", 30*time.Second)
	v.SetDefault("DB_ACQUIRE_TIMEOUT", 2*time.Second)
	v.SetDefault("DB_TABLE_PREFIX", "store_")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", 72*time.Hour)
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RESERVATION_QUEUE", "reservation_queue")
	v.SetDefault("METRICS_ENABLED", true)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	dsn := v.GetString("DATABASE_DSN")
	if dsn == "" {
		dsn = v.GetString("SUPABASE_DB_POOLING_URL")
	}
	if dsn == "" {
		dsn = v.GetString("SUPABASE_DB_URL")
	}

	cfg := Config{
		AppPort:          v.GetString("APP_PORT"),
		DatabaseDriver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:      dsn,
		MaxConns:         v.GetInt("DB_MAX_CONNS"),
		IdleTimeout:      v.GetDuration("DB_IDLE_TIMEOUT"),
		AcquireTimeout:   v.GetDuration("DB_ACQUIRE_TIMEOUT"),
		TablePrefix:      v.GetString("DB_TABLE_PREFIX"),
		AutoMigrate:      v.GetBool("DB_AUTO_MIGRATE"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		AllowedOrigins:   splitList(v.GetString("ALLOWED_ORIGINS")),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		ReservationQueue: v.GetString("RESERVATION_QUEUE"),
		MetricsEnabled:   v.GetBool("METRICS_ENABLED"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags on cfg and reports every failing field.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
