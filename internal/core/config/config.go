package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Rate store backends accepted by RATE_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// LogFile, when set, also writes logs to a rotated file.
	LogFile string `mapstructure:"LOG_FILE"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Pincodes holds the pincode directory configuration.
	Pincodes PincodeConfig `mapstructure:",squash"`

	// Rates holds the rate engine configuration.
	Rates RatesConfig `mapstructure:",squash"`

	// Database holds the database configuration.
	Database DatabaseConfig `mapstructure:",squash"`

	// Redis holds the cache configuration.
	Redis RedisConfig `mapstructure:",squash"`
}

// PincodeConfig describes where the pincode dataset comes from.
type PincodeConfig struct {
	// Dataset is a file path or an http(s) URL to the pincode JSON dataset.
	Dataset string `mapstructure:"PINCODE_DATASET" required:"true"`
	// PickupStates is a comma separated list of states where pickups are serviceable.
	PickupStates string `mapstructure:"PICKUP_STATES" default:"DELHI,UTTAR PRADESH,HARYANA,BIHAR,WEST BENGAL"`
}

// RatesConfig tunes the rate resolver and its store.
type RatesConfig struct {
	// Store selects the rate table backend: memory or postgres.
	Store string `mapstructure:"RATE_STORE" default:"memory"`
	// CacheTTL is how long a slab list stays cached in Redis.
	CacheTTL time.Duration `mapstructure:"RATE_CACHE_TTL" default:"5m"`
	// BulkConcurrency caps parallel lookups in a bulk request.
	BulkConcurrency int `mapstructure:"RATE_BULK_CONCURRENCY" default:"8"`
	// SeedDefaults upserts the default rate grid on startup.
	SeedDefaults bool `mapstructure:"RATE_SEED_DEFAULTS" default:"false"`
}

// DatabaseConfig holds database connection details.
type DatabaseConfig struct {
	// DSN is the PostgreSQL connection string.
	DSN string `mapstructure:"DB_DSN"`
	// MaxOpenConns limits open connections in the pool.
	MaxOpenConns int `mapstructure:"DB_MAX_OPEN_CONNS" default:"20"`
	// MaxIdleConns limits idle connections in the pool.
	MaxIdleConns int `mapstructure:"DB_MAX_IDLE_CONNS" default:"5"`
	// AutoMigrate creates the rate table on startup.
	AutoMigrate bool `mapstructure:"DB_AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds the Redis connection URL. Empty disables caching.
type RedisConfig struct {
	URL string `mapstructure:"REDIS_URL"`
}

// PickupStateList returns the configured pickup states, upper-cased.
func (p PincodeConfig) PickupStateList() []string {
	var states []string
	for _, s := range strings.Split(p.PickupStates, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			states = append(states, s)
		}
	}
	return states
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate checks cross-field rules the tags cannot express.
func validate(cfg *AppConfig) error {
	switch cfg.Rates.Store {
	case StoreMemory:
	case StorePostgres:
		if cfg.Database.DSN == "" {
			return fmt.Errorf("missing required configuration: DB_DSN (RATE_STORE=%s)", StorePostgres)
		}
	default:
		return fmt.Errorf("invalid RATE_STORE %q: must be %s or %s", cfg.Rates.Store, StoreMemory, StorePostgres)
	}
	if cfg.Rates.BulkConcurrency < 1 {
		return fmt.Errorf("invalid RATE_BULK_CONCURRENCY %d: must be at least 1", cfg.Rates.BulkConcurrency)
	}
	return nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
