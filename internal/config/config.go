// Package config loads the explorer configuration from the environment.
//
// Variables use the EXPLORER_ prefix and a double underscore for nesting,
// e.g. EXPLORER_DATABASE__HOST -> database.host. A `.env` file in the working
// directory is loaded first when present.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	envPrefix   = "EXPLORER_"
	serviceName = "block-explorer"
)

// Config is the root configuration object. Observability is optional and
// filled with defaults when absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Cache         CacheConfig          `koanf:"cache"`
	Job           JobConfig            `koanf:"job"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig timeouts are in seconds. RateLimit is requests per second per
// client IP, with RateBurst extra requests allowed in a spike.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	RateLimit          float64  `koanf:"rate_limit" validate:"gte=0"`
	RateBurst          int      `koanf:"rate_burst" validate:"gte=0"`
}

// DatabaseConfig holds the PostgreSQL connection and pool settings.
// ConnMaxLifetime and ConnMaxIdleTime are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig Address is "host:port". It backs both the cache and the job queue.
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// CacheConfig controls how long explorer lookups stay in Redis.
// Immutable entities (blocks, transactions, snapshots by hash or height) use
// TTL; the moving "latest" snapshot uses LatestTTL.
type CacheConfig struct {
	TTL       time.Duration `koanf:"ttl"`
	LatestTTL time.Duration `koanf:"latest_ttl"`
}

// JobConfig sizes the background worker.
type JobConfig struct {
	Concurrency int `koanf:"concurrency"`
}

// LoadConfig loads, validates and defaults the configuration. It exits the
// process on any failure.
func LoadConfig() (*Config, error) {
	return loadConfig()
}

func loadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		key = strings.ReplaceAll(key, "__", ".")

		// Comma separated values become lists (cors origins, checks).
		if strings.Contains(value, ",") {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load initial env variables")
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal main config")
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	return mainConfig, nil
}

// Validate checks required fields, fills optional blocks with defaults and
// validates the observability settings.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	c.applyDefaults()

	return c.Observability.Validate()
}

func (c *Config) applyDefaults() {
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 24 * time.Hour
	}
	if c.Cache.LatestTTL <= 0 {
		c.Cache.LatestTTL = 5 * time.Second
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 20
	}
	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = 40
	}
	if c.Job.Concurrency <= 0 {
		c.Job.Concurrency = 4
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config.
	c.Observability.ServiceName = serviceName
	c.Observability.Environment = c.Primary.Env
}

// IsLocal reports whether the service runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
