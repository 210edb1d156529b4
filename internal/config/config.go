package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
)

type StoreConfig struct {
	Driver    string
	SQLiteDSN string
	RedisURL  string
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type Config struct {
	Port            int
	Environment     string
	Store           StoreConfig
	RateLimit       RateLimitConfig
	SessionCacheTTL time.Duration
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from the environment. Every knob has a default so
// the service boots with no environment at all: memory store, port 3000.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 3000)
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("SQLITE_DSN", "file:kerbside.db?cache=shared")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("RATE_LIMIT", 0)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	v.SetDefault("SESSION_CACHE_TTL", time.Duration(0))

	cfg := Config{
		Port:        v.GetInt("PORT"),
		Environment: strings.TrimSpace(v.GetString("ENVIRONMENT")),
		Store: StoreConfig{
			Driver:    strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			SQLiteDSN: v.GetString("SQLITE_DSN"),
			RedisURL:  v.GetString("REDIS_URL"),
		},
		RateLimit: RateLimitConfig{
			Limit:  v.GetInt("RATE_LIMIT"),
			Window: v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		SessionCacheTTL: v.GetDuration("SESSION_CACHE_TTL"),
	}

	switch cfg.Store.Driver {
	case StoreDriverMemory, StoreDriverSQLite, StoreDriverRedis:
	default:
		return Config{}, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
