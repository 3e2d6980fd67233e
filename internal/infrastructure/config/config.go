package config

import (
	"context"
	"log/slog"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// AllowReopen lets terminal claims (resolved/rejected/withdrawn)
	// be transitioned back into an open status. Off by default pending
	// product confirmation.
	AllowReopen bool `env:"ALLOW_REOPEN, default=false"`

	// SideEffectWorkers is the number of queue workers processing
	// post-commit audit/notification/cache jobs.
	SideEffectWorkers int `env:"SIDE_EFFECT_WORKERS, default=8"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=claims_core"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	// CreateClaimLimit bounds claim creations per identity per window.
	CreateClaimLimit  int `env:"RATE_LIMIT_CREATE_CLAIM,   default=5"`
	CreateClaimWindow int `env:"RATE_LIMIT_WINDOW_SECONDS, default=600"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
