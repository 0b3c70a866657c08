package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	SQLite   SQLiteConfig
	Paystack PaystackConfig
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=data/storefront.db"`
}

type PaystackConfig struct {
	SecretKey string        `env:"PAYSTACK_SECRET_KEY"`
	BaseURL   string        `env:"PAYSTACK_BASE_URL, default=https://api.paystack.co"`
	Timeout   time.Duration `env:"PAYSTACK_TIMEOUT,  default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
