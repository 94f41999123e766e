package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	BcryptCost int `env:"BCRYPT_COST, default=10"`

	JWT   JWTConfig
	Login LoginConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// JWTConfig is the token trust domain: issuer, validity window, signing key.
// The secret has no default on purpose — production deployments must supply
// it explicitly.
type JWTConfig struct {
	Issuer     string `env:"JWT_ISSUER,      default=placemat-core"`
	TTLSeconds int    `env:"JWT_TTL_SECONDS, default=3600"`
	Secret     string `env:"JWT_SECRET"`
}

// LoginConfig bounds login attempts per username per fixed window.
type LoginConfig struct {
	MaxAttempts   int `env:"LOGIN_MAX_ATTEMPTS,   default=10"`
	WindowSeconds int `env:"LOGIN_WINDOW_SECONDS, default=60"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=placemat"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsDevelopment reports whether the dev-only behaviour (seeding, generated
// signing secret) is allowed.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate enforces the settings that must not fall back to a default.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" && !c.IsDevelopment() {
		return errors.New("JWT_SECRET is required outside development")
	}
	if c.JWT.TTLSeconds <= 0 {
		return errors.New("JWT_TTL_SECONDS must be positive")
	}
	return nil
}
