// Package config loads application configuration from the environment, with
// an optional .env file for local development. Secrets (gateway API keys, the
// webhook hash, the JWT secret) are held on the config struct and handed to
// components at construction time; nothing reads ambient environment at call
// time.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DBConfig holds the database connection settings.
type DBConfig struct {
	Url string `envconfig:"URL"`
}

// JwtConfig holds token signing settings. Tokens expire after 24 hours by
// default, matching the session lifetime the API advertises.
type JwtConfig struct {
	Secret string        `envconfig:"SECRET_KEY" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// GatewayConfig holds the payment gateway credentials and webhook secret.
type GatewayConfig struct {
	BaseURL       string        `envconfig:"BASE_URL" default:"https://api.flutterwave.com/v3"`
	PublicKey     string        `envconfig:"PUBLIC_KEY"`
	SecretKey     string        `envconfig:"SECRET_KEY"`
	EncryptionKey string        `envconfig:"ENCRYPTION_KEY"`
	SecretHash    string        `envconfig:"SECRET_HASH"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	// VerifyRetries bounds retries on idempotent verify/get calls only.
	// Charge initiation is never retried.
	VerifyRetries int `envconfig:"VERIFY_RETRIES" default:"2"`
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// AppConfig is the root configuration object.
type AppConfig struct {
	Env       string          `envconfig:"APP_ENV" default:"development"`
	Host      string          `envconfig:"APP_HOST" default:"localhost"`
	Port      int             `envconfig:"APP_PORT" default:"3000"`
	Currency  string          `envconfig:"APP_CURRENCY" default:"NGN"`
	DB        DBConfig        `envconfig:"DATABASE"`
	Jwt       JwtConfig       `envconfig:"JWT"`
	Gateway   GatewayConfig   `envconfig:"FLW"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
}

// Load reads the optional .env file then processes environment variables.
func Load(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("No .env file found, using system environment variables")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"port", cfg.Port,
		"jwt_expiry", cfg.Jwt.Expiry,
		"gateway_base_url", cfg.Gateway.BaseURL,
		"gateway_public_key", maskKey(cfg.Gateway.PublicKey),
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

func maskKey(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
