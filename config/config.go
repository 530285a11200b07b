package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	HTTP      ServerConfig
	Log       LogConfig
	Stripe    StripeConfig
	Donations DonationsConfig
}

type AppConfig struct {
	ServiceName string
}

type ServerConfig struct {
	Host string
	Port string
}

type LogConfig struct {
	Level string
}

type StripeConfig struct {
	SecretKey                string
	APIBaseURL               string
	ExpandBalanceTransaction bool
	HTTPTimeout              time.Duration
}

type DonationsConfig struct {
	FullStatusMapping bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	stripeSecretKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeSecretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "donations-service"),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Stripe: StripeConfig{
			SecretKey:                stripeSecretKey,
			APIBaseURL:               getEnv("STRIPE_API_BASE_URL", ""),
			ExpandBalanceTransaction: getBoolEnv("STRIPE_EXPAND_BALANCE_TRANSACTION", false),
			HTTPTimeout:              getSecondsEnv("STRIPE_HTTP_TIMEOUT_SECONDS", 10*time.Second),
		},
		Donations: DonationsConfig{
			FullStatusMapping: getBoolEnv("DONATIONS_FULL_STATUS_MAPPING", false),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
