package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"ingressos_checkout/internal/domain/entities"
)

// Config is built once at startup and passed explicitly into constructors.
// Nothing in the service reads the gateway environment after this point.
//
// Supported env vars:
//   - PORT (default: 8080)
//   - BASE_URL (frontend origin used in back URLs)
//   - MERCADOPAGO_ENVIRONMENT (test|production, default: test)
//   - MERCADOPAGO_TEST_ACCESS_TOKEN / MERCADOPAGO_TEST_PUBLIC_KEY
//   - MERCADOPAGO_PROD_ACCESS_TOKEN / MERCADOPAGO_PROD_PUBLIC_KEY
//   - MERCADOPAGO_NOTIFICATION_URL, MERCADOPAGO_WEBHOOK_SECRET
//   - PAYMENT_GATEWAY_MOCK / MERCADOPAGO_MOCK
//   - DATABASE_URL or DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME
//   - REDIS_ADDR, REDIS_PASSWORD, STATUS_CACHE_TTL
//   - AUTH_JWT_SECRET
//   - TELEGRAM_TOKEN, TELEGRAM_ADMIN_CHAT_ID
type Config struct {
	Port     int
	BaseURL  string
	Gateway  GatewayConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Telegram TelegramConfig
}

type Credentials struct {
	AccessToken string
	PublicKey   string
}

type GatewayConfig struct {
	Environment     entities.Environment
	Test            Credentials
	Production      Credentials
	NotificationURL string
	WebhookSecret   string
	MockMode        bool
	PixExpiration   time.Duration
}

// ActiveCredentials returns the credential pair of the configured environment.
// Test and production credentials are never mixed.
func (g GatewayConfig) ActiveCredentials() Credentials {
	if g.Environment == entities.EnvironmentProduction {
		return g.Production
	}
	return g.Test
}

func (g GatewayConfig) UseTestCredentials() bool {
	return g.Environment != entities.EnvironmentProduction
}

type PostgresConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr      string
	Password  string
	StatusTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type TelegramConfig struct {
	Token       string
	AdminChatID int64
}

const (
	defaultPort          = 8080
	defaultBaseURL       = "http://localhost:5173"
	defaultStatusTTL     = 10 * time.Second
	defaultPixExpiration = 30 * time.Minute
)

func Load() Config {
	return Config{
		Port:    getenvInt("PORT", defaultPort),
		BaseURL: strings.TrimRight(getenvDefault("BASE_URL", defaultBaseURL), "/"),
		Gateway: GatewayConfig{
			Environment: ParseEnvironment(os.Getenv("MERCADOPAGO_ENVIRONMENT")),
			Test: Credentials{
				AccessToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_ACCESS_TOKEN")),
				PublicKey:   strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PUBLIC_KEY")),
			},
			Production: Credentials{
				AccessToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_PROD_ACCESS_TOKEN")),
				PublicKey:   strings.TrimSpace(os.Getenv("MERCADOPAGO_PROD_PUBLIC_KEY")),
			},
			NotificationURL: strings.TrimSpace(os.Getenv("MERCADOPAGO_NOTIFICATION_URL")),
			WebhookSecret:   strings.TrimSpace(os.Getenv("MERCADOPAGO_WEBHOOK_SECRET")),
			MockMode:        IsPaymentGatewayMockEnabled(),
			PixExpiration:   getenvDuration("PIX_EXPIRATION", defaultPixExpiration),
		},
		Postgres: PostgresConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getenvDefault("DB_HOST", "localhost"),
			Port:     getenvDefault("DB_PORT", "5432"),
			User:     getenvDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getenvDefault("DB_NAME", "postgres"),
		},
		Redis: RedisConfig{
			Addr:      os.Getenv("REDIS_ADDR"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			StatusTTL: getenvDuration("STATUS_CACHE_TTL", defaultStatusTTL),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		},
		Telegram: TelegramConfig{
			Token:       os.Getenv("TELEGRAM_TOKEN"),
			AdminChatID: int64(getenvInt("TELEGRAM_ADMIN_CHAT_ID", 0)),
		},
	}
}

// ParseEnvironment maps the env flag to an environment; anything that is not
// explicitly production falls back to test.
func ParseEnvironment(v string) entities.Environment {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "production", "prod", "live":
		return entities.EnvironmentProduction
	}
	return entities.EnvironmentTest
}

func IsPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
