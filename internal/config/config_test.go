package config

import (
	"testing"
	"time"

	"ingressos_checkout/internal/domain/entities"
)

func TestParseEnvironment(t *testing.T) {
	cases := map[string]entities.Environment{
		"":            entities.EnvironmentTest,
		"test":        entities.EnvironmentTest,
		"sandbox":     entities.EnvironmentTest,
		" Production": entities.EnvironmentProduction,
		"prod":        entities.EnvironmentProduction,
	}
	for in, want := range cases {
		if got := ParseEnvironment(in); got != want {
			t.Fatalf("ParseEnvironment(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BASE_URL", "https://ingressos.example.com/")
	t.Setenv("MERCADOPAGO_ENVIRONMENT", "production")
	t.Setenv("MERCADOPAGO_TEST_ACCESS_TOKEN", "TEST-abc")
	t.Setenv("MERCADOPAGO_PROD_ACCESS_TOKEN", "APP_USR-xyz")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "yes")
	t.Setenv("STATUS_CACHE_TTL", "30s")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "42")

	cfg := Load()
	if cfg.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.BaseURL != "https://ingressos.example.com" {
		t.Fatalf("expected trimmed base url, got %q", cfg.BaseURL)
	}
	if cfg.Gateway.Environment != entities.EnvironmentProduction || cfg.Gateway.UseTestCredentials() {
		t.Fatalf("expected production environment")
	}
	if cfg.Gateway.ActiveCredentials().AccessToken != "APP_USR-xyz" {
		t.Fatalf("expected production token, got %q", cfg.Gateway.ActiveCredentials().AccessToken)
	}
	if !cfg.Gateway.MockMode {
		t.Fatalf("expected mock mode from MERCADOPAGO_MOCK")
	}
	if cfg.Redis.StatusTTL != 30*time.Second {
		t.Fatalf("unexpected ttl: %v", cfg.Redis.StatusTTL)
	}
	if cfg.Telegram.AdminChatID != 42 {
		t.Fatalf("unexpected chat id: %d", cfg.Telegram.AdminChatID)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("MERCADOPAGO_ENVIRONMENT", "")
	t.Setenv("MERCADOPAGO_TEST_ACCESS_TOKEN", "TEST-abc")
	t.Setenv("STATUS_CACHE_TTL", "-1s")

	cfg := Load()
	if cfg.Port != defaultPort {
		t.Fatalf("expected default port, got %d", cfg.Port)
	}
	if !cfg.Gateway.UseTestCredentials() || cfg.Gateway.ActiveCredentials().AccessToken != "TEST-abc" {
		t.Fatalf("expected test credentials by default")
	}
	if cfg.Redis.StatusTTL != defaultStatusTTL {
		t.Fatalf("expected default ttl, got %v", cfg.Redis.StatusTTL)
	}
}
