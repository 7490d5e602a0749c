package database

import (
	"testing"

	appconfig "ingressos_checkout/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

func TestPostgresDSN(t *testing.T) {
	cfg := appconfig.PostgresConfig{Host: "db", Port: "5432", User: "app", Password: "secret", DBName: "ingressos"}
	if got := PostgresDSN(cfg); got != "postgres://app:secret@db:5432/ingressos?sslmode=disable" {
		t.Fatalf("unexpected dsn: %s", got)
	}

	cfg.URL = "postgres://supabase/db?sslmode=require"
	if got := PostgresDSN(cfg); got != cfg.URL {
		t.Fatalf("DATABASE_URL must win, got %s", got)
	}
}

func TestDynamoEndpointOption(t *testing.T) {
	var o dynamodb.Options
	dynamoEndpointOption("http://localhost:8000")(&o)
	if aws.ToString(o.BaseEndpoint) != "http://localhost:8000" {
		t.Fatalf("unexpected endpoint: %v", o.BaseEndpoint)
	}

	var untouched dynamodb.Options
	dynamoEndpointOption("")(&untouched)
	if untouched.BaseEndpoint != nil {
		t.Fatalf("empty endpoint must keep the default resolver")
	}
}
