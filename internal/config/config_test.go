package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DB.Host != "localhost" || cfg.DB.Port != "5432" {
		t.Fatalf("expected default database host/port, got %s:%s", cfg.DB.Host, cfg.DB.Port)
	}
	if cfg.MinIO.Bucket != "learnhub-media" {
		t.Fatalf("expected default bucket, got %s", cfg.MinIO.Bucket)
	}
	if cfg.JWT.ExpirationHours != 24 {
		t.Fatalf("expected default expiration of 24h, got %d", cfg.JWT.ExpirationHours)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default server port, got %s", cfg.Server.Port)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("JWT_EXPIRATION_HOURS", "72")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_BODY_LIMIT_MB", "64")

	cfg := Load()

	if cfg.DB.Host != "db.internal" || cfg.DB.Port != "6432" {
		t.Fatalf("expected overridden database host/port, got %s:%s", cfg.DB.Host, cfg.DB.Port)
	}
	if !cfg.MinIO.UseSSL {
		t.Fatalf("expected SSL enabled")
	}
	if cfg.JWT.ExpirationHours != 72 {
		t.Fatalf("expected 72h expiration, got %d", cfg.JWT.ExpirationHours)
	}
	if cfg.Server.Port != "9090" || cfg.Server.BodyLimit != 64 {
		t.Fatalf("expected overridden server settings, got %s / %d", cfg.Server.Port, cfg.Server.BodyLimit)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")
	t.Setenv("MINIO_USE_SSL", "kinda")

	cfg := Load()

	if cfg.JWT.ExpirationHours != 24 {
		t.Fatalf("expected fallback expiration, got %d", cfg.JWT.ExpirationHours)
	}
	if cfg.MinIO.UseSSL {
		t.Fatalf("expected fallback SSL setting")
	}
}

func TestPublicEndpointFallsBackToEndpoint(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio.internal:9000")

	cfg := Load()

	if cfg.MinIO.PublicEndpoint != "minio.internal:9000" {
		t.Fatalf("expected public endpoint to default to the endpoint, got %s", cfg.MinIO.PublicEndpoint)
	}
}
