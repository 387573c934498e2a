package config

import (
	"errors"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "founder-match")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Store.Driver != StorePostgres {
		t.Fatalf("expected postgres store, got %q", cfg.Store.Driver)
	}
	if cfg.Matching.Weights.Threshold != 30 || cfg.Matching.Weights.Skills != 40 {
		t.Fatalf("unexpected matching defaults: %+v", cfg.Matching.Weights)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected access expiry: %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Kafka.Enabled() {
		t.Fatalf("kafka should be disabled without brokers")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_MatchingOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MATCH_THRESHOLD", "45")
	t.Setenv("MATCH_WEIGHT_INDUSTRY", "10")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("MATCH_GENERATE_RPS", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Matching.Weights.Threshold != 45 || cfg.Matching.Weights.Industry != 10 {
		t.Fatalf("overrides not applied: %+v", cfg.Matching.Weights)
	}
	if cfg.Matching.GenerateRPS != 25 {
		t.Fatalf("expected generate rps 25, got %d", cfg.Matching.GenerateRPS)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MATCH_STORE", "cassandra")

	_, err := Load()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}

func TestLoad_MongoNeedsURI(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MATCH_STORE", "mongo")
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_AdminSeedNeedsPassword(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_EMAIL", "Ops@Founder.io")
	t.Setenv("ADMIN_PASSWORD", "")

	if _, err := Load(); !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}

	t.Setenv("ADMIN_PASSWORD", "s3cret-pass")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !cfg.Seed.HasAdmin() || cfg.Seed.AdminEmail != "ops@founder.io" {
		t.Fatalf("unexpected seed config: %+v", cfg.Seed)
	}
}
