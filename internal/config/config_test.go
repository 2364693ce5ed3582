package config

import (
	"errors"
	"testing"
	"time"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.APIPort)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.DBDriver)
	}
	if cfg.DBPath != "./data/ledger.db" {
		t.Errorf("unexpected DB path %q", cfg.DBPath)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h TTL, got %v", cfg.TokenTTL)
	}
	if !cfg.MetricsEnabled {
		t.Error("expected metrics to be enabled by default")
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
}

func TestFromEnv_Driver(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    string
		wantErr bool
	}{
		{"postgres url selects postgres", map[string]string{"DATABASE_URL": "postgres://u:p@localhost/ledger"}, DriverPostgres, false},
		{"explicit sqlite wins", map[string]string{"DB_DRIVER": "sqlite", "DATABASE_URL": "postgres://x"}, DriverSQLite, false},
		{"alias", map[string]string{"DB_DRIVER": "postgresql", "DATABASE_URL": "postgres://x"}, DriverPostgres, false},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}, "", true},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(envOf(tt.env))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DBDriver != tt.want {
				t.Errorf("expected %q, got %q", tt.want, cfg.DBDriver)
			}
		})
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	for _, env := range []map[string]string{
		{"API_PORT": "http"},
		{"API_PORT": "70000"},
		{"TOKEN_TTL": "forever"},
		{"METRICS_ENABLED": "maybe"},
	} {
		if _, err := FromEnv(envOf(env)); err == nil {
			t.Errorf("expected error for %v", env)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInsecureSecret) {
		t.Errorf("expected ErrInsecureSecret, got %v", err)
	}

	cfg.DevMode = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("dev mode should accept the default secret: %v", err)
	}

	cfg, _ = FromEnv(envOf(map[string]string{"JWT_SECRET": "s3cret"}))
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
