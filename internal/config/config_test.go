package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.DataBackend != "json" {
		t.Fatalf("default backend = %q", cfg.DataBackend)
	}
	if cfg.DataFile == "" || cfg.SQLitePath == "" {
		t.Fatal("default paths must not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BUDGETBOOK_BACKEND", "sqlite")
	t.Setenv("BUDGETBOOK_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("BUDGETBOOK_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.DataBackend != "sqlite" || cfg.SQLitePath != "/tmp/x.db" || cfg.LogLevel != "debug" {
		t.Fatalf("env not honored: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"unknown backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"empty json path", func(c *Config) { c.DataFile = "" }, "data file path"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			tc.mut(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
