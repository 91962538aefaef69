package config

import (
	"os"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	for _, k := range []string{"DAYLIO_DB_DRIVER", "DAYLIO_HTTP_PORT", "DAYLIO_SQLITE_PATH", "DAYLIO_LOG_LEVEL"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Fatalf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.SQLitePath != "data/daylio.db" {
		t.Fatalf("SQLitePath = %q", cfg.SQLitePath)
	}
	if cfg.MaxImportBytes != 32<<20 {
		t.Fatalf("MaxImportBytes = %d", cfg.MaxImportBytes)
	}
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("DAYLIO_DB_DRIVER", "postgres")
	t.Setenv("DAYLIO_POSTGRES_DSN", "postgres://u:p@localhost:5432/daylio")
	t.Setenv("DAYLIO_HTTP_PORT", "9191")
	t.Setenv("DAYLIO_BACKUP_PATH", "/tmp/backup.daylio")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.DBDriver != DriverPostgres || cfg.HTTPPort != 9191 || cfg.BackupPath != "/tmp/backup.daylio" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.GetHTTPAddr() != ":9191" {
		t.Fatalf("GetHTTPAddr = %q", cfg.GetHTTPAddr())
	}
}

func TestResolveDefaults_Errors(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown driver":       func(c *Config) { c.DBDriver = "mysql" },
		"postgres without dsn": func(c *Config) { c.DBDriver = DriverPostgres; c.PostgresDSN = "" },
		"sqlite without path":  func(c *Config) { c.SQLitePath = "" },
		"bad log level":        func(c *Config) { c.LogLevel = "loud" },
		"bad port":             func(c *Config) { c.HTTPPort = 70000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewForTesting()
			mutate(cfg)
			if err := cfg.ResolveDefaults(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	if !cfg.IsTesting() || cfg.IsProduction() {
		t.Fatalf("unexpected environment %q", cfg.Environment)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("ResolveDefaults: %v", err)
	}
}
