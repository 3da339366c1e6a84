package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabasePath != "./orders.db" {
		t.Errorf("database path: got %q, want %q", cfg.DatabasePath, "./orders.db")
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("server addr: got %q, want %q", cfg.ServerAddr, ":8080")
	}
	if cfg.VendorCode != "HOC" {
		t.Errorf("vendor code: got %q, want %q", cfg.VendorCode, "HOC")
	}
	if cfg.CatalogTTLDuration() != 30*time.Minute {
		t.Errorf("catalog ttl: got %s, want 30m", cfg.CatalogTTLDuration())
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `database_path: /var/lib/po/orders.db
catalog_ttl: 5m
server_addr: ":9090"
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabasePath != "/var/lib/po/orders.db" {
		t.Errorf("database path: got %q", cfg.DatabasePath)
	}
	if cfg.CatalogTTLDuration() != 5*time.Minute {
		t.Errorf("catalog ttl: got %s, want 5m", cfg.CatalogTTLDuration())
	}
	if cfg.ServerAddr != ":9090" {
		t.Errorf("server addr: got %q, want %q", cfg.ServerAddr, ":9090")
	}
	// Values the file omits keep their defaults.
	if cfg.VendorName != "Harvest Oak Catering Supplies" {
		t.Errorf("vendor name: got %q", cfg.VendorName)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PO_DB_PATH", "/tmp/env.db")
	t.Setenv("PO_CATALOG_TTL", "1h")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabasePath != "/tmp/env.db" {
		t.Errorf("database path: got %q, want %q", cfg.DatabasePath, "/tmp/env.db")
	}
	if cfg.CatalogTTLDuration() != time.Hour {
		t.Errorf("catalog ttl: got %s, want 1h", cfg.CatalogTTLDuration())
	}
}

func TestCatalogTTLDurationFallback(t *testing.T) {
	cfg := &Config{CatalogTTL: "soon"}
	if cfg.CatalogTTLDuration() != 30*time.Minute {
		t.Errorf("got %s, want 30m fallback", cfg.CatalogTTLDuration())
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
