// Package config loads application configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// DatabasePath is the sqlite store holding the catalog, conversion
	// table, customers and the processed-order registry.
	DatabasePath string `yaml:"database_path"`
	// CatalogTTL controls how long the in-memory catalog snapshot is
	// trusted before a resolution call reloads it. Go duration string.
	CatalogTTL string `yaml:"catalog_ttl"`
	// OutputDir receives generated XLSX files.
	OutputDir string `yaml:"output_dir"`
	// ServerAddr is the HTTP listen address for serve mode.
	ServerAddr string `yaml:"server_addr"`
	// VendorCode/VendorName identify us on every exported row.
	VendorCode string `yaml:"vendor_code"`
	VendorName string `yaml:"vendor_name"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Load reads the config file at path (missing file means defaults), then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DatabasePath: "./orders.db",
		CatalogTTL:   "30m",
		OutputDir:    ".",
		ServerAddr:   ":8080",
		VendorCode:   "HOC",
		VendorName:   "Harvest Oak Catering Supplies",
		LogLevel:     "info",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %q: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	cfg.DatabasePath = getEnv("PO_DB_PATH", cfg.DatabasePath)
	cfg.CatalogTTL = getEnv("PO_CATALOG_TTL", cfg.CatalogTTL)
	cfg.OutputDir = getEnv("PO_OUTPUT_DIR", cfg.OutputDir)
	cfg.ServerAddr = getEnv("PO_SERVER_ADDR", cfg.ServerAddr)
	cfg.VendorCode = getEnv("PO_VENDOR_CODE", cfg.VendorCode)
	cfg.VendorName = getEnv("PO_VENDOR_NAME", cfg.VendorName)
	cfg.LogLevel = getEnv("PO_LOG_LEVEL", cfg.LogLevel)
	return cfg, nil
}

// CatalogTTLDuration parses the configured TTL, falling back to 30 minutes
// on a malformed value.
func (c *Config) CatalogTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CatalogTTL)
	if err != nil || d < 0 {
		return 30 * time.Minute
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
