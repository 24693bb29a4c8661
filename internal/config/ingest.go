package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvIngestDataDir   = "VENDORMAIL_INGEST_DATA_DIR"
	EnvIngestOnStartup = "VENDORMAIL_INGEST_ON_STARTUP"
)

// IngestConfig holds data ingestion settings.
type IngestConfig struct {
	// DataDir is the directory holding the ledger CSV, email archive CSV,
	// and policy PDF.
	DataDir string `toml:"data_dir"`
	// OnStartup triggers a full ingest when the server starts.
	OnStartup bool `toml:"on_startup"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *IngestConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *IngestConfig) Merge(overlay *IngestConfig) {
	if overlay.DataDir != "" {
		c.DataDir = overlay.DataDir
	}
	if overlay.OnStartup {
		c.OnStartup = true
	}
}

func (c *IngestConfig) loadDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data/raw"
	}
}

func (c *IngestConfig) loadEnv() {
	if v := os.Getenv(EnvIngestDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvIngestOnStartup); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.OnStartup = b
		}
	}
}

func (c *IngestConfig) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir required")
	}
	return nil
}
