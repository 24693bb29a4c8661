package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvPipelineHistoryLimit = "VENDORMAIL_PIPELINE_HISTORY_LIMIT"
	EnvPipelineRetrievalK   = "VENDORMAIL_PIPELINE_RETRIEVAL_K"
)

// PipelineConfig holds workflow tuning values.
type PipelineConfig struct {
	HistoryLimit int `toml:"history_limit"`
	RetrievalK   int `toml:"retrieval_k"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.HistoryLimit != 0 {
		c.HistoryLimit = overlay.HistoryLimit
	}
	if overlay.RetrievalK != 0 {
		c.RetrievalK = overlay.RetrievalK
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 5
	}
	if c.RetrievalK == 0 {
		c.RetrievalK = 3
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineHistoryLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HistoryLimit = n
		}
	}
	if v := os.Getenv(EnvPipelineRetrievalK); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RetrievalK = n
		}
	}
}

func (c *PipelineConfig) validate() error {
	if c.HistoryLimit < 1 {
		return fmt.Errorf("invalid history_limit: %d", c.HistoryLimit)
	}
	if c.RetrievalK < 1 {
		return fmt.Errorf("invalid retrieval_k: %d", c.RetrievalK)
	}
	return nil
}
