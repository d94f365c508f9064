package config

import "fmt"

// OutcomesConfig selects the outcome store backend.
type OutcomesConfig struct {
	// Backend is one of "jsonl", "sqlite" or "none".
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

func (c *OutcomesConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		switch c.Backend {
		case "jsonl":
			c.Path = "outcomes.jsonl"
		case "sqlite":
			c.Path = "outcomes.db"
		}
	}
}

func (c *OutcomesConfig) Validate() error {
	switch c.Backend {
	case "jsonl", "sqlite", "none":
		return nil
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":9090"
	}
}
