package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/campusplan/timegrid/core/schedule"
	"github.com/campusplan/timegrid/core/timegrid"
)

// Config is the full service configuration: where courses come from, where
// the workbook goes, the teaching calendar, the scheduling knobs and the
// outcome store.
type Config struct {
	// InputPath is the course offerings file (xlsx, csv or tab-separated).
	InputPath string `json:"input_path"`
	// OutputPath is the timetable workbook written after a run.
	OutputPath string `json:"output_path"`

	Calendar timegrid.CalendarConfig `json:"calendar"`
	Schedule schedule.Config         `json:"schedule"`
	Outcomes OutcomesConfig          `json:"outcomes"`
	Metrics  MetricsConfig           `json:"metrics"`
}

// Load reads the configuration file at path, applies TG_ environment
// overrides (TG_SCHEDULE__SEED=42 sets schedule.seed) and validates the
// result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("TG_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "tg_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every unset field across the nested sections.
func (c *Config) SetDefaults() {
	if c.OutputPath == "" {
		c.OutputPath = "timetable.xlsx"
	}
	c.Calendar.SetDefaults()
	c.Schedule.SetDefaults()
	c.Outcomes.SetDefaults()
	c.Metrics.SetDefaults()
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input_path is required")
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if err := c.Outcomes.Validate(); err != nil {
		return fmt.Errorf("outcomes: %w", err)
	}
	return nil
}
