package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Mossaka/hevy-visualization/internal/analysis"
)

type Config struct {
	Server    ServerConfig        `yaml:"server"`
	Tailscale TailscaleConfig     `yaml:"tailscale"`
	Data      DataConfig          `yaml:"data"`
	Report    ReportConfig        `yaml:"report"`
	Goals     analysis.GoalConfig `yaml:"goals"`
	Lifts     []analysis.LiftRule `yaml:"lifts"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type DataConfig struct {
	// Dir holds the Hevy CSV exports.
	Dir string `yaml:"dir"`
}

type ReportConfig struct {
	// OutputDir receives the derived JSON documents.
	OutputDir string `yaml:"output_dir"`
}

// AnalysisOptions converts config into dataset derivation options.
func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		Lifts: c.Lifts,
		Goals: c.Goals,
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix HEVYVIZ_ and underscore-separated paths:
//
//	HEVYVIZ_SERVER_HOST, HEVYVIZ_SERVER_PORT,
//	HEVYVIZ_TS_HOSTNAME, HEVYVIZ_TS_STATE_DIR,
//	HEVYVIZ_DATA_DIR, HEVYVIZ_REPORT_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HEVYVIZ_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HEVYVIZ_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HEVYVIZ_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("HEVYVIZ_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("HEVYVIZ_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("HEVYVIZ_REPORT_DIR"); v != "" {
		cfg.Report.OutputDir = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "report"
	}
	if cfg.Goals == (analysis.GoalConfig{}) {
		cfg.Goals = analysis.DefaultGoals()
	}
	if len(cfg.Lifts) == 0 {
		cfg.Lifts = analysis.DefaultLifts()
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if c.Goals.ImprovementFactor <= 1 {
		return fmt.Errorf("goals.improvement_factor must be greater than 1")
	}
	for _, l := range c.Lifts {
		if l.Name == "" || l.Contains == "" {
			return fmt.Errorf("every lift needs a name and a contains pattern")
		}
	}
	return nil
}
