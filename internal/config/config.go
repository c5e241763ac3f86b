package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/zrecon/internal/importer"
)

// FileName is the config file looked up in a project directory.
const FileName = "zrecon.yaml"

// Config represents the top-level zrecon.yaml configuration.
type Config struct {
	Input   InputConfig     `yaml:"input"`
	Output  OutputConfig    `yaml:"output"`
	Log     LogConfig       `yaml:"log"`
	Workers int             `yaml:"workers"`
	Formats []importer.Rule `yaml:"formats,omitempty"`
}

// InputConfig locates the statement and Z-report files.
type InputConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig controls where results go. Empty paths disable the output.
type OutputConfig struct {
	Path   string `yaml:"path,omitempty"`
	RunLog string `yaml:"run_log,omitempty"`
}

// LogConfig sets the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a zrecon.yaml file from disk. Fields missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	cfg.Formats = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = importer.DefaultRules()
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir: "import",
		},
		Output: OutputConfig{
			Path:   "reconciliation.xlsx",
			RunLog: "logs/run-log.csv",
		},
		Log: LogConfig{
			Level: "info",
		},
		Workers: 4,
		Formats: importer.DefaultRules(),
	}
}

// Registry returns the built-in normalizers dispatched by the configured
// format rules.
func (c *Config) Registry() (*importer.Registry, error) {
	r := importer.DefaultRegistry()
	if err := r.SetRules(c.Formats); err != nil {
		return nil, fmt.Errorf("loading format rules: %w", err)
	}
	return r, nil
}
