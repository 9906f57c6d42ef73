package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/coercekit/internal/errors"
	"github.com/mcncl/coercekit/internal/models"
	"github.com/mcncl/coercekit/internal/report"
)

// Config represents the complete configuration for coercekit
type Config struct {
	Categories []string     `yaml:"categories"`
	Probes     []string     `yaml:"probes"`
	Format     string       `yaml:"format"`
	Output     string       `yaml:"output"`
	Skip       []SkipRule   `yaml:"skip"`
	Export     ExportConfig `yaml:"export"`
	Dev        DevConfig    `yaml:"dev"`
}

// SkipRule excludes cases whose label matches Pattern from runs
type SkipRule struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// ExportConfig controls Go fixture export
type ExportConfig struct {
	Package string `yaml:"package"`
	Output  string `yaml:"output"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Overrides holds values given on the command line. Zero values leave the
// file's settings alone.
type Overrides struct {
	Categories []string
	Probes     []string
	Format     string
	Output     string
	Package    string
	Debug      bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: report.FormatText,
		Export: ExportConfig{
			Package: "fixtures",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".coercekit.yml", ".coercekit.yaml", "coercekit.yml", "coercekit.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

func (c *Config) compilePatterns() error {
	for i := range c.Skip {
		rule := &c.Skip[i]
		regex, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return errors.NewConfigError(fmt.Sprintf("invalid skip pattern '%s'", rule.Pattern), err)
		}
		rule.regex = regex
	}
	return nil
}

// MatchesLabel checks if this rule matches the given case label
func (r *SkipRule) MatchesLabel(label string) bool {
	if r.regex == nil {
		regex, err := regexp.Compile(r.Pattern)
		if err != nil {
			return false
		}
		r.regex = regex
	}
	return r.regex.MatchString(label)
}

// SkipCase reports whether a case label matches any skip rule
func (c *Config) SkipCase(label string) bool {
	for i := range c.Skip {
		if c.Skip[i].MatchesLabel(label) {
			return true
		}
	}
	return false
}

// Validate checks category names and the output format
func (c *Config) Validate() error {
	if _, err := c.Targets(); err != nil {
		return err
	}
	if _, ok := report.ParseFormat(c.Format); !ok {
		return errors.NewConfigError(
			fmt.Sprintf("unknown format %q (expected one of %s)", c.Format, strings.Join(report.Formats, ", ")),
			errors.ErrNoSuchFormat,
		)
	}
	return nil
}

// Targets resolves the configured category names. No names selects every
// category.
func (c *Config) Targets() ([]models.TargetType, error) {
	if len(c.Categories) == 0 {
		return nil, nil
	}
	targets := make([]models.TargetType, 0, len(c.Categories))
	for _, name := range c.Categories {
		t, ok := models.ParseTargetType(name)
		if !ok {
			return nil, errors.NewCategoryError(fmt.Sprintf("unknown category %q", name), errors.ErrNoSuchCategory)
		}
		if !slices.Contains(targets, t) {
			targets = append(targets, t)
		}
	}
	return targets, nil
}

// ApplyOverrides copies non-empty command line values over the config
func (c *Config) ApplyOverrides(o Overrides) {
	if len(o.Categories) > 0 {
		c.Categories = o.Categories
	}
	if len(o.Probes) > 0 {
		c.Probes = o.Probes
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Package != "" {
		c.Export.Package = o.Package
	}
	// A flag can only switch debug on.
	if o.Debug {
		c.Dev.Debug = true
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
