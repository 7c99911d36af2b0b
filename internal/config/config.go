package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/ripper/internal/logger"
	"github.com/harrison/ripper/internal/rules"
	"gopkg.in/yaml.v3"
)

// DefaultPreamble is written at the top of every artifact.
const DefaultPreamble = "# System: You are a helpful assistant. The following content is project-related information that should be used to assist in development.\n\n"

// DefaultOutputSuffix is appended to the project display name to form the artifact name.
const DefaultOutputSuffix = "_ripped.txt"

// Config represents ripper configuration options
type Config struct {
	// ConfigFiles are exact file names always placed in the configuration section
	ConfigFiles []string `yaml:"config_files"`

	// Extensions are file extensions (with leading dot) placed in the project section
	Extensions []string `yaml:"extensions"`

	// Preamble is the fixed text written before the header line
	Preamble string `yaml:"preamble"`

	// OutputSuffix is appended to the project display name
	OutputSuffix string `yaml:"output_suffix"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in rule set and preamble
func DefaultConfig() *Config {
	return &Config{
		ConfigFiles: []string{
			"requirements.txt",
			"settings.json",
			"config.yaml",
			"hyperparameters.json",
			"settings.py",
		},
		Extensions:   []string{".py", ".txt", ".json", ".md"},
		Preamble:     DefaultPreamble,
		OutputSuffix: DefaultOutputSuffix,
		LogLevel:     "info",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers distinguish "absent" from "set to empty"
	type yamlConfig struct {
		ConfigFiles  []string `yaml:"config_files"`
		Extensions   []string `yaml:"extensions"`
		Preamble     *string  `yaml:"preamble"`
		OutputSuffix string   `yaml:"output_suffix"`
		LogLevel     string   `yaml:"log_level"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.ConfigFiles != nil {
		cfg.ConfigFiles = yamlCfg.ConfigFiles
	}
	if yamlCfg.Extensions != nil {
		cfg.Extensions = yamlCfg.Extensions
	}
	// An explicit empty preamble is allowed
	if yamlCfg.Preamble != nil {
		cfg.Preamble = *yamlCfg.Preamble
	}
	if yamlCfg.OutputSuffix != "" {
		cfg.OutputSuffix = yamlCfg.OutputSuffix
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .ripper/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".ripper", "config.yaml"))
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.OutputSuffix == "" {
		return fmt.Errorf("output_suffix cannot be empty")
	}
	if strings.ContainsAny(c.OutputSuffix, `/\`) {
		return fmt.Errorf("output_suffix %q must not contain a path separator", c.OutputSuffix)
	}

	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	for i, ext := range c.Extensions {
		if strings.Trim(ext, ".") == "" {
			return fmt.Errorf("extensions[%d] is empty", i)
		}
	}
	for i, name := range c.ConfigFiles {
		if name == "" {
			return fmt.Errorf("config_files[%d] is empty", i)
		}
	}

	return nil
}

// RuleSet builds the immutable selection rules from the configuration
func (c *Config) RuleSet() rules.RuleSet {
	return rules.New(c.ConfigFiles, c.Extensions)
}
