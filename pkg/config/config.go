// Package config loads proctop settings from defaults, an optional YAML file,
// and PROCTOP_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/srodi/proctop/pkg/collector/kernel"
	"github.com/srodi/proctop/pkg/collector/process"
	"github.com/srodi/proctop/pkg/types"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "PROCTOP_"

const defaultInterval = 2 * time.Second

// Config is the full runtime configuration of the proctop command.
type Config struct {
	Interval      time.Duration `yaml:"interval"`
	TopK          int           `yaml:"top_k"`
	HideKernel    bool          `yaml:"hide_kernel"`
	CommandFilter string        `yaml:"filter"`
	ProcRoot      string        `yaml:"proc_root"`
	OSReleasePath string        `yaml:"os_release_path"`
	PasswdPath    string        `yaml:"passwd_path"`
	MetricsAddr   string        `yaml:"metrics_addr"`
	LogLevel      string        `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Interval:      defaultInterval,
		TopK:          types.DefaultTopK,
		HideKernel:    true,
		ProcRoot:      kernel.DefaultProcRoot,
		OSReleasePath: kernel.DefaultOSReleasePath,
		PasswdPath:    process.DefaultPasswdPath,
		LogLevel:      zerolog.WarnLevel.String(),
	}
}

// Load returns the defaults overlaid with the YAML file at path, if path is set.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalises empty paths and top-K, and rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	if c.TopK <= 0 {
		c.TopK = 1
	}
	if c.ProcRoot == "" {
		c.ProcRoot = kernel.DefaultProcRoot
	}
	if c.OSReleasePath == "" {
		c.OSReleasePath = kernel.DefaultOSReleasePath
	}
	if c.PasswdPath == "" {
		c.PasswdPath = process.DefaultPasswdPath
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel; an empty string means warn.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, errors.Join(fmt.Errorf("invalid log level %q", c.LogLevel), err)
	}
	return lvl, nil
}
