// Package config loads server settings from flags, environment variables
// and an optional YAML file through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/output"
	"github.com/mj1618/windows-mcp/internal/snapshot"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. WINDOWS_MCP_CAPTURE_TIMEOUT.
const EnvPrefix = "WINDOWS_MCP"

// Capture timeouts outside this range are clamped.
const (
	MinCaptureTimeout = time.Second
	MaxCaptureTimeout = 30 * time.Second
)

// TransportType represents the MCP transport type
type TransportType string

const (
	// TransportStdio uses stdin/stdout for communication
	TransportStdio TransportType = "stdio"
	// TransportHTTP serves the streamable HTTP transport
	TransportHTTP TransportType = "streamable-http"
)

type LogConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

type ServerConfig struct {
	Transport TransportType `mapstructure:"transport" yaml:"transport"`
	Addr      string        `mapstructure:"addr"      yaml:"addr"`
}

type CaptureConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ExclusionConfig adds to the built-in shell exclusions (Excluded) and
// replaces the default avoided windows (Avoided).
type ExclusionConfig struct {
	Excluded []string `mapstructure:"excluded" yaml:"excluded"`
	Avoided  []string `mapstructure:"avoided"  yaml:"avoided"`
}

// PartitionConfig is the role table, as control type names.
type PartitionConfig struct {
	Interactive []string `mapstructure:"interactive" yaml:"interactive"`
	Informative []string `mapstructure:"informative" yaml:"informative"`
}

type ScreenshotConfig struct {
	Format  string  `mapstructure:"format"  yaml:"format"`
	Scale   float64 `mapstructure:"scale"   yaml:"scale"`
	Quality int     `mapstructure:"quality" yaml:"quality"`
}

// Config holds the configuration for the server.
type Config struct {
	Log        LogConfig        `mapstructure:"log"        yaml:"log"`
	Server     ServerConfig     `mapstructure:"server"     yaml:"server"`
	Capture    CaptureConfig    `mapstructure:"capture"    yaml:"capture"`
	Exclusion  ExclusionConfig  `mapstructure:"exclusion"  yaml:"exclusion"`
	Partition  PartitionConfig  `mapstructure:"partition"  yaml:"partition"`
	Screenshot ScreenshotConfig `mapstructure:"screenshot" yaml:"screenshot"`
	// Fixture replays a YAML desktop instead of the native platform.
	// "sample" selects the built-in one.
	Fixture string `mapstructure:"fixture" yaml:"fixture"`
}

// SetDefaults registers every key with its default. Keys must be known to
// viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	part := snapshot.DefaultPartition()
	img := output.DefaultImageOptions()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("server.transport", string(TransportStdio))
	v.SetDefault("server.addr", "127.0.0.1:8000")
	v.SetDefault("capture.timeout", snapshot.DefaultTimeout)
	v.SetDefault("exclusion.excluded", []string{})
	v.SetDefault("exclusion.avoided", snapshot.DefaultAvoided)
	v.SetDefault("partition.interactive", typeNames(part.Interactive))
	v.SetDefault("partition.informative", typeNames(part.Informative))
	v.SetDefault("screenshot.format", img.Format)
	v.SetDefault("screenshot.scale", img.Scale)
	v.SetDefault("screenshot.quality", img.Quality)
	v.SetDefault("fixture", "")
}

// Configure prepares v: defaults, environment binding, and the config file.
// An empty path looks for config.yaml in the default directory and is
// fine when none exists.
func Configure(v *viper.Viper, path string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := DefaultDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// DefaultDir is $HOME/.config/windows-mcp, or "" when there is no home.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "windows-mcp")
}

// Load decodes and validates the configuration held by v. The capture
// timeout is clamped into range.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Capture.Timeout = ClampTimeout(cfg.Capture.Timeout)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ClampTimeout bounds d to the supported capture timeout range. Zero or
// negative means the default.
func ClampTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return snapshot.DefaultTimeout
	}
	return min(max(d, MinCaptureTimeout), MaxCaptureTimeout)
}

// Validate checks every setting.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Addr == "" {
			return fmt.Errorf("server.addr cannot be empty for %s transport", TransportHTTP)
		}
	default:
		return fmt.Errorf("invalid transport type: %s (must be '%s' or '%s')", c.Server.Transport, TransportStdio, TransportHTTP)
	}
	if _, err := c.PartitionTable(); err != nil {
		return err
	}
	if err := c.ImageOptions().Validate(); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}

// PartitionTable parses the configured role table.
func (c *Config) PartitionTable() (snapshot.Partition, error) {
	inter, err := parseTypes("partition.interactive", c.Partition.Interactive)
	if err != nil {
		return snapshot.Partition{}, err
	}
	info, err := parseTypes("partition.informative", c.Partition.Informative)
	if err != nil {
		return snapshot.Partition{}, err
	}
	p := snapshot.Partition{Interactive: inter, Informative: info}
	if err := p.Validate(); err != nil {
		return snapshot.Partition{}, err
	}
	return p, nil
}

// Policy builds the capture policy.
func (c *Config) Policy() (snapshot.Policy, error) {
	part, err := c.PartitionTable()
	if err != nil {
		return snapshot.Policy{}, err
	}
	return snapshot.Policy{
		Excluded:  c.Exclusion.Excluded,
		Avoided:   c.Exclusion.Avoided,
		Partition: part,
		Timeout:   ClampTimeout(c.Capture.Timeout),
	}, nil
}

// ImageOptions returns the screenshot encoding settings.
func (c *Config) ImageOptions() output.ImageOptions {
	return output.ImageOptions{
		Format:  c.Screenshot.Format,
		Quality: c.Screenshot.Quality,
		Scale:   c.Screenshot.Scale,
	}
}

func parseTypes(key string, names []string) ([]model.ControlType, error) {
	types := make([]model.ControlType, 0, len(names))
	for _, name := range names {
		ct, err := model.ParseControlType(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		types = append(types, ct)
	}
	return types, nil
}

func typeNames(types []model.ControlType) []string {
	names := make([]string, len(types))
	for i, ct := range types {
		names[i] = string(ct)
	}
	return names
}
