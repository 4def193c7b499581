// Package config loads project configuration from .symscan/config.json.
// Flags override config; config overrides defaults. The file is optional —
// a missing config yields pure defaults, never an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/corey/symscan/internal/adapters/cc"
	"github.com/corey/symscan/internal/domain/extract"
	"github.com/corey/symscan/internal/domain/manifest"
)

// Backend modes accepted by the "backend" key and the --backend flag.
const (
	BackendAuto     = "auto"
	BackendNative   = "native"
	BackendFallback = "fallback"
)

// Config is the effective project configuration.
type Config struct {
	SchemaVersion int      `mapstructure:"schema_version"`
	Backend       string   `mapstructure:"backend"`
	Annotation    string   `mapstructure:"annotation"`
	Compilers     []string `mapstructure:"compilers"`
	Output        string   `mapstructure:"output"`
}

// File returns the config file path for a project root.
func File(projectRoot string) string {
	return filepath.Join(projectRoot, ".symscan", "config.json")
}

func newViper(projectRoot string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(File(projectRoot))
	v.SetConfigType("json")
	v.SetDefault("schema_version", manifest.SchemaVersion)
	v.SetDefault("backend", BackendAuto)
	v.SetDefault("annotation", extract.DefaultAnnotation)
	v.SetDefault("compilers", cc.DefaultCompilers)
	v.SetDefault("output", "exports.json")
	return v
}

// Load reads the project config, falling back to defaults when the file
// does not exist. A malformed file is an error.
func Load(projectRoot string) (*Config, error) {
	v := newViper(projectRoot)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendAuto, BackendNative, BackendFallback:
	default:
		return fmt.Errorf("config: unknown backend %q (want auto, native, or fallback)", c.Backend)
	}
	if c.SchemaVersion < 1 {
		return fmt.Errorf("config: schema_version must be >= 1, got %d", c.SchemaVersion)
	}
	return nil
}

// Get returns the string form of one config key, or false for an unknown key.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case "schema_version":
		return fmt.Sprintf("%d", c.SchemaVersion), true
	case "backend":
		return c.Backend, true
	case "annotation":
		return c.Annotation, true
	case "compilers":
		return strings.Join(c.Compilers, " "), true
	case "output":
		return c.Output, true
	}
	return "", false
}

// Keys lists the known config keys in display order.
func Keys() []string {
	return []string{"schema_version", "backend", "annotation", "compilers", "output"}
}
