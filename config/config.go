// Package config loads context settings from TOML files and the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/mockgl/diag"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/version"
)

// Config holds every setting a context needs.
type Config struct {
	Context     ContextConfig     `toml:"context"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ContextConfig selects the emulated version.
type ContextConfig struct {
	Profile    string   `toml:"profile"` // "desktop" or "es"
	Version    string   `toml:"version"` // "major.minor"
	Extensions []string `toml:"extensions"`
}

// DiagnosticsConfig selects the diagnostics policy.
type DiagnosticsConfig struct {
	Policy         string `toml:"policy"` // "panic-early", "panic-on-finalize", "do-not-panic"
	PanicOnWarning bool   `toml:"panic_on_warning"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level       string `toml:"level"` // "debug", "info", "warn", "error"
	Development bool   `toml:"development"`
}

// Default returns desktop 2.1, panic-early, info logging.
func Default() *Config {
	return &Config{
		Context:     ContextConfig{Profile: "desktop", Version: "2.1"},
		Diagnostics: DiagnosticsConfig{Policy: diag.PanicEarly.String()},
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults, applies MOCKGL_* environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults without consulting the environment.
func Parse(text string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MOCKGL_PROFILE"); v != "" {
		c.Context.Profile = v
	}
	if v := os.Getenv("MOCKGL_VERSION"); v != "" {
		c.Context.Version = v
	}
	if v := os.Getenv("MOCKGL_EXTENSIONS"); v != "" {
		c.Context.Extensions = strings.Split(v, ",")
	}
	if v := os.Getenv("MOCKGL_POLICY"); v != "" {
		c.Diagnostics.Policy = v
	}
	if v := os.Getenv("MOCKGL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks every field that Version, Policy and Logger would parse.
func (c *Config) Validate() error {
	if _, err := c.Version(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "logging.level")
	}
	return nil
}

// Version builds the emulated version.
func (c *Config) Version() (*version.Version, error) {
	kind, err := version.ParseKind(c.Context.Profile)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "context.profile")
	}
	n, err := version.ParseNumber(c.Context.Version)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "context.version")
	}

	exts := make([]*version.Extension, 0, len(c.Context.Extensions))
	for _, name := range c.Context.Extensions {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ext, ok := version.Lookup(name)
		if !ok {
			return nil, errors.New(errors.PhaseConfig, errors.KindNotFound).
				Detail("context.extensions: unknown extension %q", name).
				Build()
		}
		exts = append(exts, ext)
	}
	return version.New(kind, n.Major, n.Minor, exts...), nil
}

// Policy builds the diagnostics policy.
func (c *Config) Policy() (diag.Policy, error) {
	mode, err := diag.ParseMode(c.Diagnostics.Policy)
	if err != nil {
		return diag.Policy{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "diagnostics.policy")
	}
	return diag.Policy{Mode: mode, PanicOnWarning: c.Diagnostics.PanicOnWarning}, nil
}

// Logger builds a zap logger at the configured level. Development mode
// uses the console encoder.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "logging.level")
	}
	zc := zap.NewProductionConfig()
	if c.Logging.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
