package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/alnah/go-richtext/internal/config"
)

// ErrInvalidEnv indicates a RICHTEXT_* variable could not be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

const envPrefix = "RICHTEXT_"

// envConfig holds CI-friendly overrides read from RICHTEXT_* variables.
type envConfig struct {
	ConfigPath string `env:"CONFIG"`
	Style      string `env:"STYLE"`
	BaseURL    string `env:"BASE_URL"`
	Workers    int    `env:"WORKERS"`
	InputDir   string `env:"INPUT_DIR"`
	OutputDir  string `env:"OUTPUT_DIR"`
	LogLevel   string `env:"LOG_LEVEL"`
}

// knownEnvVars lists valid RICHTEXT_* variables, used to flag typos.
var knownEnvVars = map[string]bool{
	envPrefix + "CONFIG":     true,
	envPrefix + "STYLE":      true,
	envPrefix + "BASE_URL":   true,
	envPrefix + "WORKERS":    true,
	envPrefix + "INPUT_DIR":  true,
	envPrefix + "OUTPUT_DIR": true,
	envPrefix + "LOG_LEVEL":  true,
}

// loadEnvConfig reads RICHTEXT_* variables from environ.
func loadEnvConfig(environ []string) (*envConfig, error) {
	var cfg envConfig
	err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      envPrefix,
		Environment: env.ToMap(environ),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnv, err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: %sWORKERS must be >= 0, got %d", ErrInvalidEnv, envPrefix, cfg.Workers)
	}
	return &cfg, nil
}

// unknownEnvVars returns unrecognized RICHTEXT_* variable names, sorted.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func warnUnknownEnvVars(logger *zap.Logger, environ []string) {
	for _, name := range unknownEnvVars(environ) {
		logger.Warn("unknown environment variable (typo?)", zap.String("name", name))
	}
}

// applyEnvConfig overrides config file values with set environment
// variables. Flags are merged afterwards, giving
// flags > env > config file > defaults.
func applyEnvConfig(ec *envConfig, cfg *config.Config) {
	if ec.Style != "" {
		cfg.Page.Style = ec.Style
	}
	if ec.BaseURL != "" {
		cfg.Render.BaseURL = ec.BaseURL
	}
	if ec.Workers > 0 {
		cfg.Workers = ec.Workers
	}
	if ec.InputDir != "" {
		cfg.Input.DefaultDir = ec.InputDir
	}
	if ec.OutputDir != "" {
		cfg.Output.DefaultDir = ec.OutputDir
	}
}

// loadConfig loads the config named by the flag, or by RICHTEXT_CONFIG,
// and applies environment overrides. No name means defaults.
func loadConfig(flagValue string, ec *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = ec.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(ec, cfg)
	return cfg, nil
}
