// Package config loads and validates shellmate configuration from YAML
// files and SHELLMATE_* environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Shell    ShellConfig    `yaml:"shell"`
	Executor ExecutorConfig `yaml:"executor"`
	AI       AIConfig       `yaml:"ai"`
	Server   ServerConfig   `yaml:"server"`
	History  HistoryConfig  `yaml:"history"`
	Logger   LoggerConfig   `yaml:"logger"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// ShellConfig holds session and builtin behavior settings.
type ShellConfig struct {
	MaxHistory int           `yaml:"max_history"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// ExecutorConfig holds external command execution settings.
type ExecutorConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// AIConfig holds natural-language interpretation settings.
type AIConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ServerConfig holds the web terminal HTTP server settings.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	RequestsPerMin int    `yaml:"requests_per_min"`
	BurstSize      int    `yaml:"burst_size"`
}

// HistoryConfig holds persistent command history settings.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// defaultDataDir returns the persistent data directory under $HOME/.shellmate.
// Falls back to "./data" if $HOME cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".shellmate")
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Shell: ShellConfig{
			MaxHistory: 1000,
			SessionTTL: 30 * time.Minute,
		},
		Executor: ExecutorConfig{
			Timeout: 30 * time.Second,
		},
		AI: AIConfig{
			Enabled: true,
		},
		Server: ServerConfig{
			Addr:           ":5000",
			RequestsPerMin: 120,
			BurstSize:      30,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(defaultDataDir(), "history.db"),
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Tracer: TracerConfig{
			Enabled:  false,
			Exporter: "noop",
		},
	}
}

// Load reads a YAML config file and applies env var overrides.
// A missing file is not an error; defaults plus overrides are returned.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			if err := Validate(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnvOverrides maps SHELLMATE_* env vars to config fields.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SHELLMATE_SHELL_MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Shell.MaxHistory = n
		}
	}
	if v := os.Getenv("SHELLMATE_SHELL_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Shell.SessionTTL = d
		}
	}
	if v := os.Getenv("SHELLMATE_EXECUTOR_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Executor.Timeout = d
		}
	}
	switch os.Getenv("SHELLMATE_AI_ENABLED") {
	case "true":
		cfg.AI.Enabled = true
	case "false":
		cfg.AI.Enabled = false
	}
	if v := os.Getenv("SHELLMATE_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SHELLMATE_SERVER_REQUESTS_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.RequestsPerMin = n
		}
	}
	if v := os.Getenv("SHELLMATE_SERVER_BURST_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.BurstSize = n
		}
	}
	switch os.Getenv("SHELLMATE_HISTORY_ENABLED") {
	case "true":
		cfg.History.Enabled = true
	case "false":
		cfg.History.Enabled = false
	}
	if v := os.Getenv("SHELLMATE_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("SHELLMATE_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("SHELLMATE_LOGGER_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv("SHELLMATE_LOGGER_OUTPUT"); v != "" {
		cfg.Logger.Output = v
	}
	if v := os.Getenv("SHELLMATE_TRACER_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
	}
	if v := os.Getenv("SHELLMATE_TRACER_EXPORTER"); v != "" {
		cfg.Tracer.Exporter = v
	}
}

// Validate checks configuration invariants.
func Validate(cfg *Config) error {
	if cfg.Shell.MaxHistory <= 0 {
		return fmt.Errorf("shell.max_history must be positive, got %d", cfg.Shell.MaxHistory)
	}
	if cfg.Executor.Timeout <= 0 {
		return fmt.Errorf("executor.timeout must be positive, got %s", cfg.Executor.Timeout)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if cfg.Server.RequestsPerMin <= 0 {
		return fmt.Errorf("server.requests_per_min must be positive, got %d", cfg.Server.RequestsPerMin)
	}
	switch cfg.Logger.Level {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		return fmt.Errorf("unknown logger.level: %s", cfg.Logger.Level)
	}
	switch cfg.Tracer.Exporter {
	case "stdout", "noop", "":
	default:
		return fmt.Errorf("unknown tracer.exporter: %s", cfg.Tracer.Exporter)
	}
	if cfg.History.Enabled && cfg.History.Path == "" {
		return fmt.Errorf("history.path must be set when history is enabled")
	}
	return nil
}
