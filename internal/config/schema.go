package config

import (
	"log/slog"
	"strings"
)

// Config holds notetags configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Catalog string     `mapstructure:"catalog" yaml:"catalog" json:"catalog"` // Default field catalog path (supports ${ENV_VAR} syntax)
	Check   CheckCfg   `mapstructure:"check" yaml:"check" json:"check"`
	Rewrite RewriteCfg `mapstructure:"rewrite" yaml:"rewrite" json:"rewrite"`
	Payload PayloadCfg `mapstructure:"payload" yaml:"payload" json:"payload"`
	Output  OutputCfg  `mapstructure:"output" yaml:"output" json:"output"`
	Log     LogCfg     `mapstructure:"log" yaml:"log" json:"log"`
}

// CheckCfg configures bulk validation.
type CheckCfg struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"` // 0 means one per CPU
}

// RewriteCfg configures the rewrite commands.
type RewriteCfg struct {
	// RequireValid refuses to rewrite notes that fail validation.
	RequireValid bool `mapstructure:"require_valid" yaml:"require_valid" json:"require_valid"`
}

// PayloadCfg configures batch payload rendering.
type PayloadCfg struct {
	Model          string `mapstructure:"model" yaml:"model" json:"model"`
	Endpoint       string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	SystemPreamble string `mapstructure:"system_preamble" yaml:"system_preamble" json:"system_preamble"` // Empty uses the built-in preamble
}

// OutputCfg configures CLI output.
type OutputCfg struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"` // "yaml" or "json"
}

// LogCfg configures logging.
type LogCfg struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"` // debug, info, warn, error
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Check: CheckCfg{
			Workers: 0,
		},
		Rewrite: RewriteCfg{
			RequireValid: true,
		},
		Payload: PayloadCfg{
			Model:    "gpt-4o",
			Endpoint: "/v1/chat/completions",
		},
		Output: OutputCfg{
			Format: "yaml",
		},
		Log: LogCfg{
			Level: "info",
		},
	}
}

// CatalogPath returns the catalog path with ${ENV_VAR} references expanded.
func (c *Config) CatalogPath() string {
	return ResolveEnvVars(c.Catalog)
}

// LogLevel parses the configured log level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}
