package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/san-kum/lfractal/internal/lsystem"
)

// Settings are application-wide preferences, independent of any fractal.
type Settings struct {
	DataDir     string `mapstructure:"data_dir"`
	MaxSequence int    `mapstructure:"max_sequence"`
	Precision   int    `mapstructure:"precision"`
	Theme       string `mapstructure:"theme"`
	LogLevel    string `mapstructure:"log_level"`
}

// LoadSettings reads ~/.config/lfractal/config.yaml (or the file named by
// LFRACTAL_CONFIG) when present. Env var overrides use prefix LFRACTAL_.
func LoadSettings() (Settings, error) {
	v := viper.New()

	v.SetDefault("data_dir", ".lfractal")
	v.SetDefault("max_sequence", lsystem.DefaultMaxSequence)
	v.SetDefault("precision", lsystem.DefaultPrecision)
	v.SetDefault("theme", "cyberpunk")
	v.SetDefault("log_level", "info")

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("LFRACTAL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "lfractal"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LFRACTAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return s, nil
}

// Apply replaces the built-in limits of def with the configured ones.
// Limits the definition sets explicitly are kept.
func (s Settings) Apply(def *Definition) {
	if def.MaxSequence == lsystem.DefaultMaxSequence && s.MaxSequence > 0 {
		def.MaxSequence = s.MaxSequence
	}
	if def.Precision == lsystem.DefaultPrecision {
		def.Precision = s.Precision
	}
}
