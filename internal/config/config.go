// Package config provides application settings for dealrank.
//
// Settings are resolved from, in increasing precedence: built-in defaults, an
// optional dealrank.yaml config file (current directory or the XDG config
// dir), and DEALRANK_* environment variables. Command-line flags override all
// of these at the command layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds the app-level configuration. The analyzer rule set is a
// separate concern and lives in its own YAML file (see the rules package);
// RulesFile points at it.
type Settings struct {
	Input       string `mapstructure:"input"`
	TopN        int    `mapstructure:"top_n"`
	Retailer    string `mapstructure:"retailer"`
	Balance     bool   `mapstructure:"balance"`
	ShowDetails bool   `mapstructure:"show_details"`
	RulesFile   string `mapstructure:"rules_file"`
	Template    string `mapstructure:"template"`
}

// Dir returns the dealrank config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/dealrank if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dealrank"), nil
}

// Load resolves settings from the config file, environment, and defaults.
// A missing config file is not an error.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetConfigName("dealrank")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("DEALRANK")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
		// No config file; environment variables and defaults apply.
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("top_n", 6)
	v.SetDefault("balance", true)
	v.SetDefault("show_details", true)
	v.SetDefault("rules_file", "")
	v.SetDefault("template", "")
}

func (s *Settings) validate() error {
	if s.TopN < 0 {
		return fmt.Errorf("config: top_n must not be negative, got %d", s.TopN)
	}
	return nil
}
