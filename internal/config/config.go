// Package config loads runtime settings from an optional config file and
// ISO3166_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"iso3166/internal/locale"
	"iso3166/internal/logger"
	"iso3166/structure"
)

// EnvPrefix prefixes every environment variable, e.g. ISO3166_LANGUAGE.
const EnvPrefix = "ISO3166"

// Config holds the settings of the CLI and of the engine defaults.
type Config struct {
	// DataDir is the directory holding the compiled dataset files.
	DataDir string `mapstructure:"data_dir"`
	// Language is the current (active) language.
	Language string `mapstructure:"language"`
	// DefaultLanguage is the fallback language for missing translations.
	DefaultLanguage string `mapstructure:"default_language"`
	// Separator joins path segments in flattened output.
	Separator string `mapstructure:"separator"`
	// Format selects the output rendering: json, yaml or flat.
	Format string `mapstructure:"format"`
	Log    logger.Config `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("language", locale.Default)
	v.SetDefault("default_language", locale.Default)
	v.SetDefault("separator", structure.DefaultSeparator)
	v.SetDefault("format", "json")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.add_source", false)
}

// Load reads the config file at path (skipped when empty, any format viper
// knows) and overlays environment variables: ISO3166_DATA_DIR, ISO3166_LOG_LEVEL, ...
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate canonicalizes the language tags and checks the output settings.
func (c *Config) Validate() error {
	lang, err := locale.Canonical(c.Language)
	if err != nil {
		return fmt.Errorf("config language: %w", err)
	}

	def, err := locale.Canonical(c.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("config default_language: %w", err)
	}

	c.Language, c.DefaultLanguage = lang, def

	switch c.Format {
	case "json", "yaml", "flat":
	default:
		return fmt.Errorf("config format %q: expected json, yaml or flat", c.Format)
	}

	if c.Separator == "" {
		return errors.New("config separator is empty")
	}

	return nil
}
