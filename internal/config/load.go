package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml in the working
// directory and from SIMVERSE_-prefixed environment variables, with
// environment variables taking precedence. Returns a populated Config or an
// error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SIMVERSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.file_path", "data/state.json")
	v.SetDefault("auth.token_lifetime_hours", 24)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")

	// Bind nested keys explicitly so AutomaticEnv sees them even when the
	// config file omits the section.
	for _, key := range []string{
		"server.port", "server.log_level",
		"storage.backend", "storage.file_path", "storage.database_url",
		"auth.jwt_secret", "auth.token_lifetime_hours",
		"llm.gemini_api_key", "llm.model_name",
	} {
		_ = v.BindEnv(key)
	}
}
