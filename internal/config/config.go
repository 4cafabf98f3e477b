// Package config loads slackfs settings from the environment.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultAPIURL is the Slack Web API base.
const DefaultAPIURL = "https://slack.com/api"

// Config holds the runtime settings. Keys map one-to-one to environment
// variables listed in envKeys.
type Config struct {
	Token       string `mapstructure:"token" validate:"required"`
	Proxy       string `mapstructure:"proxy" validate:"omitempty,url"`
	APIURL      string `mapstructure:"api_url" validate:"required,url"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log_format" validate:"required,oneof=console json"`
	MetricsAddr string `mapstructure:"metrics_addr" validate:"omitempty,hostname_port"`
}

var envKeys = map[string]string{
	"token":        "SLACK_TOKEN",
	"proxy":        "SLACK_PROXY",
	"api_url":      "SLACK_API_URL",
	"log_level":    "SLACKFS_LOG_LEVEL",
	"log_format":   "SLACKFS_LOG_FORMAT",
	"metrics_addr": "SLACKFS_METRICS_ADDR",
}

// ErrMissingToken is returned when SLACK_TOKEN is unset or empty.
var ErrMissingToken = errors.New("SLACK_TOKEN is not set")

var validate = newValidator()

// newValidator reports fields by their environment variable name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return envKeys[field.Tag.Get("mapstructure")]
	})
	return v
}

// Load reads the environment, applies defaults and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("log_level", "error")
	v.SetDefault("log_format", "console")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Token) == "" {
		return ErrMissingToken
	}
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)", e.Field(), e.Tag(), e.Value())
	}
	return err
}
