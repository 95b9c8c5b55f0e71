// Package config provides configuration management for the Lineup Lab application.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.Lineup.MinGameCount > cfg.Lineup.MaxGameCount {
		return fmt.Errorf("lineup min_game_count (%d) must not exceed max_game_count (%d)",
			cfg.Lineup.MinGameCount, cfg.Lineup.MaxGameCount)
	}

	if cfg.Lineup.DefaultGameCount < cfg.Lineup.MinGameCount || cfg.Lineup.DefaultGameCount > cfg.Lineup.MaxGameCount {
		return fmt.Errorf("lineup default_game_count (%d) must be within [%d, %d]",
			cfg.Lineup.DefaultGameCount, cfg.Lineup.MinGameCount, cfg.Lineup.MaxGameCount)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(cfg.Roster.SyncSchedule); err != nil {
		return fmt.Errorf("invalid roster sync_schedule %q: %w", cfg.Roster.SyncSchedule, err)
	}

	if cfg.Oracle.ProgressStreamEnabled && cfg.Oracle.StreamAddress == "" {
		return fmt.Errorf("oracle stream_address is required when progress_stream_enabled is true")
	}

	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", e.Namespace(), e.Tag()))
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(msgs, "; "))
}
