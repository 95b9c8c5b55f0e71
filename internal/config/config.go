// Package config provides configuration management for the Lineup Lab application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Roster   RosterConfig   `mapstructure:"roster" validate:"required"`
	Oracle   OracleConfig   `mapstructure:"oracle" validate:"required"`
	Lineup   LineupConfig   `mapstructure:"lineup" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// RosterConfig represents the roster source API configuration
type RosterConfig struct {
	BaseURL            string   `mapstructure:"base_url" validate:"required,url"`
	APIKey             string   `mapstructure:"api_key"`
	TimeoutSeconds     int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries         int      `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSecond float64  `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	SyncSchedule       string   `mapstructure:"sync_schedule" validate:"required"`
	Teams              []string `mapstructure:"teams" validate:"required,min=1"`
}

// OracleConfig represents the simulation oracle configuration
type OracleConfig struct {
	HTTPAddress           string `mapstructure:"http_address" validate:"required"`
	StreamAddress         string `mapstructure:"stream_address"`
	APIKey                string `mapstructure:"api_key"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds       int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize          int    `mapstructure:"cache_max_size" validate:"required,gt=0"`
	ProgressStreamEnabled bool   `mapstructure:"progress_stream_enabled"`
}

// LineupConfig represents lineup construction and simulation rules
type LineupConfig struct {
	RequiredSize            int `mapstructure:"required_size" validate:"required,eq=9"`
	DefaultGameCount        int `mapstructure:"default_game_count" validate:"required"`
	MinGameCount            int `mapstructure:"min_game_count" validate:"required,gt=0"`
	MaxGameCount            int `mapstructure:"max_game_count" validate:"required,gt=0"`
	SelectionWarningSeconds int `mapstructure:"selection_warning_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SelectionWarningTTL returns the transient selection warning lifetime.
func (c *LineupConfig) SelectionWarningTTL() time.Duration {
	return time.Duration(c.SelectionWarningSeconds) * time.Second
}

// GetDatabaseDSN builds the Postgres connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode,
	)
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
