package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"energytrack.app/errors"
)

// Monthly consumption modes. A deployment commits to exactly one: derived
// aggregates the daily ledger, reported stores caller-supplied totals.
const (
	MonthlyModeDerived  = "derived"
	MonthlyModeReported = "reported"
)

// Config represents the application configuration structure
type Config struct {
	Server      ServerConfig   `split_words:"true"`
	Database    DatabaseConfig `split_words:"true"`
	Redis       RedisConfig    `split_words:"true"`
	Email       EmailConfig    `split_words:"true"`
	Timezone    string         `envconfig:"APP_TIMEZONE" default:"America/Lima"`
	MonthlyMode string         `envconfig:"MONTHLY_MODE" default:"derived"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"energytrack"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig contains settings for the reset-code store
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// EmailConfig contains email server and sending settings
type EmailConfig struct {
	SMTPHost     string `envconfig:"EMAIL_SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"EMAIL_SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"EMAIL_SMTP_USERNAME" required:"true"`
	SMTPPassword string `envconfig:"EMAIL_SMTP_PASSWORD" required:"true"`
	FromName     string `envconfig:"EMAIL_FROM_NAME" default:"EnergyTrack"`
	FromAddress  string `envconfig:"EMAIL_FROM_ADDRESS" default:"no-reply@energytrack.app"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := c.Email.Validate(); err != nil {
		return err
	}
	if c.Timezone == "" {
		return errors.NewConfigurationError("APP_TIMEZONE cannot be empty", nil)
	}
	if c.MonthlyMode != MonthlyModeDerived && c.MonthlyMode != MonthlyModeReported {
		return errors.NewConfigurationError(
			fmt.Sprintf("MONTHLY_MODE must be %q or %q", MonthlyModeDerived, MonthlyModeReported), nil)
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks redis configuration
func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty", nil)
	}
	if r.DB < 0 {
		return errors.NewConfigurationError("REDIS_DB cannot be negative", nil)
	}
	return nil
}

// Validate checks email configuration
func (e *EmailConfig) Validate() error {
	if e.SMTPHost == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_HOST cannot be empty", nil)
	}
	if e.SMTPPort < 1 || e.SMTPPort > 65535 {
		return errors.NewConfigurationError("EMAIL_SMTP_PORT must be between 1 and 65535", nil)
	}
	if e.SMTPUsername == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_USERNAME is required", nil)
	}
	if e.SMTPPassword == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_PASSWORD is required", nil)
	}
	if e.FromName == "" {
		return errors.NewConfigurationError("EMAIL_FROM_NAME cannot be empty", nil)
	}
	if e.FromAddress == "" {
		return errors.NewConfigurationError("EMAIL_FROM_ADDRESS cannot be empty", nil)
	}
	if !strings.Contains(e.FromAddress, "@") {
		return errors.NewConfigurationError("EMAIL_FROM_ADDRESS must be a valid email address", nil)
	}
	return nil
}
