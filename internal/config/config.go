package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret" env:"JWT_SECRET"`
		Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Reminder struct {
		// Interval between scheduler ticks.
		Interval string `yaml:"interval" env:"REMINDER_INTERVAL"`
		// AnchorHour is the hour of day (local clock) an event nominally starts,
		// used as the base instant for reminder lead-time math.
		AnchorHour int `yaml:"anchor_hour" env:"REMINDER_ANCHOR_HOUR"`
		// Window is the tolerance around the reminder target instant.
		Window string `yaml:"window" env:"REMINDER_WINDOW"`
	} `yaml:"reminder"`

	Certificate struct {
		NumberPrefix        string `yaml:"number_prefix" env:"CERT_NUMBER_PREFIX"`
		DirectorName        string `yaml:"director_name" env:"CERT_DIRECTOR_NAME"`
		CoordinatorName     string `yaml:"coordinator_name" env:"CERT_COORDINATOR_NAME"`
		VerificationBaseURL string `yaml:"verification_base_url" env:"CERT_VERIFICATION_BASE_URL"`
	} `yaml:"certificate"`

	Messaging struct {
		// Provider selects the outbound transport: "twilio" or "log".
		Provider   string `yaml:"provider" env:"MESSAGING_PROVIDER"`
		AccountSID string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
		AuthToken  string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
		FromNumber string `yaml:"from_number" env:"TWILIO_FROM_NUMBER"`
	} `yaml:"messaging"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars can carry the whole configuration
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "hopebridge"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.Issuer = "hopebridge.in"

	config.Reminder.Interval = "1m"
	config.Reminder.AnchorHour = 9
	config.Reminder.Window = "1m"

	config.Certificate.NumberPrefix = "HB"
	config.Certificate.DirectorName = "Managing Director"
	config.Certificate.CoordinatorName = "Event Coordinator"
	config.Certificate.VerificationBaseURL = "https://hopebridge.in/api/v1/certificates/verify"

	config.Messaging.Provider = "log"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.Reminder.Interval); err != nil {
		return fmt.Errorf("invalid reminder interval format: %w", err)
	}

	if _, err := time.ParseDuration(config.Reminder.Window); err != nil {
		return fmt.Errorf("invalid reminder window format: %w", err)
	}

	if config.Reminder.AnchorHour < 0 || config.Reminder.AnchorHour > 23 {
		return fmt.Errorf("reminder anchor hour must be between 0 and 23")
	}

	if config.Messaging.Provider == "twilio" && (config.Messaging.AccountSID == "" || config.Messaging.AuthToken == "") {
		return fmt.Errorf("twilio messaging requires account_sid and auth_token")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
