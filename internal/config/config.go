package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

const defaultSecret = "supersecretkeythatshouldbechangedinproduction"

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"tasktracker"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// StorageConfig holds the MinIO/S3 settings for attachment objects.
type StorageConfig struct {
	Endpoint  string `env:"S3_ENDPOINT" envDefault:"localhost:9000"`
	PublicURL string `env:"S3_PUBLIC_URL" envDefault:"http://localhost:9000"`
	AccessKey string `env:"S3_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"S3_SECRET_KEY" envDefault:"minioadmin"`
	Bucket    string `env:"S3_BUCKET" envDefault:"task-attachments"`
	UseSSL    bool   `env:"S3_USE_SSL" envDefault:"false"`
}

// Config is the full application configuration, loaded from the
// environment (a .env file is picked up by the godotenv autoload).
type Config struct {
	Port             int           `env:"PORT" envDefault:"8080"`
	Debug            bool          `env:"DEBUG" envDefault:"false"`
	Testing          bool          `env:"TESTING" envDefault:"false"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	SecretKey        string        `env:"SECRET_KEY" envDefault:"supersecretkeythatshouldbechangedinproduction"`
	TokenTTLMinutes  int           `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
	ReminderInterval time.Duration `env:"REMINDER_INTERVAL" envDefault:"1h"`
	DB               DatabaseConfig
	Storage          StorageConfig
}

// Load parses the configuration from environment variables and rejects
// the default signing secret outside of debug mode.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if !cfg.Debug && cfg.SecretKey == defaultSecret {
		return nil, errors.New("refusing to start with the default SECRET_KEY while DEBUG is false")
	}
	return &cfg, nil
}

// TokenTTL returns the access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// DSN builds the Postgres connection string for GORM.
func (db *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		db.Host, db.User, db.Password, db.Name, db.Port, db.SSLMode)
}
