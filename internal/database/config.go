package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"nivesh/internal/logger"
)

// Config holds the PostgreSQL connection parameters.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConfig reads the connection parameters from the environment, loading a
// .env file first when one exists.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env in containerized deployments; plain env vars apply.
		logger.Get().Debugw("no .env file found, using environment variables")
	}

	return &Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "nivesh"),
		Password: getEnv("DB_PASSWORD", "nivesh"),
		DBName:   getEnv("DB_NAME", "nivesh"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
