package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	ClinicAPIURL  string `mapstructure:"CLINIC_API_URL"`
	DBDSN         string `mapstructure:"DB_DSN"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`
	Environment   string `mapstructure:"ENV"`
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables win in containers
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		ClinicAPIURL:  os.Getenv("CLINIC_API_URL"),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		Environment:   os.Getenv("ENV"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.ClinicAPIURL == "" {
		return nil, fmt.Errorf("CLINIC_API_URL is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
