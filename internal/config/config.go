package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment       string        `env:"ENV" envDefault:"development"`
	LogLevel          string        `env:"LOG_LEVEL"`
	DBDSN             string        `env:"DB_DSN,required,notEmpty"`
	TelegramToken     string        `env:"TELEGRAM_TOKEN"`
	AdminIDs          []int64       `env:"ADMIN_IDS" envSeparator:","`
	Timezone          string        `env:"TIMEZONE" envDefault:"Europe/Moscow"`
	MigrationsEnabled bool          `env:"MIGRATIONS_ENABLED" envDefault:"true"`
	DigestInterval    time.Duration `env:"DIGEST_INTERVAL" envDefault:"24h"`
	DigestDays        int           `env:"DIGEST_DAYS" envDefault:"7"`
	DigestChatID      int64         `env:"DIGEST_CHAT_ID"`
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Parse()
}

// Parse разбирает конфигурацию из текущего окружения
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// Возвращаем только первую ошибку, так лог понятнее
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if cfg.DigestDays <= 0 {
		return nil, fmt.Errorf("DIGEST_DAYS must be positive, got %d", cfg.DigestDays)
	}

	return cfg, nil
}

// Location возвращает временную зону календаря
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// IsAdmin проверяет, есть ли Telegram ID в списке администраторов
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
