package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	BotToken     string
	DatabasePath string
	StartBalance int
	DefaultBet   int
	TableDecks   int
	HiLoDecks    int
	CounterDecks int
	LogLevel     logrus.Level
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		DatabasePath: getString("DATABASE_PATH", "./cardtable.db"),
	}

	ints := []struct {
		key string
		def int
		min int
		dst *int
	}{
		{"START_BALANCE", 100, 1, &cfg.StartBalance},
		{"DEFAULT_BET", 10, 1, &cfg.DefaultBet},
		{"TABLE_DECKS", 1, 1, &cfg.TableDecks},
		{"HILO_DECKS", 1, 1, &cfg.HiLoDecks},
		{"COUNTER_DECKS", 6, 1, &cfg.CounterDecks},
	}
	for _, v := range ints {
		n, err := getInt(v.key, v.def)
		if err != nil {
			return nil, err
		}
		if n < v.min {
			return nil, fmt.Errorf("%s must be at least %d, got %d", v.key, v.min, n)
		}
		*v.dst = n
	}

	level, err := logrus.ParseLevel(getString("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// NewLogger builds the process logger at the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	return logger
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
