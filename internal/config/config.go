package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken   string
	DBPath     string
	SessionTTL time.Duration
}

func Default() Config {
	return Config{DBPath: "notesbot.db", SessionTTL: 24 * time.Hour}
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	cfg.BotToken = os.Getenv("BOT_API_KEY")
	if cfg.BotToken == "" {
		return Config{}, fmt.Errorf("BOT_API_KEY is required")
	}

	if path := os.Getenv("DATABASE_PATH"); path != "" {
		cfg.DBPath = path
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}

	return cfg, nil
}
