// Package config loads the bot process configuration from the environment.
// The API server reads its own env vars directly, matching how its packages
// were written; the bot front door keeps its two required settings here.
package config

import (
	"log"
	"os"
)

type Config struct {
	BotToken  string
	WebAppURL string
}

func MustLoad() Config {
	bt := os.Getenv("BOT_TOKEN")
	if bt == "" {
		log.Fatal("BOT_TOKEN is required")
	}
	wa := os.Getenv("WEBAPP_URL")
	if wa == "" {
		log.Fatal("WEBAPP_URL is required")
	}

	return Config{
		BotToken:  bt,
		WebAppURL: wa,
	}
}
