package main

import (
	"os"
	"os/signal"
	"syscall"

	"finance-advisor/api/bot"
	"finance-advisor/api/config"
	"finance-advisor/api/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	dotenvErr := godotenv.Load()
	logger.Init(true, os.Getenv("LOG_LEVEL"))
	defer logger.Sync()
	if dotenvErr != nil {
		logger.Get().Info(".env file not found")
	}

	cfg := config.MustLoad()

	b, err := bot.New(bot.Config{Token: cfg.BotToken, WebAppURL: cfg.WebAppURL})
	if err != nil {
		logger.Get().Fatal("bot init", zap.Error(err))
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		logger.Get().Info("shutting down")
		b.Stop()
	}()

	b.Start()
}
