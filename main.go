package main

import (
	"os"

	"finance-advisor/api/db"
	"finance-advisor/api/handlers"
	"finance-advisor/api/logger"
	"finance-advisor/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	dotenvErr := godotenv.Load()
	logger.Init(os.Getenv("GIN_MODE") != "release", os.Getenv("LOG_LEVEL"))
	defer logger.Sync()
	if dotenvErr != nil {
		// Fine in production where the environment is set directly.
		logger.Get().Info(".env file not found")
	}

	if err := db.InitDB(); err != nil {
		logger.Get().Fatal("initializing database", zap.Error(err))
	}
	defer db.CloseDB()

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"}) // Only trust local proxies

	router.Use(middleware.CorsMiddleware)

	router.GET("/health", handlers.HandleHealth)

	auth := router.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware)
	{
		auth.POST("/signup", handlers.HandleSignup)
		auth.POST("/login", handlers.HandleLogin)
	}

	me := router.Group("/me")
	me.Use(middleware.AuthMiddleware)
	{
		me.GET("", handlers.HandleGetMe)
		me.PUT("", handlers.HandleSaveMe)
	}

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware)
	{
		api.GET("/ws", handlers.HandleChatWebsocket)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Get().Info("server starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}
