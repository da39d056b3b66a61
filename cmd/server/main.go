package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/api"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/chat"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/config"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/handlers"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/middleware"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/routes"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/todo"
	"github.com/SOTO729/Evaluaasiv3-sub001/pkg/logger"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting Evaluaasi chat gateway...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Local to-do storage (the only thing persisted client-side)
	todoStore, err := todo.Open(config.AppConfig.TodoDBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", config.AppConfig.TodoDBPath).Msg("Failed to open todo database")
	}

	// 2. Upstream backend client and the per-session sync engine
	backend := api.NewClient(config.AppConfig.BackendURL)
	registry := chat.NewRegistry(backend, chat.Options{
		PollInterval:         config.AppConfig.PollInterval(),
		ConversationsPerPage: config.AppConfig.ConversationsPage,
		MessagesPerPage:      config.AppConfig.MessagesPage,
	}, config.AppConfig.SessionIdle())
	defer registry.Shutdown()

	handlers.Init(registry, todoStore)

	// 3. Setup Router
	r := gin.New()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"backend": config.AppConfig.BackendURL,
		})
	})

	apiGroup := r.Group("/api")
	{
		routes.RegisterChatRoutes(apiGroup)
		routes.RegisterTodoRoutes(apiGroup)
	}

	// 4. Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "8085"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
