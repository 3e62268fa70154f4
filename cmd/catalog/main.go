package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"bookstore-microservices/internal/config"
	"bookstore-microservices/pkg/container"
	"bookstore-microservices/pkg/logger"
	"bookstore-microservices/pkg/server"
)

func main() {
	// ========================================
	// 1. LOAD CONFIGURATION
	// ========================================
	cfg, err := config.LoadCatalog()
	if err != nil {
		logger.Init("catalog", "development", "info")
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init("catalog", cfg.App.Environment, cfg.App.LogLevel)
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ========================================
	// 2. BUILD DI CONTAINER
	// ========================================
	c, err := container.NewCatalogContainer(cfg)
	if err != nil {
		logger.Error("failed to initialize container", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	// ========================================
	// 3. SERVE
	// ========================================
	if err := server.Run(server.New(cfg.Port, SetupRouter(c))); err != nil {
		logger.Error("server error", err)
	}
}
