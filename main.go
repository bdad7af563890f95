package main

import (
	"log"

	"shoppingapp-backend/config"
	"shoppingapp-backend/internal/api"
	"shoppingapp-backend/pkg/logger"
)

// @title shoppingapp-backend API
// @version 1.0
// @description AI dispatch and usage accounting backend for the shopping list app.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter(cfg)
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
