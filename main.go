package main

import (
	"log"

	"github.com/veewoo/veewoo-prompt/config"
	"github.com/veewoo/veewoo-prompt/internal/api"
	"github.com/veewoo/veewoo-prompt/internal/database"
	"github.com/veewoo/veewoo-prompt/pkg/logger"
)

// @title veewoo-prompt API
// @version 1.0
// @description Personal prompt library with placeholder variables.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLog, err := logger.New(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLog.Sync()

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	router := api.NewRouter(api.Deps{
		Config: cfg,
		Log:    zapLog,
		DB:     db,
		Redis:  rdb,
	})

	if err := router.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
