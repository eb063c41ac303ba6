package main

import (
	"log"

	"github.com/Viper373/prompt-shelf/config"
	"github.com/Viper373/prompt-shelf/internal/api"
	"github.com/Viper373/prompt-shelf/internal/database"
	"github.com/Viper373/prompt-shelf/internal/models"
	"github.com/Viper373/prompt-shelf/internal/services"
	"github.com/Viper373/prompt-shelf/internal/settings"
	"github.com/Viper373/prompt-shelf/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if _, err := database.Connect(cfg.DSN()); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := database.ConnectRedis(cfg); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.UserOrganization{},
		&models.PromptRecord{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	services.InitContentStore(cfg.DataDir)
	rt := settings.NewRuntime(cfg.AllowRegister)

	router := api.NewRouter(rt)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
