package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/example/aegislife/internal/config"
	"github.com/example/aegislife/internal/database"
	"github.com/example/aegislife/internal/routes"
)

func main() {
	cfg := config.Load()

	zapLog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()

	db := database.Connect(cfg.DatabaseURL)
	database.EnsureAdmin(db, cfg.AdminEmail)

	app := fiber.New(fiber.Config{
		AppName: "Aegis Life Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Register(app, db, cfg, zapLog)

	zapLog.Info("starting server", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		zapLog.Fatal("server stopped", zap.Error(err))
	}
}
