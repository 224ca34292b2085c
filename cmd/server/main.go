package main

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/handlers"
	"github.com/taskflow/taskflow-api/internal/logger"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/routes"
	"github.com/taskflow/taskflow-api/internal/services"
)

func main() {
	godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.IsDev(), cfg.SentryDSN)

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(db)
	tokens := repository.NewTokenRepository(db)
	goals := repository.NewGoalRepository(db)
	logs := repository.NewGoalLogRepository(db)

	email := services.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppURL, cfg.IsDev())
	authService := services.NewAuthService(users, tokens, email, cfg.JWTSecret)
	goalService := services.NewGoalService(goals, logs)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New())

	routes.Setup(app, cfg.JWTSecret,
		handlers.NewAuthHandler(authService),
		handlers.NewGoalHandler(goalService),
	)

	slog.Info("server listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
