package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/config"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/database"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/llm"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/server"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
)

var logLevelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[cfg.LogLevel],
	})))

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(cfg, userRepo)

	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY not set, voice commands will fail")
	}
	completions := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	srv := server.New(db, cfg, authService, completions)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
