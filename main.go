package main

import (
	"fmt"
	"log/slog"
	"os"

	"fintrack/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

type config struct {
	port      string
	dsn       string
	jwtSecret string
	uploadDir string
	migrate   bool
}

func loadConfig() config {
	// Load ./.env if present without overwriting variables already set.
	_ = godotenv.Load()

	cfg := config{
		port:      os.Getenv("PORT"),
		dsn:       os.Getenv("DB_DSN"),
		jwtSecret: os.Getenv("JWT_SECRET"),
		uploadDir: os.Getenv("UPLOAD_BASE"),
		migrate:   os.Getenv("DB_AUTO_MIGRATE") != "false",
	}
	if cfg.port == "" {
		cfg.port = "8081"
	}
	if cfg.jwtSecret == "" {
		cfg.jwtSecret = "dev-insecure-secret-change" // development fallback
	}
	if cfg.uploadDir == "" {
		cfg.uploadDir = "uploads"
	}
	return cfg
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()
	if cfg.dsn == "" {
		slog.Error("DB_DSN is not set; a Postgres DSN is required")
		os.Exit(1)
	}

	db, err := openDB(cfg.dsn)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// `fintrack migrate` runs migrations and exits. Useful for CI or manual
	// DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		autoMigrate(db)
		fmt.Println("migration completed")
		return
	}
	if cfg.migrate {
		autoMigrate(db)
	}

	store := newGormStore(db)
	issuer := token.NewIssuer([]byte(cfg.jwtSecret), token.DefaultTTL)
	srv := newServer(store, store, issuer, cfg.uploadDir)

	r := gin.Default()
	srv.routes(r)

	slog.Info("starting fintrack server", "port", cfg.port)
	if err := r.Run(":" + cfg.port); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
