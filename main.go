package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/auth"
	"github.com/sandip79g/DKN-Backend/pkg/config"
	"github.com/sandip79g/DKN-Backend/pkg/database"
	"github.com/sandip79g/DKN-Backend/pkg/handlers"
	"github.com/sandip79g/DKN-Backend/pkg/logging"
	"github.com/sandip79g/DKN-Backend/pkg/middleware"
	"github.com/sandip79g/DKN-Backend/pkg/repositories"
	"github.com/sandip79g/DKN-Backend/pkg/services"
	"github.com/sandip79g/DKN-Backend/pkg/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("media_root", cfg.MediaRoot))

	ctx := context.Background()

	// Migrations run over database/sql; the application pool is pgx native.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.String("error", logging.SanitizeError(err)))
	}
	if err := database.RunMigrations(migrationDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.String("error", logging.SanitizeError(err)))
	}
	_ = migrationDB.Close()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:             cfg.Database.ConnectionString(),
		MaxConnections:  cfg.Database.MaxConnections,
		MaxConnLifetime: time.Duration(cfg.Database.ConnMaxLifetimeMinutes) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.Database.ConnMaxIdleMinutes) * time.Minute,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	fileStore, err := storage.NewFileStore(cfg.MediaRoot)
	if err != nil {
		logger.Fatal("Failed to create file store", zap.Error(err))
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		logger.Fatal("Failed to create token service", zap.Error(err))
	}

	userRepo := repositories.NewUserRepository(db)
	artifactRepo := repositories.NewArtifactRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	accountService := services.NewAccountService(userRepo, tokenService, logger)
	artifactService := services.NewArtifactService(artifactRepo, reviewRepo, tagRepo, fileStore, logger)
	ratingService := services.NewRatingService(ratingRepo, artifactRepo, logger)

	authMiddleware := auth.NewMiddleware(tokenService, userRepo, logger.Named("auth"))

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAuthHandler(accountService, artifactService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewArtifactHandler(artifactService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewReviewHandler(artifactService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewRatingHandler(ratingService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewFileHandler(fileStore, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger.Named("http"))(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting dkn-backend",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production logger except in local development, where
// console output is friendlier.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
