package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	feedbackmodels "spam-shield/internal/apps/feedback/models"
	reportmodels "spam-shield/internal/apps/report/models"
	usermodels "spam-shield/internal/apps/user/models"
	"spam-shield/internal/common/config"
	"spam-shield/internal/common/database"
	"spam-shield/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", "console")
		logger.Logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Logger.Info().Msg("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conns, err := openConnections(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to storage")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		conns.Close(closeCtx)
	}()

	gin.SetMode(cfg.GinMode)
	router, err := buildRouter(cfg, conns)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.Port).
			Str("store_backend", cfg.StoreBackend).
			Str("session_backend", cfg.SessionBackend).
			Str("sms_provider", cfg.SMS.Provider).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openConnections dials only the backends the configuration asks for
func openConnections(ctx context.Context, cfg *config.Config) (database.Connections, error) {
	conns := database.Connections{DataDir: cfg.DataDir}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := database.NewConnection(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return conns, err
		}
		conns.DB = db
		if err := autoMigrate(db); err != nil {
			conns.Close(ctx)
			return conns, err
		}
	case config.BackendMongo:
		mdb, err := database.NewMongoDatabase(ctx, database.MongoConfig{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return conns, err
		}
		conns.Mongo = mdb
	}

	if cfg.UsesRedis() {
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			conns.Close(ctx)
			return conns, err
		}
		conns.Redis = rdb
	}
	return conns, nil
}

// autoMigrate creates or updates the relational schema
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&reportmodels.SpamReport{},
		&usermodels.VerifiedUser{},
		&feedbackmodels.Feedback{},
	)
}
