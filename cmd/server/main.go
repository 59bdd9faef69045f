package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/app"
	"github.com/nekogravitycat/hotel-ops-backend/internal/config"
	"github.com/nekogravitycat/hotel-ops-backend/internal/db"
	"github.com/nekogravitycat/hotel-ops-backend/internal/housekeeping"
	"github.com/nekogravitycat/hotel-ops-backend/internal/invoice"
	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/events"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/logger"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/storage"
	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
)

const (
	shutdownTimeout = 5 * time.Second
	configKeyPrefix = "sysconfig:"
	filesRoute      = "/files"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := logger.New(cfg.IsProduction)
	defer func() { _ = zlog.Sync() }()
	if !cfg.EnvFileLoaded {
		zlog.Info("no .env file found, using environment only")
	}

	// Relational store
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		zlog.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Document store
	mongoClient, mongoDB, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		zlog.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	if err := ensureIndexes(ctx, mongoDB); err != nil {
		zlog.Fatal("failed to create mongo indexes", zap.Error(err))
	}

	// Config cache
	var configCache sysconfig.Cache = sysconfig.NewMemoryCache(cfg.ConfigCacheTTL)
	if cfg.RedisAddr != "" {
		var redisClient *redis.Client
		redisClient, err = db.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		configCache = sysconfig.NewRedisCache(redisClient, configKeyPrefix, cfg.ConfigCacheTTL)
	}

	// Object storage
	store, filesDir, err := newStorage(cfg)
	if err != nil {
		zlog.Fatal("failed to init storage", zap.Error(err))
	}

	// Event publisher
	var publisher events.Publisher = events.NewLogPublisher(zlog)
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, zlog)
		if err != nil {
			zlog.Fatal("failed to connect to kafka", zap.Error(err))
		}
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			zlog.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	container, err := app.NewContainer(app.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		FilesDir:        filesDir,
		JWTSecret:       cfg.JWTSecret,
		JWTTTL:          cfg.JWTAccessTokenTTL,
		BcryptCost:      cfg.BcryptCost,
		PaystackBaseURL: cfg.PaystackBaseURL,
		SendGridBaseURL: cfg.SendGridBaseURL,
		MailFrom:        cfg.MailFrom,
		PDFRendererURL:  cfg.PDFRendererURL,
		DBPool:          pool,
		MongoDB:         mongoDB,
		ConfigCache:     configCache,
		Storage:         store,
		Publisher:       publisher,
		HTTPClient:      &http.Client{Timeout: cfg.HTTPClientTimeout},
		Log:             zlog,
	})
	if err != nil {
		zlog.Fatal("failed to init application", zap.Error(err))
	}

	if n, err := container.ConfigService.LoadAll(ctx); err != nil {
		zlog.Warn("failed to warm config cache", zap.Error(err))
	} else {
		zlog.Info("config cache warmed", zap.Int("entries", n))
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		zlog.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited gracefully")
}

func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	for name, ensure := range map[string]func(context.Context, *mongo.Database) error{
		"payments":           payment.EnsureIndexes,
		"system_configs":     sysconfig.EnsureIndexes,
		"invoices":           invoice.EnsureIndexes,
		"housekeeping_tasks": housekeeping.EnsureIndexes,
	} {
		if err := ensure(ctx, database); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// newStorage returns the configured backend and, for local disk, the directory to serve.
func newStorage(cfg *config.Config) (storage.Storage, string, error) {
	if cfg.StorageDriver == "s3" {
		s, err := storage.NewS3Storage(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
		return s, "", err
	}
	s, err := storage.NewLocalStorage(cfg.StorageLocalPath, filesRoute)
	if err != nil {
		return nil, "", err
	}
	return s, cfg.StorageLocalPath, nil
}
