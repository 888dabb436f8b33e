package main

import (
	"context"
	"log"
	"time"

	"mutual-aid/config"
	"mutual-aid/internal/handler"
	"mutual-aid/internal/proxy"
	"mutual-aid/internal/redis"
	"mutual-aid/internal/repository"
	"mutual-aid/internal/server"
	"mutual-aid/internal/services"
	"mutual-aid/internal/storage"
	"mutual-aid/pkg/database"
	"mutual-aid/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.DefaultSessionSecretInUse() {
		l.Logger.Warn("SESSION_SECRET not set, signing sessions with the built-in development secret")
	}

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, l)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	// optional Redis: profile cache and rate limits
	var userCache services.UserCache
	var limiter *redis.RateLimiter
	if cfg.RedisEnabled() {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := redis.Ping(pingCtx, client)
		cancel()
		if err != nil {
			l.Logger.Warn("redis unavailable, running without cache and rate limits", zap.Error(err))
		} else {
			userCache = redis.NewCacheStore(client, redis.DefaultCacheConfig())
			limits := redis.DefaultRateLimitConfig()
			limits.AuthLimit = cfg.AuthRateLimit
			limiter = redis.NewRateLimiter(client, limits)
		}
	}

	var presigner services.Presigner
	if cfg.S3Enabled() {
		s3Client, err := storage.NewClient(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
		if err != nil {
			log.Fatalf("Failed to configure attachment storage: %v", err)
		}
		presigner = s3Client
	}

	userService := services.NewUserService(store.Users, userCache, l)
	requestService := services.NewRequestService(store.Requests, store.Chat, store.Users, l)
	chatService := services.NewChatService(store.Chat, proxy.NewAccessControl(store.Requests, cfg.ChatStrictAccess), store.Users, l)
	attachmentService := services.NewAttachmentService(store.Requests, presigner, l)
	sessionService := services.NewSessionService(cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:        handler.NewAuthHandler(userService, sessionService),
		Users:       handler.NewUserHandler(userService),
		Requests:    handler.NewRequestHandler(requestService),
		Chat:        handler.NewChatHandler(chatService),
		Attachments: handler.NewAttachmentHandler(attachmentService),
	}, server.Dependencies{
		Sessions: sessionService,
		Limiter:  limiter,
		Health:   store.HealthCheck,
	})

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

// openStore returns the configured backend and its cleanup.
func openStore(ctx context.Context, cfg *config.Config, l *logger.Logger) (*repository.Store, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		store := repository.NewMemoryStore()
		if cfg.SeedDemoData {
			if _, err := database.SeedDevelopment(ctx, store, l); err != nil {
				return nil, nil, err
			}
		}
		l.Infof("Using in-memory store")
		return store, func() {}, nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, nil, err
	}
	store := repository.NewGormStore(db)
	if cfg.SeedDemoData {
		if _, err := database.SeedDevelopment(ctx, store, l); err != nil {
			database.Close(db)
			return nil, nil, err
		}
	}
	l.Infof("Database connection established (%s)", cfg.StoreDriver)
	return store, func() { database.Close(db) }, nil
}
