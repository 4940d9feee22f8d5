package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/peptitrace/backend/config"
	"github.com/peptitrace/backend/internal/database"
	"github.com/peptitrace/backend/internal/router"
	"github.com/peptitrace/backend/internal/server"
	"github.com/peptitrace/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go database.Monitor(ctx, db)

	seeds := service.NewSeedService(db)
	if err := seeds.EnsureModerator(ctx, cfg.InitialModeratorEmail, service.Plaintext(cfg.InitialModeratorPassword)); err != nil {
		log.Printf("failed to ensure moderator account: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisEnabled() {
		cache, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("redis unavailable, caching disabled: %v", err)
			cache = nil
		}
	}

	storage, err := config.NewS3Config(ctx)
	if err != nil {
		log.Printf("object storage unavailable, exports disabled: %v", err)
		storage = nil
	}

	engine := router.Setup(router.Deps{
		DB:            db,
		Cache:         cache,
		Storage:       storage,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
	})

	srv := server.New(engine)
	if err := srv.Start(cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("Server stopped")
}
