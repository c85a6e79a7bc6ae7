package main

import (
	"context"
	"log"

	"github.com/puzzelhulp/woordzoeker-backend/config"
	"github.com/puzzelhulp/woordzoeker-backend/internal/bootstrap"
	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/warm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	rdb, err := bootstrap.OpenRedis(context.Background(), cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	db, err := bootstrap.OpenStatsDB(cfg)
	if err != nil {
		// Stats are optional; the lookup path works without them.
		log.Printf("stats disabled: %v", err)
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	router, components := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config: cfg,
		Redis:  rdb,
		DB:     db,
	})

	if components.Stats != nil {
		warmer := warm.NewScheduler(components.LookupService, components.Stats, cfg.Lookup.WarmTopN, cfg.Lookup.WarmSpec)
		warmer.Start()
		defer warmer.Stop()
	}

	log.Printf("woordzoeker-backend %s listening on :%s (env=%s)", cfg.App.Version, cfg.Server.Port, cfg.App.Environment)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
