package main

import (
	"context"
	"log"

	"github.com/ethical-careers/ethical-careers-backend/config"
	"github.com/ethical-careers/ethical-careers-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()
	fb, err := bootstrap.OpenFirebase(ctx, cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fb.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		// Moderation falls back to calling the API uncached.
		log.Printf("redis unavailable, continuing without cache: %v", err)
		rdb = nil
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "ethical-careers-backend",
		Cfg:         cfg,
		Firebase:    fb,
		Redis:       rdb,
	})

	addr := ":" + cfg.Server.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.App.Environment)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
