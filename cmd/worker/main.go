package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/ethical-careers/ethical-careers-backend/config"
	"github.com/ethical-careers/ethical-careers-backend/internal/aggregate"
	"github.com/ethical-careers/ethical-careers-backend/internal/bootstrap"
	"github.com/ethical-careers/ethical-careers-backend/internal/companies"
)

func main() {
	once := flag.Bool("once", false, "run all jobs immediately and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	fb, err := bootstrap.OpenFirebase(ctx, cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fb.Close()

	jobs := aggregate.NewJobs(fb.Firestore, companies.NewRepo(fb.Firestore))

	if *once {
		jobs.RunAll(ctx)
		return
	}

	c := cron.New(cron.WithSeconds())

	// Nightly at 12:00 AM.
	_, err = c.AddFunc("0 0 0 * * *", func() {
		jobs.RunAll(context.Background())
	})
	if err != nil {
		log.Fatalf("failed to create cron job: %v", err)
	}

	log.Println("worker scheduler started (running nightly at 12:00AM)")
	c.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("worker shutting down")
	<-c.Stop().Done()
}
