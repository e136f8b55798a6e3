package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"salarydash/internal/api"
	"salarydash/internal/config"
	"salarydash/internal/engine"
)

func main() {
	cfg := config.Default()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.DatasetURL, "dataset-url", cfg.DatasetURL, "salary dataset CSV URL")
	flag.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "how long a fetched dataset stays fresh")
	flag.DurationVar(&cfg.WarmInterval, "warm-interval", cfg.WarmInterval, "background refresh interval (0 disables)")
	flag.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "dataset fetch timeout")
	flag.StringVar(&cfg.CountryTitle, "country-title", cfg.CountryTitle, "default job title for the per-country chart")
	flag.Parse()

	// 1. Initialize Echo (starts instantly)
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = api.JSONSerializer{}
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	loader := engine.NewLoader(cfg.DatasetURL, &http.Client{Timeout: cfg.FetchTimeout})
	cache := engine.NewCache(cfg.CacheTTL, loader.Load)

	h := api.NewHandler(cache, cfg.CountryTitle)
	h.RegisterRoutes(e)

	// 2. Warm the cache in the background. Requests arriving before the
	// first fetch completes simply join it instead of failing.
	go func() {
		log.Println("BACKGROUND: warming dataset cache...")
		t0 := time.Now()
		snap, err := cache.Get(context.Background())
		if err != nil {
			log.Printf("BACKGROUND: initial load failed: %v", err)
			return
		}
		log.Printf("BACKGROUND: dataset ready in %v (%d rows, snapshot %s)", time.Since(t0), snap.Table.Len(), snap.ID)
	}()

	// 3. Scheduled refresh keeps interactive requests off the fetch path.
	var scheduler *gocron.Scheduler
	if cfg.WarmInterval > 0 {
		scheduler = gocron.NewScheduler(time.UTC)
		_, err := scheduler.Every(cfg.WarmInterval).Do(func() {
			snap, err := cache.Refresh(context.Background())
			if err != nil {
				log.Printf("SCHEDULER: dataset refresh failed: %v", err)
				return
			}
			log.Printf("SCHEDULER: dataset refreshed (%d rows, snapshot %s)", snap.Table.Len(), snap.ID)
		})
		if err != nil {
			log.Printf("SCHEDULER: setup failed: %v", err)
		} else {
			scheduler.StartAsync()
		}
	}

	// 4. Start the server and wait for a shutdown signal.
	go func() {
		log.Printf("Server ready on %s (dataset loading in background...)", cfg.Addr)
		if err := e.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if scheduler != nil {
		scheduler.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
