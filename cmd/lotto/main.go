package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"LottoSentinel/internal/collector"
	"LottoSentinel/internal/config"
	"LottoSentinel/internal/game"
	"LottoSentinel/internal/reconciler"
	"LottoSentinel/internal/recorder"
	"LottoSentinel/internal/scheduler"
	"LottoSentinel/internal/state"
	"LottoSentinel/internal/store"
	"LottoSentinel/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] LottoSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := collector.NewCanadaFetcher(
		cfg.API.BaseURL, cfg.API.Key, cfg.Proxy,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		time.Duration(cfg.API.MinDelayMillis)*time.Millisecond,
		cfg.API.MaxRetries,
	)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Per-game stores and reconcilers
	units := make([]scheduler.Unit, 0, len(game.All()))
	for _, g := range game.All() {
		dir := filepath.Join(cfg.Data.Dir, g.Dir())
		ds, err := store.NewDrawStore(dir, g.Config())
		if err != nil {
			log.Fatalf("[FATAL] init draw store for %s: %v", g.Name(), err)
		}
		ss, err := store.NewStatsStore(dir)
		if err != nil {
			log.Fatalf("[FATAL] init stats store for %s: %v", g.Name(), err)
		}
		units = append(units, scheduler.Unit{
			Game:       g,
			Store:      ds,
			Stats:      ss,
			Reconciler: reconciler.New(g, fetcher, ds, cfg.API.Workers),
		})
	}

	// Init state manager
	sm, err := state.NewManager(cfg.Data.StateFile, cfg.Generator.DefaultStrategy)
	if err != nil {
		log.Fatalf("[FATAL] init state manager: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, units, sm, rec)
	if err := sched.RegisterAll(cfg.Schedule.UpdateCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run an update immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing update task now")
		go sched.RunUpdateNow()
	}

	// Interactive menu on stdin
	app := newApp(ctx, cfg, units, strategy.NewManager(nil), sm, rec)
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Run()
	}()

	// Wait for menu exit or shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-done:
	}
	cancel()
	log.Println("[INFO] LottoSentinel stopped")
}
