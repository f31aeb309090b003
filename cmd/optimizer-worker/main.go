package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrescamacho/mission-optimizer-core/internal/application/optimization"
	"github.com/andrescamacho/mission-optimizer-core/internal/adapters/metrics"
	"github.com/andrescamacho/mission-optimizer-core/internal/adapters/milp"
	"github.com/andrescamacho/mission-optimizer-core/internal/adapters/queue"
	"github.com/andrescamacho/mission-optimizer-core/internal/infrastructure/config"
	"github.com/andrescamacho/mission-optimizer-core/internal/infrastructure/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (defaults to search paths)")
	flag.Parse()

	fmt.Println("Mission Optimizer Worker v0.1.0")
	fmt.Println("================================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	logger := logging.New(cfg.Logging)
	fmt.Println("Logger initialized")

	collector := metrics.NewCollector()
	fmt.Println("Metrics collector initialized")

	engine := milp.NewEngine(milp.Config{
		Backends:       cfg.Solver.Backends,
		MaxDuration:    secondsToDuration(cfg.Solver.TimeoutSeconds),
		MIPGapRelative: cfg.Solver.MIPGap,
	})
	svc := optimization.NewService(engine, logger)
	fmt.Println("Optimization service wired")

	if err := engine.CheckBackend(); err != nil {
		return fmt.Errorf("no solver backend available: %w", err)
	}
	fmt.Println("Solver backend check passed")

	w := queue.NewWorker(queue.Config{
		URL:           queue.BuildURL(cfg.Queue.Host, cfg.Queue.Port, cfg.Queue.User, cfg.Queue.Pass),
		InputQueue:    cfg.Queue.InputQueue,
		OutputQueue:   cfg.Queue.OutputQueue,
		PrefetchCount: cfg.Queue.PrefetchCount,
	}, svc, logger, collector)
	fmt.Printf("Worker configured: input=%s output=%s\n", cfg.Queue.InputQueue, cfg.Queue.OutputQueue)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		addr := metrics.Addr(cfg.Metrics.Host, cfg.Metrics.Port)
		fmt.Printf("Metrics server enabled at %s%s\n", addr, cfg.Metrics.Path)
		go metrics.Serve(ctx, addr, cfg.Metrics.Path, collector, logger)
	}

	fmt.Println("Worker starting, press Ctrl+C to stop")
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("worker exited: %w", err)
	}
	fmt.Println("Worker stopped")
	return nil
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
