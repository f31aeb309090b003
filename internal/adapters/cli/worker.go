package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	applicationoptimization "github.com/andrescamacho/mission-optimizer-core/internal/application/optimization"
	"github.com/andrescamacho/mission-optimizer-core/internal/adapters/metrics"
	"github.com/andrescamacho/mission-optimizer-core/internal/adapters/milp"
	"github.com/andrescamacho/mission-optimizer-core/internal/adapters/queue"
	"github.com/andrescamacho/mission-optimizer-core/internal/infrastructure/config"
	"github.com/andrescamacho/mission-optimizer-core/internal/infrastructure/logging"
)

// NewWorkerCommand builds the "worker" subcommand: the same broker loop
// cmd/optimizer-worker runs as a daemon, started here in the foreground for
// local testing against a real broker.
func NewWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the optimization queue worker in the foreground",
		RunE:  runWorker,
	}
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg := config.MustLoadConfig(configPath)
	log := logging.New(cfg.Logging)

	engine := milp.NewEngine(solverConfigFrom(cfg))
	svc := applicationoptimization.NewService(engine, log)

	if err := engine.CheckBackend(); err != nil {
		return fmt.Errorf("no solver backend available: %w", err)
	}

	collector := metrics.NewCollector()

	w := queue.NewWorker(queue.Config{
		URL:           queue.BuildURL(cfg.Queue.Host, cfg.Queue.Port, cfg.Queue.User, cfg.Queue.Pass),
		InputQueue:    cfg.Queue.InputQueue,
		OutputQueue:   cfg.Queue.OutputQueue,
		PrefetchCount: cfg.Queue.PrefetchCount,
	}, svc, log, collector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		go metrics.Serve(ctx, metrics.Addr(cfg.Metrics.Host, cfg.Metrics.Port), cfg.Metrics.Path, collector, log)
	}

	log.Info().Str("input_queue", cfg.Queue.InputQueue).Msg("worker starting")
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("worker exited: %w", err)
	}
	log.Info().Msg("worker stopped")
	return nil
}
