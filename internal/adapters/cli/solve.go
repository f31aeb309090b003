package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	applicationoptimization "github.com/andrescamacho/mission-optimizer-core/internal/application/optimization"
	"github.com/andrescamacho/mission-optimizer-core/internal/adapters/milp"
	"github.com/andrescamacho/mission-optimizer-core/internal/infrastructure/config"
	"github.com/andrescamacho/mission-optimizer-core/internal/infrastructure/logging"
)

var solveInputPath string

// NewSolveCommand builds the one-shot "solve" subcommand: read a job payload
// from a file (or stdin when --input is omitted), run it through the same
// pipeline the queue worker uses, and print the result document as JSON.
func NewSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a single mission-supply job payload and print the result",
		RunE:  runSolve,
	}
	cmd.Flags().StringVar(&solveInputPath, "input", "", "Path to a JSON job payload (defaults to stdin)")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg := config.MustLoadConfig(configPath)
	log := logging.New(cfg.Logging)

	raw, err := readPayload(solveInputPath)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}

	engine := milp.NewEngine(solverConfigFrom(cfg))
	svc := applicationoptimization.NewService(engine, log)

	result, err := svc.Solve(context.Background(), data)
	if err != nil {
		return fmt.Errorf("solve job: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func readPayload(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func solverConfigFrom(cfg *config.Config) milp.Config {
	base := milp.DefaultConfig()
	if len(cfg.Solver.Backends) > 0 {
		base.Backends = cfg.Solver.Backends
	}
	if cfg.Solver.TimeoutSeconds > 0 {
		base.MaxDuration = secondsToDuration(cfg.Solver.TimeoutSeconds)
	}
	if cfg.Solver.MIPGap > 0 {
		base.MIPGapRelative = cfg.Solver.MIPGap
	}
	return base
}
