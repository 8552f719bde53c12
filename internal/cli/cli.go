// Package cli implements the valves command: it parses flags, merges them
// over an optional HCL config, loads the network and runs the search.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/valvesearch/core"
	"github.com/katalvlaran/valvesearch/internal/config"
	"github.com/katalvlaran/valvesearch/internal/logging"
	"github.com/katalvlaran/valvesearch/internal/observability"
	"github.com/katalvlaran/valvesearch/network"
	"github.com/katalvlaran/valvesearch/search"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Invocation is the parsed command line.
type Invocation struct {
	Config  config.Config
	Metrics bool
}

// Parse processes command-line arguments. It returns the resolved
// Invocation, a boolean indicating if the program should exit cleanly, or an
// ExitError with code 2 for usage problems.
func Parse(ctx context.Context, args []string, output io.Writer) (*Invocation, bool, error) {
	flagSet := flag.NewFlagSet("valves", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
valves - find the move sequence that releases the most pressure.

Usage:
  valves [options] [INPUT]

Arguments:
  INPUT
    Path to a file with one "Valve XX has flow rate=N; tunnels lead to valves ..." record per line.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL config file. Flags override its values.")
	inputFlag := flagSet.String("input", "", "Path to the valve input file.")
	startFlag := flagSet.String("start", search.DefaultStart.String(), "Starting valve.")
	turnsFlag := flagSet.Uint64("turns", search.DefaultMaxTurns, "Turn budget.")
	strategyFlag := flagSet.String("strategy", search.StrategyExhaustive.String(), "Search strategy: 'exhaustive', 'max-by-key' or 'parallel'.")
	workersFlag := flagSet.Int("workers", 0, "Goroutines for the parallel strategy. 0 uses GOMAXPROCS.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	metricsFlag := flagSet.Bool("metrics", false, "Print search metrics in Prometheus text format after the result.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
	}

	// only flags given on the command line override the config file
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *inputFlag
		case "start":
			cfg.Start = *startFlag
		case "turns":
			cfg.MaxTurns = *turnsFlag
		case "strategy":
			cfg.Strategy = *strategyFlag
		case "workers":
			cfg.Workers = *workersFlag
		case "log-level":
			cfg.Log.Level = *logLevelFlag
		case "log-format":
			cfg.Log.Format = *logFormatFlag
		}
	})
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one INPUT, got %d", flagSet.NArg())}
	}
	if flagSet.NArg() == 1 {
		cfg.Input = flagSet.Arg(0)
	}

	if cfg.Input == "" {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "no input file given"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return &Invocation{Config: cfg, Metrics: *metricsFlag}, false, nil
}

// Run executes a parsed Invocation, writing the result to stdout.
func Run(ctx context.Context, inv *Invocation, stdout io.Writer) error {
	logger := logging.FromContext(ctx)
	cfg := inv.Config

	net, err := loadNetwork(ctx, cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("Network loaded", "path", cfg.Input, "valves", net.Len(), "useful", len(net.UsefulValves()))

	opts, err := cfg.SearchOptions()
	if err != nil {
		return err
	}

	var collector *observability.SearchCollector
	if inv.Metrics {
		collector, err = observability.NewSearchCollector(prometheus.NewRegistry())
		if err != nil {
			return fmt.Errorf("cli: metrics: %w", err)
		}
		collector.ObserveNetwork(net)
		st, _ := search.ParseStrategy(cfg.Strategy) // validated by Parse
		opts = append(opts, collector.SearchOptions(st)...)
	}

	logger.Debug("Search started", "start", cfg.Start, "max_turns", cfg.MaxTurns, "strategy", cfg.Strategy, "workers", cfg.Workers)
	began := time.Now()
	res, err := search.Solve(net, opts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(began)
	logger.Info("Search finished", "pressure", res.Pressure, "opened", res.Opened, "elapsed", elapsed)

	fmt.Fprintf(stdout, "best pressure: %d\n", res.Pressure)
	if collector != nil {
		collector.ObserveResult(res, elapsed)
		if err := collector.WriteText(stdout); err != nil {
			return err
		}
	}

	return nil
}

// Main parses args, configures logging and runs the command. It returns the
// process exit code: 0 on success, 1 on run failures, 2 on usage errors.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	inv, shouldExit, err := Parse(ctx, args, stderr)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(stderr, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	if shouldExit {
		return 0
	}

	logger := logging.New(inv.Config.Log.Level, inv.Config.Log.Format, stderr)
	ctx = logging.WithLogger(ctx, logger)
	if err := Run(ctx, inv, stdout); err != nil {
		logger.Error("Run failed", "error", err)
		return 1
	}

	return 0
}

func loadNetwork(ctx context.Context, path string) (*network.Network, error) {
	logging.FromContext(ctx).Debug("Reading input", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cli: open input: %w", err)
	}
	defer f.Close()

	g, err := core.ParseReader(f)
	if err != nil {
		return nil, err
	}

	return network.New(g)
}
