// Package config loads the run configuration of the valves CLI from HCL.
//
// Example file:
//
//	input     = env("VALVES_INPUT")
//	start     = "AA"
//	max_turns = 30
//	strategy  = "parallel"
//	workers   = 4
//
//	log {
//	  level  = "debug"
//	  format = "json"
//	}
//
// Every attribute is optional; missing ones keep the value from Default.
// Unknown attributes and blocks are rejected.
// A relative input path is resolved against the directory of the file.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/katalvlaran/valvesearch/core"
	"github.com/katalvlaran/valvesearch/internal/logging"
	"github.com/katalvlaran/valvesearch/search"
)

// ErrInvalidConfig is returned for unparsable or out-of-range configuration.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is a fully resolved run configuration.
type Config struct {
	Input    string
	Start    string
	MaxTurns uint64
	Strategy string
	Workers  int
	Log      LogConfig
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// hclFile is the decoding target; pointers tell absent from zero.
type hclFile struct {
	Input    *string `hcl:"input,optional"`
	Start    *string `hcl:"start,optional"`
	MaxTurns *int    `hcl:"max_turns,optional"`
	Strategy *string `hcl:"strategy,optional"`
	Workers  *int    `hcl:"workers,optional"`
	Log      *hclLog `hcl:"log,block"`
}

type hclLog struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Start:    search.DefaultStart.String(),
		MaxTurns: search.DefaultMaxTurns,
		Strategy: search.StrategyExhaustive.String(),
		Workers:  0,
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads and validates the HCL file at path.
func Load(ctx context.Context, path string) (Config, error) {
	logger := logging.FromContext(ctx)
	logger.Debug("Loading config", "path", path)

	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, path, diags)
	}
	cfg, err := decode(f.Body, path)
	if err != nil {
		return Config{}, err
	}
	if cfg.Input != "" && !filepath.IsAbs(cfg.Input) {
		cfg.Input = filepath.Join(filepath.Dir(path), cfg.Input)
	}
	logger.Debug("Config loaded", "input", cfg.Input, "strategy", cfg.Strategy, "max_turns", cfg.MaxTurns)

	return cfg, nil
}

// Parse decodes and validates HCL source. filename is used in diagnostics
// only; relative input paths are left as written.
func Parse(src []byte, filename string) (Config, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, filename, diags)
	}

	return decode(f.Body, filename)
}

func decode(body hcl.Body, filename string) (Config, error) {
	var raw hclFile
	if diags := gohcl.DecodeBody(body, evalContext(), &raw); diags.HasErrors() {
		return Config{}, fmt.Errorf("%w: failed to decode %s: %w", ErrInvalidConfig, filename, diags)
	}

	cfg := Default()
	if raw.Input != nil {
		cfg.Input = *raw.Input
	}
	if raw.Start != nil {
		cfg.Start = *raw.Start
	}
	if raw.MaxTurns != nil {
		if *raw.MaxTurns <= 0 {
			return Config{}, fmt.Errorf("%w: %s: max_turns must be positive, got %d", ErrInvalidConfig, filename, *raw.MaxTurns)
		}
		cfg.MaxTurns = uint64(*raw.MaxTurns)
	}
	if raw.Strategy != nil {
		cfg.Strategy = *raw.Strategy
	}
	if raw.Workers != nil {
		cfg.Workers = *raw.Workers
	}
	if raw.Log != nil {
		if raw.Log.Level != nil {
			cfg.Log.Level = *raw.Log.Level
		}
		if raw.Log.Format != nil {
			cfg.Log.Format = *raw.Log.Format
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}

	return cfg, nil
}

// Validate checks every field for range and spelling.
func (c Config) Validate() error {
	if _, err := core.ParseName(c.Start); err != nil {
		return fmt.Errorf("%w: start: %w", ErrInvalidConfig, err)
	}
	if c.MaxTurns == 0 {
		return fmt.Errorf("%w: max_turns must be positive", ErrInvalidConfig)
	}
	if _, err := search.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: strategy: %w", ErrInvalidConfig, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative (%d)", ErrInvalidConfig, c.Workers)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// SearchOptions converts c into search options. c must be valid.
func (c Config) SearchOptions() ([]search.Option, error) {
	start, err := core.ParseName(c.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %w", ErrInvalidConfig, err)
	}
	st, err := search.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: strategy: %w", ErrInvalidConfig, err)
	}

	return []search.Option{
		search.WithStart(start),
		search.WithMaxTurns(c.MaxTurns),
		search.WithStrategy(st),
		search.WithWorkers(c.Workers),
	}, nil
}

// evalContext exposes env("NAME") to expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": envFunc,
		},
	}
}

var envFunc = function.New(&function.Spec{
	Description: "Returns the value of an environment variable, or an empty string.",
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})
