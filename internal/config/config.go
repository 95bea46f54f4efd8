// Package config defines the application configuration and its resolution
// chain: command-line flags first, then FACTCALC_* environment variables for
// any flag not set explicitly, then static defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/factcalc/internal/errors"
	"github.com/agbru/factcalc/internal/factorial"
)

// Default configuration values.
const (
	// DefaultN is the factorial bound computed when none is given. The
	// reference run of the application is 100!.
	DefaultN = 100

	// DefaultAlgo is the engine used when none is selected.
	DefaultAlgo = "iterative"

	// DefaultTimeout bounds a single calculation run.
	DefaultTimeout = time.Minute
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// N is the factorial bound. Negative values are accepted here and
	// rejected by the engines, so the validation failure surfaces through
	// the normal error path.
	N int64
	// Algo selects the engine by factory key, or "all" for a comparison run.
	Algo string
	// Timeout bounds the whole calculation.
	Timeout time.Duration
	// Threshold overrides the engine parallel threshold (0 = default).
	Threshold int
	// Quiet reduces output to the digit sum alone.
	Quiet bool
	// Verbose adds timing, size, and resource statistics.
	Verbose bool
	// ShowValue prints the full decimal expansion of the factorial.
	ShowValue bool
	// OutputFile, when set, receives the result with a metadata header.
	OutputFile string
	// NoColor disables ANSI colors.
	NoColor bool
	// TUI launches the interactive dashboard.
	TUI bool
	// ServeAddr, when set, starts the HTTP API on that address instead of
	// running a calculation.
	ServeAddr string
	// Version requests the version banner.
	Version bool
}

// ToCalculationOptions converts the configuration into engine options.
func (c AppConfig) ToCalculationOptions() factorial.Options {
	return factorial.Options{ParallelThreshold: c.Threshold}
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment overrides for flags that were not set explicitly.
//
// Parameters:
//   - programName: The argv[0] name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: The writer for usage and error output.
//   - availableAlgos: The factory keys accepted by --algo.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when --help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	cfg := AppConfig{}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Int64Var(&cfg.N, "n", DefaultN, "factorial bound (n! will be computed)")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo,
		fmt.Sprintf("algorithm to use: %s, or 'all' to compare", strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "calculation timeout")
	fs.IntVar(&cfg.Threshold, "threshold", 0, "parallel threshold override (0 = auto)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the digit sum")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "print timing and resource statistics")
	fs.BoolVar(&cfg.ShowValue, "show-value", true, "print the full decimal expansion")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the result to this file")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&cfg.TUI, "tui", false, "launch the interactive dashboard")
	fs.StringVar(&cfg.ServeAddr, "serve", "", "serve the HTTP API on this address (e.g. :8080)")
	fs.BoolVar(&cfg.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	cfg = applyEnvOverrides(cfg, fs)

	if err := validate(cfg, availableAlgos); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate checks cross-flag constraints. The factorial bound itself is not
// validated here: engines own that rule.
func validate(cfg AppConfig, availableAlgos []string) error {
	if cfg.Algo != "all" && !slices.Contains(availableAlgos, cfg.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: %s, all)",
			cfg.Algo, strings.Join(availableAlgos, ", "))
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Threshold < 0 {
		return apperrors.NewConfigError("threshold must be >= 0, got %d", cfg.Threshold)
	}
	if cfg.TUI && cfg.ServeAddr != "" {
		return apperrors.NewConfigError("--tui and --serve are mutually exclusive")
	}
	return nil
}
