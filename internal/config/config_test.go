package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/factcalc/internal/errors"
)

var testAlgos = []string{"iterative", "product-tree"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("factcalc", args, io.Discard, testAlgos)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.N != 100 {
		t.Errorf("N = %d, want 100", cfg.N)
	}
	if cfg.Algo != "iterative" {
		t.Errorf("Algo = %q, want iterative", cfg.Algo)
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Timeout)
	}
	if !cfg.ShowValue {
		t.Error("ShowValue should default to true")
	}
	if cfg.Quiet || cfg.Verbose || cfg.TUI {
		t.Error("Quiet, Verbose, and TUI should default to false")
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t, "-n", "5", "--algo", "product-tree", "--quiet", "--timeout", "10s")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.N != 5 {
		t.Errorf("N = %d, want 5", cfg.N)
	}
	if cfg.Algo != "product-tree" {
		t.Errorf("Algo = %q, want product-tree", cfg.Algo)
	}
	if !cfg.Quiet {
		t.Error("Quiet should be set")
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
}

func TestParseConfig_NegativeBoundAccepted(t *testing.T) {
	// Bound validation is owned by the engines so the failure surfaces
	// through the orchestrator, not as a flag parsing error.
	cfg, err := parse(t, "-n", "-1")
	if err != nil {
		t.Fatalf("ParseConfig should accept a negative bound, got %v", err)
	}
	if cfg.N != -1 {
		t.Errorf("N = %d, want -1", cfg.N)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown algorithm", []string{"--algo", "stirling"}},
		{"zero timeout", []string{"--timeout", "0s"}},
		{"negative threshold", []string{"--threshold", "-5"}},
		{"tui and serve together", []string{"--tui", "--serve", ":8080"}},
		{"positional arguments", []string{"100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			if err == nil {
				t.Fatal("expected a configuration error")
			}
			var configErr apperrors.ConfigError
			if !errors.As(err, &configErr) {
				t.Errorf("expected ConfigError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := parse(t, "--help")
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Run("env applies when flag not set", func(t *testing.T) {
		t.Setenv("FACTCALC_N", "25")
		cfg, err := parse(t)
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}
		if cfg.N != 25 {
			t.Errorf("N = %d, want 25 from FACTCALC_N", cfg.N)
		}
	})

	t.Run("explicit flag beats env", func(t *testing.T) {
		t.Setenv("FACTCALC_N", "25")
		cfg, err := parse(t, "-n", "7")
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}
		if cfg.N != 7 {
			t.Errorf("N = %d, want 7 (flag wins over env)", cfg.N)
		}
	})

	t.Run("boolean env spellings", func(t *testing.T) {
		t.Setenv("FACTCALC_QUIET", "yes")
		cfg, err := parse(t)
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}
		if !cfg.Quiet {
			t.Error("Quiet should be enabled by FACTCALC_QUIET=yes")
		}
	})

	t.Run("invalid env value is ignored", func(t *testing.T) {
		t.Setenv("FACTCALC_TIMEOUT", "not-a-duration")
		cfg, err := parse(t)
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}
		if cfg.Timeout != time.Minute {
			t.Errorf("Timeout = %v, want default 1m", cfg.Timeout)
		}
	})

	t.Run("env algo is still validated", func(t *testing.T) {
		t.Setenv("FACTCALC_ALGO", "stirling")
		_, err := parse(t)
		if err == nil {
			t.Error("invalid FACTCALC_ALGO should fail validation")
		}
	})
}

func TestToCalculationOptions(t *testing.T) {
	cfg := AppConfig{Threshold: 5000}
	opts := cfg.ToCalculationOptions()
	if opts.ParallelThreshold != 5000 {
		t.Errorf("ParallelThreshold = %d, want 5000", opts.ParallelThreshold)
	}
}
