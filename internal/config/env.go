// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "FACTCALC_"

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the FACTCALC_ prefix) to the CLI flag
// name it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flag   string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"N", "n", func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.N = parsed
		}
	}},
	{"THRESHOLD", "threshold", func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Threshold = parsed
		}
	}},
	// Duration overrides
	{"TIMEOUT", "timeout", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	// String overrides
	{"ALGO", "algo", func(c *AppConfig, v string) {
		c.Algo = v
	}},
	{"OUTPUT", "output", func(c *AppConfig, v string) {
		c.OutputFile = v
	}},
	// Boolean overrides
	{"QUIET", "quiet", func(c *AppConfig, v string) {
		if parsed, ok := parseEnvBool(v); ok {
			c.Quiet = parsed
		}
	}},
	{"VERBOSE", "verbose", func(c *AppConfig, v string) {
		if parsed, ok := parseEnvBool(v); ok {
			c.Verbose = parsed
		}
	}},
	{"SHOW_VALUE", "show-value", func(c *AppConfig, v string) {
		if parsed, ok := parseEnvBool(v); ok {
			c.ShowValue = parsed
		}
	}},
	{"NO_COLOR", "no-color", func(c *AppConfig, v string) {
		if parsed, ok := parseEnvBool(v); ok {
			c.NoColor = parsed
		}
	}},
}

// applyEnvOverrides walks the override table and applies every environment
// variable whose corresponding flag was not set explicitly on the command
// line. Flags always win over the environment.
func applyEnvOverrides(cfg AppConfig, fs *flag.FlagSet) AppConfig {
	for _, o := range envOverrides {
		if isFlagSet(fs, o.flag) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(&cfg, val)
		}
	}
	return cfg
}

// parseEnvBool parses the accepted boolean spellings.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false
// (case-insensitive).
func parseEnvBool(val string) (value, ok bool) {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}
