// Package config parses fpcore's command line and environment into an
// AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/fpcore/internal/errors"
)

// EnvPrefix prefixes every environment variable read by fpcore.
const EnvPrefix = "FPCORE_"

// Commands accepted as the first positional argument.
const (
	CommandCheck = "check"
	CommandRand  = "rand"
	CommandInfo  = "info"
	CommandServe = "serve"
)

// Defaults.
const (
	DefaultSamples = 64
	DefaultTimeout = 5 * time.Minute
	DefaultCount   = 1
	DefaultOracle  = "big"
	DefaultAddr    = ":8080"
	// MaxServeSamples caps the samples of a single /check request.
	MaxServeSamples = 10_000
)

// AppConfig holds the resolved configuration of one invocation.
type AppConfig struct {
	// Command is one of CommandCheck, CommandRand, CommandInfo or CommandServe.
	Command string
	// Samples is the number of operand pairs drawn by check.
	Samples int
	// Workers bounds check concurrency; 0 selects an estimate from the CPU count.
	Workers int
	// Seed makes check and rand reproducible; 0 selects crypto/rand.
	Seed int64
	// Timeout bounds the duration of check.
	Timeout time.Duration
	// Oracle names the reference arithmetic used by check.
	Oracle string
	// Count is the number of values printed by rand.
	Count int
	// Hex prints values in hexadecimal instead of the limb diagnostic form.
	Hex bool
	// MetricsFile receives Prometheus text metrics after check, if set.
	MetricsFile string
	// Verbose enables debug logging.
	Verbose bool
	// Quiet suppresses progress and decorations.
	Quiet bool
	// NoColor disables ANSI styling.
	NoColor bool
	// Addr is the listen address of serve.
	Addr string
	// TUI runs check inside the interactive dashboard.
	TUI bool
	// ReplayA and ReplayB, when set, make check evaluate every property once
	// on this hexadecimal operand pair instead of drawing random samples.
	ReplayA string
	ReplayB string
}

// Replay reports whether check replays a fixed operand pair.
func (c AppConfig) Replay() bool {
	return c.ReplayA != "" || c.ReplayB != ""
}

// ParseConfig parses args (without the program name) and applies
// environment overrides for flags that were not set explicitly.
//
// Parameters:
//   - programName: The name shown in the usage message.
//   - args: The command-line arguments, flags first, then at most one command.
//   - errorWriter: The destination of usage and validation messages.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, the flag package's parse
//     error, or an apperrors.ConfigError when validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [check|rand|info|serve]\n\nFlags:\n", programName)
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.IntVar(&config.Samples, "samples", DefaultSamples, "Number of random operand pairs drawn by check.")
	fs.IntVar(&config.Workers, "workers", 0, "Concurrent workers for check (0 = estimate from CPU count).")
	fs.Int64Var(&config.Seed, "seed", 0, "Seed for reproducible runs (0 = crypto/rand).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of check.")
	fs.StringVar(&config.Oracle, "oracle", DefaultOracle, "Reference arithmetic for check.")
	fs.IntVar(&config.Count, "count", DefaultCount, "Number of values printed by rand.")
	fs.BoolVar(&config.Hex, "hex", false, "Print values in hexadecimal.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus text metrics to this file after check.")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logging (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: no progress or decorations.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable coloured output.")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "Listen address of serve.")
	fs.BoolVar(&config.TUI, "tui", false, "Run check in the interactive dashboard.")
	fs.StringVar(&config.ReplayA, "a", "", "Replay check on this hexadecimal first operand (requires -b).")
	fs.StringVar(&config.ReplayB, "b", "", "Replay check on this hexadecimal second operand (requires -a).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	config.Command = CommandCheck
	switch fs.NArg() {
	case 0:
	case 1:
		config.Command = fs.Arg(0)
	default:
		return AppConfig{}, apperrors.NewConfigError("expected at most one command, got %v", fs.Args())
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	switch c.Command {
	case CommandCheck, CommandRand, CommandInfo, CommandServe:
	default:
		return apperrors.NewConfigError("unknown command %q (expected check, rand, info or serve)", c.Command)
	}
	if c.Samples <= 0 {
		return apperrors.NewConfigError("-samples must be positive, got %d", c.Samples)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("-workers must not be negative, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive, got %s", c.Timeout)
	}
	if c.Count <= 0 {
		return apperrors.NewConfigError("-count must be positive, got %d", c.Count)
	}
	if c.Oracle == "" {
		return apperrors.NewConfigError("-oracle must not be empty")
	}
	if c.Command == CommandServe {
		if c.Addr == "" {
			return apperrors.NewConfigError("-addr must not be empty for serve")
		}
		if c.Samples > MaxServeSamples {
			return apperrors.NewConfigError("-samples must not exceed %d for serve, got %d", MaxServeSamples, c.Samples)
		}
	}
	if c.TUI && c.Command != CommandCheck {
		return apperrors.NewConfigError("-tui only applies to check, not %s", c.Command)
	}
	if c.Replay() {
		if c.Command != CommandCheck {
			return apperrors.NewConfigError("-a and -b only apply to check, not %s", c.Command)
		}
		if c.ReplayA == "" || c.ReplayB == "" {
			return apperrors.NewConfigError("-a and -b must be given together")
		}
		if c.TUI {
			return apperrors.NewConfigError("-tui cannot be combined with -a and -b")
		}
	}
	return nil
}
