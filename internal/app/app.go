// Package app wires configuration, logging and the self-check runner into
// the fpcore command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os/signal"
	"syscall"

	"github.com/agbru/fpcore/internal/bigint"
	"github.com/agbru/fpcore/internal/cli"
	"github.com/agbru/fpcore/internal/config"
	apperrors "github.com/agbru/fpcore/internal/errors"
	"github.com/agbru/fpcore/internal/logging"
	"github.com/agbru/fpcore/internal/server"
	"github.com/agbru/fpcore/internal/sysmon"
	"github.com/agbru/fpcore/internal/ui"
)

// Application represents the fpcore application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	// Host samples the machine for the info command.
	Host func() sysmon.Stats
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the logger passed to the self-check runner.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithHost replaces the host sampler used by the info command.
func WithHost(f func() sysmon.Stats) AppOption {
	return func(a *Application) { a.Host = f }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "fpcore"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:    config.ApplyAdaptiveWorkers(cfg),
		ErrWriter: errWriter,
		Host:      sysmon.Sample,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "fpcore", app.Config.Verbose)
	}
	return app, nil
}

// Run executes the configured command and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	switch a.Config.Command {
	case config.CommandRand:
		return a.runRand(out)
	case config.CommandInfo:
		cli.DisplayInfo(out, a.Host())
		return apperrors.ExitSuccess
	case config.CommandServe:
		ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stopSignals()
		return a.runServe(ctx)
	default:
		ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
		ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stopSignals()
		return a.runCheck(ctx, out)
	}
}

// runRand prints Config.Count random BigIntegers.
func (a *Application) runRand(out io.Writer) int {
	src := bigint.NewCryptoSource()
	if a.Config.Seed != 0 {
		src = rand.New(rand.NewSource(a.Config.Seed))
	}
	values := make([]bigint.BigInteger, a.Config.Count)
	for i := range values {
		values[i] = bigint.Rand(src)
	}
	cli.DisplayValues(out, values, a.Config.Hex)
	return apperrors.ExitSuccess
}

// runServe serves the self-check over HTTP until ctx ends. Timeout applies
// to each /check request.
func (a *Application) runServe(ctx context.Context) int {
	srv := server.NewServer(a.Config, a.Logger)
	if err := srv.Start(ctx); err != nil {
		return a.reportError(err)
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// reportError prints err to the error writer and returns its exit code.
func (a *Application) reportError(err error) int {
	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitCode(err)
}
