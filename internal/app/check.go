package app

import (
	"context"
	"errors"
	"io"

	"github.com/agbru/fpcore/internal/bigint"
	"github.com/agbru/fpcore/internal/cli"
	apperrors "github.com/agbru/fpcore/internal/errors"
	"github.com/agbru/fpcore/internal/logging"
	"github.com/agbru/fpcore/internal/metrics"
	"github.com/agbru/fpcore/internal/selfcheck"
	"github.com/agbru/fpcore/internal/tui"
)

// runCheck runs the property battery and renders its report.
func (a *Application) runCheck(ctx context.Context, out io.Writer) int {
	m := metrics.NewCheckMetrics()
	logger := a.Logger
	if a.Config.TUI {
		// The dashboard owns the terminal.
		logger = logging.NewLogger(io.Discard, "fpcore")
	}
	runner := selfcheck.NewRunner(selfcheck.WithLogger(logger), selfcheck.WithMetrics(m))

	opts := selfcheck.Options{
		Samples: a.Config.Samples,
		Workers: a.Config.Workers,
		Seed:    a.Config.Seed,
		Oracle:  a.Config.Oracle,
	}

	report, err := a.execute(ctx, out, runner, opts)

	var (
		configErr     apperrors.ConfigError
		validationErr apperrors.ValidationError
	)
	if errors.As(err, &configErr) || errors.As(err, &validationErr) {
		return a.reportError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: "self-check", Limit: a.Config.Timeout}
	}

	// The dashboard has already shown the table; leave a summary behind.
	if a.Config.Quiet || a.Config.TUI {
		cli.DisplayQuietReport(out, report)
	} else {
		cli.DisplayReport(out, report)
	}

	if werr := cli.WriteMetricsFile(a.Config.MetricsFile, m); werr != nil {
		a.Logger.Error("could not write metrics", werr, logging.String("path", a.Config.MetricsFile))
		if err == nil {
			return apperrors.ExitErrorGeneric
		}
	}

	var checkErr apperrors.CheckError
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case errors.As(err, &checkErr):
		// The report already shows the counterexample.
		return apperrors.ExitErrorMismatch
	default:
		return a.reportError(err)
	}
}

// execute runs the battery in the mode selected by the configuration: a
// replay of fixed operands, the dashboard, or random sampling with a spinner.
func (a *Application) execute(ctx context.Context, out io.Writer, runner *selfcheck.Runner, opts selfcheck.Options) (selfcheck.Report, error) {
	switch {
	case a.Config.Replay():
		x, err := bigint.ParseHex(a.Config.ReplayA)
		if err != nil {
			return selfcheck.Report{}, apperrors.WrapError(err, "operand -a")
		}
		y, err := bigint.ParseHex(a.Config.ReplayB)
		if err != nil {
			return selfcheck.Report{}, apperrors.WrapError(err, "operand -b")
		}
		return runner.Replay(ctx, opts, x, y)

	case a.Config.TUI:
		return tui.Run(ctx, runner, opts, Version)
	}

	var progress func(float64)
	var display *cli.ProgressDisplay
	if !a.Config.Quiet {
		display = cli.StartProgress(out, "self-check")
		progress = display.Update
	}
	report, err := runner.Run(ctx, opts, progress)
	if display != nil {
		display.Stop()
	}
	return report, err
}
