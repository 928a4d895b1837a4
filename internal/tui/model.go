package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/fpcore/internal/errors"
	"github.com/agbru/fpcore/internal/format"
	"github.com/agbru/fpcore/internal/selfcheck"
)

// Layout constants for the dashboard.
const (
	propertyColumnWidth = 36
	maxBarWidth         = 60
	barMargin           = 8
)

// Model is the root bubbletea model for the self-check dashboard.
type Model struct {
	keymap KeyMap
	bar    progress.Model

	ctx    context.Context
	cancel context.CancelFunc
	runner *selfcheck.Runner
	opts   selfcheck.Options
	ref    *programRef

	version  string
	samples  int
	start    time.Time
	elapsed  time.Duration
	fraction float64

	report selfcheck.Report
	err    error
	done   bool
	// interrupted is set when the user quits before the runner returns.
	interrupted bool
}

// NewModel creates a dashboard for one run of runner with opts.
func NewModel(parentCtx context.Context, runner *selfcheck.Runner, opts selfcheck.Options, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	samples := opts.Samples
	if samples <= 0 {
		samples = selfcheck.DefaultSamples
	}
	return Model{
		keymap:  DefaultKeyMap(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(maxBarWidth)),
		ctx:     ctx,
		cancel:  cancel,
		runner:  runner,
		opts:    opts,
		ref:     &programRef{},
		version: version,
		samples: samples,
		start:   time.Now(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), runCmd(m.ctx, m.ref, m.runner, m.opts))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			if !m.done {
				m.interrupted = true
			}
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-barMargin, 10), maxBarWidth)
		return m, nil

	case ProgressMsg:
		if msg.Fraction > m.fraction {
			m.fraction = msg.Fraction
		}
		return m, nil

	case ReportMsg:
		m.report = msg.Report
		m.err = msg.Err
		m.done = true
		if msg.Report.Duration > 0 {
			m.elapsed = msg.Report.Duration
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = time.Since(m.start)
		return m, tickCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("fpcore self-check"))
	if m.version != "" {
		b.WriteString(" " + dimStyle.Render(m.version))
	}
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(m.fraction))
	fmt.Fprintf(&b, " %3.0f%%\n", m.fraction*100)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Samples"),
		valueStyle.Render(fmt.Sprintf("%d / %d", int(m.fraction*float64(m.samples)), m.samples)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Elapsed"),
		valueStyle.Render(format.FormatExecutionDuration(m.elapsed)))

	if m.done {
		b.WriteString("\n")
		b.WriteString(m.resultsView())
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

// resultsView renders the per-property table and the outcome.
func (m Model) resultsView() string {
	var b strings.Builder
	for _, res := range m.report.Results {
		status := passStyle.Render("PASS")
		if res.Failed > 0 {
			status = failStyle.Render("FAIL")
		}
		counts := fmt.Sprintf("%d passed, %d failed", res.Passed, res.Failed)
		fmt.Fprintf(&b, "%s %s  %s\n", labelStyle.Render(res.Name), status, dimStyle.Render(counts))
	}
	b.WriteString("\n")

	var checkErr apperrors.CheckError
	switch {
	case m.err == nil:
		fmt.Fprintf(&b, "%s\n", passStyle.Render(fmt.Sprintf("All %d properties held", len(m.report.Results))))
	case errors.As(m.err, &checkErr):
		fmt.Fprintf(&b, "%s %s\n", failStyle.Render("counterexample:"), checkErr.Property)
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(checkErr.Counterexample))
	default:
		fmt.Fprintf(&b, "%s %v\n", failStyle.Render("stopped:"), m.err)
	}
	return b.String()
}

func (m Model) footerView() string {
	if m.done {
		return keyStyle.Render("q") + " " + dimStyle.Render("quit")
	}
	return keyStyle.Render("q") + " " + dimStyle.Render("cancel")
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs the self-check under it and returns
// the runner's report once the user quits.
//
// Parameters:
//   - ctx: The parent context. Cancelling it stops the run.
//   - runner: The runner to drive. Its logger should not write to the
//     terminal.
//   - opts: The run options passed to runner.Run.
//   - version: Shown next to the title.
//
// Returns:
//   - selfcheck.Report: The report of the completed run.
//   - error: The runner's error, or a wrapped context.Canceled when the
//     user quit before the run completed.
func Run(ctx context.Context, runner *selfcheck.Runner, opts selfcheck.Options, version string) (selfcheck.Report, error) {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initStyles()

	model := NewModel(ctx, runner, opts, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the progress callback can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return selfcheck.Report{}, apperrors.WrapError(err, "dashboard failed")
	}

	m, ok := finalModel.(Model)
	if !ok {
		return selfcheck.Report{}, fmt.Errorf("unexpected model type %T", finalModel)
	}
	return m.result()
}

// result returns what the dashboard observed when it exited.
func (m Model) result() (selfcheck.Report, error) {
	if m.interrupted {
		return m.report, apperrors.WrapError(context.Canceled, "self-check interrupted")
	}
	return m.report, m.err
}

// runCmd returns a tea.Cmd that runs the battery and reports its outcome.
func runCmd(ctx context.Context, ref *programRef, runner *selfcheck.Runner, opts selfcheck.Options) tea.Cmd {
	return func() tea.Msg {
		report, err := runner.Run(ctx, opts, ref.Progress)
		return ReportMsg{Report: report, Err: err}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
