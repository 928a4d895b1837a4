// Package cli renders fpcore's terminal output.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fpcore/internal/format"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so progress display can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressDisplay shows a spinner with a progress bar while a self-check
// runs. Update is safe for concurrent use.
type ProgressDisplay struct {
	mu      sync.Mutex
	s       Spinner
	label   string
	start   time.Time
	stopped bool
}

// StartProgress starts a spinner labelled label on out.
func StartProgress(out io.Writer, label string) *ProgressDisplay {
	p := &ProgressDisplay{
		s:     newSpinner(spinner.WithWriter(out)),
		label: label,
		start: time.Now(),
	}
	p.s.UpdateSuffix(FormatProgress(label, 0, 0))
	p.s.Start()
	return p
}

// Update sets the completed fraction.
func (p *ProgressDisplay) Update(fraction float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.s.UpdateSuffix(FormatProgress(p.label, fraction, time.Since(p.start)))
}

// Stop halts the spinner. Later calls to Update are ignored.
func (p *ProgressDisplay) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	p.s.Stop()
}

// FormatProgress renders the spinner suffix for a completed fraction.
func FormatProgress(label string, fraction float64, elapsed time.Duration) string {
	fraction = clamp(fraction)
	return fmt.Sprintf(" %s [%s] %6.2f%% (%s)",
		label, progressBar(fraction, ProgressBarWidth), fraction*100, format.FormatExecutionDuration(elapsed))
}

func clamp(progress float64) float64 {
	if progress > 1.0 {
		return 1.0
	}
	if progress < 0.0 {
		return 0.0
	}
	return progress
}

// progressBar generates a textual progress bar of the given width.
func progressBar(progress float64, length int) string {
	count := int(clamp(progress) * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
