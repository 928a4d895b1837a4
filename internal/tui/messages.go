package tui

import (
	"time"

	"github.com/agbru/fpcore/internal/selfcheck"
)

// ProgressMsg carries the completed fraction of the run, in [0, 1].
type ProgressMsg struct {
	Fraction float64
}

// ReportMsg is sent once the runner returns.
type ReportMsg struct {
	Report selfcheck.Report
	Err    error
}

// TickMsg refreshes the elapsed time while the run is in progress.
type TickMsg time.Time
