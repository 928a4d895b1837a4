package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// minProgressStep is the smallest fraction increase forwarded to the
// program. Smaller steps are dropped except for the final one.
const minProgressStep = 0.005

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the runner's callback can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program

	// last is only touched by Progress, which the runner serialises.
	last float64
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Progress is the runner's progress callback. It forwards the completed
// fraction as a ProgressMsg, coalescing steps below minProgressStep.
func (r *programRef) Progress(fraction float64) {
	if fraction < 1 && fraction-r.last < minProgressStep {
		return
	}
	r.last = fraction
	r.Send(ProgressMsg{Fraction: fraction})
}
