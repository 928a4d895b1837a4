package tui

import "testing"

func TestProgramRef_SendWithoutProgram(t *testing.T) {
	ref := &programRef{} // nil program - Send is a no-op
	ref.Send(ProgressMsg{Fraction: 0.5})
}

func TestProgramRef_ProgressCoalesces(t *testing.T) {
	ref := &programRef{}

	ref.Progress(0.001)
	if ref.last != 0 {
		t.Errorf("step below threshold forwarded: last = %v", ref.last)
	}
	ref.Progress(0.01)
	if ref.last != 0.01 {
		t.Errorf("last = %v, want 0.01", ref.last)
	}
	ref.Progress(0.012)
	if ref.last != 0.01 {
		t.Errorf("small step forwarded: last = %v", ref.last)
	}
	ref.Progress(1)
	if ref.last != 1 {
		t.Errorf("final fraction dropped: last = %v", ref.last)
	}
}
