package app

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/agbru/fpcore/internal/config"
	apperrors "github.com/agbru/fpcore/internal/errors"
	"github.com/agbru/fpcore/internal/logging"
	"github.com/agbru/fpcore/internal/sysmon"
)

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	var errBuf bytes.Buffer
	a, err := New(append([]string{"fpcore"}, args...), &errBuf, WithLogger(logging.NewLogger(io.Discard, "test")))
	if err != nil {
		t.Fatalf("New(%v): %v\n%s", args, err, errBuf.String())
	}
	return a
}

func TestNew(t *testing.T) {
	a := newTestApp(t, "-samples", "8", "-seed", "3", "-workers", "2", "rand")
	if a.Config.Command != config.CommandRand {
		t.Errorf("Command = %q, want rand", a.Config.Command)
	}
	if a.Config.Samples != 8 || a.Config.Seed != 3 || a.Config.Workers != 2 {
		t.Errorf("unexpected config: %+v", a.Config)
	}
}

func TestNew_AdaptiveWorkers(t *testing.T) {
	a := newTestApp(t)
	if a.Config.Workers < 1 {
		t.Errorf("Workers = %d, want an estimate >= 1", a.Config.Workers)
	}
}

func TestNew_Errors(t *testing.T) {
	var errBuf bytes.Buffer
	if _, err := New([]string{"fpcore", "--help"}, &errBuf); !IsHelpError(err) {
		t.Errorf("--help: got %v, want flag.ErrHelp", err)
	}
	if _, err := New([]string{"fpcore", "frobnicate"}, &errBuf); apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
		t.Errorf("unknown command: got %v, want a config error", err)
	}
}

func TestRun_Check(t *testing.T) {
	a := newTestApp(t, "-samples", "16", "-seed", "42", "-q", "check")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	if !strings.HasPrefix(out.String(), "PASS ") {
		t.Errorf("quiet output = %q, want PASS summary", out.String())
	}
}

func TestRun_CheckFullReport(t *testing.T) {
	a := newTestApp(t, "-samples", "4", "-seed", "1", "-no-color")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	for _, s := range []string{`oracle "big"`, "a + b matches oracle", "Fp a * a^-1 == 1", "PASS"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("report missing %q:\n%s", s, out.String())
		}
	}
}

func TestRun_CheckUnknownOracle(t *testing.T) {
	a := newTestApp(t, "-oracle", "abacus", "-q")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRun_CheckCanceled(t *testing.T) {
	a := newTestApp(t, "-samples", "1000", "-q")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRun_CheckMetricsFile(t *testing.T) {
	path := t.TempDir() + "/metrics.prom"
	a := newTestApp(t, "-samples", "4", "-seed", "9", "-q", "-metrics-file", path)
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
}

func TestRun_CheckReplay(t *testing.T) {
	a := newTestApp(t, "-a", "0xffffffffffffffff", "-b", "0x1", "-q", "check")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	if !strings.HasPrefix(out.String(), "PASS ") || !strings.Contains(out.String(), "x 1 samples") {
		t.Errorf("quiet output = %q, want a single-sample PASS summary", out.String())
	}
}

func TestRun_CheckReplayInvalidOperand(t *testing.T) {
	var errBuf bytes.Buffer
	a, err := New([]string{"fpcore", "-a", "0x1", "-b", "0xzz", "-q"}, &errBuf, WithLogger(logging.NewLogger(io.Discard, "test")))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if out.Len() != 0 {
		t.Errorf("no report expected, got %q", out.String())
	}
	if !strings.Contains(errBuf.String(), "operand -b") {
		t.Errorf("error output = %q", errBuf.String())
	}
}

func TestRun_Rand(t *testing.T) {
	run := func() string {
		a := newTestApp(t, "-count", "3", "-seed", "7", "-hex", "rand")
		var out bytes.Buffer
		if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		return out.String()
	}

	first := run()
	lines := strings.Split(strings.TrimSpace(first), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), first)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "0x") {
			t.Errorf("line %q is not hexadecimal", l)
		}
		// Top limb is zero, so at most 32 limbs of 16 digits follow the prefix.
		if len(l) > 2+32*16 {
			t.Errorf("value wider than 2048 bits: %d digits", len(l)-2)
		}
	}
	if second := run(); second != first {
		t.Error("same seed produced different values")
	}
}

func TestRun_Info(t *testing.T) {
	host := func() sysmon.Stats { return sysmon.Stats{GOARCH: "arm64", NumCPU: 2, WordBits: 64, ASIMD: true} }
	a, err := New([]string{"fpcore", "-no-color", "info"}, io.Discard, WithHost(host))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "arm64") || !strings.Contains(out.String(), "2112") {
		t.Errorf("info output:\n%s", out.String())
	}
}

func TestRun_ServeCanceled(t *testing.T) {
	a := newTestApp(t, "-addr", "127.0.0.1:0", "serve")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := a.Run(ctx, io.Discard); code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
}

func TestRun_ServeBadAddress(t *testing.T) {
	a := newTestApp(t, "-addr", "not-an-address", "serve")
	var errBuf bytes.Buffer
	a.ErrWriter = &errBuf
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(errBuf.String(), "listen on") {
		t.Errorf("error output = %q", errBuf.String())
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()
	if !HasVersionFlag([]string{"-q", "--version"}) {
		t.Error("--version not detected")
	}
	if HasVersionFlag([]string{"check"}) {
		t.Error("false positive")
	}
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "fpcore ") {
		t.Errorf("PrintVersion = %q", out.String())
	}
}
