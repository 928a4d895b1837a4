package selfcheck

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fpcore/internal/bigint"
	apperrors "github.com/agbru/fpcore/internal/errors"
	"github.com/agbru/fpcore/internal/logging"
	"github.com/agbru/fpcore/internal/metrics"
)

const tracerName = "github.com/agbru/fpcore/internal/selfcheck"

// DefaultSamples is the number of operand pairs drawn when Options.Samples
// is not positive.
const DefaultSamples = 64

// Options configures a single self-check run.
type Options struct {
	// Samples is the number of random operand pairs to draw.
	Samples int
	// Workers bounds the number of concurrent workers. Defaults to NumCPU.
	Workers int
	// Seed makes the run reproducible; worker w uses Seed+w. Zero selects
	// crypto/rand.
	Seed int64
	// Oracle names the reference implementation. Defaults to "big".
	Oracle string
	// Properties restricts the battery. Nil selects Properties().
	Properties []Property
}

func (o Options) withDefaults() Options {
	if o.Samples <= 0 {
		o.Samples = DefaultSamples
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Workers > o.Samples {
		o.Workers = o.Samples
	}
	if o.Oracle == "" {
		o.Oracle = BigOracle{}.Name()
	}
	if o.Properties == nil {
		o.Properties = Properties()
	}
	return o
}

func (o Options) source(worker int) bigint.Source {
	if o.Seed == 0 {
		return bigint.NewCryptoSource()
	}
	return rand.New(rand.NewSource(o.Seed + int64(worker)))
}

// PropertyResult tallies the outcome of one property across all samples.
type PropertyResult struct {
	Name   string
	Passed int
	Failed int
	// FirstFailure is set when Failed > 0.
	FirstFailure *apperrors.CheckError
}

// Report summarises a run.
type Report struct {
	Oracle   string
	Samples  int
	Workers  int
	Duration time.Duration
	Results  []PropertyResult
	Memory   metrics.MemoryDelta
}

// Failures returns the total number of failed evaluations.
func (r Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		n += res.Failed
	}
	return n
}

// Err returns the first recorded failure, or nil if every property held.
func (r Report) Err() error {
	for _, res := range r.Results {
		if res.FirstFailure != nil {
			return *res.FirstFailure
		}
	}
	return nil
}

// Runner executes the property battery.
type Runner struct {
	logger  logging.Logger
	metrics *metrics.CheckMetrics
	memory  *metrics.MemoryCollector
}

// RunnerOption configures a Runner during construction.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for failures and the run summary.
func WithLogger(l logging.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.CheckMetrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a Runner. Without options it logs to stderr and records
// metrics in a private registry.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{memory: metrics.NewMemoryCollector()}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewDefaultLogger()
	}
	if r.metrics == nil {
		r.metrics = metrics.NewCheckMetrics()
	}
	return r
}

// Run draws opts.Samples operand pairs, evaluates every property on each and
// returns the tally.
//
// Parameters:
//   - ctx: Cancels the run between samples.
//   - opts: Sample count, worker count, seed, oracle and property battery.
//     Zero values select the defaults.
//   - progress: If non-nil, receives the completed fraction in [0, 1]. Calls
//     are serialised and the fraction never decreases.
//
// Returns:
//   - Report: The per-property tally, valid unless the oracle is unknown.
//   - error: A ConfigError for an unknown oracle, the wrapped context error
//     when ctx ends early, or the first CheckError when a property failed.
func (r *Runner) Run(ctx context.Context, opts Options, progress func(float64)) (Report, error) {
	opts = opts.withDefaults()
	oracle, err := LookupOracle(opts.Oracle)
	if err != nil {
		return Report{}, apperrors.NewConfigError("%v", err)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "selfcheck.Run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("selfcheck.samples", opts.Samples),
		attribute.Int("selfcheck.workers", opts.Workers),
		attribute.String("selfcheck.oracle", oracle.Name()),
	)

	r.logger.Debug("self-check starting",
		logging.Int("samples", opts.Samples),
		logging.Int("workers", opts.Workers),
		logging.Int("properties", len(opts.Properties)),
		logging.String("oracle", oracle.Name()))

	t := newTally(opts.Properties)
	var (
		done       atomic.Int64
		progressMu sync.Mutex
	)
	tick := func() {
		if progress == nil {
			done.Add(1)
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		progress(float64(done.Add(1)) / float64(opts.Samples))
	}

	before := r.memory.Snapshot()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		w := w
		n := share(opts.Samples, opts.Workers, w)
		src := opts.source(w)
		g.Go(func() error {
			return r.work(gctx, w, n, src, oracle, opts.Properties, t, tick)
		})
	}
	err = g.Wait()

	report := Report{
		Oracle:   oracle.Name(),
		Samples:  int(done.Load()),
		Workers:  opts.Workers,
		Duration: time.Since(start),
		Results:  t.results(),
		Memory:   r.memory.Snapshot().Since(before),
	}

	if err != nil {
		err = apperrors.WrapError(err, "self-check stopped after %d of %d samples", report.Samples, opts.Samples)
		span.RecordError(err)
		span.SetStatus(codes.Error, "interrupted")
		return report, err
	}
	if err := report.Err(); err != nil {
		span.SetStatus(codes.Error, "property failed")
		r.logger.Error("self-check failed", err,
			logging.Int("failures", report.Failures()),
			logging.Duration("elapsed", report.Duration))
		return report, err
	}

	r.logger.Info("self-check passed",
		logging.Int("samples", report.Samples),
		logging.Int("properties", len(report.Results)),
		logging.Uint64("alloc_bytes", report.Memory.TotalAlloc),
		logging.Duration("elapsed", report.Duration))
	return report, nil
}

// Replay evaluates the property battery once on the fixed operands a and b,
// typically a counterexample printed by an earlier run. opts.Samples,
// opts.Workers and opts.Seed are ignored.
func (r *Runner) Replay(ctx context.Context, opts Options, a, b bigint.BigInteger) (Report, error) {
	opts = opts.withDefaults()
	oracle, err := LookupOracle(opts.Oracle)
	if err != nil {
		return Report{}, apperrors.NewConfigError("%v", err)
	}
	if err := ctx.Err(); err != nil {
		return Report{}, apperrors.WrapError(err, "replay canceled")
	}

	_, span := otel.Tracer(tracerName).Start(ctx, "selfcheck.Replay")
	defer span.End()
	span.SetAttributes(attribute.String("selfcheck.oracle", oracle.Name()))

	t := newTally(opts.Properties)
	before := r.memory.Snapshot()
	start := time.Now()
	r.evaluate(0, oracle, opts.Properties, t, a, b)

	report := Report{
		Oracle:   oracle.Name(),
		Samples:  1,
		Workers:  1,
		Duration: time.Since(start),
		Results:  t.results(),
		Memory:   r.memory.Snapshot().Since(before),
	}
	if err := report.Err(); err != nil {
		span.SetStatus(codes.Error, "property failed")
		return report, err
	}
	r.logger.Info("replay passed",
		logging.Int("properties", len(report.Results)),
		logging.Duration("elapsed", report.Duration))
	return report, nil
}

// work evaluates n samples on one worker.
func (r *Runner) work(ctx context.Context, worker, n int, src bigint.Source, oracle Oracle, props []Property, t *tally, tick func()) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "selfcheck.worker")
	defer span.End()
	span.SetAttributes(attribute.Int("selfcheck.worker", worker), attribute.Int("selfcheck.samples", n))

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, b := bigint.Rand(src), bigint.Rand(src)
		r.evaluate(worker, oracle, props, t, a, b)
		tick()
	}
	return nil
}

// evaluate runs every property on one operand pair and records the outcome.
func (r *Runner) evaluate(worker int, oracle Oracle, props []Property, t *tally, a, b bigint.BigInteger) {
	r.metrics.ObserveSample()
	for idx, p := range props {
		start := time.Now()
		err := p.Check(oracle, a, b)
		r.metrics.ObserveCheck(p.Name, err == nil, time.Since(start))
		if err == nil {
			t.pass(idx)
			continue
		}
		checkErr := apperrors.CheckError{
			Property:       p.Name,
			Counterexample: fmt.Sprintf("a=0x%s b=0x%s", a.Hex(), b.Hex()),
			Cause:          err,
		}
		if t.fail(idx, checkErr) {
			r.logger.Error("property failed", err,
				logging.String("property", p.Name),
				logging.Int("worker", worker))
		}
	}
}

// share returns the number of samples assigned to worker w.
func share(samples, workers, w int) int {
	n := samples / workers
	if w < samples%workers {
		n++
	}
	return n
}

// tally accumulates per-property outcomes across workers.
type tally struct {
	mu   sync.Mutex
	list []PropertyResult
}

func newTally(props []Property) *tally {
	t := &tally{list: make([]PropertyResult, len(props))}
	for i, p := range props {
		t.list[i].Name = p.Name
	}
	return t
}

func (t *tally) pass(idx int) {
	t.mu.Lock()
	t.list[idx].Passed++
	t.mu.Unlock()
}

// fail records a failure and reports whether it was the first one for the
// property.
func (t *tally) fail(idx int, err apperrors.CheckError) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := &t.list[idx]
	res.Failed++
	if res.FirstFailure != nil {
		return false
	}
	res.FirstFailure = &err
	return true
}

func (t *tally) results() []PropertyResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]PropertyResult, len(t.list))
	copy(out, t.list)
	return out
}
