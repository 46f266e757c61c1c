package conjecture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	huffman "github.com/chronos-tachyon/huffman-conjecture"
)

const tracerName = "huffman-conjecture/conjecture"

// errFound stops the other workers once one has found a counterexample.
var errFound = errors.New("counterexample found")

// Result summarizes one Run.
type Result struct {
	RunID      string
	Conjecture Conjecture
	SourceSize int

	// Held is true iff no counterexample was found.
	Held bool

	// Tested counts informative Sources.  When Held, it equals
	// Config.Trials.
	Tested int

	// Samples counts every Source drawn.
	Samples int

	// Uninformative counts Sources skipped because their Huffman codes
	// all tie.
	Uninformative int

	// PassedHeuristic counts trials in which some unbeaten Huffman code
	// passed the optimality heuristic.
	PassedHeuristic int

	Counterexample *Counterexample
	Duration       time.Duration
}

// Harness repeatedly samples random Sources and tests one Conjecture
// against each, in parallel.
type Harness struct {
	cfg     Config
	eval    Evaluator
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger.  The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithMetrics sets the collectors updated during each Run.
func WithMetrics(m *Metrics) Option {
	return func(h *Harness) {
		h.metrics = m
	}
}

// WithTracerProvider sets the source of spans.  The default is the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Harness) {
		h.tracer = tp.Tracer(tracerName)
	}
}

// WithProfileCache sets the cache of length profiles used by
// DominatedNotOptimal.  The default is huffman.DefaultProfileCache.
func WithProfileCache(cache *huffman.ProfileCache) Option {
	return func(h *Harness) {
		h.eval.Profiles = cache
	}
}

// New validates cfg and returns a Harness for it.
func New(cfg Config, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Harness{
		cfg: cfg.withDefaults(),
		eval: Evaluator{
			Conjecture: cfg.Conjecture,
			Profiles:   huffman.DefaultProfileCache,
			Reducer:    huffman.Reducer{Workers: 1},
		},
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Config returns the configuration of this Harness, with defaults applied.
func (h *Harness) Config() Config {
	return h.cfg
}

// workerTally is owned by exactly one worker until Run collects it.
type workerTally struct {
	tested        int
	samples       int
	uninformative int
	passed        int
	cx            *Counterexample
}

// Run tests Config.Trials informative Sources, stopping early at the first
// counterexample.  Finding one is not an error: Run reports it in
// Result.Counterexample with Held false.
//
// Run returns ErrTooManySamples if Config.MaxSamples Sources are drawn
// first, or ctx.Err() if ctx ends first.  The partial Result is returned
// alongside any error.
func (h *Harness) Run(ctx context.Context) (Result, error) {
	cfg := h.cfg
	start := time.Now()
	runID := uuid.NewString()
	logger := h.logger.With(
		"run_id", runID,
		"conjecture", cfg.Conjecture.String(),
		"source_size", cfg.SourceSize,
	)

	ctx, span := h.tracer.Start(ctx, "conjecture.Run",
		trace.WithAttributes(
			attribute.String("conjecture.run_id", runID),
			attribute.String("conjecture.name", cfg.Conjecture.String()),
			attribute.Int("conjecture.source_size", cfg.SourceSize),
			attribute.Int("conjecture.trials", cfg.Trials),
			attribute.Int("conjecture.workers", cfg.Workers),
			attribute.String("conjecture.seed", fmt.Sprint(cfg.Seed)),
		),
	)
	defer span.End()

	logger.Info("conjecture run starting",
		"trials", cfg.Trials,
		"workers", cfg.Workers,
		"seed", cfg.Seed,
		"distribution", cfg.Distribution.String(),
		"max_samples", cfg.MaxSamples,
	)

	tallies := make([]workerTally, cfg.Workers)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for worker := range tallies {
		g.Go(func() error {
			return h.work(gctx, logger, worker, &tallies[worker])
		})
	}
	err := g.Wait()

	result := Result{
		RunID:      runID,
		Conjecture: cfg.Conjecture,
		SourceSize: cfg.SourceSize,
	}
	for _, t := range tallies {
		result.Tested += t.tested
		result.Samples += t.samples
		result.Uninformative += t.uninformative
		result.PassedHeuristic += t.passed
		if result.Counterexample == nil {
			result.Counterexample = t.cx
		}
	}
	result.Held = result.Counterexample == nil
	result.Duration = time.Since(start)
	h.metrics.observeRun(cfg.Conjecture, result.Duration.Seconds())

	if result.Counterexample != nil {
		err = nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("conjecture run failed",
			"error", err,
			"tested", result.Tested,
			"samples", result.Samples,
		)
		return result, err
	}

	span.SetAttributes(
		attribute.Bool("conjecture.held", result.Held),
		attribute.Int("conjecture.tested", result.Tested),
		attribute.Int("conjecture.samples", result.Samples),
	)
	span.SetStatus(codes.Ok, "")
	logger.Info("conjecture run finished",
		"held", result.Held,
		"tested", result.Tested,
		"samples", result.Samples,
		"uninformative", result.Uninformative,
		"heuristic_passed", result.PassedHeuristic,
		"duration", result.Duration,
	)
	return result, nil
}

func (h *Harness) work(ctx context.Context, logger *slog.Logger, worker int, tally *workerTally) error {
	cfg := h.cfg
	trials := share(cfg.Trials, cfg.Workers, worker)
	budget := share(cfg.MaxSamples, cfg.Workers, worker)

	ctx, span := h.tracer.Start(ctx, "conjecture.worker",
		trace.WithAttributes(
			attribute.Int("conjecture.worker", worker),
			attribute.Int("conjecture.trials", trials),
		),
	)
	defer span.End()

	logger = logger.With("worker", worker)
	sampler := huffman.NewSampler(WorkerSeed(cfg.Seed, worker), huffman.WithDistribution(cfg.Distribution))

	for tally.tested < trials {
		if err := ctx.Err(); err != nil {
			return err
		}
		if tally.samples >= budget {
			err := fmt.Errorf("worker %d: %d samples yielded %d of %d trials: %w", worker, tally.samples, tally.tested, trials, ErrTooManySamples)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		source := sampler.Generate(cfg.SourceSize)
		tally.samples++
		trial, err := h.eval.Evaluate(ctx, source)
		if err != nil {
			return err
		}
		h.metrics.observeSample(cfg.Conjecture, trial)

		if !trial.Informative {
			tally.uninformative++
			continue
		}
		tally.tested++
		if trial.PassedHeuristic {
			tally.passed++
		}
		logger.Debug("trial complete",
			"trial", tally.tested,
			"source", source.String(),
			"huffman_codes", trial.HuffmanCodes,
			"heuristic_passed", trial.PassedHeuristic,
		)

		if trial.Counterexample != nil {
			tally.cx = trial.Counterexample
			span.AddEvent("counterexample", trace.WithAttributes(
				attribute.String("conjecture.source", source.String()),
			))
			logger.Info("counterexample found", "source", source.String())
			return errFound
		}
	}

	span.SetAttributes(attribute.Int("conjecture.samples", tally.samples))
	logger.Debug("worker finished",
		"tested", tally.tested,
		"samples", tally.samples,
		"uninformative", tally.uninformative,
	)
	return nil
}

// RunTrials tests SkinniestUnbeaten against numTrials informative random
// Sources of sourceSize symbols, with a seed taken from the clock.  It
// returns true iff the conjecture held for every trial.
func RunTrials(ctx context.Context, sourceSize, numTrials int, opts ...Option) (bool, error) {
	h, err := New(Config{
		SourceSize: sourceSize,
		Trials:     numTrials,
		Seed:       uint64(time.Now().UnixNano()),
	}, opts...)
	if err != nil {
		return false, err
	}
	result, err := h.Run(ctx)
	if err != nil {
		return false, err
	}
	return result.Held, nil
}

// Sweep runs base once per source size from minSize to maxSize inclusive,
// stopping after the first run that finds a counterexample.  It returns the
// Result of every run performed.
func Sweep(ctx context.Context, base Config, minSize, maxSize int, opts ...Option) ([]Result, error) {
	if minSize > maxSize {
		return nil, ConfigError{"SourceSize", fmt.Sprintf("empty range %d..%d", minSize, maxSize)}
	}

	var results []Result
	for size := minSize; size <= maxSize; size++ {
		cfg := base
		cfg.SourceSize = size
		h, err := New(cfg, opts...)
		if err != nil {
			return results, err
		}
		result, err := h.Run(ctx)
		results = append(results, result)
		if err != nil {
			return results, fmt.Errorf("source size %d: %w", size, err)
		}
		if !result.Held {
			break
		}
	}
	return results, nil
}
