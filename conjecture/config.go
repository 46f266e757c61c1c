package conjecture

import (
	"errors"
	"fmt"
	"runtime"

	huffman "github.com/chronos-tachyon/huffman-conjecture"
)

const (
	// MinSourceSize is the smallest Source a Harness will sample.
	MinSourceSize = 2

	// MaxUniverseSourceSize is the largest Source for which
	// DominatedNotOptimal enumerates the code universe.  The universe grows
	// factorially with the Source size.
	MaxUniverseSourceSize = 10

	// DefaultSamplesPerTrial scales the default MaxSamples.
	DefaultSamplesPerTrial = 100000
)

// ErrTooManySamples is returned by Run when MaxSamples Sources were drawn
// without completing the requested number of informative trials.
var ErrTooManySamples = errors.New("too many uninformative samples")

// ConfigError describes an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

// Error fulfills the error interface.
func (err ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", err.Field, err.Reason)
}

var _ error = ConfigError{}

// Config describes one run of a Harness.
type Config struct {
	// SourceSize is the number of symbols in each sampled Source.
	SourceSize int

	// Trials is the number of informative Sources to test.
	Trials int

	// Workers is the number of goroutines testing Sources.  0 selects
	// runtime.GOMAXPROCS(0).  Never more than Trials are started.
	Workers int

	// Seed determines the Sources drawn.  Worker i draws from a Sampler
	// seeded by WorkerSeed(Seed, i).
	Seed uint64

	// MaxSamples bounds the total number of Sources drawn, informative or
	// not.  0 selects Trials * DefaultSamplesPerTrial.
	MaxSamples int

	Conjecture   Conjecture
	Distribution huffman.Distribution
}

// Validate returns a ConfigError describing the first invalid field, or nil.
func (cfg Config) Validate() error {
	capacity := len(huffman.DefaultAlphabet)
	switch {
	case cfg.SourceSize < MinSourceSize:
		return ConfigError{"SourceSize", fmt.Sprintf("%d < %d", cfg.SourceSize, MinSourceSize)}
	case cfg.SourceSize > capacity:
		return ConfigError{"SourceSize", fmt.Sprintf("%d > %d", cfg.SourceSize, capacity)}
	case cfg.Trials < 1:
		return ConfigError{"Trials", fmt.Sprintf("%d < 1", cfg.Trials)}
	case cfg.Workers < 0:
		return ConfigError{"Workers", fmt.Sprintf("%d < 0", cfg.Workers)}
	case cfg.MaxSamples < 0:
		return ConfigError{"MaxSamples", fmt.Sprintf("%d < 0", cfg.MaxSamples)}
	case cfg.MaxSamples > 0 && cfg.MaxSamples < cfg.Trials:
		return ConfigError{"MaxSamples", fmt.Sprintf("%d < Trials %d", cfg.MaxSamples, cfg.Trials)}
	case int(cfg.Conjecture) >= len(conjectureNames):
		return ConfigError{"Conjecture", fmt.Sprintf("unknown %v", cfg.Conjecture)}
	case cfg.Distribution != huffman.Independent && cfg.Distribution != huffman.Partition:
		return ConfigError{"Distribution", fmt.Sprintf("unknown %v", cfg.Distribution)}
	case cfg.Conjecture == DominatedNotOptimal && cfg.SourceSize > MaxUniverseSourceSize:
		return ConfigError{"SourceSize", fmt.Sprintf("%d > %d for %v", cfg.SourceSize, MaxUniverseSourceSize, cfg.Conjecture)}
	}
	return nil
}

// withDefaults returns a copy of cfg with zero-valued fields filled in.
func (cfg Config) withDefaults() Config {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Workers > cfg.Trials {
		cfg.Workers = cfg.Trials
	}
	if cfg.MaxSamples == 0 {
		cfg.MaxSamples = cfg.Trials * DefaultSamplesPerTrial
	}
	return cfg
}

// share returns how many of total are assigned to worker index out of n.
func share(total, n, index int) int {
	out := total / n
	if index < total%n {
		out++
	}
	return out
}

// WorkerSeed derives the Sampler seed of the given worker.
func WorkerSeed(seed uint64, worker int) uint64 {
	return seed + uint64(worker)*0x9e3779b97f4a7c15
}
