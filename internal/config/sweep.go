// Package config loads the YAML description of a sweep over source sizes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	huffman "github.com/chronos-tachyon/huffman-conjecture"
	"github.com/chronos-tachyon/huffman-conjecture/conjecture"
)

var validate = validator.New()

// Sweep describes a series of harness runs, one per source size from MinSize
// to MaxSize, that stops at the first counterexample.
type Sweep struct {
	MinSize      int     `yaml:"min_size" validate:"gte=2,lte=52"`
	MaxSize      int     `yaml:"max_size" validate:"gte=2,lte=52,gtefield=MinSize"`
	Trials       int     `yaml:"trials" validate:"gte=1"`
	Workers      int     `yaml:"workers" validate:"gte=0"`
	Seed         *uint64 `yaml:"seed"`
	MaxSamples   int     `yaml:"max_samples" validate:"gte=0"`
	Conjecture   string  `yaml:"conjecture" validate:"oneof=skinniest-unbeaten dominated-not-optimal"`
	Distribution string  `yaml:"distribution" validate:"oneof=independent partition"`
}

// Default returns the sweep used when no file is given: sizes 7 through 24,
// 100000 trials per size on 10 workers.
func Default() Sweep {
	return Sweep{
		MinSize:      7,
		MaxSize:      24,
		Trials:       100000,
		Workers:      10,
		Conjecture:   conjecture.SkinniestUnbeaten.String(),
		Distribution: huffman.Independent.String(),
	}
}

// Validate checks the struct tags of s, then rejects sizes the chosen
// conjecture cannot test.
func (s Sweep) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	if s.Conjecture == conjecture.DominatedNotOptimal.String() && s.MaxSize > conjecture.MaxUniverseSourceSize {
		return conjecture.ConfigError{
			Field:  "MaxSize",
			Reason: fmt.Sprintf("%d > %d for %s", s.MaxSize, conjecture.MaxUniverseSourceSize, s.Conjecture),
		}
	}
	return nil
}

// Parse decodes YAML over Default() and validates the result.  Unknown keys
// are rejected.
func Parse(data []byte) (Sweep, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return s, fmt.Errorf("parse sweep config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid sweep config: %w", err)
	}
	return s, nil
}

// Load reads and parses the file at path.
func Load(path string) (Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sweep{}, err
	}
	s, err := Parse(data)
	if err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Base returns the harness configuration shared by every run of the sweep.
// SourceSize is left zero.  defaultSeed is used when the file sets no seed.
func (s Sweep) Base(defaultSeed uint64) (conjecture.Config, error) {
	c, err := conjecture.ParseConjecture(s.Conjecture)
	if err != nil {
		return conjecture.Config{}, err
	}
	d, err := huffman.ParseDistribution(s.Distribution)
	if err != nil {
		return conjecture.Config{}, err
	}

	seed := defaultSeed
	if s.Seed != nil {
		seed = *s.Seed
	}
	return conjecture.Config{
		Trials:       s.Trials,
		Workers:      s.Workers,
		Seed:         seed,
		MaxSamples:   s.MaxSamples,
		Conjecture:   c,
		Distribution: d,
	}, nil
}
