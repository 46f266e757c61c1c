package huffman

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// SymbolWeight pairs a symbol with its weight.
type SymbolWeight struct {
	Symbol Symbol
	Weight Weight
}

// Source is an ordered, immutable list of weighted symbols.  Every weight is
// strictly positive and every symbol is unique.
type Source struct {
	pairs []SymbolWeight
}

// NewSource constructs a Source from the given pairs, preserving their order.
func NewSource(pairs ...SymbolWeight) Source {
	seen := make(map[Symbol]struct{}, len(pairs))
	for _, p := range pairs {
		assert.Assertf(p.Weight != 0, "NewSource: symbol %v has zero weight", p.Symbol)
		_, dup := seen[p.Symbol]
		assert.Assertf(!dup, "NewSource: duplicate symbol %v", p.Symbol)
		seen[p.Symbol] = struct{}{}
	}
	return Source{pairs: slices.Clone(pairs)}
}

// Len returns the number of symbols.
func (s Source) Len() int {
	return len(s.pairs)
}

// Pairs returns a copy of the (symbol, weight) pairs in their original order.
func (s Source) Pairs() []SymbolWeight {
	return slices.Clone(s.pairs)
}

// Weights returns the weights in their original order.
func (s Source) Weights() []Weight {
	out := make([]Weight, len(s.pairs))
	for index, p := range s.pairs {
		out[index] = p.Weight
	}
	return out
}

// Leaves returns one leaf per pair, in order.
func (s Source) Leaves() []*Tree {
	out := make([]*Tree, len(s.pairs))
	for index, p := range s.pairs {
		out[index] = Leaf(p.Weight, p.Symbol)
	}
	return out
}

// Canonical returns the pairs sorted by weight descending, then by symbol
// ascending.
func (s Source) Canonical() []SymbolWeight {
	out := slices.Clone(s.pairs)
	slices.SortFunc(out, func(a, b SymbolWeight) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.Symbol, b.Symbol)
	})
	return out
}

// String returns the pairs as "symbol:weight" separated by spaces.
func (s Source) String() string {
	var buf strings.Builder
	for index, p := range s.pairs {
		if index > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%v:%d", p.Symbol, p.Weight)
	}
	return buf.String()
}

var _ fmt.Stringer = Source{}

// WeightBound returns the largest weight that Sampler will assign in a Source
// of n symbols.
func WeightBound(n int) Weight {
	bound := uint64(n) * uint64(n)
	if bound < 2 {
		bound = 2
	}
	if bound >= uint64(MaxWeight) {
		bound = uint64(MaxWeight) - 1
	}
	return Weight(bound)
}

// Distribution selects how Sampler draws weights.
type Distribution uint8

const (
	// Independent draws each weight uniformly from [1, WeightBound(n)].
	Independent Distribution = iota

	// Partition splits WeightBound(n) into n random positive parts, so that
	// the weights of a Source always sum to the same total.
	Partition
)

var distributionNames = [...]string{
	Independent: "independent",
	Partition:   "partition",
}

// String returns the name of this Distribution.
func (d Distribution) String() string {
	if int(d) < len(distributionNames) {
		return distributionNames[d]
	}
	return fmt.Sprintf("Distribution(%d)", uint8(d))
}

// ParseDistribution is the inverse of Distribution.String.
func ParseDistribution(str string) (Distribution, error) {
	for index, name := range distributionNames {
		if strings.EqualFold(str, name) {
			return Distribution(index), nil
		}
	}
	return 0, fmt.Errorf("unknown distribution %q", str)
}

// Sampler generates random Sources.  A Sampler is not safe for concurrent use;
// give each goroutine its own.
type Sampler struct {
	rng      *rand.Rand
	alphabet []Symbol
	dist     Distribution
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithAlphabet sets the symbols used to label generated Sources.  The first n
// symbols label a Source of size n.
func WithAlphabet(alphabet []Symbol) SamplerOption {
	return func(s *Sampler) {
		s.alphabet = slices.Clone(alphabet)
	}
}

// WithDistribution sets the weight distribution.
func WithDistribution(dist Distribution) SamplerOption {
	return func(s *Sampler) {
		s.dist = dist
	}
}

// NewSampler returns a Sampler whose output is fully determined by seed.
func NewSampler(seed uint64, opts ...SamplerOption) *Sampler {
	s := &Sampler{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		alphabet: DefaultAlphabet,
		dist:     Independent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capacity returns the largest Source size this Sampler can label.
func (s *Sampler) Capacity() int {
	return len(s.alphabet)
}

// Generate returns a random Source of exactly n symbols, all with positive
// weight.  n must be between 1 and s.Capacity().
func (s *Sampler) Generate(n int) Source {
	assert.Assertf(n >= 1, "Generate: n %d < 1", n)
	assert.Assertf(n <= len(s.alphabet), "Generate: n %d > capacity %d", n, len(s.alphabet))

	var weights []Weight
	switch s.dist {
	case Partition:
		weights = s.partition(n, WeightBound(n))
	default:
		weights = s.independent(n, WeightBound(n))
	}

	pairs := make([]SymbolWeight, n)
	for index := range pairs {
		pairs[index] = SymbolWeight{s.alphabet[index], weights[index]}
	}
	return Source{pairs: pairs}
}

func (s *Sampler) independent(n int, bound Weight) []Weight {
	out := make([]Weight, n)
	for index := range out {
		// Draw from [0, bound] and reject zero.
		for out[index] == 0 {
			out[index] = Weight(s.rng.Uint32N(uint32(bound) + 1))
		}
	}
	return out
}

func (s *Sampler) partition(n int, total Weight) []Weight {
	if n == 1 {
		return []Weight{total}
	}
	assert.Assertf(uint64(total) >= uint64(n), "partition: total %d < n %d", total, n)

	cuts := make([]Weight, n+1)
	out := make([]Weight, n)
	for {
		cuts[0] = 0
		cuts[n] = total
		for index := 1; index < n; index++ {
			cuts[index] = Weight(s.rng.Uint32N(uint32(total) + 1))
		}
		slices.Sort(cuts)

		ok := true
		for index := range out {
			out[index] = cuts[index+1] - cuts[index]
			if out[index] == 0 {
				ok = false
			}
		}
		if ok {
			return out
		}
	}
}
