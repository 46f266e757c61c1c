package huffman

import (
	"testing"
)

func TestSampler_Generate(t *testing.T) {
	for _, dist := range []Distribution{Independent, Partition} {
		t.Run(dist.String(), func(t *testing.T) {
			s := NewSampler(1, WithDistribution(dist))
			for n := 1; n <= s.Capacity(); n++ {
				source := s.Generate(n)
				if source.Len() != n {
					t.Fatalf("expected %d symbols, got %d", n, source.Len())
				}
				bound := WeightBound(n)
				var sum uint64
				for index, p := range source.Pairs() {
					if p.Symbol != DefaultAlphabet[index] {
						t.Errorf("n=%d: expected symbol %v at %d, got %v", n, DefaultAlphabet[index], index, p.Symbol)
					}
					if p.Weight == 0 || p.Weight > bound {
						t.Errorf("n=%d: weight %d outside [1, %d]", n, p.Weight, bound)
					}
					sum += uint64(p.Weight)
				}
				if dist == Partition && sum != uint64(bound) {
					t.Errorf("n=%d: expected weights to sum to %d, got %d", n, bound, sum)
				}
			}
		})
	}
}

func TestSampler_Deterministic(t *testing.T) {
	a := NewSampler(42)
	b := NewSampler(42)
	c := NewSampler(43)
	var differs bool
	for trial := 0; trial < 10; trial++ {
		x, y, z := a.Generate(12), b.Generate(12), c.Generate(12)
		if x.String() != y.String() {
			t.Errorf("same seed, different sources:\n\t%v\n\t%v", x, y)
		}
		if x.String() != z.String() {
			differs = true
		}
	}
	if !differs {
		t.Errorf("different seeds produced identical sources")
	}
}

func TestSampler_Capacity(t *testing.T) {
	s := NewSampler(0)
	expectPanic(t, "Generate(0)", func() { s.Generate(0) })
	expectPanic(t, "Generate(53)", func() { s.Generate(len(DefaultAlphabet) + 1) })

	small := NewSampler(0, WithAlphabet([]Symbol{'x', 'y'}))
	if small.Capacity() != 2 {
		t.Errorf("expected capacity 2, got %d", small.Capacity())
	}
	expectPanic(t, "Generate(3)", func() { small.Generate(3) })
}

func TestSource(t *testing.T) {
	source := NewSource(
		SymbolWeight{'a', 2},
		SymbolWeight{'b', 5},
		SymbolWeight{'c', 2},
	)

	expectString := "a:2 b:5 c:2"
	if actual := source.String(); actual != expectString {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectString, actual)
	}

	canonical := source.Canonical()
	expect := []SymbolWeight{{'b', 5}, {'a', 2}, {'c', 2}}
	for index := range expect {
		if canonical[index] != expect[index] {
			t.Errorf("canonical[%d]: expected %v, got %v", index, expect[index], canonical[index])
		}
	}

	leaves := source.Leaves()
	if len(leaves) != 3 || leaves[1].Weight() != 5 || leaves[1].Symbol() != 'b' {
		t.Errorf("wrong leaves %v", leaves)
	}
}

func TestNewSource_Invalid(t *testing.T) {
	expectPanic(t, "zero weight", func() { NewSource(SymbolWeight{'a', 0}) })
	expectPanic(t, "duplicate", func() { NewSource(SymbolWeight{'a', 1}, SymbolWeight{'a', 2}) })
}

func TestParseDistribution(t *testing.T) {
	for _, dist := range []Distribution{Independent, Partition} {
		actual, err := ParseDistribution(dist.String())
		if err != nil || actual != dist {
			t.Errorf("ParseDistribution(%q) = %v, %v", dist.String(), actual, err)
		}
	}
	if _, err := ParseDistribution("gaussian"); err == nil {
		t.Errorf("expected error for unknown distribution")
	}
}
