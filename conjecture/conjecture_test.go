package conjecture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	huffman "github.com/chronos-tachyon/huffman-conjecture"
)

func makeSource(weights ...huffman.Weight) huffman.Source {
	pairs := make([]huffman.SymbolWeight, len(weights))
	for index, w := range weights {
		pairs[index] = huffman.SymbolWeight{Symbol: huffman.DefaultAlphabet[index], Weight: w}
	}
	return huffman.NewSource(pairs...)
}

func makeCode(source huffman.Source, depths ...huffman.Depth) huffman.Code {
	pairs := source.Pairs()
	entries := make([]huffman.CodeEntry, len(pairs))
	for index, p := range pairs {
		entries[index] = huffman.CodeEntry{Symbol: p.Symbol, Weight: p.Weight, Depth: depths[index]}
	}
	return huffman.NewCode(entries...)
}

func TestConjecture_String(t *testing.T) {
	for _, c := range []Conjecture{SkinniestUnbeaten, DominatedNotOptimal} {
		parsed, err := ParseConjecture(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	parsed, err := ParseConjecture("Dominated-Not-Optimal")
	require.NoError(t, err)
	assert.Equal(t, DominatedNotOptimal, parsed)

	_, err = ParseConjecture("transitive")
	assert.Error(t, err)
	assert.Equal(t, "Conjecture(9)", Conjecture(9).String())
}

func TestEvaluate_Uninformative(t *testing.T) {
	tests := []struct {
		name    string
		weights []huffman.Weight
		codes   int
	}{
		{"distinct weights", []huffman.Weight{1, 2, 3, 4, 5}, 1},
		{"single symbol", []huffman.Weight{7}, 1},
		{"all codes tie", []huffman.Weight{1, 1, 2, 2}, 3},
		{"three symbols", []huffman.Weight{1, 2, 2}, 2},
	}

	for _, tt := range tests {
		for _, c := range []Conjecture{SkinniestUnbeaten, DominatedNotOptimal} {
			t.Run(tt.name+"/"+c.String(), func(t *testing.T) {
				e := Evaluator{Conjecture: c, Profiles: huffman.NewProfileCache(1)}
				trial, err := e.Evaluate(context.Background(), makeSource(tt.weights...))
				require.NoError(t, err)
				assert.Equal(t, tt.codes, trial.HuffmanCodes)
				assert.False(t, trial.Informative)
				assert.False(t, trial.PassedHeuristic)
				assert.Nil(t, trial.Counterexample)
			})
		}
	}
}

func TestEvaluate_Informative(t *testing.T) {
	source := makeSource(1, 1, 1, 2, 3)

	t.Run("skinniest unbeaten", func(t *testing.T) {
		e := Evaluator{Conjecture: SkinniestUnbeaten, Reducer: huffman.Reducer{Workers: 1}}
		trial, err := e.Evaluate(context.Background(), source)
		require.NoError(t, err)
		assert.Equal(t, 12, trial.HuffmanCodes)
		assert.True(t, trial.Informative)
		assert.False(t, trial.PassedHeuristic)
		assert.Nil(t, trial.Counterexample)
	})

	t.Run("dominated not optimal", func(t *testing.T) {
		e := Evaluator{Conjecture: DominatedNotOptimal, Profiles: huffman.NewProfileCache(2), Reducer: huffman.Reducer{Workers: 2}}
		trial, err := e.Evaluate(context.Background(), source)
		require.NoError(t, err)
		assert.Equal(t, 12, trial.HuffmanCodes)
		assert.True(t, trial.Informative)
		assert.False(t, trial.PassedHeuristic)
		assert.Nil(t, trial.Counterexample)
	})
}

func TestEvaluate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := Evaluator{Conjecture: SkinniestUnbeaten}
	_, err := e.Evaluate(ctx, makeSource(1, 1, 1, 2, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSkinniestBeaten(t *testing.T) {
	source := makeSource(1, 2, 3, 4)
	a := makeCode(source, 3, 3, 2, 1)
	b := makeCode(source, 3, 2, 1, 3)
	c := makeCode(source, 3, 1, 3, 2)

	require.Nil(t, skinniestBeaten(source, []huffman.Code{a, c}))

	cx := skinniestBeaten(source, []huffman.Code{c, a, b})
	require.NotNil(t, cx)
	assert.Equal(t, SkinniestUnbeaten, cx.Conjecture)
	require.Len(t, cx.Codes, 2)
	assert.True(t, cx.Codes[0].Code.Equal(c))
	assert.True(t, cx.Codes[1].Code.Beats(cx.Codes[0].Code))

	// Among codes of equal depth, the first is the one tested.
	assert.NotNil(t, skinniestBeaten(source, []huffman.Code{a, b}))
	assert.Nil(t, skinniestBeaten(source, []huffman.Code{b, a}))

	// A taller code is tested even when it comes last.
	tall := makeCode(source, 3, 3, 2, 1)
	short := makeCode(source, 2, 2, 2, 2)
	assert.Nil(t, skinniestBeaten(source, []huffman.Code{short, tall}))
}

func TestDominatingPair(t *testing.T) {
	source := makeSource(1, 2, 3, 4)
	a := makeCode(source, 3, 3, 2, 1)
	c := makeCode(source, 3, 1, 3, 2)

	winner, loser, ok := dominatingPair([]huffman.Code{c, a})
	require.True(t, ok)
	assert.Equal(t, 1, winner)
	assert.Equal(t, 0, loser)

	_, _, ok = dominatingPair([]huffman.Code{a, a})
	assert.False(t, ok)
}

func TestGloballyUnbeatenCandidate(t *testing.T) {
	source := makeSource(1, 1, 4)
	optimal := makeCode(source, 2, 2, 1)
	dominated := makeCode(source, 1, 2, 2)
	codes := []huffman.Code{dominated, optimal}
	universe := huffman.PossibleLengthProfiles(source.Len())
	ctx := context.Background()

	cx, err := globallyUnbeatenCandidate(ctx, source, codes, []int{0, 1}, universe)
	require.NoError(t, err)
	require.NotNil(t, cx)
	assert.Equal(t, DominatedNotOptimal, cx.Conjecture)
	assert.Equal(t, source, cx.Source)

	labels := make([]string, len(cx.Codes))
	for index, lc := range cx.Codes {
		labels[index] = lc.Label
	}
	assert.Equal(t, []string{
		"globally unbeaten Huffman code",
		"dominating Huffman code",
		"dominated Huffman code",
	}, labels)
	assert.True(t, cx.Codes[0].Code.Equal(optimal))
	assert.True(t, cx.Codes[1].Code.Equal(optimal))
	assert.True(t, cx.Codes[2].Code.Equal(dominated))
	assert.Equal(t, huffman.Win, huffman.Duel(cx.Codes[1].Code, cx.Codes[2].Code))

	// The dominated code alone is beaten within the universe.
	cx, err = globallyUnbeatenCandidate(ctx, source, codes, []int{0}, universe)
	require.NoError(t, err)
	assert.Nil(t, cx)

	// Without a dominating pair only the unbeaten code is reported.
	cx, err = globallyUnbeatenCandidate(ctx, source, []huffman.Code{optimal}, []int{0}, universe)
	require.NoError(t, err)
	require.NotNil(t, cx)
	require.Len(t, cx.Codes, 1)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = globallyUnbeatenCandidate(canceled, source, codes, []int{1}, universe)
	assert.ErrorIs(t, err, context.Canceled)
}
