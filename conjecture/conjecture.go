package conjecture

import (
	"context"
	"fmt"
	"strings"

	huffman "github.com/chronos-tachyon/huffman-conjecture"
)

// Conjecture selects which claim a Harness tests.
type Conjecture uint8

const (
	// SkinniestUnbeaten claims that no Huffman code beats the tallest
	// Huffman code of the same source.
	SkinniestUnbeaten Conjecture = iota

	// DominatedNotOptimal claims that when some Huffman code beats another,
	// no unbeaten Huffman code passing the optimality heuristic is also
	// unbeaten by every prefix code over the source.
	DominatedNotOptimal
)

var conjectureNames = [...]string{
	SkinniestUnbeaten:   "skinniest-unbeaten",
	DominatedNotOptimal: "dominated-not-optimal",
}

// String returns the name of this Conjecture.
func (c Conjecture) String() string {
	if int(c) < len(conjectureNames) {
		return conjectureNames[c]
	}
	return fmt.Sprintf("Conjecture(%d)", uint8(c))
}

// ParseConjecture is the inverse of Conjecture.String.
func ParseConjecture(str string) (Conjecture, error) {
	for index, name := range conjectureNames {
		if strings.EqualFold(str, name) {
			return Conjecture(index), nil
		}
	}
	return 0, fmt.Errorf("unknown conjecture %q", str)
}

// Trial is the outcome of testing one Source.
type Trial struct {
	// HuffmanCodes is the number of distinct Huffman trees of the Source.
	HuffmanCodes int

	// Informative is false when the Source has a unique Huffman tree or
	// every pair of its Huffman codes ties.  Such Sources say nothing about
	// either conjecture.
	Informative bool

	// PassedHeuristic is true when some unbeaten Huffman code passed
	// huffman.IsProbablyCompetitivelyOptimal.  Only DominatedNotOptimal
	// sets it.
	PassedHeuristic bool

	// Counterexample is non-nil iff the Source refutes the conjecture.
	Counterexample *Counterexample
}

// Evaluator tests Sources against one Conjecture.  An Evaluator is safe for
// concurrent use if its ProfileCache is.
type Evaluator struct {
	Conjecture Conjecture

	// Profiles supplies the code universe for DominatedNotOptimal.  nil
	// selects huffman.DefaultProfileCache.
	Profiles *huffman.ProfileCache

	// Reducer enumerates Huffman trees.  Harness workers use
	// Reducer{Workers: 1}, since trials already run in parallel.
	Reducer huffman.Reducer
}

// Evaluate runs one trial against source.  The only errors returned are
// from ctx.
func (e Evaluator) Evaluate(ctx context.Context, source huffman.Source) (Trial, error) {
	var trial Trial

	trees, err := e.Reducer.Reduce(ctx, source.Leaves())
	if err != nil {
		return trial, err
	}

	codes := make([]huffman.Code, len(trees))
	for index, tree := range trees {
		codes[index] = huffman.Flatten(tree)
	}
	trial.HuffmanCodes = len(codes)
	trial.Informative = anyDecisive(codes)
	if !trial.Informative {
		return trial, nil
	}

	switch e.Conjecture {
	case SkinniestUnbeaten:
		trial.Counterexample = skinniestBeaten(source, codes)

	case DominatedNotOptimal:
		profiles := e.Profiles
		if profiles == nil {
			profiles = huffman.DefaultProfileCache
		}
		trial.PassedHeuristic, trial.Counterexample, err = dominatedOptimal(ctx, source, trees, codes, profiles)
		if err != nil {
			return trial, err
		}

	default:
		panic(fmt.Errorf("Evaluate: unknown conjecture %v", e.Conjecture))
	}
	return trial, nil
}

func anyDecisive(codes []huffman.Code) bool {
	for i := range codes {
		for j := i + 1; j < len(codes); j++ {
			if !codes[i].Ties(codes[j]) {
				return true
			}
		}
	}
	return false
}

// skinniestBeaten returns a Counterexample if some code beats the first code
// of greatest MaxDepth.
func skinniestBeaten(source huffman.Source, codes []huffman.Code) *Counterexample {
	skinniest := 0
	for index := 1; index < len(codes); index++ {
		if codes[index].MaxDepth() > codes[skinniest].MaxDepth() {
			skinniest = index
		}
	}

	for index, code := range codes {
		if index == skinniest || !code.Beats(codes[skinniest]) {
			continue
		}
		return &Counterexample{
			Conjecture: SkinniestUnbeaten,
			Source:     source,
			Codes: []LabeledCode{
				{"skinniest Huffman code", codes[skinniest]},
				{"Huffman code beating it", code},
			},
		}
	}
	return nil
}

// dominatedOptimal looks for a Huffman code that no other Huffman code beats,
// passes the heuristic, and is beaten by nothing in the code universe.  The
// bool reports whether any Huffman code passed the heuristic.
func dominatedOptimal(ctx context.Context, source huffman.Source, trees []*huffman.Tree, codes []huffman.Code, profiles *huffman.ProfileCache) (bool, *Counterexample, error) {
	var candidates []int
	for index, code := range codes {
		if huffman.Unbeaten(code, codes) && huffman.IsProbablyCompetitivelyOptimal(trees[index]) {
			candidates = append(candidates, index)
		}
	}
	if len(candidates) == 0 {
		return false, nil, nil
	}

	cx, err := globallyUnbeatenCandidate(ctx, source, codes, candidates, profiles.Permutations(source.Len()))
	return true, cx, err
}

// globallyUnbeatenCandidate tests codes[i] for each i in candidates against
// every code of universe.  The first candidate nothing beats is reported,
// together with the first pair of codes in which one beats the other.
func globallyUnbeatenCandidate(ctx context.Context, source huffman.Source, codes []huffman.Code, candidates []int, universe [][]huffman.Depth) (*Counterexample, error) {
	for _, index := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !huffman.GloballyUnbeaten(codes[index], source, universe) {
			continue
		}

		cx := &Counterexample{
			Conjecture: DominatedNotOptimal,
			Source:     source,
			Codes:      []LabeledCode{{"globally unbeaten Huffman code", codes[index]}},
		}
		if winner, loser, ok := dominatingPair(codes); ok {
			cx.Codes = append(cx.Codes,
				LabeledCode{"dominating Huffman code", codes[winner]},
				LabeledCode{"dominated Huffman code", codes[loser]})
		}
		return cx, nil
	}
	return nil, nil
}

func dominatingPair(codes []huffman.Code) (winner int, loser int, ok bool) {
	for i := range codes {
		for j := range codes {
			if i != j && codes[i].Beats(codes[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
