package huffman

import (
	"cmp"
	"slices"

	"github.com/chronos-tachyon/assert"
)

// PossibleCodes returns one Code per entry of profiles, assigning the depths
// of each profile, in order, to the symbols of source.Canonical().
//
// Given PossibleLengthProfiles(source.Len()), the result is every prefix code
// over the source, Huffman or not.
//
func PossibleCodes(source Source, profiles [][]Depth) []Code {
	out := make([]Code, 0, len(profiles))
	EachPossibleCode(source, profiles, func(c Code) bool {
		out = append(out, c)
		return true
	})
	return out
}

// EachPossibleCode calls fn with each Code that PossibleCodes would return,
// without materializing them all.  It stops early if fn returns false.
func EachPossibleCode(source Source, profiles [][]Depth, fn func(Code) bool) {
	canonical := source.Canonical()

	// Codes keep their entries in symbol order; pos maps each position of
	// canonical to its position in symbol order.
	bySymbol := slices.Clone(canonical)
	slices.SortFunc(bySymbol, func(a, b SymbolWeight) int {
		return cmp.Compare(a.Symbol, b.Symbol)
	})
	pos := make([]int, len(canonical))
	for index, p := range canonical {
		pos[index], _ = slices.BinarySearchFunc(bySymbol, p.Symbol, func(e SymbolWeight, s Symbol) int {
			return cmp.Compare(e.Symbol, s)
		})
	}

	for _, profile := range profiles {
		assert.Assertf(len(profile) == len(canonical), "PossibleCodes: profile has %d depths, source has %d symbols", len(profile), len(canonical))
		entries := make([]CodeEntry, len(canonical))
		for index, p := range canonical {
			entries[pos[index]] = CodeEntry{p.Symbol, p.Weight, profile[index]}
		}
		if !fn(Code{entries: entries}) {
			return
		}
	}
}

// Unbeaten returns true iff no rival beats candidate.
func Unbeaten(candidate Code, rivals []Code) bool {
	for _, rival := range rivals {
		if rival.Beats(candidate) {
			return false
		}
	}
	return true
}

// GloballyUnbeaten returns true iff no Code in the universe described by
// source and profiles beats candidate.
func GloballyUnbeaten(candidate Code, source Source, profiles [][]Depth) bool {
	unbeaten := true
	EachPossibleCode(source, profiles, func(rival Code) bool {
		if rival.Beats(candidate) {
			unbeaten = false
		}
		return unbeaten
	})
	return unbeaten
}
