package huffman

import (
	"testing"
)

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic, got none", name)
		}
	}()
	fn()
}

func makeLeaves(weights ...Weight) []*Tree {
	out := make([]*Tree, len(weights))
	for index, w := range weights {
		out[index] = Leaf(w, DefaultAlphabet[index])
	}
	return out
}

func makeSource(weights ...Weight) Source {
	pairs := make([]SymbolWeight, len(weights))
	for index, w := range weights {
		pairs[index] = SymbolWeight{DefaultAlphabet[index], w}
	}
	return NewSource(pairs...)
}

func makeCode(source Source, depths ...Depth) Code {
	pairs := source.Pairs()
	entries := make([]CodeEntry, len(pairs))
	for index, p := range pairs {
		entries[index] = CodeEntry{p.Symbol, p.Weight, depths[index]}
	}
	return NewCode(entries...)
}

func containsSameTree(list []*Tree, tree *Tree) bool {
	for _, other := range list {
		if other.IsSameAs(tree) {
			return true
		}
	}
	return false
}
