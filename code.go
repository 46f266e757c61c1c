package huffman

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// CodeEntry assigns a depth, i.e. a codeword length, to one symbol.
type CodeEntry struct {
	Symbol Symbol
	Weight Weight
	Depth  Depth
}

// Code maps each symbol of a Source, together with its weight, to a depth.
// Codes are immutable.  The zero value is an empty Code.
type Code struct {
	// entries is sorted by Symbol.
	entries []CodeEntry
}

// NewCode builds a Code from the given entries, in any order.  Symbols must be
// unique.
func NewCode(entries ...CodeEntry) Code {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, byEntrySymbol)
	for index := 1; index < len(sorted); index++ {
		assert.Assertf(sorted[index-1].Symbol != sorted[index].Symbol, "NewCode: duplicate symbol %v", sorted[index].Symbol)
	}
	return Code{entries: sorted}
}

// Flatten computes the Code of a tree: every leaf is assigned its distance
// from the root.  The root of a single-leaf tree has depth 0.
func Flatten(tree *Tree) Code {
	assert.Assertf(tree != nil, "Flatten: nil tree")

	type stackItem struct {
		node  *Tree
		depth Depth
	}

	entries := make([]CodeEntry, 0, tree.leaves)
	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{tree, 0})
	for len(stack) != 0 {
		top := len(stack) - 1
		item := stack[top]
		stack = stack[:top]

		if item.node.IsLeaf() {
			entries = append(entries, CodeEntry{item.node.symbol, item.node.weight, item.depth})
			continue
		}

		assert.Assertf(item.depth < MaxDepth, "Flatten: tree deeper than %d", MaxDepth)
		stack = append(stack, stackItem{item.node.right, item.depth + 1})
		stack = append(stack, stackItem{item.node.left, item.depth + 1})
	}
	return NewCode(entries...)
}

// Len returns the number of symbols in this Code.
func (c Code) Len() int {
	return len(c.entries)
}

// Entries returns a copy of this Code's entries, sorted by symbol.
func (c Code) Entries() []CodeEntry {
	return slices.Clone(c.entries)
}

// Depth returns the depth assigned to the given symbol.
func (c Code) Depth(symbol Symbol) (Depth, bool) {
	index, found := slices.BinarySearchFunc(c.entries, symbol, func(e CodeEntry, s Symbol) int {
		return cmp.Compare(e.Symbol, s)
	})
	if !found {
		return 0, false
	}
	return c.entries[index].Depth, true
}

// MaxDepth returns the length of the longest codeword, or 0 for an empty Code.
func (c Code) MaxDepth() Depth {
	var deepest Depth
	for _, e := range c.entries {
		if deepest < e.Depth {
			deepest = e.Depth
		}
	}
	return deepest
}

// Lengths returns the depth of each entry, in symbol order.
func (c Code) Lengths() []Depth {
	out := make([]Depth, len(c.entries))
	for index, e := range c.entries {
		out[index] = e.Depth
	}
	return out
}

// Validate returns an error if this Code's depths are not the leaf depths of
// a full binary tree.
func (c Code) Validate() error {
	return CheckLengths(c.Lengths())
}

// Equal returns true iff both Codes assign the same depths to the same
// (symbol, weight) pairs.
func (c Code) Equal(other Code) bool {
	return slices.Equal(c.entries, other.entries)
}

// Canonical returns the canonical Huffman codeword for each entry, in symbol
// order.  The Code must be valid.
func (c Code) Canonical() []Codeword {
	err := c.Validate()
	assert.Assertf(err == nil, "Canonical: %v", err)

	out := make([]Codeword, len(c.entries))

	// Step 1: sort the entries by (Depth, Symbol) ascending.

	sorted := make(byDepth, 0, len(c.entries))
	for index, e := range c.entries {
		sorted = append(sorted, indexAndDepth{index, e.Symbol, e.Depth})
	}
	sorted.Sort()

	// Step 2: assign the codewords sequentially, per the algorithm detailed
	// at <https://en.wikipedia.org/w/index.php?title=Canonical_Huffman_code&oldid=999983137>.

	lastSize := sorted[0].depth
	nextBits := uint64(0)
	for _, item := range sorted {
		if item.depth > lastSize {
			nextBits <<= (item.depth - lastSize)
			lastSize = item.depth
		}
		out[item.index] = MakeCodeword(item.depth, nextBits)
		nextBits++
	}
	return out
}

// String returns a compact representation of this Code, listing
// symbol:weight=depth for each entry.
func (c Code) String() string {
	var buf strings.Builder
	buf.WriteByte('{')
	for index, e := range c.entries {
		if index > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%v:%d=%d", e.Symbol, e.Weight, e.Depth)
	}
	buf.WriteByte('}')
	return buf.String()
}

// Dump writes a programmer-readable debugging dump of this Code to the given
// writer, listing each symbol's weight, depth, and canonical codeword.
func (c Code) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Code{\n")
	fmt.Fprintf(&buf, "\tMaxDepth() = %d\n", c.MaxDepth())
	var codewords []Codeword
	if c.Validate() == nil {
		codewords = c.Canonical()
	}
	for index, e := range c.entries {
		if codewords == nil {
			fmt.Fprintf(&buf, "\t%v: weight %d, depth %d\n", e.Symbol, e.Weight, e.Depth)
		} else {
			fmt.Fprintf(&buf, "\t%v: weight %d, depth %d, codeword %s\n", e.Symbol, e.Weight, e.Depth, codewords[index])
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ fmt.Stringer = Code{}

func byEntrySymbol(a, b CodeEntry) int {
	return cmp.Compare(a.Symbol, b.Symbol)
}

// type indexAndDepth + type byDepth {{{

type indexAndDepth struct {
	index  int
	symbol Symbol
	depth  Depth
}

type byDepth []indexAndDepth

func (list byDepth) Len() int {
	return len(list)
}

func (list byDepth) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byDepth) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	return a.symbol < b.symbol
}

func (list byDepth) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = byDepth(nil)

// }}}
