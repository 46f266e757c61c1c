package huffman

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
)

// Tree is an immutable binary code tree.  A Tree is either a leaf, which
// carries a Symbol and its Weight, or a branch with exactly two children whose
// weight is the sum of its children's weights.
//
// Trees are shared freely: building a branch never copies its children, so
// many forests explored by Reduce can point at the same subtrees.
type Tree struct {
	left   *Tree
	right  *Tree
	weight Weight
	symbol Symbol
	leaves int
	digest uint64
}

// Leaf constructs a leaf node.
func Leaf(weight Weight, symbol Symbol) *Tree {
	var buf [9]byte
	buf[0] = 'L'
	binary.LittleEndian.PutUint32(buf[1:5], uint32(weight))
	binary.LittleEndian.PutUint32(buf[5:9], uint32(symbol))
	return &Tree{
		weight: weight,
		symbol: symbol,
		leaves: 1,
		digest: xxhash.Sum64(buf[:]),
	}
}

// Branch constructs a branch node with the given children.
func Branch(left, right *Tree) *Tree {
	assert.Assertf(left != nil, "Branch: left child is nil")
	assert.Assertf(right != nil, "Branch: right child is nil")

	sum := left.weight + right.weight
	assert.Assertf(sum >= left.weight, "Branch: weight overflow: %d + %d", left.weight, right.weight)

	// The digest ignores child order, so that mirror images hash alike.
	lo, hi := left.digest, right.digest
	if lo > hi {
		lo, hi = hi, lo
	}
	var buf [17]byte
	buf[0] = 'B'
	binary.LittleEndian.PutUint64(buf[1:9], lo)
	binary.LittleEndian.PutUint64(buf[9:17], hi)

	return &Tree{
		left:   left,
		right:  right,
		weight: sum,
		symbol: InvalidSymbol,
		leaves: left.leaves + right.leaves,
		digest: xxhash.Sum64(buf[:]),
	}
}

// Weight returns the weight of this node.
func (t *Tree) Weight() Weight {
	return t.weight
}

// IsLeaf returns true iff this node is a leaf.
func (t *Tree) IsLeaf() bool {
	return t.left == nil
}

// Symbol returns the symbol of a leaf, or InvalidSymbol for a branch.
func (t *Tree) Symbol() Symbol {
	return t.symbol
}

// Children returns the two children of a branch, or (nil, nil) for a leaf.
func (t *Tree) Children() (left *Tree, right *Tree) {
	return t.left, t.right
}

// NumLeaves returns the number of leaves under this node.
func (t *Tree) NumLeaves() int {
	return t.leaves
}

// ByWeight orders trees by weight alone.  Distinct trees frequently compare
// equal.
func ByWeight(a, b *Tree) int {
	return cmp.Compare(a.weight, b.weight)
}

// IsSameAs returns true iff both trees have the same shape, weights, and
// symbols, treating the two children of every branch as unordered.
func (t *Tree) IsSameAs(other *Tree) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.weight != other.weight || t.leaves != other.leaves || t.digest != other.digest {
		return false
	}
	return t.canonical() == other.canonical()
}

// canonical returns a string that is identical for two trees iff IsSameAs
// holds between them.  Each branch lists its children's forms in sorted order.
func (t *Tree) canonical() string {
	type stackItem struct {
		node *Tree
		x    byte
	}

	forms := make(map[*Tree]string, 2*t.leaves)
	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{node: t})

	for len(stack) != 0 {
		top := len(stack) - 1
		item := stack[top]
		if _, found := forms[item.node]; found {
			stack = stack[:top]
			continue
		}
		if item.node.IsLeaf() {
			forms[item.node] = strconv.FormatUint(uint64(item.node.weight), 10) + ":" + strconv.QuoteRune(rune(item.node.symbol))
			stack = stack[:top]
			continue
		}
		switch item.x {
		case 0:
			stack[top].x = 1
			stack = append(stack, stackItem{node: item.node.left})
		case 1:
			stack[top].x = 2
			stack = append(stack, stackItem{node: item.node.right})
		default:
			a, b := forms[item.node.left], forms[item.node.right]
			if a > b {
				a, b = b, a
			}
			forms[item.node] = "(" + a + "," + b + ")"
			stack = stack[:top]
		}
	}
	return forms[t]
}

// String renders the tree as nested pairs of symbols, e.g. "(d,(c,(a,b)))".
func (t *Tree) String() string {
	if t == nil {
		return "<nil>"
	}

	type stackItem struct {
		node *Tree
		x    byte
	}

	var buf strings.Builder
	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{node: t})
	for len(stack) != 0 {
		top := len(stack) - 1
		item := stack[top]
		if item.node.IsLeaf() {
			buf.WriteString(item.node.symbol.String())
			stack = stack[:top]
			continue
		}
		switch item.x {
		case 0:
			buf.WriteByte('(')
			stack[top].x = 1
			stack = append(stack, stackItem{node: item.node.left})
		case 1:
			buf.WriteByte(',')
			stack[top].x = 2
			stack = append(stack, stackItem{node: item.node.right})
		default:
			buf.WriteByte(')')
			stack = stack[:top]
		}
	}
	return buf.String()
}

// GoString renders the tree as the Go expression that would build it.
func (t *Tree) GoString() string {
	if t == nil {
		return "(*huffman.Tree)(nil)"
	}

	type stackItem struct {
		node *Tree
		x    byte
	}

	var buf strings.Builder
	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{node: t})
	for len(stack) != 0 {
		top := len(stack) - 1
		item := stack[top]
		if item.node.IsLeaf() {
			fmt.Fprintf(&buf, "Leaf(%d, %q)", item.node.weight, rune(item.node.symbol))
			stack = stack[:top]
			continue
		}
		switch item.x {
		case 0:
			buf.WriteString("Branch(")
			stack[top].x = 1
			stack = append(stack, stackItem{node: item.node.left})
		case 1:
			buf.WriteString(", ")
			stack[top].x = 2
			stack = append(stack, stackItem{node: item.node.right})
		default:
			buf.WriteByte(')')
			stack = stack[:top]
		}
	}
	return buf.String()
}

var (
	_ fmt.Stringer   = (*Tree)(nil)
	_ fmt.GoStringer = (*Tree)(nil)
)
