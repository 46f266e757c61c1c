package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// IsProbablyCompetitivelyOptimal is a cheap pruning filter applied before the
// exhaustive GloballyUnbeaten check.  Neither answer is a proof: a tree that
// passes may still be beaten, and a tree that fails may be unbeaten by every
// other prefix code over the same symbols.  For example, the tree ((a,b),c)
// over weights a:1, b:1, c:4 fails, yet no code beats {a:2, b:2, c:1}.
//
// For each branch, let its gap be the absolute difference between the
// weights of its two children.  A leaf whose weight is less than the gap of
// some branch above its parent fails the filter.
//
// Trees of one or two leaves always pass.
func IsProbablyCompetitivelyOptimal(tree *Tree) bool {
	assert.Assertf(tree != nil, "IsProbablyCompetitivelyOptimal: nil tree")

	// above is the largest gap among branches strictly above the parent
	// of node; parentGap is the gap of node's parent.
	type stackItem struct {
		node      *Tree
		above     Weight
		parentGap Weight
	}

	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{node: tree})
	for len(stack) != 0 {
		top := len(stack) - 1
		item := stack[top]
		stack = stack[:top]

		if item.node.IsLeaf() {
			if item.node.weight < item.above {
				return false
			}
			continue
		}

		left, right := item.node.left, item.node.right
		gap := absDiff(left.weight, right.weight)
		above := max(item.above, item.parentGap)
		stack = append(stack, stackItem{right, above, gap})
		stack = append(stack, stackItem{left, above, gap})
	}
	return true
}

func absDiff(a, b Weight) Weight {
	if a > b {
		return a - b
	}
	return b - a
}
