package huffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// Huffman builds a single Huffman tree over the given trees by repeatedly
// merging the two lightest.  Ties are broken by input order, with merged
// trees placed after all trees that existed before them, so the result is
// deterministic.  The lighter of each merged pair becomes the left child.
//
// Huffman returns one of the trees that Reduce would return for the same
// input.
//
func Huffman(leaves []*Tree) *Tree {
	assert.Assertf(len(leaves) != 0, "Huffman: empty forest")

	// Step 1: build a minheap.

	h := treeHeap{list: make([]treeAndSeq, 0, len(leaves))}
	for index, tree := range leaves {
		assert.Assertf(tree != nil, "Huffman: leaves[%d] is nil", index)
		h.list = append(h.list, treeAndSeq{tree, uint32(index)})
	}
	h.Init()

	// Step 2: pop two, push their branch.  Each synthetic tree gets the
	// next sequence number, so it sorts after every older tree of equal
	// weight.

	nextSeq := uint32(len(leaves))
	for h.Len() > 1 {
		a := heap.Pop(&h).(treeAndSeq)
		b := heap.Pop(&h).(treeAndSeq)
		heap.Push(&h, treeAndSeq{Branch(a.tree, b.tree), nextSeq})
		nextSeq++
	}

	return heap.Pop(&h).(treeAndSeq).tree
}

// type treeAndSeq + type treeHeap {{{

type treeAndSeq struct {
	tree *Tree
	seq  uint32
}

type treeHeap struct {
	list []treeAndSeq
}

func (h *treeHeap) Init() {
	heap.Init(h)
}

func (h *treeHeap) Len() int {
	return len(h.list)
}

func (h *treeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *treeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.tree.weight != b.tree.weight {
		return a.tree.weight < b.tree.weight
	}
	return a.seq < b.seq
}

func (h *treeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(treeAndSeq))
}

func (h *treeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = treeAndSeq{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*treeHeap)(nil)

// }}}
