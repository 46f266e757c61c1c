package huffman

import (
	"cmp"
	"context"
	"encoding/binary"
	"runtime"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
	"golang.org/x/sync/errgroup"
)

// Reduce returns every tree that the Huffman algorithm could produce from the
// given forest, exploring each possible choice wherever ties in weight make
// the greedy step ambiguous.
//
// At each step the forest is sorted by weight.  If exactly one tree has the
// minimum weight, it may be merged with any of the trees tied for the next
// weight.  If two or more trees tie for the minimum, any two of them may be
// merged, and no other merge is a valid greedy choice.
//
// The result is a set: trees that are identical up to the order of children
// are returned only once.  The number of trees returned grows combinatorially
// with the number of ties.
//
// The forest must not be empty.  Weights of zero are not supported.
//
func Reduce(forest []*Tree) []*Tree {
	trees, err := Reducer{Workers: 1}.Reduce(context.Background(), forest)
	assert.Assertf(err == nil, "Reduce: %v", err)
	return trees
}

// Reducer performs the same search as Reduce, expanding each level of the
// search in parallel.
type Reducer struct {
	// Workers bounds the number of goroutines used to expand one level of
	// the search.  Values below 1 select runtime.GOMAXPROCS(0).
	Workers int
}

// Reduce is the parallel, cancellable form of the package-level Reduce.  It
// returns ctx.Err() if the context ends before the search does.
func (r Reducer) Reduce(ctx context.Context, forest []*Tree) ([]*Tree, error) {
	assert.Assertf(len(forest) != 0, "Reduce: empty forest")
	for index, tree := range forest {
		assert.Assertf(tree != nil, "Reduce: forest[%d] is nil", index)
	}

	var completed []*Tree
	var completedSet forestSet
	level := [][]*Tree{slices.Clone(forest)}
	for len(level) != 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// All forests in one level have the same size, so duplicates
		// can only occur within a level.
		var partial [][]*Tree
		var partialSet forestSet
		for _, f := range level {
			if len(f) < 2 {
				if completedSet.Add(f) {
					completed = append(completed, f[0])
				}
			} else if partialSet.Add(f) {
				partial = append(partial, f)
			}
		}

		var err error
		level, err = r.expand(ctx, partial)
		if err != nil {
			return nil, err
		}
	}
	return completed, nil
}

func (r Reducer) expand(ctx context.Context, partial [][]*Tree) ([][]*Tree, error) {
	workers := r.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	if workers == 1 || len(partial) < 2 {
		var next [][]*Tree
		for _, f := range partial {
			next = append(next, possibleReductions(f)...)
		}
		return next, nil
	}

	results := make([][][]*Tree, len(partial))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for index, f := range partial {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[index] = possibleReductions(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, list := range results {
		total += len(list)
	}
	next := make([][]*Tree, 0, total)
	for _, list := range results {
		next = append(next, list...)
	}
	return next, nil
}

// possibleReductions returns one new forest for each admissible greedy merge
// of f.  f itself is not modified.
func possibleReductions(f []*Tree) [][]*Tree {
	sorted := slices.Clone(f)
	slices.SortStableFunc(sorted, ByWeight)

	numSmallest := 1
	for numSmallest < len(sorted) && sorted[numSmallest].weight == sorted[0].weight {
		numSmallest++
	}

	var out [][]*Tree
	if numSmallest == 1 {
		numSecond := 1
		for 1+numSecond < len(sorted) && sorted[1+numSecond].weight == sorted[1].weight {
			numSecond++
		}
		out = make([][]*Tree, 0, numSecond)
		for j := 1; j <= numSecond; j++ {
			out = append(out, mergePair(sorted, 0, j))
		}
		return out
	}

	out = make([][]*Tree, 0, numSmallest*(numSmallest-1)/2)
	for i := 0; i < numSmallest; i++ {
		for j := i + 1; j < numSmallest; j++ {
			out = append(out, mergePair(sorted, i, j))
		}
	}
	return out
}

// mergePair returns a new forest holding every tree of f except f[i] and
// f[j], followed by Branch(f[i], f[j]).  Requires i < j.
func mergePair(f []*Tree, i, j int) []*Tree {
	out := make([]*Tree, 0, len(f)-1)
	out = append(out, f[:i]...)
	out = append(out, f[i+1:j]...)
	out = append(out, f[j+1:]...)
	return append(out, Branch(f[i], f[j]))
}

// type forestSet {{{

// forestSet holds forests, treating two forests as equal when they hold the
// same trees in any order.  The zero value is an empty set.
type forestSet struct {
	buckets map[uint64][][]*Tree
}

// Add inserts f and returns true, or returns false if an equal forest was
// already present.
func (s *forestSet) Add(f []*Tree) bool {
	if s.buckets == nil {
		s.buckets = make(map[uint64][][]*Tree)
	}
	key := forestDigest(f)
	for _, other := range s.buckets[key] {
		if sameForest(f, other) {
			return false
		}
	}
	s.buckets[key] = append(s.buckets[key], f)
	return true
}

func forestDigest(f []*Tree) uint64 {
	digests := make([]uint64, len(f))
	for index, tree := range f {
		digests[index] = tree.digest
	}
	slices.Sort(digests)

	d := xxhash.New()
	var buf [8]byte
	for _, x := range digests {
		binary.LittleEndian.PutUint64(buf[:], x)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func sameForest(a, b []*Tree) bool {
	if len(a) != len(b) {
		return false
	}
	byDigest := func(x, y *Tree) int {
		return cmp.Compare(x.digest, y.digest)
	}
	a = slices.Clone(a)
	b = slices.Clone(b)
	slices.SortFunc(a, byDigest)
	slices.SortFunc(b, byDigest)
	for index := range a {
		if !a[index].IsSameAs(b[index]) {
			return false
		}
	}
	return true
}

// }}}
