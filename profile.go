package huffman

import (
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/chronos-tachyon/assert"
	"golang.org/x/sync/errgroup"
)

// Profile is a length profile: the multiset of leaf depths of some full
// binary tree, kept sorted in ascending order.
type Profile []Depth

// String returns the depths as "{1,2,2}".
func (p Profile) String() string {
	var buf strings.Builder
	buf.WriteByte('{')
	for index, d := range p {
		if index > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatUint(uint64(d), 10))
	}
	buf.WriteByte('}')
	return buf.String()
}

// LengthProfiles returns every length profile with n entries, in
// lexicographic order.  n must be at least 2.
//
// Profiles are built up from {1,1}: a full binary tree gains a leaf only by
// splitting an existing leaf of depth d into two leaves of depth d+1.
//
func LengthProfiles(n int) []Profile {
	assert.Assertf(n >= 2, "LengthProfiles: n %d < 2", n)
	assert.Assertf(n <= int(MaxDepth)+1, "LengthProfiles: n %d > %d", n, int(MaxDepth)+1)

	level := []Profile{{1, 1}}
	for size := 3; size <= n; size++ {
		seen := make(map[string]struct{}, 2*len(level))
		var next []Profile
		for _, p := range level {
			for index, d := range p {
				if index > 0 && p[index-1] == d {
					continue
				}
				q := splitLeaf(p, index)
				key := profileKey(q)
				if _, found := seen[key]; found {
					continue
				}
				seen[key] = struct{}{}
				next = append(next, q)
			}
		}
		level = next
	}
	slices.SortFunc(level, func(a, b Profile) int {
		return slices.Compare(a, b)
	})
	return level
}

// splitLeaf returns a copy of p with p[index] replaced by two leaves one
// level deeper, still sorted.
func splitLeaf(p Profile, index int) Profile {
	d := p[index] + 1
	q := make(Profile, 0, len(p)+1)
	q = append(q, p[:index]...)
	q = append(q, p[index+1:]...)
	at, _ := slices.BinarySearch(q, d)
	return slices.Insert(q, at, d, d)
}

func profileKey(p Profile) string {
	buf := make([]byte, len(p))
	for index, d := range p {
		buf[index] = byte(d)
	}
	return string(buf)
}

// Permutations returns every distinct ordering of p, in lexicographic order.
// Equal depths are interchangeable, so no ordering is repeated.
func (p Profile) Permutations() [][]Depth {
	cur := slices.Clone([]Depth(p))
	slices.Sort(cur)
	var out [][]Depth
	for {
		out = append(out, slices.Clone(cur))
		if !nextPermutation(cur) {
			return out
		}
	}
}

// nextPermutation rearranges a into the lexicographically next greater
// ordering, returning false if a is already the greatest.
func nextPermutation(a []Depth) bool {
	i := len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	slices.Reverse(a[i+1:])
	return true
}

// PossibleLengthProfiles returns every ordering of every length profile with
// n entries.  Results are memoized in DefaultProfileCache; callers must not
// modify them.
func PossibleLengthProfiles(n int) [][]Depth {
	return DefaultProfileCache.Permutations(n)
}

// DefaultProfileCache is the process-wide ProfileCache.
var DefaultProfileCache = NewProfileCache(0)

// ProfileCache memoizes LengthProfiles and their permutations per n.  It is
// safe for concurrent use.
type ProfileCache struct {
	workers int
	mu      sync.Mutex
	entries map[int]*profileEntry
}

type profileEntry struct {
	profilesOnce sync.Once
	profiles     []Profile
	permsOnce    sync.Once
	perms        [][]Depth
}

// NewProfileCache returns an empty cache.  workers bounds the goroutines used
// to expand permutations; values below 1 select runtime.GOMAXPROCS(0).
func NewProfileCache(workers int) *ProfileCache {
	return &ProfileCache{workers: workers, entries: make(map[int]*profileEntry)}
}

func (c *ProfileCache) entry(n int) *profileEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[n]
	if e == nil {
		e = &profileEntry{}
		c.entries[n] = e
	}
	return e
}

// Profiles returns LengthProfiles(n), computing it at most once.
func (c *ProfileCache) Profiles(n int) []Profile {
	assert.Assertf(n >= 2, "Profiles: n %d < 2", n)
	e := c.entry(n)
	e.profilesOnce.Do(func() {
		e.profiles = LengthProfiles(n)
	})
	return e.profiles
}

// Permutations returns every ordering of every profile in Profiles(n),
// computing it at most once.  Profiles are expanded in parallel.
func (c *ProfileCache) Permutations(n int) [][]Depth {
	profiles := c.Profiles(n)
	e := c.entry(n)
	e.permsOnce.Do(func() {
		e.perms = expandPermutations(profiles, c.workers)
	})
	return e.perms
}

func expandPermutations(profiles []Profile, workers int) [][]Depth {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([][][]Depth, len(profiles))
	var g errgroup.Group
	g.SetLimit(workers)
	for index, p := range profiles {
		g.Go(func() error {
			results[index] = p.Permutations()
			return nil
		})
	}
	_ = g.Wait()

	var total int
	for _, list := range results {
		total += len(list)
	}
	out := make([][]Depth, 0, total)
	for _, list := range results {
		out = append(out, list...)
	}
	return out
}
