// Package sorter implements insertion, merge and quick sort over int slices,
// instrumented to count element comparisons and memory accesses.
//
// Counting convention, applied uniformly by every engine:
//   - a comparison is one evaluation of < or > between two element values
//     (or an element and the pivot);
//   - a memory access is one read or one write of a single slot, either in
//     the slice being sorted or in a temporary buffer.
//
// Index arithmetic and bounds checks are never counted.
package sorter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlgorithm is returned by Lookup for names it does not know.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Counters accumulates the operations performed by one sort invocation.
type Counters struct {
	Comparisons    uint64 `json:"comparisons"`
	MemoryAccesses uint64 `json:"memory_accesses"`
}

func (c *Counters) compare(n uint64) { c.Comparisons += n }
func (c *Counters) access(n uint64)  { c.MemoryAccesses += n }

// Add returns the element-wise sum of c and o.
func (c Counters) Add(o Counters) Counters {
	return Counters{
		Comparisons:    c.Comparisons + o.Comparisons,
		MemoryAccesses: c.MemoryAccesses + o.MemoryAccesses,
	}
}

// order reports whether x sorts strictly before y.
type order func(x, y int) bool

func ascending(x, y int) bool { return x < y }

// Algorithm is a named instrumented sort. Sort orders its argument in place
// and returns the counts for that call alone.
type Algorithm struct {
	Name string
	Sort func([]int) Counters
}

// Algorithms returns the instrumented sorts in reporting order.
func Algorithms() []Algorithm {
	return []Algorithm{
		{Name: "Insertion", Sort: Insertion},
		{Name: "Merge", Sort: Merge},
		{Name: "Quick", Sort: Quick},
	}
}

// Lookup resolves an algorithm by name. Matching ignores case and an
// optional "sort" suffix, so "quick", "Quick" and "quicksort" are equal.
func Lookup(name string) (Algorithm, error) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "sort")
	for _, alg := range Algorithms() {
		if strings.ToLower(alg.Name) == key {
			return alg, nil
		}
	}

	return Algorithm{}, fmt.Errorf("%w %q", ErrUnknownAlgorithm, name)
}
