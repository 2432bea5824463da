// Package rankindex implements a max-priority index over (key, filename)
// pairs, used to answer "top k files by X" queries without scanning
// every tracked file.
//
// The backing structure is an array binary max-heap plus a filename to
// heap-position map. The map is updated on every swap, which is what
// makes Remove O(log n): the stale entry for a renamed key is located
// directly instead of by scan. Queries copy the heap, so a TopK never
// disturbs the live index.
package rankindex

import (
	"golang.org/x/exp/constraints"

	"treevc/internal/verr"
)

// Entry is one indexed (rank key, filename) pair.
type Entry[K constraints.Ordered] struct {
	Key  K
	Name string
}

// Index is a max-priority index keyed by filename. The zero value is
// not usable; construct with New.
type Index[K constraints.Ordered] struct {
	heap []Entry[K]
	pos  map[string]int // filename -> current heap slot
}

// New creates an empty Index.
func New[K constraints.Ordered]() *Index[K] {
	return &Index[K]{pos: make(map[string]int)}
}

// Len returns the number of indexed files.
func (ix *Index[K]) Len() int {
	return len(ix.heap)
}

// Insert adds an entry for name. The caller is responsible for removing
// any previous entry for the same name first; Update does both.
func (ix *Index[K]) Insert(key K, name string) {
	ix.heap = append(ix.heap, Entry[K]{Key: key, Name: name})
	i := len(ix.heap) - 1
	ix.pos[name] = i
	ix.siftUp(i)
}

// Remove excises the entry for name in O(log n). Removing a name that
// was never indexed is a no-op and returns false.
func (ix *Index[K]) Remove(name string) bool {
	i, ok := ix.pos[name]
	if !ok {
		return false
	}
	last := len(ix.heap) - 1
	if i != last {
		ix.swap(i, last)
	}
	ix.heap = ix.heap[:last]
	delete(ix.pos, name)
	if i < last {
		// The element moved into the vacated slot may violate heap
		// order in either direction.
		ix.siftUp(i)
		ix.siftDown(i)
	}
	return true
}

// Update replaces the entry for name with a new key, inserting if the
// name was not indexed yet.
func (ix *Index[K]) Update(key K, name string) {
	ix.Remove(name)
	ix.Insert(key, name)
}

// TopK returns the k highest-keyed entries in descending key order
// without mutating the index. k must lie in [0, Len].
func (ix *Index[K]) TopK(k int) ([]Entry[K], error) {
	if k < 0 {
		return nil, verr.Validationf("requested count must be non-negative, got %d", k)
	}
	if k > len(ix.heap) {
		return nil, verr.Rangef("requested %d entries but only %d file(s) are indexed", k, len(ix.heap))
	}

	scratch := make([]Entry[K], len(ix.heap))
	copy(scratch, ix.heap)

	out := make([]Entry[K], 0, k)
	for i := 0; i < k; i++ {
		out = append(out, scratch[0])
		last := len(scratch) - 1
		scratch[0] = scratch[last]
		scratch = scratch[:last]
		siftDownSlice(scratch, 0)
	}
	return out, nil
}

// All returns every entry in descending key order.
func (ix *Index[K]) All() []Entry[K] {
	out, _ := ix.TopK(len(ix.heap))
	return out
}

func (ix *Index[K]) swap(i, j int) {
	ix.heap[i], ix.heap[j] = ix.heap[j], ix.heap[i]
	ix.pos[ix.heap[i].Name] = i
	ix.pos[ix.heap[j].Name] = j
}

func (ix *Index[K]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if ix.heap[i].Key <= ix.heap[p].Key {
			return
		}
		ix.swap(i, p)
		i = p
	}
}

func (ix *Index[K]) siftDown(i int) {
	n := len(ix.heap)
	for {
		largest := i
		if l := 2*i + 1; l < n && ix.heap[l].Key > ix.heap[largest].Key {
			largest = l
		}
		if r := 2*i + 2; r < n && ix.heap[r].Key > ix.heap[largest].Key {
			largest = r
		}
		if largest == i {
			return
		}
		ix.swap(i, largest)
		i = largest
	}
}

// siftDownSlice restores heap order on a detached copy, where no
// position map needs maintaining.
func siftDownSlice[K constraints.Ordered](heap []Entry[K], i int) {
	n := len(heap)
	for {
		largest := i
		if l := 2*i + 1; l < n && heap[l].Key > heap[largest].Key {
			largest = l
		}
		if r := 2*i + 2; r < n && heap[r].Key > heap[largest].Key {
			largest = r
		}
		if largest == i {
			return
		}
		heap[i], heap[largest] = heap[largest], heap[i]
		i = largest
	}
}
