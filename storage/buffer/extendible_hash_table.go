// this code is adapted from github.com/ryogrid/SamehadaDB's
// container/hash/hash_util.go (murmur3 hashing) and generalizes the split
// algorithm from original_source/src/container/hash/extendible_hash_table.cpp
// (the CMU "BusTub" extendible hash table this repository's teacher is a Go
// port of) from a page-backed index into a plain in-memory map from
// arbitrary key K to value V, per spec §4.1.

package buffer

import (
	"fmt"

	stack "github.com/golang-collections/collections/stack"
	pair "github.com/notEpsilon/go-pair"
	"github.com/spaolacci/murmur3"

	"github.com/gopherdb/pagecache/common"
)

// maxGlobalDepth bounds directory growth (§9 "cap g at a sentinel depth and
// surface CapacityExhausted" instead of recursing/growing without bound).
const maxGlobalDepth = 32

// bucket holds up to capacity (K,V) items at a given local depth.
type bucket[K comparable, V any] struct {
	localDepth int
	capacity   int
	items      []pair.Pair[K, V]
}

func newBucket[K comparable, V any](capacity, localDepth int) *bucket[K, V] {
	return &bucket[K, V]{localDepth: localDepth, capacity: capacity}
}

func (b *bucket[K, V]) find(key K) (V, bool) {
	for _, it := range b.items {
		if it.First == key {
			return it.Second, true
		}
	}
	var zero V
	return zero, false
}

func (b *bucket[K, V]) remove(key K) bool {
	for i, it := range b.items {
		if it.First == key {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// insert overwrites key's value if present, otherwise appends if there's
// room. Returns false if the bucket is full and key is new.
func (b *bucket[K, V]) insert(key K, value V) bool {
	for i, it := range b.items {
		if it.First == key {
			b.items[i] = *pair.New(key, value)
			return true
		}
	}
	if len(b.items) >= b.capacity {
		return false
	}
	b.items = append(b.items, *pair.New(key, value))
	return true
}

// ExtendibleHashTable is a concurrent directory + local-depth-bucket map
// from K to V, per spec §3-§4.1.
type ExtendibleHashTable[K comparable, V any] struct {
	latch       common.ReaderWriterLatch
	globalDepth int
	bucketSize  int
	numBuckets  int
	directory   []*bucket[K, V]
}

// NewExtendibleHashTable returns a table with global depth 0 and a single
// empty bucket of the given capacity.
func NewExtendibleHashTable[K comparable, V any](bucketSize int) *ExtendibleHashTable[K, V] {
	if bucketSize <= 0 {
		bucketSize = common.DefaultBucketSize
	}
	t := &ExtendibleHashTable[K, V]{
		latch:      common.NewRWLatch(),
		bucketSize: bucketSize,
		numBuckets: 1,
	}
	t.directory = []*bucket[K, V]{newBucket[K, V](bucketSize, 0)}
	return t
}

// hashKey byte-encodes key (via its %v representation, since K is only
// constrained to comparable and may not expose its own byte codec) and
// hashes the encoding with murmur3-128, folding the digest's two 64-bit
// halves together so both contribute to the bits IndexOf masks off.
func hashKey[K comparable](key K) uint64 {
	hi, lo := murmur3.Sum128([]byte(fmt.Sprintf("%v", key)))
	return hi ^ lo
}

// indexOf computes hash(key) & ((1<<g)-1). Caller must hold the latch.
func (t *ExtendibleHashTable[K, V]) indexOf(key K) int {
	mask := uint64((1 << t.globalDepth) - 1)
	return int(hashKey(key) & mask)
}

// GlobalDepth returns g.
func (t *ExtendibleHashTable[K, V]) GlobalDepth() int {
	t.latch.WLock()
	defer t.latch.WUnlock()
	return t.globalDepth
}

// LocalDepth returns the local depth of the bucket referenced by directory
// slot dirIndex.
func (t *ExtendibleHashTable[K, V]) LocalDepth(dirIndex int) int {
	t.latch.WLock()
	defer t.latch.WUnlock()
	return t.directory[dirIndex].localDepth
}

// NumBuckets returns the number of distinct buckets currently referenced by
// the directory.
func (t *ExtendibleHashTable[K, V]) NumBuckets() int {
	t.latch.WLock()
	defer t.latch.WUnlock()
	return t.numBuckets
}

// Find returns the value associated with key, if any.
func (t *ExtendibleHashTable[K, V]) Find(key K) (V, bool) {
	t.latch.WLock()
	defer t.latch.WUnlock()
	return t.directory[t.indexOf(key)].find(key)
}

// Remove deletes key if present and reports whether a deletion occurred.
// Buckets are never merged back together (§4.1, §9 "no merge on delete").
func (t *ExtendibleHashTable[K, V]) Remove(key K) bool {
	t.latch.WLock()
	defer t.latch.WUnlock()
	return t.directory[t.indexOf(key)].remove(key)
}

// pendingItem is one (key, value) awaiting insertion or re-insertion.
type pendingItem[K comparable, V any] struct {
	key   K
	value V
}

// Insert inserts or overwrites (key, value), splitting buckets as needed.
// Uses an explicit work stack rather than recursion (§9: "naive recursion
// can unbound the stack if all items rehash into the same child").
func (t *ExtendibleHashTable[K, V]) Insert(key K, value V) error {
	t.latch.WLock()
	defer t.latch.WUnlock()

	pending := stack.New()
	pending.Push(pendingItem[K, V]{key, value})

	for pending.Len() > 0 {
		item := pending.Pop().(pendingItem[K, V])

		idx := t.indexOf(item.key)
		b := t.directory[idx]
		if b.insert(item.key, item.value) {
			continue
		}

		if b.localDepth >= maxGlobalDepth {
			return common.ErrCapacityExhausted
		}

		oldLocalDepth := b.localDepth
		b0 := newBucket[K, V](t.bucketSize, oldLocalDepth+1)
		b1 := newBucket[K, V](t.bucketSize, oldLocalDepth+1)

		if oldLocalDepth+1 > t.globalDepth {
			t.globalDepth++
			oldSize := len(t.directory)
			t.directory = append(t.directory, t.directory[:oldSize]...)
			t.directory[idx] = b0
			t.directory[idx+oldSize] = b1
		} else {
			localMask := 1 << oldLocalDepth
			for i := idx & (localMask - 1); i < len(t.directory); i += localMask {
				if i&localMask == 0 {
					t.directory[i] = b0
				} else {
					t.directory[i] = b1
				}
			}
		}
		t.numBuckets++

		for _, it := range b.items {
			pending.Push(pendingItem[K, V]{it.First, it.Second})
		}
		pending.Push(item)
	}

	return nil
}
