package buffer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendibleHashTable_InsertFindRemove(t *testing.T) {
	tbl := NewExtendibleHashTable[int, string](4)

	require.NoError(t, tbl.Insert(1, "a"))
	require.NoError(t, tbl.Insert(2, "b"))

	v, ok := tbl.Find(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = tbl.Find(2)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = tbl.Find(3)
	assert.False(t, ok)

	assert.True(t, tbl.Remove(1))
	_, ok = tbl.Find(1)
	assert.False(t, ok)

	assert.False(t, tbl.Remove(1))
}

func TestExtendibleHashTable_OverwriteExistingKey(t *testing.T) {
	tbl := NewExtendibleHashTable[int, string](4)

	require.NoError(t, tbl.Insert(1, "a"))
	require.NoError(t, tbl.Insert(1, "b"))

	v, ok := tbl.Find(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, tbl.NumBuckets())
}

func TestExtendibleHashTable_SplitGrowsDirectoryAndPreservesAllKeys(t *testing.T) {
	tbl := NewExtendibleHashTable[int, int](2)

	// Insert enough distinct keys to force at least one split; every key
	// must remain retrievable afterward (spec §8 property 2).
	const n = 200
	for i := 0; i < n; i++ {
		require.NoError(t, tbl.Insert(i, i*i))
	}

	for i := 0; i < n; i++ {
		v, ok := tbl.Find(i)
		require.True(t, ok, "key %d should be present", i)
		assert.Equal(t, i*i, v)
	}

	assert.GreaterOrEqual(t, tbl.GlobalDepth(), 1)
	assert.GreaterOrEqual(t, tbl.NumBuckets(), 2)
}

// TestExtendibleHashTable_DirectoryConsistency checks spec §8 property 1:
// every directory slot referencing a bucket of local depth l shares the
// bucket's low-l bits, and exactly 2^(g-l) slots reference it.
func TestExtendibleHashTable_DirectoryConsistency(t *testing.T) {
	tbl := NewExtendibleHashTable[int, int](2)

	for i := 0; i < 64; i++ {
		require.NoError(t, tbl.Insert(i, i))
	}

	g := tbl.GlobalDepth()
	dirSize := 1 << g

	seen := map[*bucket[int, int]]int{}
	for i := 0; i < dirSize; i++ {
		b := tbl.directory[i]
		seen[b]++
	}

	for b, count := range seen {
		expected := 1 << (g - b.localDepth)
		assert.Equal(t, expected, count, "bucket with local depth %d should be referenced %d times", b.localDepth, expected)

		// every slot referencing b must share its low-l bits
		discriminant := -1
		for i := 0; i < dirSize; i++ {
			if tbl.directory[i] != b {
				continue
			}
			lowBits := i & ((1 << b.localDepth) - 1)
			if discriminant == -1 {
				discriminant = lowBits
			} else {
				assert.Equal(t, discriminant, lowBits)
			}
		}
	}
}

func TestExtendibleHashTable_NoMergeOnDelete(t *testing.T) {
	tbl := NewExtendibleHashTable[int, int](2)
	for i := 0; i < 32; i++ {
		require.NoError(t, tbl.Insert(i, i))
	}
	before := tbl.NumBuckets()

	for i := 0; i < 32; i++ {
		tbl.Remove(i)
	}

	assert.Equal(t, before, tbl.NumBuckets(), "deletion must never merge buckets")
}

func TestExtendibleHashTable_StringKeys(t *testing.T) {
	tbl := NewExtendibleHashTable[string, int](4)
	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("key-%d", i)
		require.NoError(t, tbl.Insert(key, i))
	}
	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("key-%d", i)
		v, ok := tbl.Find(key)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}
