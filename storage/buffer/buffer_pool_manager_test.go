package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopherdb/pagecache/storage/disk"
	"github.com/gopherdb/pagecache/types"
)

func TestBufferPoolManager_NewPageLoopExhaustsFreeList(t *testing.T) {
	dm := disk.NewVirtualManager()
	bpm := NewBufferPoolManager(3, dm, 2)

	var ids []types.PageID
	for i := 0; i < 3; i++ {
		id, pg := bpm.NewPage()
		require.NotNil(t, pg)
		ids = append(ids, id)
	}
	assert.True(t, bpm.CheckInvariants())

	// every frame pinned and non-evictable: the pool is exhausted.
	id, pg := bpm.NewPage()
	assert.Equal(t, types.InvalidPageID, id)
	assert.Nil(t, pg)

	for _, id := range ids {
		assert.True(t, bpm.UnpinPage(id, false))
	}
}

func TestBufferPoolManager_UnpinThenEvict(t *testing.T) {
	dm := disk.NewVirtualManager()
	bpm := NewBufferPoolManager(2, dm, 2)

	id1, pg1 := bpm.NewPage()
	require.NotNil(t, pg1)
	pg1.Copy(0, []byte("hello"))
	require.True(t, bpm.UnpinPage(id1, true))

	id2, pg2 := bpm.NewPage()
	require.NotNil(t, pg2)
	require.True(t, bpm.UnpinPage(id2, false))

	// pool is full (poolSize=2) but both frames are evictable; a third
	// NewPage must evict one of them, writing it through if dirty.
	id3, pg3 := bpm.NewPage()
	require.NotNil(t, pg3)
	assert.NotEqual(t, types.InvalidPageID, id3)

	// id1 was dirty, so eviction must have flushed it exactly once.
	assert.Equal(t, 1, dm.WriteCount(id1))
	assert.True(t, bpm.CheckInvariants())
}

func TestBufferPoolManager_FetchPageReadsThroughOnMiss(t *testing.T) {
	dm := disk.NewVirtualManager()
	bpm := NewBufferPoolManager(1, dm, 2)

	id, pg := bpm.NewPage()
	pg.Copy(0, []byte("payload"))
	require.True(t, bpm.FlushPage(id))
	require.True(t, bpm.UnpinPage(id, false))

	// the single frame is reused for another page, so id drops out of the
	// page table and the fetch below must read it back from disk.
	other, otherPg := bpm.NewPage()
	require.NotNil(t, otherPg)
	require.True(t, bpm.UnpinPage(other, false))

	fetched := bpm.FetchPage(id)
	require.NotNil(t, fetched)
	assert.Equal(t, byte('p'), fetched.Data()[0])
	assert.Equal(t, 1, fetched.PinCount())

	require.True(t, bpm.UnpinPage(id, false))
}

func TestBufferPoolManager_DeletePageRequiresUnpinned(t *testing.T) {
	dm := disk.NewVirtualManager()
	bpm := NewBufferPoolManager(2, dm, 2)

	id, pg := bpm.NewPage()
	require.NotNil(t, pg)

	assert.False(t, bpm.DeletePage(id), "pinned page must not be deletable")

	require.True(t, bpm.UnpinPage(id, false))
	assert.True(t, bpm.DeletePage(id))

	// deleting an absent page id is a no-op success.
	assert.True(t, bpm.DeletePage(id))
	assert.True(t, bpm.CheckInvariants())
}

func TestBufferPoolManager_FlushAllWritesEveryDirtyPage(t *testing.T) {
	dm := disk.NewVirtualManager()
	bpm := NewBufferPoolManager(3, dm, 2)

	var ids []types.PageID
	for i := 0; i < 3; i++ {
		id, pg := bpm.NewPage()
		pg.Copy(0, []byte{byte(i)})
		require.True(t, bpm.UnpinPage(id, true))
		ids = append(ids, id)
	}

	bpm.FlushAll()
	for _, id := range ids {
		assert.GreaterOrEqual(t, dm.WriteCount(id), 1)
	}
}

func TestBufferPoolManager_PinSafety(t *testing.T) {
	dm := disk.NewVirtualManager()
	bpm := NewBufferPoolManager(1, dm, 2)

	id, pg := bpm.NewPage()
	require.NotNil(t, pg)

	// second NewPage must fail: the only frame is pinned and there is no
	// evictable victim (spec §8 property 6: pinned pages are never evicted).
	_, pg2 := bpm.NewPage()
	assert.Nil(t, pg2)

	require.True(t, bpm.UnpinPage(id, false))
	id3, pg3 := bpm.NewPage()
	assert.NotNil(t, pg3)
	assert.NotEqual(t, id, id3)
}
