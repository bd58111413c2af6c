// this code is adapted from github.com/ryogrid/SamehadaDB's
// storage/buffer/buffer_pool_manager.go, generalized per
// original_source/src/buffer/buffer_pool_manager_instance.cpp to use an
// ExtendibleHashTable page table and an LRUKReplacer instead of a plain Go
// map and a ClockReplacer, per spec §4.3.

package buffer

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/gopherdb/pagecache/common"
	"github.com/gopherdb/pagecache/storage/disk"
	"github.com/gopherdb/pagecache/storage/page"
	"github.com/gopherdb/pagecache/types"
)

// BufferPoolManager owns a fixed array of frames and composes an
// ExtendibleHashTable (page id -> frame id) with an LRUKReplacer (victim
// selection) and a disk.Manager (read-through / write-through), per spec
// §4.3.
type BufferPoolManager struct {
	latch     common.ReaderWriterLatch
	disk      disk.Manager
	pages     []*page.Page
	pageTable *ExtendibleHashTable[types.PageID, types.FrameID]
	replacer  *LRUKReplacer
	freeList  []types.FrameID
	poolSize  int
}

// NewBufferPoolManager returns a pool of poolSize frames, evicting via
// LRU-K with the given k once the free list and replacer are both
// exhausted.
func NewBufferPoolManager(poolSize int, diskManager disk.Manager, replacerK int) *BufferPoolManager {
	common.Assert(poolSize > 0, "buffer pool size must be positive")

	pages := make([]*page.Page, poolSize)
	freeList := make([]types.FrameID, poolSize)
	for i := 0; i < poolSize; i++ {
		freeList[i] = types.FrameID(i)
	}

	return &BufferPoolManager{
		latch:      common.NewRWLatch(),
		disk:       diskManager,
		pages:      pages,
		pageTable:  NewExtendibleHashTable[types.PageID, types.FrameID](common.DefaultBucketSize),
		replacer:   NewLRUKReplacer(poolSize, replacerK),
		freeList:   freeList,
		poolSize:   poolSize,
	}
}

// GetPoolSize returns the fixed number of frames in the pool.
func (b *BufferPoolManager) GetPoolSize() int {
	return b.poolSize
}

// getFrame pops the free list if non-empty, else asks the replacer for a
// victim. The second return reports whether the frame came from the free
// list (true) or was evicted (false, meaning its previous occupant, if
// any, must be flushed and unmapped by the caller).
func (b *BufferPoolManager) getFrame() (types.FrameID, bool, bool) {
	if len(b.freeList) > 0 {
		frameID := b.freeList[0]
		b.freeList = b.freeList[1:]
		return frameID, true, true
	}

	frameID, ok := b.replacer.Evict()
	if !ok {
		return 0, false, false
	}
	return frameID, false, true
}

// evictOccupant flushes frameID's current occupant if dirty and removes it
// from the page table, in preparation for reassigning the frame. Callers
// only invoke this for frames obtained by eviction (spec §8 property 7:
// write-through on eviction is observed exactly once). Returns false if the
// write-through fails, in which case the frame must not be reassigned (spec
// §7: disk I/O errors are fatal to the operation and propagate), matching
// how FlushPage treats the identical WritePage error below.
func (b *BufferPoolManager) evictOccupant(frameID types.FrameID) bool {
	occupant := b.pages[frameID]
	if occupant == nil || !occupant.ID().IsValid() {
		return true
	}
	if occupant.IsDirty() {
		if err := b.disk.WritePage(occupant.ID(), occupant.Data()[:]); err != nil {
			common.ShPrintf(common.Error, "BufferPoolManager.evictOccupant: write page=%d failed: %v\n", occupant.ID(), err)
			return false
		}
	}
	b.pageTable.Remove(occupant.ID())
	return true
}

// NewPage allocates a fresh page backed by a frame from the free list, or
// failing that an LRU-K victim. Returns (InvalidPageID, nil) if no frame is
// obtainable.
func (b *BufferPoolManager) NewPage() (types.PageID, *page.Page) {
	b.latch.WLock()
	defer b.latch.WUnlock()

	frameID, fromFreeList, ok := b.getFrame()
	if !ok {
		return types.InvalidPageID, nil
	}
	if !fromFreeList && !b.evictOccupant(frameID) {
		return types.InvalidPageID, nil
	}

	pageID := b.disk.AllocatePage()

	pg := b.pages[frameID]
	if pg == nil {
		pg = page.NewEmpty(pageID)
		b.pages[frameID] = pg
	} else {
		pg.ResetTo(pageID)
		pg.IncPinCount()
	}

	_ = b.replacer.RecordAccess(frameID)
	_ = b.replacer.SetEvictable(frameID, false)
	_ = b.pageTable.Insert(pageID, frameID)

	common.ShPrintf(common.Debug, "BufferPoolManager.NewPage: page=%d frame=%d\n", pageID, frameID)
	return pageID, pg
}

// FetchPage returns the requested page, loading it from disk into a frame
// if it isn't already cached. Returns nil if the page table misses and no
// frame is obtainable.
func (b *BufferPoolManager) FetchPage(pageID types.PageID) *page.Page {
	b.latch.WLock()
	defer b.latch.WUnlock()

	if frameID, ok := b.pageTable.Find(pageID); ok {
		pg := b.pages[frameID]
		pg.IncPinCount()
		_ = b.replacer.RecordAccess(frameID)
		_ = b.replacer.SetEvictable(frameID, false)
		return pg
	}

	frameID, fromFreeList, ok := b.getFrame()
	if !ok {
		return nil
	}
	if !fromFreeList && !b.evictOccupant(frameID) {
		return nil
	}

	pg := b.pages[frameID]
	if pg == nil {
		pg = page.NewEmpty(pageID)
		b.pages[frameID] = pg
	} else {
		pg.ResetTo(pageID)
		pg.IncPinCount()
	}

	if err := b.disk.ReadPage(pageID, pg.Data()[:]); err != nil {
		common.ShPrintf(common.Error, "BufferPoolManager.FetchPage: read page=%d failed: %v\n", pageID, err)
		return nil
	}

	_ = b.pageTable.Insert(pageID, frameID)
	_ = b.replacer.RecordAccess(frameID)
	_ = b.replacer.SetEvictable(frameID, false)

	common.ShPrintf(common.Debug, "BufferPoolManager.FetchPage: page=%d frame=%d (loaded)\n", pageID, frameID)
	return pg
}

// UnpinPage decrements pageID's pin count, marking its frame evictable once
// the count reaches zero. isDirty is OR'd into the frame's dirty bit — it
// never clears a previously set bit (§9 "Dirty retention"). Returns false
// if pageID isn't cached or is already unpinned.
func (b *BufferPoolManager) UnpinPage(pageID types.PageID, isDirty bool) bool {
	b.latch.WLock()
	defer b.latch.WUnlock()

	frameID, ok := b.pageTable.Find(pageID)
	if !ok {
		return false
	}

	pg := b.pages[frameID]
	if pg.PinCount() == 0 {
		return false
	}

	pg.DecPinCount()
	if pg.PinCount() == 0 {
		_ = b.replacer.SetEvictable(frameID, true)
	}
	pg.MarkDirty(isDirty)
	return true
}

// FlushPage writes pageID through to disk regardless of its dirty bit and
// clears the bit. Returns false if pageID isn't cached.
func (b *BufferPoolManager) FlushPage(pageID types.PageID) bool {
	b.latch.WLock()
	defer b.latch.WUnlock()

	frameID, ok := b.pageTable.Find(pageID)
	if !ok {
		return false
	}

	pg := b.pages[frameID]
	if err := b.disk.WritePage(pageID, pg.Data()[:]); err != nil {
		common.ShPrintf(common.Error, "BufferPoolManager.FlushPage: write page=%d failed: %v\n", pageID, err)
		return false
	}
	pg.SetIsDirty(false)
	_ = b.replacer.RecordAccess(frameID)
	return true
}

// FlushAll flushes every frame currently holding a valid page.
func (b *BufferPoolManager) FlushAll() {
	b.latch.WLock()
	pageIDs := make([]types.PageID, 0, b.poolSize)
	for _, pg := range b.pages {
		if pg != nil && pg.ID().IsValid() {
			pageIDs = append(pageIDs, pg.ID())
		}
	}
	b.latch.WUnlock()

	for _, pageID := range pageIDs {
		b.FlushPage(pageID)
	}
}

// DeletePage removes pageID from the pool, returning true if it was either
// absent or successfully removed, and false if it is still pinned.
func (b *BufferPoolManager) DeletePage(pageID types.PageID) bool {
	b.latch.WLock()
	defer b.latch.WUnlock()

	frameID, ok := b.pageTable.Find(pageID)
	if !ok {
		return true
	}

	pg := b.pages[frameID]
	if pg.PinCount() > 0 {
		return false
	}

	b.pageTable.Remove(pageID)
	_ = b.replacer.Remove(frameID)
	pg.ResetTo(types.InvalidPageID)
	b.freeList = append(b.freeList, frameID)
	b.disk.DeallocatePage(pageID)
	return true
}

// CheckInvariants asserts spec §8 property 5: every frame id appears in
// exactly one of the free list or the set of frames holding a valid page.
// It is a debug/test helper, not part of the public pinned-page API.
func (b *BufferPoolManager) CheckInvariants() bool {
	b.latch.WLock()
	defer b.latch.WUnlock()

	free := mapset.NewSet[types.FrameID]()
	for _, f := range b.freeList {
		free.Add(f)
	}

	occupied := mapset.NewSet[types.FrameID]()
	for i, pg := range b.pages {
		if pg != nil && pg.ID().IsValid() {
			occupied.Add(types.FrameID(i))
		}
	}

	if free.Intersect(occupied).Cardinality() != 0 {
		return false
	}
	return free.Cardinality()+occupied.Cardinality() == b.poolSize
}

// DebugDump prints every goroutine's stack trace, tagged with tag. Intended
// for interactive debugging of a pool that appears stuck (e.g. every frame
// pinned and nothing unpinning it).
func (b *BufferPoolManager) DebugDump(tag string) {
	common.DumpGoroutines(tag)
}
