// this code is adapted from github.com/ryogrid/SamehadaDB's
// storage/disk/virtual_disk_manager_impl.go

package disk

import (
	"sync"

	"github.com/dsnet/golib/memfile"

	"github.com/gopherdb/pagecache/common"
	"github.com/gopherdb/pagecache/types"
)

// VirtualManager is an in-memory implementation of Manager backed by
// memfile.File instead of an *os.File. It is what the end-to-end scenarios
// in spec.md §8 (S2-S6) exercise against: it behaves like a real disk
// (reads of never-written pages come back zeroed) without touching the
// filesystem.
type VirtualManager struct {
	mu          sync.Mutex
	db          *memfile.File
	nextPageID  types.PageID
	size        int64
	numWrites   uint64
	writeCounts map[types.PageID]int
}

// NewVirtualManager returns an empty in-memory disk.
func NewVirtualManager() *VirtualManager {
	return &VirtualManager{db: memfile.New(make([]byte, 0)), writeCounts: make(map[types.PageID]int)}
}

func (d *VirtualManager) ShutDown() {}

func (d *VirtualManager) WritePage(pageID types.PageID, pageData []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageID) * common.PageSize
	if _, err := d.db.WriteAt(pageData, offset); err != nil {
		return err
	}

	d.numWrites++
	d.writeCounts[pageID]++
	if end := offset + int64(len(pageData)); end > d.size {
		d.size = end
	}
	return nil
}

func (d *VirtualManager) ReadPage(pageID types.PageID, pageData []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageID) * common.PageSize
	if offset >= d.size {
		for i := range pageData {
			pageData[i] = 0
		}
		return nil
	}

	n, err := d.db.ReadAt(pageData, offset)
	for i := n; i < len(pageData); i++ {
		pageData[i] = 0
	}
	if err != nil && n > 0 {
		return nil
	}
	return err
}

func (d *VirtualManager) AllocatePage() types.PageID {
	d.mu.Lock()
	defer d.mu.Unlock()
	ret := d.nextPageID
	d.nextPageID++
	return ret
}

func (d *VirtualManager) DeallocatePage(types.PageID) {}

// NumWrites returns the total number of WritePage calls observed so far,
// across all page ids. Per-page counts (used to assert property 7,
// write-through on eviction observed exactly once) come from WriteCount.
func (d *VirtualManager) NumWrites() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.numWrites
}

// WriteCount returns how many times WritePage has been called for pageID.
func (d *VirtualManager) WriteCount(pageID types.PageID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeCounts[pageID]
}
