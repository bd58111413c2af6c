// this code is adapted from github.com/ryogrid/SamehadaDB's
// storage/disk/disk_manager_impl.go

package disk

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/gopherdb/pagecache/common"
	"github.com/gopherdb/pagecache/types"
)

// FileManager is the file-backed implementation of Manager: each page is
// stored at a fixed offset (pageID * common.PageSize) in a single flat file.
type FileManager struct {
	db         *os.File
	fileName   string
	nextPageID types.PageID
	size       int64
}

// NewFileManager opens (creating if necessary) dbFilename as the backing
// store for a buffer pool.
func NewFileManager(dbFilename string) (*FileManager, error) {
	f, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, errors.Wrap(err, "open db file")
	}

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat db file")
	}

	fileSize := info.Size()
	nPages := fileSize / common.PageSize
	nextPageID := types.PageID(0)
	if nPages > 0 {
		nextPageID = types.PageID(nPages)
	}

	return &FileManager{db: f, fileName: dbFilename, nextPageID: nextPageID, size: fileSize}, nil
}

// ShutDown closes the backing file.
func (d *FileManager) ShutDown() {
	_ = d.db.Close()
}

// WritePage writes pageData (exactly common.PageSize bytes) at pageID's slot.
func (d *FileManager) WritePage(pageID types.PageID, pageData []byte) error {
	offset := int64(pageID) * common.PageSize
	if _, err := d.db.Seek(offset, io.SeekStart); err != nil {
		return errors.Wrap(err, "seek for write")
	}

	n, err := d.db.Write(pageData)
	if err != nil {
		return errors.Wrap(err, "write page")
	}
	if n != common.PageSize {
		return errors.Errorf("short write: wrote %d of %d bytes", n, common.PageSize)
	}

	if offset+int64(n) > d.size {
		d.size = offset + int64(n)
	}

	return errors.Wrap(d.db.Sync(), "sync db file")
}

// ReadPage reads pageID's slot into pageData. If the slot was never written
// (a fresh allocation that hasn't been flushed yet), pageData is zeroed.
func (d *FileManager) ReadPage(pageID types.PageID, pageData []byte) error {
	offset := int64(pageID) * common.PageSize

	info, err := d.db.Stat()
	if err != nil {
		return errors.Wrap(err, "stat db file")
	}

	if offset >= info.Size() {
		for i := range pageData {
			pageData[i] = 0
		}
		return nil
	}

	if _, err := d.db.Seek(offset, io.SeekStart); err != nil {
		return errors.Wrap(err, "seek for read")
	}

	n, err := d.db.Read(pageData)
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "read page")
	}
	for i := n; i < len(pageData); i++ {
		pageData[i] = 0
	}
	return nil
}

// AllocatePage hands out the next page id. Per §9's design note this is a
// plain per-instance counter, never a process-wide singleton.
func (d *FileManager) AllocatePage() types.PageID {
	ret := d.nextPageID
	d.nextPageID++
	return ret
}

// DeallocatePage is a no-op bookkeeping hook: reclaiming on-disk space for
// reuse is out of scope (§1), matching the teacher's own DeallocatePage.
func (d *FileManager) DeallocatePage(types.PageID) {}

// RemoveFile deletes the backing file. Only valid after ShutDown.
func (d *FileManager) RemoveFile() {
	_ = os.Remove(d.fileName)
}
