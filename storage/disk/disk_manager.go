// this code is adapted from github.com/ryogrid/SamehadaDB's storage/disk/disk_manager.go

package disk

import "github.com/gopherdb/pagecache/types"

// Manager is the disk collaborator the buffer pool manager reads pages
// from and writes pages to (spec §6). Its implementation is out of scope
// for the cache core; this interface is the contract the BPM depends on.
type Manager interface {
	ReadPage(pageID types.PageID, buffer []byte) error
	WritePage(pageID types.PageID, buffer []byte) error
	AllocatePage() types.PageID
	DeallocatePage(pageID types.PageID)
	ShutDown()
}
