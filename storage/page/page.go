// this code is adapted from github.com/ryogrid/SamehadaDB's storage/page/page.go

package page

import (
	"github.com/gopherdb/pagecache/common"
	"github.com/gopherdb/pagecache/types"
)

// Page is the fixed-size byte buffer plus metadata a frame holds (spec §3).
// Content-level concurrency (read/write latching while bytes are in use) is
// the caller's responsibility per spec §1's non-goals; Page itself carries
// no latch.
type Page struct {
	id       types.PageID
	pinCount int
	isDirty  bool
	data     *[common.PageSize]byte
}

// New wraps existing data as a page with the given id and dirty bit, pinned
// once (the pin a fresh fetch/allocation always starts with).
func New(id types.PageID, isDirty bool, data *[common.PageSize]byte) *Page {
	return &Page{id: id, pinCount: 1, isDirty: isDirty, data: data}
}

// NewEmpty returns a freshly zeroed, pinned page with the given id.
func NewEmpty(id types.PageID) *Page {
	return &Page{id: id, pinCount: 1, data: &[common.PageSize]byte{}}
}

// ResetTo reassigns p in place to a new, zeroed identity. Used by the
// buffer pool manager when a frame is reused for a different page (spec
// §4.3: "Reset the frame's bytes to zero ... reset metadata").
func (p *Page) ResetTo(id types.PageID) {
	p.id = id
	p.pinCount = 0
	p.isDirty = false
	for i := range p.data {
		p.data[i] = 0
	}
}

// IncPinCount increments the pin count.
func (p *Page) IncPinCount() { p.pinCount++ }

// DecPinCount decrements the pin count, never going below zero.
func (p *Page) DecPinCount() {
	if p.pinCount > 0 {
		p.pinCount--
	}
}

// ID returns the page id.
func (p *Page) ID() types.PageID { return p.id }

// PinCount returns the pin count.
func (p *Page) PinCount() int { return p.pinCount }

// Data returns the page's byte buffer.
func (p *Page) Data() *[common.PageSize]byte { return p.data }

// IsDirty reports the dirty bit.
func (p *Page) IsDirty() bool { return p.isDirty }

// SetIsDirty sets the dirty bit.
func (p *Page) SetIsDirty(dirty bool) { p.isDirty = dirty }

// MarkDirty ORs dirty into the dirty bit — it never clears a bit already
// set (spec §9 "Dirty retention").
func (p *Page) MarkDirty(dirty bool) {
	p.isDirty = p.isDirty || dirty
}

// Copy copies data into p's buffer starting at offset.
func (p *Page) Copy(offset int, data []byte) {
	common.Assert(offset >= 0 && offset+len(data) <= common.PageSize, "page.Copy: write out of bounds")
	copy(p.data[offset:], data)
}
