// this code is adapted from github.com/ryogrid/SamehadaDB's types/page_id.go

package types

import (
	"bytes"
	"encoding/binary"

	"github.com/gopherdb/pagecache/common"
)

// PageID identifies a page. InvalidPageID denotes "none".
type PageID int32

// InvalidPageID represents an invalid/absent page id.
const InvalidPageID = PageID(common.InvalidPageID)

// IsValid reports whether id is a real page id.
func (id PageID) IsValid() bool {
	return id != InvalidPageID
}

// Serialize casts id to its little-endian byte representation, for on-disk
// and over-the-wire encoding.
func (id PageID) Serialize() []byte {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, id)
	return buf.Bytes()
}

// NewPageIDFromBytes is the inverse of Serialize.
func NewPageIDFromBytes(data []byte) (ret PageID) {
	_ = binary.Read(bytes.NewReader(data), binary.LittleEndian, &ret)
	return ret
}
