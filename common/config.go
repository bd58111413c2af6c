// this code is adapted from github.com/ryogrid/SamehadaDB's common/config.go

package common

const (
	// InvalidPageID is the distinguished page id meaning "none".
	InvalidPageID = -1
	// InvalidFrameID is the distinguished frame id meaning "none".
	InvalidFrameID = -1
	// PageSize is the size of a data page in bytes.
	PageSize = 4096
	// DefaultBucketSize is the default per-bucket capacity of an
	// extendible hash table when the caller doesn't specify one.
	DefaultBucketSize = 50
	// DefaultReplacerK is the default k used by an LRU-K replacer
	// when the caller doesn't specify one.
	DefaultReplacerK = 2
)

var (
	// EnableDebug gates the detailed trace-level ShPrintf calls.
	EnableDebug = false
)
