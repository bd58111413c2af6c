// this code is adapted from jeremytregunna-riddling-kgstore's
// pkg/model/page_allocator.go (sentinel error vars) and wrapped the way
// HayatoShiba-ppdb/storage/buffer/manager.go wraps errors, with
// github.com/pkg/errors.

package common

import "github.com/pkg/errors"

var (
	// ErrCapacityExhausted is returned by an extendible hash table's Insert
	// when splitting cannot separate items (duplicate hash prefixes exceed
	// bucket capacity no matter how deep the table grows).
	ErrCapacityExhausted = errors.New("extendible hash table: capacity exhausted")

	// ErrInvalidFrame is returned by an LRU-K replacer when a frame id falls
	// outside the valid range.
	ErrInvalidFrame = errors.New("lru-k replacer: invalid frame id")

	// ErrNotTracked is returned by SetEvictable when the frame id has never
	// been recorded via RecordAccess.
	ErrNotTracked = errors.New("lru-k replacer: frame not tracked")

	// ErrNotEvictable is returned by Remove when the frame id is tracked but
	// currently marked non-evictable.
	ErrNotEvictable = errors.New("lru-k replacer: frame not evictable")
)

// Wrap annotates err with a call-site message while preserving errors.Is
// against the sentinel errors above.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}
