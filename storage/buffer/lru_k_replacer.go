// this code is adapted from original_source/src/buffer/lru_k_replacer.cpp,
// the CMU "BusTub" LRU-K replacer this repository's teacher
// (github.com/ryogrid/SamehadaDB) replaced with a simpler clock replacer
// (storage/buffer/clock_replacer.go) when it was ported to Go. This
// generalizes back to the original LRU-K policy per spec §4.2.

package buffer

import (
	"github.com/gopherdb/pagecache/common"
	"github.com/gopherdb/pagecache/types"
)

// frameInfo tracks one frame's bounded access history and evictability.
type frameInfo struct {
	k           int
	evictable   bool
	timestamps  []int64 // ascending, oldest first, length <= k
}

func newFrameInfo(k int) *frameInfo {
	return &frameInfo{k: k}
}

func (f *frameInfo) recordAccess(now int64) {
	f.timestamps = append(f.timestamps, now)
	if len(f.timestamps) > f.k {
		f.timestamps = f.timestamps[1:]
	}
}

// kDistance and earliestTimestamp together form the comparison key spec
// §4.2 describes: (k_distance, earliest_recorded_timestamp). kDistance is
// math.MaxInt64 (standing in for +inf) when fewer than k accesses have been
// recorded.
func (f *frameInfo) kDistance() int64 {
	if len(f.timestamps) < f.k {
		return int64(^uint64(0) >> 1) // math.MaxInt64, avoids importing math for one constant
	}
	return f.timestamps[len(f.timestamps)-1] - f.timestamps[0]
}

func (f *frameInfo) earliestTimestamp() int64 {
	return f.timestamps[0]
}

// LRUKReplacer implements the LRU-K replacement policy (spec §4.2): it
// evicts the evictable frame whose backward k-distance is largest, tying
// on the smallest earliest recorded timestamp (classical LRU within the
// +inf group).
type LRUKReplacer struct {
	latch           common.ReaderWriterLatch
	k               int
	replacerSize    int
	currentTimestamp int64
	currSize        int
	frames          map[types.FrameID]*frameInfo
}

// NewLRUKReplacer returns a replacer tracking up to replacerSize frames,
// each keeping its k most recent accesses.
func NewLRUKReplacer(replacerSize, k int) *LRUKReplacer {
	if k < 1 {
		k = common.DefaultReplacerK
	}
	return &LRUKReplacer{
		latch:        common.NewRWLatch(),
		k:            k,
		replacerSize: replacerSize,
		frames:       make(map[types.FrameID]*frameInfo),
	}
}

// checkFrameID validates 0 <= frameID <= replacerSize. The inclusive upper
// bound is a known idiosyncrasy carried over from the original
// implementation's off-by-one (§9); callers should treat the valid range as
// [0, replacerSize).
func (r *LRUKReplacer) checkFrameID(frameID types.FrameID) error {
	if frameID < 0 || int(frameID) > r.replacerSize {
		return common.ErrInvalidFrame
	}
	return nil
}

// RecordAccess records that frameID was accessed at the current logical
// timestamp, then advances the clock. Creates a history entry if frameID
// has never been seen.
func (r *LRUKReplacer) RecordAccess(frameID types.FrameID) error {
	if err := r.checkFrameID(frameID); err != nil {
		return err
	}

	r.latch.WLock()
	defer r.latch.WUnlock()

	fi, ok := r.frames[frameID]
	if !ok {
		fi = newFrameInfo(r.k)
		r.frames[frameID] = fi
	}
	fi.recordAccess(r.currentTimestamp)
	r.currentTimestamp++
	return nil
}

// SetEvictable toggles whether frameID is a candidate for Evict. The frame
// must already have been recorded via RecordAccess.
func (r *LRUKReplacer) SetEvictable(frameID types.FrameID, evictable bool) error {
	if err := r.checkFrameID(frameID); err != nil {
		return err
	}

	r.latch.WLock()
	defer r.latch.WUnlock()

	fi, ok := r.frames[frameID]
	if !ok {
		return common.ErrNotTracked
	}

	if evictable && !fi.evictable {
		r.currSize++
	} else if !evictable && fi.evictable {
		r.currSize--
	}
	fi.evictable = evictable
	return nil
}

// Remove erases frameID's access history without evicting it via the
// replacement policy. It is a no-op if frameID isn't tracked, and fails if
// frameID is tracked but currently non-evictable (a caller contract
// violation).
func (r *LRUKReplacer) Remove(frameID types.FrameID) error {
	if err := r.checkFrameID(frameID); err != nil {
		return err
	}

	r.latch.WLock()
	defer r.latch.WUnlock()

	fi, ok := r.frames[frameID]
	if !ok {
		return nil
	}
	if !fi.evictable {
		return common.ErrNotEvictable
	}

	delete(r.frames, frameID)
	r.currSize--
	return nil
}

// Evict selects and removes the evictable frame with the largest backward
// k-distance, tying on the smallest earliest recorded timestamp. Returns
// (frameID, true) on success, (0, false) if no frame is evictable.
func (r *LRUKReplacer) Evict() (types.FrameID, bool) {
	r.latch.WLock()
	defer r.latch.WUnlock()

	var (
		victim    types.FrameID
		victimInfo *frameInfo
		found     bool
	)

	for frameID, fi := range r.frames {
		if !fi.evictable {
			continue
		}
		if !found {
			victim, victimInfo, found = frameID, fi, true
			continue
		}
		if fi.kDistance() > victimInfo.kDistance() ||
			(fi.kDistance() == victimInfo.kDistance() && fi.earliestTimestamp() < victimInfo.earliestTimestamp()) {
			victim, victimInfo = frameID, fi
		}
	}

	if !found {
		return 0, false
	}

	delete(r.frames, victim)
	r.currSize--
	return victim, true
}

// Size returns the number of currently evictable frames.
func (r *LRUKReplacer) Size() int {
	r.latch.WLock()
	defer r.latch.WUnlock()
	return r.currSize
}
