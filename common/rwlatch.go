// this code is adapted from github.com/ryogrid/SamehadaDB's common/rwlatch.go

package common

import deadlock "github.com/sasha-s/go-deadlock"

// ReaderWriterLatch is the single exclusive-or-shared lock every component
// (EHT, LKR, BPM) holds exactly one of. Every public operation acquires it
// on entry and releases it on every exit path, including failure.
type ReaderWriterLatch interface {
	WLock()
	WUnlock()
	RLock()
	RUnlock()
}

type readerWriterLatch struct {
	mutex deadlock.RWMutex
}

// NewRWLatch returns a ReaderWriterLatch backed by a deadlock-detecting
// mutex: a lock cycle introduced while composing EHT -> LKR -> disk is
// reported with a stack trace instead of hanging the process forever.
func NewRWLatch() ReaderWriterLatch {
	return &readerWriterLatch{}
}

func (l *readerWriterLatch) WLock()   { l.mutex.Lock() }
func (l *readerWriterLatch) WUnlock() { l.mutex.Unlock() }
func (l *readerWriterLatch) RLock()   { l.mutex.RLock() }
func (l *readerWriterLatch) RUnlock() { l.mutex.RUnlock() }
