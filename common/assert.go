// this code is adapted from github.com/ryogrid/SamehadaDB's common/assert.go
// and lib/common/assert.go (the goroutine dump helper).

package common

import (
	"runtime"

	"github.com/devlights/gomy/output"
)

// Assert panics with msg if condition is false. Used at internal-invariant
// boundaries (§3 invariants) that a caller violating its contract can hit,
// as opposed to soft failures which are returned as bool/optional.
func Assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// DumpGoroutines prints every goroutine's stack trace, prefixed with tag.
// Intended for interactive debugging of a stuck BufferPoolManager (e.g. a
// suspected lock-ordering bug the deadlock detector in rwlatch.go didn't
// catch because it only watches a single goroutine's lock order).
func DumpGoroutines(tag string) {
	buf := make([]byte, 1<<16)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			output.Stdoutl(tag, string(buf[:n]))
			return
		}
		buf = make([]byte, 2*len(buf))
	}
}
