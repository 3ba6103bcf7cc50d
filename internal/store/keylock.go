package store

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// keyedLocks serializes read-modify-write sequences per story id so that
// concurrent like toggles or comment appends on the same story cannot
// interleave into a lost update within this process. Cross-process writers
// still race; last write wins.
type keyedLocks struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: xsync.NewMapOf[string, *sync.Mutex]()}
}

func (k *keyedLocks) lock(id string) *sync.Mutex {
	mu, _ := k.locks.LoadOrStore(id, &sync.Mutex{})
	mu.Lock()
	return mu
}
