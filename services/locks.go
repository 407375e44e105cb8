package services

import (
	"hash/fnv"
	"sync"
)

// keyMutex serializes work per (player, achievement) key by striping
// keys over a fixed set of mutexes. Two different keys may share a
// stripe; the same key always maps to the same stripe.
type keyMutex struct {
	stripes [64]sync.Mutex
}

func (k *keyMutex) lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	m := &k.stripes[h.Sum32()%uint32(len(k.stripes))]
	m.Lock()
	return m.Unlock
}
