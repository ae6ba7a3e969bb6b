package session

import "sync"

// KeyedLock provides per-(device, contact) mutual exclusion.
//
// The store contract is read-validate-execute-write with no optimistic
// concurrency token, so two near-simultaneous inbound messages for the same
// pair would race and the last writer would silently win. Holding the pair's
// lock for the full turn serializes them instead.
//
// Locks are created on first use and retained; the key space is bounded by
// the number of distinct conversations, which is acceptable for a
// single-process deployment.
type KeyedLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedLock creates an empty keyed lock.
func NewKeyedLock() *KeyedLock {
	return &KeyedLock{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for the (device, contact) pair, creating it if
// needed. The returned function releases it.
//
// Example:
//
//	unlock := locks.Lock(deviceID, contactPhone)
//	defer unlock()
func (k *KeyedLock) Lock(deviceID, contactPhone string) (unlock func()) {
	key := deviceID + "\x00" + contactPhone

	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
