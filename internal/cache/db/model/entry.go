package model

import "time"

// Entry is one stored value. It is not synchronized: the owning cache guards it with its lock.
type Entry struct {
	key          Key
	payload      []byte // encoded (and maybe compressed) value, never mutated after construction
	compressed   bool   // whether payload is compressed
	createdAt    int64  // unix nano
	ttl          int64  // nano
	lastAccessed int64  // unix nano, renewed on hits only (used in LRU algo.)
	accessCount  uint64 // hits against this entry
}

func NewEntry(key Key, payload []byte, compressed bool, ttl time.Duration, now int64) *Entry {
	if ttl < 0 {
		ttl = 0
	}
	return &Entry{
		key:          key,
		payload:      payload,
		compressed:   compressed,
		createdAt:    now,
		ttl:          ttl.Nanoseconds(),
		lastAccessed: now,
	}
}

func (e *Entry) Key() Key {
	return e.key
}

func (e *Entry) Payload() []byte    { return e.payload }
func (e *Entry) IsCompressed() bool { return e.compressed }
func (e *Entry) SizeBytes() int64   { return int64(len(e.payload)) }
