package model

import "time"

func (e *Entry) CreatedAt() int64    { return e.createdAt }
func (e *Entry) TTL() time.Duration  { return time.Duration(e.ttl) }
func (e *Entry) LastAccessed() int64 { return e.lastAccessed }
func (e *Entry) AccessCount() uint64 { return e.accessCount }

// Touch records a hit.
func (e *Entry) Touch(now int64) {
	e.lastAccessed = now
	e.accessCount++
}
