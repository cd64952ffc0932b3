package model

// ExpiresAt is the instant (unix nano) after which the entry must not be served.
func (e *Entry) ExpiresAt() int64 {
	return e.createdAt + e.ttl
}

// IsExpired - checks that now is strictly past createdAt + ttl.
func (e *Entry) IsExpired(now int64) bool {
	if e == nil {
		return false
	}
	return now > e.ExpiresAt()
}
