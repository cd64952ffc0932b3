package db

import "github.com/Borislavv/go-ash-memo/internal/cache/db/model"

// Sweep removes every entry expired at now and returns (removedItems, freedBytes).
func (s *Store) Sweep(now int64) (removed, freedBytes int64) {
	for el := s.lru.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*model.Entry).IsExpired(now) {
			freedBytes += s.removeElement(el).SizeBytes()
			removed++
		}
		el = next
	}
	return
}
