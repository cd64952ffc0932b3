// Package db implements the entry store of the cache: a map from normalized key to entry
// plus a recency list used for LRU eviction. The store has no lock of its own, every method
// must be called while the owning cache holds its mutex.
package db

import (
	"container/list"

	"github.com/Borislavv/go-ash-memo/internal/cache/db/model"
)

// Store keeps entries and precise aggregates (number of entries and payload bytes).
type Store struct {
	items map[string]*list.Element // value is *model.Entry
	lru   *list.List               // front is the most recently accessed entry
	mem   int64                    // sum of live entries' payload bytes
}

func NewStore(capacity int) *Store {
	return &Store{
		items: make(map[string]*list.Element, capacity),
		lru:   list.New(),
	}
}

func (s *Store) Len() int64 { return int64(len(s.items)) }
func (s *Store) Mem() int64 { return s.mem }

// Get reads an entry without touching the recency list.
func (s *Store) Get(key string) (*model.Entry, bool) {
	if el, ok := s.items[key]; ok {
		return el.Value.(*model.Entry), true
	}
	return nil, false
}

// Has reports whether the key is stored, whatever the entry state is.
func (s *Store) Has(key string) bool {
	_, ok := s.items[key]
	return ok
}

// Set inserts or replaces an entry and marks it as the most recent one.
// The replaced entry (if any) is returned so callers can account for it.
func (s *Store) Set(entry *model.Entry) (replaced *model.Entry) {
	key := entry.Key().String()
	if el, ok := s.items[key]; ok {
		replaced = el.Value.(*model.Entry)
		el.Value = entry
		s.lru.MoveToFront(el)
		s.mem += entry.SizeBytes() - replaced.SizeBytes()
		return replaced
	}
	s.items[key] = s.lru.PushFront(entry)
	s.mem += entry.SizeBytes()
	return nil
}

// Remove deletes a key and returns the removed entry.
func (s *Store) Remove(key string) (*model.Entry, bool) {
	el, ok := s.items[key]
	if !ok {
		return nil, false
	}
	return s.removeElement(el), true
}

// Clear removes all entries and returns (freedBytes, itemsRemoved).
func (s *Store) Clear() (freedBytes int64, items int64) {
	freedBytes, items = s.mem, s.Len()
	clear(s.items)
	s.lru.Init()
	s.mem = 0
	return
}

// Walk iterates entries from the most to the least recently accessed one until fn returns false.
func (s *Store) Walk(fn func(entry *model.Entry) bool) {
	for el := s.lru.Front(); el != nil; el = el.Next() {
		if !fn(el.Value.(*model.Entry)) {
			return
		}
	}
}

func (s *Store) removeElement(el *list.Element) *model.Entry {
	entry := s.lru.Remove(el).(*model.Entry)
	delete(s.items, entry.Key().String())
	s.mem -= entry.SizeBytes()
	return entry
}
