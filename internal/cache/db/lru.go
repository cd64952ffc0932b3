package db

import "github.com/Borislavv/go-ash-memo/internal/cache/db/model"

// Touch moves an entry to the front of the recency list.
func (s *Store) Touch(key string) {
	if el, ok := s.items[key]; ok {
		s.lru.MoveToFront(el)
	}
}

// PeekLRU returns the least recently accessed entry without removing it.
func (s *Store) PeekLRU() (*model.Entry, bool) {
	el := s.lru.Back()
	if el == nil {
		return nil, false
	}
	return el.Value.(*model.Entry), true
}

// PopLRU removes the least recently accessed entry. It is a no-op on an empty store.
func (s *Store) PopLRU() (*model.Entry, bool) {
	el := s.lru.Back()
	if el == nil {
		return nil, false
	}
	return s.removeElement(el), true
}
