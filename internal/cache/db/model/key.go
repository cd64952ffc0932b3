package model

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// Key is a normalized cache key: either the caller's text or a 128-bit digest
// of a structured key's representation.
type Key struct {
	v          string
	structured bool
}

// NewKey normalizes an arbitrary key. Strings are kept verbatim; every other value
// is rendered with its type and %#v and hashed, so equal content always yields the same key.
func NewKey(key any) Key {
	if s, ok := key.(string); ok {
		return Key{v: s}
	}
	return Key{v: HashHex(fmt.Sprintf("%T|%#v", key, key)), structured: true}
}

// HashHex returns the xxh3 128-bit digest of s as 32 hex chars.
func HashHex(s string) string {
	u128 := xxh3.HashString128(s)
	return fmt.Sprintf("%016x%016x", u128.Hi, u128.Lo)
}

func (k Key) String() string     { return k.v }
func (k Key) IsStructured() bool { return k.structured }

func (k Key) IsTheSame(another Key) bool {
	return k.v == another.v && k.structured == another.structured
}
