package ashmemo

import (
	"reflect"

	"github.com/Borislavv/go-ash-memo/internal/codec"
)

// Register allows values of type T to be cached.
//
// Strings, booleans and numbers are always accepted, as are the common containers
// (map[string]any, []any, []string, time.Time...). Any other type, application structs
// included, must be registered before it is stored, otherwise Put returns false.
//
// Register returns an error for types which cannot be restored exactly: structs with
// unexported fields (at any depth, unless the type implements msgpack's Marshaler or
// CustomEncoder pair), channels and functions.
//
// Numbers nested in map[string]any or []any come back as int64, uint64 or float64,
// whatever their type was when stored. Use a typed map or a struct to keep them.
func Register[T any]() error {
	return codec.Register(reflect.TypeFor[T]())
}
