package codec

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"sync"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/vmihailenco/msgpack/v5"
)

var registry = struct {
	sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}{
	byName: make(map[string]reflect.Type),
	byType: make(map[reflect.Type]string),
}

func init() {
	for _, sample := range []any{
		map[string]any{},
		[]any{},
		map[string]string{},
		map[string]int{},
		map[string]float64{},
		[]string{},
		[]int{},
		[]int64{},
		[]float64{},
		[]byte{},
		float32(0),
		float64(0),
		time.Time{},
		time.Duration(0),
	} {
		if err := Register(reflect.TypeOf(sample)); err != nil {
			panic(err)
		}
	}
}

var (
	timeType = reflect.TypeFor[time.Time]()

	customEncoderType = reflect.TypeFor[msgpack.CustomEncoder]()
	customDecoderType = reflect.TypeFor[msgpack.CustomDecoder]()
	marshalerType     = reflect.TypeFor[msgpack.Marshaler]()
	unmarshalerType   = reflect.TypeFor[msgpack.Unmarshaler]()
)

// Register allows values of type t to be stored through the blob path.
// Registering the same type twice is a no-op.
//
// Types msgpack cannot restore exactly are refused: structs with unexported fields
// (unless the type encodes itself), channels and functions.
func Register(t reflect.Type) error {
	if t == nil {
		return errors.New(errors.CodeInvalidInput, "cannot register a nil type")
	}
	if err := checkEncodable(t, t, make(map[reflect.Type]struct{})); err != nil {
		return err
	}
	name := typeName(t)

	registry.Lock()
	defer registry.Unlock()
	registry.byName[name] = t
	registry.byType[t] = name
	return nil
}

// IsRegistered reports whether values of type t can be encoded.
func IsRegistered(t reflect.Type) bool {
	registry.RLock()
	defer registry.RUnlock()
	_, ok := registry.byType[t]
	return ok
}

// checkEncodable walks t and rejects anything that would not survive a msgpack round trip.
func checkEncodable(root, t reflect.Type, seen map[reflect.Type]struct{}) error {
	if _, ok := seen[t]; ok {
		return nil
	}
	seen[t] = struct{}{}

	if t == timeType || encodesItself(t) {
		return nil
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return checkEncodable(root, t.Elem(), seen)
	case reflect.Map:
		if err := checkEncodable(root, t.Key(), seen); err != nil {
			return err
		}
		return checkEncodable(root, t.Elem(), seen)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() && !embedsStruct(f) {
				return errors.Newf(errors.CodeInvalidInput,
					"type %s cannot be cached: field %s.%s is unexported", root, t, f.Name)
			}
			if err := checkEncodable(root, f.Type, seen); err != nil {
				return err
			}
		}
		return nil
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return errors.Newf(errors.CodeInvalidInput, "type %s cannot be cached: %s is not serializable", root, t)
	default:
		return nil
	}
}

// embedsStruct reports an embedded struct value, whose exported fields msgpack inlines.
func embedsStruct(f reflect.StructField) bool {
	return f.Anonymous && f.Type.Kind() == reflect.Struct
}

func encodesItself(t reflect.Type) bool {
	p := t
	if t.Kind() != reflect.Pointer {
		p = reflect.PointerTo(t)
	}
	return (p.Implements(customEncoderType) && p.Implements(customDecoderType)) ||
		(p.Implements(marshalerType) && p.Implements(unmarshalerType))
}

func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func lookupName(t reflect.Type) (string, bool) {
	registry.RLock()
	defer registry.RUnlock()
	name, ok := registry.byType[t]
	return name, ok
}

func lookupType(name string) (reflect.Type, bool) {
	registry.RLock()
	defer registry.RUnlock()
	t, ok := registry.byName[name]
	return t, ok
}

// encodeBlob layout: tagBlob | uvarint(len(name)) | name | msgpack(value).
func encodeBlob(v any) ([]byte, error) {
	t := reflect.TypeOf(v)
	name, ok := lookupName(t)
	if !ok {
		return nil, errors.Newf(errors.CodeInvalidInput, "type %s is not registered for caching", t)
	}

	body, err := msgpack.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidInput, "encode %s", name)
	}

	data := make([]byte, 0, 1+binary.MaxVarintLen64+len(name)+len(body))
	data = append(data, tagBlob)
	data = binary.AppendUvarint(data, uint64(len(name)))
	data = append(data, name...)
	return append(data, body...), nil
}

func decodeBlob(data []byte) (any, error) {
	nameLen, n := binary.Uvarint(data)
	if n <= 0 || uint64(len(data)-n) < nameLen {
		return nil, errors.New(errors.CodeInternal, "malformed blob header")
	}
	name := string(data[n : n+int(nameLen)])
	body := data[n+int(nameLen):]

	t, ok := lookupType(name)
	if !ok {
		return nil, errors.Newf(errors.CodeInvalidInput, "type %s is not registered for caching", name)
	}

	ptr := reflect.New(t)
	dec := msgpack.NewDecoder(bytes.NewReader(body))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(ptr.Interface()); err != nil {
		return nil, errors.Wrapf(err, errors.CodeInternal, "decode %s", name)
	}
	return ptr.Elem().Interface(), nil
}
