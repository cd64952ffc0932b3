package codec

import (
	"encoding/json"

	"github.com/jmgilman/go/errors"
)

// Encoding tags, stored in the first byte of an uncompressed payload.
const (
	tagNil byte = iota + 1
	tagString
	tagBool
	tagInt
	tagInt8
	tagInt16
	tagInt32
	tagInt64
	tagUint
	tagUint8
	tagUint16
	tagUint32
	tagUint64
	tagFloat32
	tagFloat64

	tagBlob byte = 0x80
)

// encodeScalar handles the exact primitive types only. ok is false for every other type;
// err is set when a primitive has no text form (NaN, ±Inf).
func encodeScalar(v any) (data []byte, ok bool, err error) {
	var tag byte
	switch v.(type) {
	case nil:
		return []byte{tagNil}, true, nil
	case string:
		tag = tagString
	case bool:
		tag = tagBool
	case int:
		tag = tagInt
	case int8:
		tag = tagInt8
	case int16:
		tag = tagInt16
	case int32:
		tag = tagInt32
	case int64:
		tag = tagInt64
	case uint:
		tag = tagUint
	case uint8:
		tag = tagUint8
	case uint16:
		tag = tagUint16
	case uint32:
		tag = tagUint32
	case uint64:
		tag = tagUint64
	case float32:
		tag = tagFloat32
	case float64:
		tag = tagFloat64
	default:
		return nil, false, nil
	}

	body, err := json.Marshal(v)
	if err != nil {
		return nil, true, err
	}
	data = make([]byte, 0, len(body)+1)
	data = append(data, tag)
	return append(data, body...), true, nil
}

func decodeScalar(tag byte, body []byte) (any, error) {
	switch tag {
	case tagNil:
		return nil, nil
	case tagString:
		return unmarshalAs[string](body)
	case tagBool:
		return unmarshalAs[bool](body)
	case tagInt:
		return unmarshalAs[int](body)
	case tagInt8:
		return unmarshalAs[int8](body)
	case tagInt16:
		return unmarshalAs[int16](body)
	case tagInt32:
		return unmarshalAs[int32](body)
	case tagInt64:
		return unmarshalAs[int64](body)
	case tagUint:
		return unmarshalAs[uint](body)
	case tagUint8:
		return unmarshalAs[uint8](body)
	case tagUint16:
		return unmarshalAs[uint16](body)
	case tagUint32:
		return unmarshalAs[uint32](body)
	case tagUint64:
		return unmarshalAs[uint64](body)
	case tagFloat32:
		return unmarshalAs[float32](body)
	case tagFloat64:
		return unmarshalAs[float64](body)
	default:
		return nil, errors.Newf(errors.CodeInternal, "unknown payload tag 0x%02x", tag)
	}
}

func unmarshalAs[T any](body []byte) (any, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "decode scalar payload")
	}
	return v, nil
}
