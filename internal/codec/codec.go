// Package codec turns cached values into byte payloads and back.
//
// The first byte of every encoded payload is a tag naming its encoding, so decoding
// dispatches on the tag instead of guessing. Primitive scalars use a JSON text form,
// everything else goes through msgpack and is restricted to explicitly registered types:
// a payload can only ever materialize a type the process opted into.
package codec

import (
	"github.com/Borislavv/go-ash-memo/config"
	"github.com/jmgilman/go/errors"
)

// Payload is an encoded value as stored in a cache entry.
type Payload struct {
	Data       []byte
	Compressed bool
}

func (p Payload) Size() int { return len(p.Data) }

type Codec struct {
	compressor Compressor // nil when compression is disabled
	threshold  int
}

func New(cfg *config.CompressionCfg) (*Codec, error) {
	if !cfg.Enabled() {
		return &Codec{}, nil
	}
	compressor, err := NewCompressor(cfg)
	if err != nil {
		return nil, err
	}
	return &Codec{compressor: compressor, threshold: cfg.Threshold}, nil
}

// Encode serializes v and compresses the result when it is longer than the threshold
// and compression actually makes it smaller.
func (c *Codec) Encode(v any) (Payload, error) {
	data, ok, err := encodeScalar(v)
	if err != nil || !ok {
		if data, err = encodeBlob(v); err != nil {
			return Payload{}, err
		}
	}
	return c.maybeCompress(data), nil
}

// Decode reverses Encode. It must only be given payloads produced by Encode.
func (c *Codec) Decode(p Payload) (any, error) {
	data := p.Data
	if p.Compressed {
		if c.compressor == nil {
			return nil, errors.New(errors.CodeInternal, "payload is compressed but compression is disabled")
		}
		var err error
		if data, err = c.compressor.Decompress(data); err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "decompress payload")
		}
	}
	if len(data) == 0 {
		return nil, errors.New(errors.CodeInternal, "empty payload")
	}

	if tag := data[0]; tag == tagBlob {
		return decodeBlob(data[1:])
	} else {
		return decodeScalar(tag, data[1:])
	}
}

func (c *Codec) maybeCompress(data []byte) Payload {
	if c.compressor == nil || len(data) <= c.threshold {
		return Payload{Data: data}
	}
	compressed, err := c.compressor.Compress(data)
	if err != nil || len(compressed) >= len(data) {
		return Payload{Data: data}
	}
	return Payload{Data: compressed, Compressed: true}
}
