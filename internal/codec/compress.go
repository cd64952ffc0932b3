package codec

import (
	"bytes"
	"io"

	"github.com/Borislavv/go-ash-memo/config"
	"github.com/jmgilman/go/errors"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Compressor is a lossless compression pass. Implementations are safe for concurrent use.
type Compressor interface {
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
}

func NewCompressor(cfg *config.CompressionCfg) (Compressor, error) {
	switch cfg.Algo {
	case config.CompressionZstd, "":
		return newZstd(cfg.Level)
	case config.CompressionS2:
		return s2Compressor{}, nil
	case config.CompressionFlate:
		return newFlate(cfg.Level)
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig, "compression algo %q is not supported", cfg.Algo)
	}
}

type zstdCompressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newZstd(level int) (*zstdCompressor, error) {
	var opts []zstd.EOption
	if level != 0 {
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	}
	enc, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "init zstd encoder")
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "init zstd decoder")
	}
	return &zstdCompressor{enc: enc, dec: dec}, nil
}

func (z *zstdCompressor) Compress(src []byte) ([]byte, error) {
	return z.enc.EncodeAll(src, make([]byte, 0, len(src))), nil
}

func (z *zstdCompressor) Decompress(src []byte) ([]byte, error) {
	return z.dec.DecodeAll(src, nil)
}

type s2Compressor struct{}

func (s2Compressor) Compress(src []byte) ([]byte, error) { return s2.Encode(nil, src), nil }
func (s2Compressor) Decompress(src []byte) ([]byte, error) { return s2.Decode(nil, src) }

type flateCompressor struct {
	level int
}

func newFlate(level int) (*flateCompressor, error) {
	if level == 0 {
		level = flate.DefaultCompression
	}
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, errors.Newf(errors.CodeInvalidConfig, "flate level %d is out of range", level)
	}
	return &flateCompressor{level: level}, nil
}

func (f *flateCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, f.level)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(src); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *flateCompressor) Decompress(src []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(src))
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}
