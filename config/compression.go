package config

// CompressionAlgo names the compressor applied to encoded values.
type CompressionAlgo string

const (
	CompressionZstd  CompressionAlgo = "zstd"
	CompressionS2    CompressionAlgo = "s2"
	CompressionFlate CompressionAlgo = "flate"
)

// CompressionCfg
//   - Threshold: values whose encoded form is longer than Threshold bytes are compressed,
//     the compressed form is kept only when it is strictly smaller.
//   - Supported flate levels:
//     CompressBestSpeed          = 1
//     CompressBestCompression    = 9
//     CompressDefaultCompression = -1 // also used for 0
//     CompressHuffmanOnly        = -2
//   - Zstd levels follow the zstd CLI scale (1..22), 0 means the library default.
//   - S2 ignores Level.
type CompressionCfg struct {
	Threshold int             `yaml:"threshold"`
	Algo      CompressionAlgo `yaml:"algo"`
	Level     int             `yaml:"level"`
}

func (cfg *CompressionCfg) Enabled() bool {
	return cfg != nil
}
