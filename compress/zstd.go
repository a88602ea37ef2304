package compress

// ZstdCompressor provides Zstandard compression. The backing implementation is
// chosen at build time: pure Go by default, gozstd with `-tags gozstd` and cgo.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
