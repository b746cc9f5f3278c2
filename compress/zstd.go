package compress

// ZstdCompressor compresses string table data sections as a single
// Zstandard frame. It gives the best ratio of the built-in codecs and is
// the default for tables written by the ustrconv tool.
//
// The pure Go build uses klauspost/compress. Building with cgo and the
// gozstd tag switches to the libzstd bindings; both read each other's
// frames.
type ZstdCompressor struct{}

var (
	_ Codec             = (*ZstdCompressor)(nil)
	_ SizedDecompressor = (*ZstdCompressor)(nil)
)

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
