// Package compress provides the codecs applied to string table data
// sections.
//
// Supported algorithms:
//   - None: the data section is stored as-is
//   - Zstd: best ratio, the default for archives
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// String data compresses well: ASCII runs and the zero high bytes of
// UTF-16 Latin text are highly repetitive. Codecs are selected by the
// format.CompressionType stored in the table header:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(data)
//
// Zstd uses github.com/klauspost/compress/zstd by default. Building with
// the gozstd tag and cgo enabled switches to the cgo binding
// github.com/valyala/gozstd; both produce standard zstd frames.
//
// All codecs are safe for concurrent use.
package compress
