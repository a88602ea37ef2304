// Package compress provides the payload codecs used by fitview snapshots.
//
// A snapshot stores its row IDs and value columns as one encoded payload. The
// payload is then passed through one of these codecs:
//   - None: stored as-is
//   - Zstd: best ratio, moderate speed (klauspost/compress/zstd, or
//     valyala/gozstd when built with the gozstd tag and cgo)
//   - S2: fast with a good ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4/v4)
//
// Typical use:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// All codecs are stateless values and safe for concurrent use. Encoders and
// decoders that benefit from reuse are pooled internally.
package compress
