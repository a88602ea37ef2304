package dataset

import (
	"fmt"
	"math"

	"github.com/arloliu/fitview/compress"
	"github.com/arloliu/fitview/endian"
	"github.com/arloliu/fitview/errs"
	"github.com/arloliu/fitview/format"
	"github.com/arloliu/fitview/internal/hash"
	"github.com/arloliu/fitview/internal/options"
	"github.com/arloliu/fitview/internal/pool"
)

// SnapshotConfig controls how Encode lays out a snapshot.
type SnapshotConfig struct {
	Compression format.CompressionType
	BigEndian   bool
}

// SnapshotOption is a functional option for SnapshotConfig.
type SnapshotOption = options.Option[*SnapshotConfig]

// WithCompression sets the payload compression.
func WithCompression(ct format.CompressionType) SnapshotOption {
	return options.New(func(cfg *SnapshotConfig) error {
		if !ct.Valid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, ct)
		}
		cfg.Compression = ct

		return nil
	})
}

// WithBigEndian stores multi-byte fields in big-endian order.
func WithBigEndian() SnapshotOption {
	return options.NoError(func(cfg *SnapshotConfig) {
		cfg.BigEndian = true
	})
}

// WithLittleEndian stores multi-byte fields in little-endian order (default).
func WithLittleEndian() SnapshotOption {
	return options.NoError(func(cfg *SnapshotConfig) {
		cfg.BigEndian = false
	})
}

// Encode serializes a dataset into a snapshot.
//
// Parameters:
//   - ds: Dataset to encode (validated before encoding)
//   - opts: Optional configuration (compression, byte order)
//
// Returns:
//   - []byte: Snapshot bytes owned by the caller
//   - error: Validation, size limit or compression error
//
// Example:
//
//	data, err := dataset.Encode(dataset.Sentiment(),
//	    dataset.WithCompression(format.CompressionZstd),
//	)
func Encode(ds *Dataset, opts ...SnapshotOption) ([]byte, error) {
	cfg := SnapshotConfig{Compression: format.CompressionNone}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if len(ds.Columns) > maxNames {
		return nil, fmt.Errorf("%w: %d columns", errs.ErrTooManyColumns, len(ds.Columns))
	}
	if len(ds.Rows) > maxNames {
		return nil, fmt.Errorf("%w: %d rows", errs.ErrTooManyRows, len(ds.Rows))
	}

	h := header{
		Options:     MagicSnapshotV1,
		Compression: cfg.Compression,
		ColumnCount: uint16(len(ds.Columns)), //nolint: gosec
		RowCount:    uint16(len(ds.Rows)),    //nolint: gosec
	}
	if cfg.BigEndian {
		h.Options |= FlagBigEndian
	}
	engine := h.engine()

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	if err := encodePayload(buf, ds, engine); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress snapshot payload: %w", err)
	}

	h.RawPayloadSize = uint32(buf.Len())    //nolint: gosec
	h.PayloadLength = uint32(len(payload)) //nolint: gosec

	out := make([]byte, 0, HeaderSize+len(payload)+ChecksumSize)
	out = append(out, h.bytes()...)
	out = append(out, payload...)
	out = engine.AppendUint64(out, hash.Checksum(out))

	return out, nil
}

// Decode parses a snapshot produced by Encode.
//
// Returns:
//   - *Dataset: The decoded, validated dataset
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic, ErrInvalidCompression,
//     ErrChecksumMismatch or ErrInvalidPayload
func Decode(data []byte) (*Dataset, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	end := HeaderSize + int(h.PayloadLength)
	if len(data) != end+ChecksumSize {
		return nil, fmt.Errorf("%w: snapshot is %d bytes, header declares %d",
			errs.ErrInvalidPayload, len(data), end+ChecksumSize)
	}

	engine := h.engine()
	if want, got := engine.Uint64(data[end:]), hash.Checksum(data[:end]); want != got {
		return nil, fmt.Errorf("%w: expected 0x%016x, got 0x%016x", errs.ErrChecksumMismatch, want, got)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decompress(data[HeaderSize:end])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}
	if len(raw) != int(h.RawPayloadSize) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header declares %d",
			errs.ErrInvalidPayload, len(raw), h.RawPayloadSize)
	}

	return decodePayload(raw, h, engine)
}

func encodePayload(buf *pool.ByteBuffer, ds *Dataset, engine endian.EndianEngine) error {
	var err error
	if buf.B, err = appendString(buf.B, ds.Name, engine); err != nil {
		return err
	}
	if buf.B, err = appendNames(buf.B, ds.Columns, engine); err != nil {
		return err
	}

	ids := make([]string, len(ds.Rows))
	for i, r := range ds.Rows {
		ids[i] = r.ID
	}
	if buf.B, err = appendNames(buf.B, ids, engine); err != nil {
		return err
	}

	// Columnar: all values of a column are contiguous.
	for _, col := range ds.Columns {
		for _, r := range ds.Rows {
			buf.B = engine.AppendUint64(buf.B, math.Float64bits(r.Values[col]))
		}
	}

	return nil
}

func decodePayload(raw []byte, h header, engine endian.EndianEngine) (*Dataset, error) {
	name, offset, err := readString(raw, 0, engine)
	if err != nil {
		return nil, err
	}

	columns, offset, err := readNames(raw, offset, engine)
	if err != nil {
		return nil, err
	}
	if len(columns) != int(h.ColumnCount) {
		return nil, fmt.Errorf("%w: %d column names, header declares %d",
			errs.ErrInvalidPayload, len(columns), h.ColumnCount)
	}

	ids, offset, err := readNames(raw, offset, engine)
	if err != nil {
		return nil, err
	}
	if len(ids) != int(h.RowCount) {
		return nil, fmt.Errorf("%w: %d row ids, header declares %d",
			errs.ErrInvalidPayload, len(ids), h.RowCount)
	}

	if want := offset + 8*len(columns)*len(ids); len(raw) != want {
		return nil, fmt.Errorf("%w: value section is %d bytes, expected %d",
			errs.ErrInvalidPayload, len(raw)-offset, want-offset)
	}

	rows := make([]Row, len(ids))
	for i, id := range ids {
		rows[i] = Row{ID: id, Values: make(map[string]float64, len(columns))}
	}
	for _, col := range columns {
		for i := range rows {
			rows[i].Values[col] = math.Float64frombits(engine.Uint64(raw[offset:]))
			offset += 8
		}
	}

	return New(name, columns, rows)
}

// appendString writes a uint16 length prefix followed by the bytes of s.
func appendString(dst []byte, s string, engine endian.EndianEngine) ([]byte, error) {
	if len(s) > maxNames {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrNameTooLong, len(s))
	}
	dst = engine.AppendUint16(dst, uint16(len(s))) //nolint: gosec

	return append(dst, s...), nil
}

// appendNames writes [Count: uint16] followed by length-prefixed strings.
func appendNames(dst []byte, names []string, engine endian.EndianEngine) ([]byte, error) {
	dst = engine.AppendUint16(dst, uint16(len(names))) //nolint: gosec

	var err error
	for _, n := range names {
		if dst, err = appendString(dst, n, engine); err != nil {
			return nil, err
		}
	}

	return dst, nil
}

func readString(data []byte, offset int, engine endian.EndianEngine) (string, int, error) {
	if len(data) < offset+2 {
		return "", 0, fmt.Errorf("%w: cannot read string length at offset %d", errs.ErrInvalidPayload, offset)
	}
	n := int(engine.Uint16(data[offset:]))
	offset += 2

	if len(data) < offset+n {
		return "", 0, fmt.Errorf("%w: string of %d bytes at offset %d overruns payload", errs.ErrInvalidPayload, n, offset)
	}

	return string(data[offset : offset+n]), offset + n, nil
}

func readNames(data []byte, offset int, engine endian.EndianEngine) ([]string, int, error) {
	if len(data) < offset+2 {
		return nil, 0, fmt.Errorf("%w: cannot read name count at offset %d", errs.ErrInvalidPayload, offset)
	}
	count := int(engine.Uint16(data[offset:]))
	offset += 2

	names := make([]string, count)
	for i := range names {
		var err error
		if names[i], offset, err = readString(data, offset, engine); err != nil {
			return nil, 0, err
		}
	}

	return names, offset, nil
}
