package dataset

import (
	"fmt"

	"github.com/arloliu/fitview/endian"
	"github.com/arloliu/fitview/errs"
	"github.com/arloliu/fitview/format"
)

const (
	HeaderSize   = 16 // fixed header size in bytes
	ChecksumSize = 8  // trailing xxHash64 size in bytes

	MagicMask         = 0xFFF0 // Mask for magic number (bits 4-15)
	MagicSnapshotV1   = 0xF1A0 // version 1 snapshot magic number
	FlagBigEndian     = 0x0001 // 0=little, 1=big
	ReservedFlagsMask = 0x000E // bits 1-3 must be zero

	maxNames = 0xFFFF
)

// header is the fixed-size section at the start of a snapshot.
type header struct {
	Options        uint16 // byte offset 0-1, always little-endian
	Compression    format.CompressionType
	ColumnCount    uint16 // byte offset 4-5
	RowCount       uint16 // byte offset 6-7
	PayloadLength  uint32 // byte offset 8-11, stored (possibly compressed) length
	RawPayloadSize uint32 // byte offset 12-15, uncompressed length
}

func (h *header) engine() endian.EndianEngine {
	if h.Options&FlagBigEndian != 0 {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// bytes serializes the header.
func (h *header) bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.engine()

	endian.GetLittleEndianEngine().PutUint16(b[0:2], h.Options)
	b[2] = byte(h.Compression)
	engine.PutUint16(b[4:6], h.ColumnCount)
	engine.PutUint16(b[6:8], h.RowCount)
	engine.PutUint32(b[8:12], h.PayloadLength)
	engine.PutUint32(b[12:16], h.RawPayloadSize)

	return b
}

// parseHeader parses and validates the header at the start of data.
func parseHeader(data []byte) (header, error) {
	if len(data) < HeaderSize {
		return header{}, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidHeaderSize, HeaderSize, len(data))
	}

	h := header{
		Options:     endian.GetLittleEndianEngine().Uint16(data[0:2]),
		Compression: format.CompressionType(data[2]),
	}
	if h.Options&MagicMask != MagicSnapshotV1 {
		return header{}, fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagic, h.Options&MagicMask)
	}
	if h.Options&ReservedFlagsMask != 0 {
		return header{}, fmt.Errorf("%w: reserved flags set 0x%x", errs.ErrInvalidPayload, h.Options&ReservedFlagsMask)
	}
	if !h.Compression.Valid() {
		return header{}, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, data[2])
	}

	engine := h.engine()
	h.ColumnCount = engine.Uint16(data[4:6])
	h.RowCount = engine.Uint16(data[6:8])
	h.PayloadLength = engine.Uint32(data[8:12])
	h.RawPayloadSize = engine.Uint32(data[12:16])

	return h, nil
}

// SnapshotInfo describes a snapshot header without decoding the payload.
type SnapshotInfo struct {
	BigEndian      bool                   `json:"big_endian"`
	Compression    format.CompressionType `json:"-"`
	Columns        int                    `json:"columns"`
	Rows           int                    `json:"rows"`
	PayloadLength  int                    `json:"payload_length"`
	RawPayloadSize int                    `json:"raw_payload_size"`
}

// Inspect parses only the header of a snapshot.
func Inspect(data []byte) (SnapshotInfo, error) {
	h, err := parseHeader(data)
	if err != nil {
		return SnapshotInfo{}, err
	}

	return SnapshotInfo{
		BigEndian:      h.Options&FlagBigEndian != 0,
		Compression:    h.Compression,
		Columns:        int(h.ColumnCount),
		Rows:           int(h.RowCount),
		PayloadLength:  int(h.PayloadLength),
		RawPayloadSize: int(h.RawPayloadSize),
	}, nil
}
