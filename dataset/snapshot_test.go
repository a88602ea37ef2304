package dataset

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitview/errs"
	"github.com/arloliu/fitview/format"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestSnapshot_RoundTrip(t *testing.T) {
	for _, ct := range allCompressions {
		for _, bigEndian := range []bool{false, true} {
			name := ct.String() + "/little"
			opts := []SnapshotOption{WithCompression(ct)}
			if bigEndian {
				name = ct.String() + "/big"
				opts = append(opts, WithBigEndian())
			}

			t.Run(name, func(t *testing.T) {
				data, err := Encode(Sentiment(), opts...)
				require.NoError(t, err)

				h, err := parseHeader(data)
				require.NoError(t, err)
				assert.Equal(t, ct, h.Compression)
				assert.Equal(t, uint16(3), h.ColumnCount)
				assert.Equal(t, uint16(5), h.RowCount)
				assert.Equal(t, bigEndian, h.Options&FlagBigEndian != 0)

				ds, err := Decode(data)
				require.NoError(t, err)
				assert.Equal(t, Sentiment(), ds)
			})
		}
	}
}

func TestSnapshot_EmptyDataset(t *testing.T) {
	empty, err := New("", nil, nil)
	require.NoError(t, err)

	data, err := Encode(empty)
	require.NoError(t, err)
	assert.Len(t, data, HeaderSize+6+ChecksumSize)

	ds, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Columns)
}

func TestSnapshot_LittleEndianOverridesBig(t *testing.T) {
	data, err := Encode(Sentiment(), WithBigEndian(), WithLittleEndian())
	require.NoError(t, err)

	h, err := parseHeader(data)
	require.NoError(t, err)
	assert.Zero(t, h.Options&FlagBigEndian)
}

func TestSnapshot_InvalidOptions(t *testing.T) {
	_, err := Encode(Sentiment(), WithCompression(format.CompressionType(0x7)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestSnapshot_InvalidDataset(t *testing.T) {
	bad := &Dataset{Name: "bad", Columns: []string{"x"}, Rows: []Row{{ID: "a"}}}
	_, err := Encode(bad)
	require.ErrorIs(t, err, errs.ErrMissingValue)
}

func TestDecode_Corruption(t *testing.T) {
	good, err := Encode(Sentiment(), WithCompression(format.CompressionS2))
	require.NoError(t, err)

	t.Run("short header", func(t *testing.T) {
		_, err := Decode(good[:HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		data := append([]byte(nil), good...)
		data[1] = 0x00
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("reserved flags", func(t *testing.T) {
		data := append([]byte(nil), good...)
		data[0] |= 0x02
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("bad compression", func(t *testing.T) {
		data := append([]byte(nil), good...)
		data[2] = 0x09
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(good[:len(good)-1])
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		data := append([]byte(nil), good...)
		data[HeaderSize] ^= 0xff
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("flipped checksum byte", func(t *testing.T) {
		data := append([]byte(nil), good...)
		data[len(data)-1] ^= 0x01
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})
}

func TestInspect(t *testing.T) {
	data, err := Encode(Sentiment(), WithCompression(format.CompressionS2), WithBigEndian())
	require.NoError(t, err)

	info, err := Inspect(data)
	require.NoError(t, err)
	assert.True(t, info.BigEndian)
	assert.Equal(t, format.CompressionS2, info.Compression)
	assert.Equal(t, 3, info.Columns)
	assert.Equal(t, 5, info.Rows)
	assert.Equal(t, len(data)-HeaderSize-ChecksumSize, info.PayloadLength)
	assert.Positive(t, info.RawPayloadSize)

	_, err = Inspect(data[:4])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestEncode_Limits(t *testing.T) {
	_, err := appendString(nil, strings.Repeat("x", maxNames+1), nil)
	require.ErrorIs(t, err, errs.ErrNameTooLong)

	cols := make([]string, maxNames+1)
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d", i)
	}
	_, err = Encode(&Dataset{Name: "wide", Columns: cols})
	require.ErrorIs(t, err, errs.ErrTooManyColumns)
}

func BenchmarkEncode(b *testing.B) {
	ds := Sentiment()
	for _, ct := range allCompressions {
		b.Run(ct.String(), func(b *testing.B) {
			for b.Loop() {
				_, _ = Encode(ds, WithCompression(ct))
			}
		})
	}
}
