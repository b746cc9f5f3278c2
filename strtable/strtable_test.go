package strtable

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/section"
	"github.com/arloliu/ustring/str"
)

var sampleStrings = []string{
	"hello",
	"",
	"Grüße",
	"日本語",
	"hello",
	"emoji 😀",
	"Grüße",
	"plain ascii",
}

func encodeStrings(t *testing.T, values []string, opts ...EncoderOption) []byte {
	t.Helper()

	enc, err := NewEncoder(opts...)
	require.NoError(t, err)
	for i, v := range values {
		idx, err := enc.AddGoString(v)
		require.NoError(t, err)
		require.Equal(t, i, idx)
	}
	require.Equal(t, len(values), enc.Len())

	data, err := enc.Finish()
	require.NoError(t, err)

	return data
}

func requireStrings(t *testing.T, tbl *Table, values []string) {
	t.Helper()

	require.Equal(t, len(values), tbl.Len())
	for i, v := range values {
		s := tbl.At(i)
		require.Equal(t, v, s.String(), "string %d", i)
		require.True(t, str.Equal(s, str.FromGoString(v)))
	}
}

func TestRoundTrip(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		for _, bigEndian := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/big=%v", ct, bigEndian), func(t *testing.T) {
				opts := []EncoderOption{WithCompression(ct)}
				if bigEndian {
					opts = append(opts, WithBigEndian())
				}
				data := encodeStrings(t, sampleStrings, opts...)

				tbl, err := Decode(data)
				require.NoError(t, err)
				require.Equal(t, bigEndian, tbl.IsBigEndian())
				requireStrings(t, tbl, sampleStrings)
			})
		}
	}
}

func TestRoundTripCompressible(t *testing.T) {
	values := make([]string, 0, 500)
	for i := range 500 {
		values = append(values, fmt.Sprintf("service.request.duration.bucket_%03d", i))
	}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			enc, err := NewEncoder(WithCompression(ct))
			require.NoError(t, err)
			for _, v := range values {
				_, err := enc.AddGoString(v)
				require.NoError(t, err)
			}
			data, err := enc.Finish()
			require.NoError(t, err)

			stats := enc.Stats()
			require.Equal(t, ct, stats.Compression.Algorithm)
			require.Less(t, stats.Compression.CompressedSize, stats.Compression.OriginalSize)
			require.Equal(t, len(data), stats.TotalSize)

			tbl, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, ct, tbl.Compression())
			requireStrings(t, tbl, values)
		})
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	data := encodeStrings(t, []string{"x"}, WithCompression(format.CompressionZstd))

	tbl, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, tbl.Compression())
	requireStrings(t, tbl, []string{"x"})
}

func TestDeduplication(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	for _, v := range sampleStrings {
		_, err := enc.AddGoString(v)
		require.NoError(t, err)
	}
	deduped, err := enc.Finish()
	require.NoError(t, err)

	stats := enc.Stats()
	require.Equal(t, len(sampleStrings), stats.Strings)
	require.Equal(t, 6, stats.Unique)
	require.False(t, stats.Collisions)

	plain := encodeStrings(t, sampleStrings, WithDeduplication(false))
	require.Less(t, len(deduped), len(plain))

	tbl, err := Decode(deduped)
	require.NoError(t, err)
	require.Equal(t, 6, tbl.Unique())
	require.Equal(t, tbl.Hash(0), tbl.Hash(4))

	tbl, err = Decode(plain)
	require.NoError(t, err)
	requireStrings(t, tbl, sampleStrings)
}

func TestRepresentation(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	// UTF-16 input whose units are all ASCII is stored narrow.
	_, err = enc.Add(str.CreateWithCharacters([]uint16{'a', 'b', 'c'}))
	require.NoError(t, err)
	_, err = enc.AddGoString("é")
	require.NoError(t, err)
	_, err = enc.Finish()
	require.NoError(t, err)

	require.Equal(t, 1, enc.Stats().ASCII)
	require.Equal(t, section.ReprASCII, enc.entries[0].Representation)
	require.Equal(t, section.ReprUTF16, enc.entries[1].Representation)
	require.Equal(t, uint32(4), enc.entries[1].Offset, "UTF-16 blocks are 2-byte aligned")
}

func TestHashIndependentOfRepresentation(t *testing.T) {
	data := encodeStrings(t, []string{"abc"})
	tbl, err := Decode(data)
	require.NoError(t, err)

	idx, ok := tbl.Lookup(str.CreateWithCharacters([]uint16{'a', 'b', 'c'}))
	require.True(t, ok)
	require.Equal(t, 0, idx)
}

func TestLookup(t *testing.T) {
	data := encodeStrings(t, sampleStrings, WithCompression(format.CompressionS2))
	tbl, err := Decode(data)
	require.NoError(t, err)

	tests := []struct {
		value string
		index int
		found bool
	}{
		{"hello", 0, true},
		{"", 1, true},
		{"Grüße", 2, true},
		{"日本語", 3, true},
		{"emoji 😀", 5, true},
		{"plain ascii", 7, true},
		{"missing", -1, false},
		{"Grusse", -1, false},
	}
	for _, tt := range tests {
		idx, ok := tbl.LookupGoString(tt.value)
		require.Equal(t, tt.found, ok, tt.value)
		require.Equal(t, tt.index, idx, tt.value)
	}
}

func TestAll(t *testing.T) {
	data := encodeStrings(t, sampleStrings)
	tbl, err := Decode(data)
	require.NoError(t, err)

	var got []string
	for i, s := range tbl.All() {
		require.Equal(t, len(got), i)
		got = append(got, s.String())
	}
	require.Equal(t, sampleStrings, got)

	count := 0
	for range tbl.All() {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestEmptyTable(t *testing.T) {
	data := encodeStrings(t, nil, WithCompression(format.CompressionZstd))
	require.Len(t, data, section.HeaderSize)

	tbl, err := Decode(data)
	require.NoError(t, err)
	require.Zero(t, tbl.Len())
	_, ok := tbl.LookupGoString("a")
	require.False(t, ok)
}

func TestEncoderErrors(t *testing.T) {
	_, err := NewEncoder(WithCompression(format.CompressionType(0x7)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	enc, err := NewEncoder()
	require.NoError(t, err)
	_, err = enc.Add(str.FromGoString(strings.Repeat("a", section.MaxStringLength+1)))
	require.ErrorIs(t, err, errs.ErrStringTooLong)

	_, err = enc.Finish()
	require.NoError(t, err)
	_, err = enc.Finish()
	require.ErrorIs(t, err, errs.ErrEncoderFinished)
	_, err = enc.AddGoString("late")
	require.ErrorIs(t, err, errs.ErrEncoderFinished)
}

func TestDecodeErrors(t *testing.T) {
	data := encodeStrings(t, []string{"alpha", "beta"})

	_, err := Decode(data[:10])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	bad := append([]byte(nil), data...)
	bad[1] = 0
	_, err = Decode(bad)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)

	_, err = Decode(data[:section.HeaderSize+section.IndexEntrySize])
	require.ErrorIs(t, err, errs.ErrInvalidDataSection)

	_, err = Decode(data[:len(data)-1])
	require.ErrorIs(t, err, errs.ErrInvalidDataSection)

	bad = append([]byte(nil), data...)
	bad[len(bad)-1] = 'X'
	_, err = Decode(bad)
	require.ErrorIs(t, err, errs.ErrHashMismatch)

	bad = append([]byte(nil), data...)
	bad[len(bad)-1] = 0xC3
	_, err = Decode(bad)
	require.ErrorIs(t, err, errs.ErrInvalidDataSection)
}

func TestDecodeCorruptedCompression(t *testing.T) {
	values := make([]string, 100)
	for i := range values {
		values[i] = strings.Repeat("compressible ", 4)
	}
	data := encodeStrings(t, values, WithCompression(format.CompressionS2), WithDeduplication(false))

	bad := append([]byte(nil), data...)
	bad = bad[:len(bad)-2]
	_, err := Decode(bad)
	require.Error(t, err)
}

func TestDecodeRejectsInflatedDataSize(t *testing.T) {
	values := make([]string, 40)
	for i := range values {
		values[i] = strings.Repeat("compressible ", 1)
	}
	data := encodeStrings(t, values,
		WithCompression(format.CompressionLZ4), WithLittleEndian(), WithDeduplication(false))

	tbl, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZ4, tbl.Compression())

	for _, size := range []uint32{0xF0000000, 100 << 20, 4 << 20} {
		bad := append([]byte(nil), data...)
		binary.LittleEndian.PutUint32(bad[20:24], size)

		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)
		_, err = Decode(bad)
		runtime.ReadMemStats(&after)

		require.ErrorIs(t, err, errs.ErrInvalidDataSection, "size %d", size)
		require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20), "size %d", size)
	}
}

func BenchmarkEncode(b *testing.B) {
	values := make([]*str.String, 1000)
	for i := range values {
		values[i] = str.FromGoString(fmt.Sprintf("metric.name.%d", i%400))
	}

	b.ReportAllocs()
	for b.Loop() {
		enc, _ := NewEncoder(WithCompression(format.CompressionS2))
		for _, v := range values {
			_, _ = enc.Add(v)
		}
		_, _ = enc.Finish()
	}
}

func BenchmarkLookup(b *testing.B) {
	enc, _ := NewEncoder()
	for i := range 1000 {
		_, _ = enc.AddGoString(fmt.Sprintf("metric.name.%d", i))
	}
	data, _ := enc.Finish()
	tbl, _ := Decode(data)
	key := str.FromGoString("metric.name.500")

	b.ReportAllocs()
	for b.Loop() {
		_, _ = tbl.Lookup(key)
	}
}
