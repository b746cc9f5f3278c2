package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ustring"
	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
)

func run(t *testing.T, stdin []byte, args ...string) ([]byte, string, error) {
	t.Helper()
	t.Cleanup(func() { ustring.SetLogger(nil) })

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(bytes.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.Execute()

	return out.Bytes(), errOut.String(), err
}

func TestConvertUTF8ToUTF16LEWithBOM(t *testing.T) {
	out, _, err := run(t, []byte("hé"), "convert", "-f", "UTF-8", "-t", "UTF-16LE", "--bom")
	require.NoError(t, err)
	// Explicit byte order variants never carry a BOM.
	require.Equal(t, []byte{'h', 0, 0xE9, 0}, out)

	out, _, err = run(t, []byte("hé"), "convert", "-t", "UTF-16", "--bom")
	require.NoError(t, err)
	require.Len(t, out, 6)
	require.True(t, bytes.HasPrefix(out, []byte{0xFF, 0xFE}) || bytes.HasPrefix(out, []byte{0xFE, 0xFF}))
}

func TestConvertSmallChunksRoundTrip(t *testing.T) {
	text := strings.Repeat("日本語 😀 Grüße ", 50)

	wide, _, err := run(t, []byte(text), "convert", "-t", "UTF-16BE", "--chunk", "16")
	require.NoError(t, err)

	back, _, err := run(t, wide, "convert", "-f", "UTF-16BE", "-t", "UTF-8", "--chunk", "17")
	require.NoError(t, err)
	require.Equal(t, text, string(back))
}

func TestConvertInvalidInput(t *testing.T) {
	_, _, err := run(t, []byte("a\xffb"), "convert")
	require.ErrorIs(t, err, errs.ErrInvalidSequence)

	out, _, err := run(t, []byte("a\xffb"), "convert", "--loss", "?")
	require.NoError(t, err)
	require.Equal(t, "a?b", string(out))
}

func TestConvertUnrepresentable(t *testing.T) {
	_, _, err := run(t, []byte("naïve 日本"), "convert", "-t", "US-ASCII")
	require.ErrorIs(t, err, errs.ErrUnrepresentable)

	out, _, err := run(t, []byte("naïve"), "convert", "-t", "ISO-8859-1")
	require.NoError(t, err)
	require.Equal(t, []byte{'n', 'a', 0xEF, 'v', 'e'}, out)
}

func TestConvertRejectsBadFlags(t *testing.T) {
	_, _, err := run(t, nil, "convert", "-f", "no-such-encoding")
	require.Error(t, err)

	_, _, err = run(t, nil, "convert", "--chunk", "4")
	require.Error(t, err)

	_, _, err = run(t, nil, "convert", "--loss", "😀")
	require.Error(t, err)
}

func TestConvertFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("Grüße"), 0o600))

	_, _, err := run(t, nil, "convert", "-t", "ISO-8859-1", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte{'G', 'r', 0xFC, 0xDF, 'e'}, data)
}

func TestFormat(t *testing.T) {
	out, _, err := run(t, nil, "format", "%2$s has %1$d items", "3", "cart")
	require.NoError(t, err)
	require.Equal(t, "cart has 3 items\n", string(out))

	out, _, err = run(t, nil, "format", "--locale", "en", "%'d", "1234567")
	require.NoError(t, err)
	require.Equal(t, "1,234,567\n", string(out))

	out, _, err = run(t, nil, "format", "%.2f", "2.5")
	require.NoError(t, err)
	require.Equal(t, "2.50\n", string(out))
}

func TestParseArgs(t *testing.T) {
	require.Equal(t, []any{int64(42), 1.5, "x", int64(-7)}, parseArgs([]string{"42", "1.5", "x", "-7"}))
}

func TestEncodings(t *testing.T) {
	out, _, err := run(t, nil, "encodings")
	require.NoError(t, err)
	require.Contains(t, string(out), "UTF-8")
	require.Contains(t, string(out), "SHIFT_JIS")
	require.Contains(t, string(out), "builtin")
}

func TestPackUnpack(t *testing.T) {
	lines := "cpu.usage\nmemory.usage\ncpu.usage\nGrüße\n"

	for _, compression := range []string{"none", "zstd", "s2", "lz4"} {
		t.Run(compression, func(t *testing.T) {
			table, stderr, err := run(t, []byte(lines), "pack", "-c", compression)
			require.NoError(t, err)
			require.Contains(t, stderr, "packed 4 strings (3 unique)")

			out, _, err := run(t, table, "unpack")
			require.NoError(t, err)
			require.Equal(t, lines, string(out))

			out, _, err = run(t, table, "unpack", "--lookup", "Grüße")
			require.NoError(t, err)
			require.Equal(t, "3\n", string(out))

			_, _, err = run(t, table, "unpack", "--lookup", "disk.usage")
			require.Error(t, err)
		})
	}
}

func TestPackRejectsUnknownCompression(t *testing.T) {
	_, _, err := run(t, []byte("a\n"), "pack", "-c", "brotli")
	require.Error(t, err)
}

func TestUnpackRejectsGarbage(t *testing.T) {
	_, _, err := run(t, []byte("not a table"), "unpack")
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ustrconv.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[convert]
to = "UTF-16BE"
loss = "?"

[table]
compression = "s2"
big_endian = true
`), 0o600))

	out, _, err := run(t, []byte("A\xff"), "--config", path, "convert")
	require.NoError(t, err)
	require.Equal(t, []byte{0, 'A', 0, '?'}, out)

	out, _, err = run(t, []byte("A"), "--config", path, "convert", "-t", "UTF-8")
	require.NoError(t, err)
	require.Equal(t, "A", string(out))

	table, stderr, err := run(t, []byte("x\n"), "--config", path, "pack")
	require.NoError(t, err)
	require.Contains(t, stderr, "packed 1 strings")
	require.NotEmpty(t, table)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[convert]\nfrom = \"klingon\"\n"), 0o600))
	_, err = LoadConfig(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[convert\n"), 0o600))
	_, err = LoadConfig(path)
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	require.NoError(t, DefaultConfig().Validate())
	bad := DefaultConfig()
	bad.Table.Compression = "brotli"
	require.Error(t, bad.Validate())
	bad = DefaultConfig()
	bad.Format.Locale = "!!"
	require.Error(t, bad.Validate())
}

func TestVerboseLogsToStderr(t *testing.T) {
	_, stderr, err := run(t, []byte("a\n"), "-v", "pack")
	require.NoError(t, err)
	require.Contains(t, stderr, "level=DEBUG")
	require.Contains(t, stderr, "component=strtable")
}

func TestPipelineSizing(t *testing.T) {
	p, err := newPipeline(ConvertConfig{From: "UTF-8", To: "X-NON-LOSSY-ASCII", Chunk: minChunk})
	require.NoError(t, err)
	require.Len(t, p.in, minChunk+maxCarry)
	require.GreaterOrEqual(t, len(p.out), len(p.units)*format.MaxBytesPerUnit(format.EncodingNonLossyASCII))
}
