package cmd

import (
	"fmt"
	"os"
	"unicode/utf16"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/arloliu/ustring/format"
)

// Config holds the defaults read from the TOML configuration file.
type Config struct {
	Convert ConvertConfig `toml:"convert"`
	Format  FormatConfig  `toml:"format"`
	Table   TableConfig   `toml:"table"`
}

// ConvertConfig holds defaults for the convert command.
type ConvertConfig struct {
	From  string `toml:"from"`
	To    string `toml:"to"`
	Loss  string `toml:"loss"`
	Chunk int    `toml:"chunk"`
	BOM   bool   `toml:"bom"`
}

// FormatConfig holds defaults for the format command.
type FormatConfig struct {
	Locale string `toml:"locale"`
}

// TableConfig holds defaults for the pack command.
type TableConfig struct {
	Compression string `toml:"compression"`
	BigEndian   bool   `toml:"big_endian"`
	NoDedup     bool   `toml:"no_dedup"`
}

const (
	defaultChunk = 64 * 1024
	minChunk     = 16
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Convert: ConvertConfig{
			From:  "UTF-8",
			To:    "UTF-8",
			Chunk: defaultChunk,
		},
		Format: FormatConfig{
			Locale: "",
		},
		Table: TableConfig{
			Compression: "zstd",
		},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks every value that names an encoding, a locale or a
// compression.
func (c Config) Validate() error {
	if _, err := parseEncoding(c.Convert.From); err != nil {
		return err
	}
	if _, err := parseEncoding(c.Convert.To); err != nil {
		return err
	}
	if _, err := parseLoss(c.Convert.Loss); err != nil {
		return err
	}
	if c.Convert.Chunk < minChunk {
		return fmt.Errorf("chunk size must be at least %d, got %d", minChunk, c.Convert.Chunk)
	}
	if _, err := parseLocale(c.Format.Locale); err != nil {
		return err
	}
	if _, ok := format.ParseCompression(c.Table.Compression); !ok {
		return fmt.Errorf("unknown compression %q", c.Table.Compression)
	}

	return nil
}

func parseEncoding(name string) (format.Encoding, error) {
	enc, ok := format.ParseEncoding(name)
	if !ok {
		return format.EncodingInvalid, fmt.Errorf("unknown encoding %q", name)
	}

	return enc, nil
}

// parseLoss returns the first UTF-16 unit of s, or 0 for an empty s.
func parseLoss(s string) (uint16, error) {
	if s == "" {
		return 0, nil
	}

	units := utf16.Encode([]rune(s))
	if len(units) != 1 {
		return 0, fmt.Errorf("loss character %q must be a single BMP character", s)
	}

	return units[0], nil
}

func parseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.Und, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", s, err)
	}

	return tag, nil
}
