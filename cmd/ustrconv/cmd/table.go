package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/strtable"
)

const maxLineSize = 16 * 1024 * 1024

func newPackCommand(opts *rootOptions) *cobra.Command {
	var (
		compression string
		bigEndian   bool
		noDedup     bool
	)

	c := &cobra.Command{
		Use:   "pack [input] [output]",
		Short: "Build a string table from lines of UTF-8 text",
		Long: `Reads UTF-8 lines from input (default stdin) and writes a string table
with one string per line. Statistics are printed to stderr.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg.Table
			flags := cmd.Flags()
			if flags.Changed("compression") {
				cfg.Compression = compression
			}
			if flags.Changed("big-endian") {
				cfg.BigEndian = bigEndian
			}
			if flags.Changed("no-dedup") {
				cfg.NoDedup = noDedup
			}

			ct, ok := format.ParseCompression(cfg.Compression)
			if !ok {
				return fmt.Errorf("unknown compression %q", cfg.Compression)
			}
			encOpts := []strtable.EncoderOption{
				strtable.WithCompression(ct),
				strtable.WithDeduplication(!cfg.NoDedup),
			}
			if cfg.BigEndian {
				encOpts = append(encOpts, strtable.WithBigEndian())
			}

			r, w, closeAll, err := openIO(cmd, args)
			if err != nil {
				return err
			}

			stats, err := pack(r, w, encOpts...)
			if cerr := closeAll(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "packed %d strings (%d unique), data %d -> %d bytes (%s, %.1f%% saved), table %d bytes\n",
				stats.Strings, stats.Unique,
				stats.Compression.OriginalSize, stats.Compression.CompressedSize,
				stats.Compression.Algorithm, stats.Compression.SpaceSavings(),
				stats.TotalSize,
			)

			return err
		},
	}

	c.Flags().StringVarP(&compression, "compression", "c", "", "data compression: none, zstd, s2 or lz4 (default zstd)")
	c.Flags().BoolVar(&bigEndian, "big-endian", false, "encode the table big-endian")
	c.Flags().BoolVar(&noDedup, "no-dedup", false, "store duplicate strings separately")

	return c
}

func pack(r io.Reader, w io.Writer, opts ...strtable.EncoderOption) (strtable.Stats, error) {
	enc, err := strtable.NewEncoder(opts...)
	if err != nil {
		return strtable.Stats{}, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if _, err := enc.AddGoString(scanner.Text()); err != nil {
			return strtable.Stats{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return strtable.Stats{}, err
	}

	data, err := enc.Finish()
	if err != nil {
		return strtable.Stats{}, err
	}
	if _, err := w.Write(data); err != nil {
		return strtable.Stats{}, err
	}

	return enc.Stats(), nil
}

func newUnpackCommand() *cobra.Command {
	var lookup string

	c := &cobra.Command{
		Use:   "unpack [input] [output]",
		Short: "Print the strings of a string table",
		Long: `Decodes a string table and prints one string per line as UTF-8.
With --lookup only the index of the matching string is printed.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, w, closeAll, err := openIO(cmd, args)
			if err != nil {
				return err
			}

			err = unpack(r, w, lookup, cmd.Flags().Changed("lookup"))
			if cerr := closeAll(); err == nil {
				err = cerr
			}

			return err
		},
	}

	c.Flags().StringVar(&lookup, "lookup", "", "print the index of this string instead of the table")

	return c
}

func unpack(r io.Reader, w io.Writer, lookup string, doLookup bool) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	tbl, err := strtable.Decode(data)
	if err != nil {
		return err
	}

	if doLookup {
		idx, ok := tbl.LookupGoString(lookup)
		if !ok {
			return fmt.Errorf("string %q not found", lookup)
		}
		_, err := fmt.Fprintln(w, idx)

		return err
	}

	bw := bufio.NewWriter(w)
	for _, s := range tbl.All() {
		if _, err := bw.WriteString(s.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
