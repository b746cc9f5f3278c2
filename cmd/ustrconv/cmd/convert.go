package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/transcode"
)

// maxCarry is the longest undecodable tail carried into the next chunk.
// Longer tails cannot be the prefix of a valid sequence.
const maxCarry = 8

func newConvertCommand(opts *rootOptions) *cobra.Command {
	var (
		from, to, loss string
		chunk          int
		bom            bool
	)

	c := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Transcode a stream between two encodings",
		Long: `Reads input (default stdin) in fixed-size chunks, decodes it from the
source encoding to UTF-16 and encodes it to the target encoding.

Without --loss the first invalid or unrepresentable character stops the
conversion with an error.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg.Convert
			flags := cmd.Flags()
			if flags.Changed("from") {
				cfg.From = from
			}
			if flags.Changed("to") {
				cfg.To = to
			}
			if flags.Changed("loss") {
				cfg.Loss = loss
			}
			if flags.Changed("chunk") {
				cfg.Chunk = chunk
			}
			if flags.Changed("bom") {
				cfg.BOM = bom
			}

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}

			r, w, closeAll, err := openIO(cmd, args)
			if err != nil {
				return err
			}

			n, err := p.run(r, w)
			if cerr := closeAll(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			slog.Debug("conversion finished",
				"from", p.from.String(),
				"to", p.to.String(),
				"bytes_in", n,
			)

			return nil
		},
	}

	c.Flags().StringVarP(&from, "from", "f", "", "source encoding (default UTF-8)")
	c.Flags().StringVarP(&to, "to", "t", "", "target encoding (default UTF-8)")
	c.Flags().StringVar(&loss, "loss", "", "substitute for unconvertible characters")
	c.Flags().IntVar(&chunk, "chunk", defaultChunk, "input chunk size in bytes")
	c.Flags().BoolVar(&bom, "bom", false, "write a byte order mark for UTF-16 and UTF-32 targets")

	return c
}

// pipeline streams bytes through a decoding and an encoding Converter.
type pipeline struct {
	from, to format.Encoding
	dec, enc *transcode.Converter

	in    []byte
	units []uint16
	out   []byte
}

func newPipeline(cfg ConvertConfig) (*pipeline, error) {
	from, err := parseEncoding(cfg.From)
	if err != nil {
		return nil, err
	}
	to, err := parseEncoding(cfg.To)
	if err != nil {
		return nil, err
	}
	loss, err := parseLoss(cfg.Loss)
	if err != nil {
		return nil, err
	}
	if cfg.Chunk < minChunk {
		return nil, fmt.Errorf("chunk size must be at least %d, got %d", minChunk, cfg.Chunk)
	}

	dec, err := transcode.NewConverter(from,
		transcode.WithLossUnit(loss),
		transcode.WithExternalRepresentation(true),
	)
	if err != nil {
		return nil, err
	}
	enc, err := transcode.NewConverter(to,
		transcode.WithLossUnit(loss),
		transcode.WithExternalRepresentation(cfg.BOM),
	)
	if err != nil {
		return nil, err
	}

	// Every decoder yields at most one unit per input byte; one extra unit
	// holds a lead surrogate carried from the previous chunk.
	units := cfg.Chunk + maxCarry + 1

	return &pipeline{
		from:  from,
		to:    to,
		dec:   dec,
		enc:   enc,
		in:    make([]byte, cfg.Chunk+maxCarry),
		units: make([]uint16, units),
		out:   make([]byte, units*format.MaxBytesPerUnit(to)+4),
	}, nil
}

// run converts r to w and returns the number of input bytes consumed.
func (p *pipeline) run(r io.Reader, w io.Writer) (int64, error) {
	var offset int64
	inLen, unitLen := 0, 0

	for {
		n, rerr := io.ReadFull(r, p.in[inLen:])
		inLen += n
		eof := errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF)
		if rerr != nil && !eof {
			return offset, rerr
		}

		consumed, written := p.dec.Decode(p.in[:inLen], p.units[unitLen:], eof)
		unitLen += written

		used, size := p.enc.Encode(p.units[:unitLen], p.out, eof)
		if _, err := w.Write(p.out[:size]); err != nil {
			return offset, err
		}
		if held := unitLen - used; held > 1 || (eof && held > 0) {
			return offset, fmt.Errorf("%w: %s cannot encode unit 0x%04X near input byte %d",
				errs.ErrUnrepresentable, p.to, p.units[used], offset+int64(consumed))
		}
		copy(p.units, p.units[used:unitLen])
		unitLen -= used

		rest := inLen - consumed
		if (eof && rest > 0) || rest > maxCarry {
			return offset, fmt.Errorf("%w: %s input at byte %d", errs.ErrInvalidSequence, p.from, offset+int64(consumed))
		}
		offset += int64(consumed)
		if eof {
			return offset, nil
		}
		copy(p.in, p.in[consumed:inLen])
		inLen = rest
	}
}
