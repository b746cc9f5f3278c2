// Package cmd implements the ustrconv command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/ustring"
)

type rootOptions struct {
	cfgFile string
	verbose bool
	cfg     Config
}

// NewRootCommand builds the ustrconv command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{cfg: DefaultConfig()}

	root := &cobra.Command{
		Use:   "ustrconv",
		Short: "Convert, format and pack Unicode text",
		Long: `ustrconv converts text between encodings in fixed-size chunks,
renders positional printf formats and packs line lists into string tables.

Commands:
  convert    - transcode a stream between two encodings
  format     - render a printf format with positional arguments
  encodings  - list known encodings
  pack       - build a string table from lines of UTF-8 text
  unpack     - print the strings of a string table`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			ustring.SetLogger(logger)

			cfg, err := LoadConfig(opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "TOML config file with command defaults")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug records to stderr")

	root.AddCommand(
		newConvertCommand(opts),
		newFormatCommand(opts),
		newEncodingsCommand(),
		newPackCommand(opts),
		newUnpackCommand(),
	)

	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil {
		printError("ustrconv", err)
	}

	return err
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}

// openIO opens the optional input and output file arguments, falling back
// to the command's stdin and stdout.
func openIO(cmd *cobra.Command, args []string) (io.Reader, io.Writer, func() error, error) {
	var r io.Reader = cmd.InOrStdin()
	var w io.Writer = cmd.OutOrStdout()
	var closers []io.Closer

	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, nil, err
		}
		r = f
		closers = append(closers, f)
	}
	if len(args) > 1 && args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}

			return nil, nil, nil, err
		}
		w = f
		closers = append(closers, f)
	}

	closeAll := func() error {
		var first error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil && first == nil {
				first = err
			}
		}

		return first
	}

	return r, w, closeAll, nil
}
