package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/ustring/printf"
)

func newFormatCommand(opts *rootOptions) *cobra.Command {
	var locale string

	c := &cobra.Command{
		Use:   "format FORMAT [ARG...]",
		Short: "Render a printf format with positional arguments",
		Long: `Renders FORMAT with the given arguments. Arguments that parse as
integers are passed as integers, those that parse as floats as floats,
everything else as strings.

Example:
  ustrconv format '%2$s has %1$d items' 3 cart`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("locale") {
				locale = opts.cfg.Format.Locale
			}

			var fopts []printf.Option
			if locale != "" {
				tag, err := parseLocale(locale)
				if err != nil {
					return err
				}
				fopts = append(fopts, printf.WithLocale(tag))
			}

			f, err := printf.New(fopts...)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), f.Sprintf(args[0], parseArgs(args[1:])...))

			return err
		},
	}

	c.Flags().StringVar(&locale, "locale", "", "locale for number formatting, e.g. de-DE")

	return c
}

func parseArgs(raw []string) []any {
	out := make([]any, len(raw))
	for i, s := range raw {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			out[i] = v
		} else if v, err := strconv.ParseFloat(s, 64); err == nil {
			out[i] = v
		} else {
			out[i] = s
		}
	}

	return out
}
