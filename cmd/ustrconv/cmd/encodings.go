package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/transcode"
)

func newEncodingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encodings",
		Short: "List known encodings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			encs := format.KnownEncodings()
			slices.SortFunc(encs, func(a, b format.Encoding) int {
				switch {
				case a.String() < b.String():
					return -1
				case a.String() > b.String():
					return 1
				default:
					return 0
				}
			})

			w := cmd.OutOrStdout()
			for _, enc := range encs {
				kind := "external"
				if enc.IsBuiltin() {
					kind = "builtin"
				}
				if !transcode.Supported(enc) {
					kind = "unavailable"
				}
				if _, err := fmt.Fprintf(w, "0x%08X  %-20s %s\n", uint32(enc), enc.String(), kind); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
