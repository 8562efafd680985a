package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a catalog fixture for broken references and bundles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.fixture
			if len(args) == 1 {
				path = args[0]
			}

			s, err := load(cmd, path, root.strict)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d buku, %d paket, %d kategori\n",
				len(s.Books()), len(s.Bundles()), len(s.Categories()))
			return nil
		},
	}
}
