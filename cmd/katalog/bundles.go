package main

import (
	"fmt"

	"github.com/irsalhamdi/prelobook/core/money"
	"github.com/spf13/cobra"
)

func newBundlesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bundles",
		Short: "List bundles with their contents and savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load(cmd, root.fixture, root.strict)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range s.Bundles() {
				fmt.Fprintf(out, "%s  %s  %d buku  %s (hemat %s)\n",
					p.ID, p.Name, p.Count(), money.Rupiah(p.EffectivePrice()), money.Rupiah(p.Savings()))

				books, err := s.BundleBooks(p.ID)
				if err != nil {
					return err
				}
				for _, b := range books {
					fmt.Fprintf(out, "  - %s\n", b.Title)
				}
			}
			return nil
		},
	}
}
