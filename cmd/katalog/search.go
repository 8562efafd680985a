package main

import (
	"fmt"

	"github.com/irsalhamdi/prelobook/core/book"
	"github.com/irsalhamdi/prelobook/core/catalog"
	"github.com/irsalhamdi/prelobook/core/money"
	"github.com/spf13/cobra"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	var (
		category   string
		sortKey    string
		conditions []string
	)

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search books by title or author",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load(cmd, root.fixture, root.strict)
			if err != nil {
				return err
			}

			srt, err := catalog.ParseSort(sortKey)
			if err != nil {
				return err
			}

			q := catalog.Query{Category: category, Sort: srt}
			if len(args) == 1 {
				q.Text = args[0]
			}
			for _, c := range conditions {
				cond, err := book.ParseCondition(c)
				if err != nil {
					return err
				}
				q.Conditions = append(q.Conditions, cond)
			}

			out := cmd.OutOrStdout()
			books := catalog.Search(s.Books(), q)
			for _, b := range books {
				fmt.Fprintf(out, "%-8s %-36s %-12s %s\n", b.ID, b.Title, money.Rupiah(b.EffectivePrice()), b.Condition)
			}
			fmt.Fprintf(out, "%d buku (%s)\n", len(books), srt.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "kategori", "", "category id, e.g. cat2")
	cmd.Flags().StringVar(&sortKey, "urut", "", "newest, cheapest or bestSeller")
	cmd.Flags().StringSliceVar(&conditions, "kondisi", nil, "allowed conditions, e.g. Baru,Baik")

	return cmd
}
