package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/irsalhamdi/prelobook/core/cart"
	"github.com/irsalhamdi/prelobook/core/money"
	"github.com/spf13/cobra"
)

// parseItem reads "id" or "id:qty".
func parseItem(s string) (string, int, error) {
	id, raw, found := strings.Cut(s, ":")
	if id == "" {
		return "", 0, fmt.Errorf("item %q has no book id", s)
	}
	if !found {
		return id, 1, nil
	}

	qty, err := strconv.Atoi(raw)
	if err != nil || qty < 1 {
		return "", 0, fmt.Errorf("item %q: quantity must be a positive number", s)
	}
	return id, qty, nil
}

func newCartCmd(root *rootOptions) *cobra.Command {
	var shipping int64

	cmd := &cobra.Command{
		Use:   "cart id[:qty]...",
		Short: "Price a cart of books",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load(cmd, root.fixture, root.strict)
			if err != nil {
				return err
			}

			var c cart.Cart
			for _, a := range args {
				id, qty, err := parseItem(a)
				if err != nil {
					return err
				}
				if err := c.Add(s, id, qty); err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
			}

			out := cmd.OutOrStdout()
			sum := c.Totals(s, shipping)
			for _, l := range sum.Lines {
				fmt.Fprintf(out, "%-36s %3d x %-12s %s\n", l.Book.Title, l.Quantity, money.Rupiah(l.UnitPrice), money.Rupiah(l.LineTotal))
			}
			fmt.Fprintf(out, "Subtotal: %s\n", money.Rupiah(sum.Subtotal))
			fmt.Fprintf(out, "Ongkir:   %s\n", money.Rupiah(sum.Shipping))
			fmt.Fprintf(out, "Total:    %s\n", money.Rupiah(sum.Total))
			return nil
		},
	}

	cmd.Flags().Int64Var(&shipping, "ongkir", 15000, "flat shipping fee in rupiah")

	return cmd
}
