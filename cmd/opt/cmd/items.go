package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/osrs-price-tracker/internal/api/client"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

func itemsCmd() *cobra.Command {
	itemsRoot := &cobra.Command{
		Use:   "items",
		Short: "Query the item catalog and prices",
		Long: "Query Grand Exchange items with their latest price snapshot,\n" +
			"look up a single item, or rank items by price and volume.",
	}

	itemsRoot.AddCommand(
		itemsListCmd(),
		itemsGetCmd(),
		itemsPriceRangeCmd(),
		itemsRankCmd("expensive", "Most expensive items by current price", (*apiclient.Client).MostExpensive),
		itemsRankCmd("traded", "Most traded items by volume", (*apiclient.Client).MostTraded),
	)

	return itemsRoot
}

func itemsListCmd() *cobra.Command {
	var q apiclient.ItemQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items with optional search and sorting",
		Example: `  # First page of the catalog
  opt items list

  # Case-insensitive name search sorted by price
  opt items list --search rune --order-by price --limit 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().ListItems(cmd.Context(), q)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(res)
			}
			if len(res.Items) == 0 {
				fmt.Println("No items found.")
				return nil
			}
			if err := printItemsTable(res.Items); err != nil {
				return err
			}
			fmt.Printf("\nShowing %d of %d items (offset %d)\n", len(res.Items), res.Total, res.Offset)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "case-insensitive name filter")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "maximum number of items (server default 50)")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "number of items to skip")
	cmd.Flags().StringVar(&q.OrderBy, "order-by", "", "sort order: name, price, volume")

	return cmd
}

func itemsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show one item with its latest price",
		Args:    cobra.ExactArgs(1),
		Example: `  opt items get 385`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("item id must be an integer: %q", args[0])
			}
			item, err := newClient().GetItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(item)
			}
			return printItemDetail(item)
		},
	}
}

func itemsPriceRangeCmd() *cobra.Command {
	var (
		lo, hi float64
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "price-range",
		Short:   "List items priced between --min and --max",
		Example: `  opt items price-range --min 1000 --max 5000 --limit 25`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := newClient().ItemsInPriceRange(cmd.Context(), lo, hi, limit)
			if err != nil {
				return err
			}
			return renderItems(items)
		},
	}
	cmd.Flags().Float64Var(&lo, "min", 0, "minimum current price")
	cmd.Flags().Float64Var(&hi, "max", 0, "maximum current price")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of items (server default 100)")
	cobra.CheckErr(cmd.MarkFlagRequired("min"))
	cobra.CheckErr(cmd.MarkFlagRequired("max"))

	return cmd
}

type rankFunc func(*apiclient.Client, context.Context, int) ([]domain.ItemWithPrice, error)

func itemsRankCmd(use, short string, rank rankFunc) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: fmt.Sprintf("  opt items %s --limit 5", use),
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := rank(newClient(), cmd.Context(), limit)
			if err != nil {
				return err
			}
			return renderItems(items)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of items (server default 10)")

	return cmd
}

func renderItems(items []domain.ItemWithPrice) error {
	if jsonOutput() {
		return outputJSON(items)
	}
	if len(items) == 0 {
		fmt.Println("No items found.")
		return nil
	}
	return printItemsTable(items)
}
