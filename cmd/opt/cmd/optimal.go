package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

func optimalCmd() *cobra.Command {
	optimalRoot := &cobra.Command{
		Use:   "optimal",
		Short: "Rank equipment by stat per coin",
		Long: "Rank tradeable equipment by how much of a stat each coin buys.\n" +
			"Attributes: " + strings.Join(domain.RankableStats, ", ") + ".",
	}

	optimalRoot.AddCommand(
		optimalAllCmd(),
		optimalAttributeCmd(),
	)

	return optimalRoot
}

func optimalAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Show every priced item with all stat efficiencies",
		Long:  "Show every priced equipment item. Table output lists each item once; use --output json for per-stat efficiencies.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := newClient().AllEquipment(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rows)
			}
			if len(rows) == 0 {
				fmt.Println("No equipment found.")
				return nil
			}
			return printEquipmentTable(rows)
		},
	}
}

func optimalAttributeCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:       "slot <attribute>",
		Short:     "Best items per slot for one attribute",
		Args:      cobra.ExactArgs(1),
		ValidArgs: domain.RankableStats,
		Example: `  opt optimal slot melee_strength
  opt optimal slot slash_def --limit 3 --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := newClient().OptimalEquipment(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rows)
			}
			if len(rows) == 0 {
				fmt.Printf("No priced equipment with %s.\n", args[0])
				return nil
			}
			return printOptimalTable(args[0], rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "items per slot (server default 5)")

	return cmd
}
