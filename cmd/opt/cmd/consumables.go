package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

func consumablesCmd() *cobra.Command {
	consumablesRoot := &cobra.Command{
		Use:     "consumables",
		Aliases: []string{"food"},
		Short:   "Rank food and potions by effect per coin",
	}

	consumablesRoot.AddCommand(
		consumablesListCmd(),
		consumablesEffectCmd(),
		consumablesHealingCmd(),
		consumablesSearchCmd(),
	)

	return consumablesRoot
}

func consumablesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List priced consumables with every effect",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := newClient().ListConsumables(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rows)
			}
			if len(rows) == 0 {
				fmt.Println("No consumables found.")
				return nil
			}
			return printConsumablesTable(rows)
		},
	}
}

func consumablesEffectCmd() *cobra.Command {
	types := make([]string, 0, len(domain.AllEffectTypes))
	for _, t := range domain.AllEffectTypes {
		types = append(types, string(t))
	}

	return &cobra.Command{
		Use:       "effect <type>",
		Short:     "Rank consumables by one effect type",
		Long:      "Rank consumables by amount per coin for one effect type: " + strings.Join(types, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: types,
		Example:   `  opt consumables effect delayed_heal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := newClient().ConsumablesByEffect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rows)
			}
			if len(rows) == 0 {
				fmt.Printf("No priced consumables with %s.\n", args[0])
				return nil
			}
			return printEffectTable(rows)
		},
	}
}

func consumablesHealingCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "healing",
		Short:   "Top healing foods by hitpoints per coin",
		Example: `  opt consumables healing --limit 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := newClient().TopHealing(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rows)
			}
			if len(rows) == 0 {
				fmt.Println("No priced healing foods.")
				return nil
			}
			return printHealingTable(rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of foods (server default 10, max 50)")

	return cmd
}

func consumablesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search <name>",
		Short:   "Find consumables by name",
		Args:    cobra.ExactArgs(1),
		Example: `  opt consumables search "spicy stew"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := newClient().SearchConsumables(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rows)
			}
			if len(rows) == 0 {
				fmt.Printf("No consumables match %q.\n", args[0])
				return nil
			}
			return printConsumableMatches(rows)
		},
	}
}
