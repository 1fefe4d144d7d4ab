package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncJobs = []string{"catalog", "prices", "equipment", "consumables"}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "sync <job>",
		Short:     "Run a sync job on the server",
		Long:      "Run a sync job on the server and wait for it to finish.\nJobs: catalog, prices, equipment, consumables.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: syncJobs,
		Example: `  opt sync prices
  opt sync equipment --timeout 30m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newClient().Sync(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(res)
			}
			fmt.Printf("%s %s: attempted=%d matched=%d persisted=%d failed=%d unmatched=%d\n",
				res.Job, res.Status,
				res.Counters.Attempted, res.Counters.Matched, res.Counters.Persisted,
				res.Counters.Failed, res.Unmatched)
			return nil
		},
	}
}
