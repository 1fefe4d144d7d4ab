package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/osrs-price-tracker/internal/config"
	"github.com/donaldgifford/osrs-price-tracker/internal/engine"
	"github.com/donaldgifford/osrs-price-tracker/pkg/logger"
)

var syncCmd = &cobra.Command{
	Use:       "sync <job>",
	Short:     "Run one sync job and exit",
	Long:      "Run one sync job against the configured database. Jobs: " + strings.Join(engine.Jobs, ", ") + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: engine.Jobs,
	RunE:      runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(log)

	counters, err := a.scheduler.RunNow(ctx, args[0])
	if err != nil {
		return fmt.Errorf("sync %s: %w", args[0], err)
	}

	fmt.Printf("%s: attempted=%d matched=%d persisted=%d failed=%d unmatched=%d\n",
		args[0], counters.Attempted, counters.Matched, counters.Persisted, counters.Failed, counters.Unmatched())
	return nil
}
