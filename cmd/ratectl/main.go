// Command ratectl seeds, imports, exports and tries out the rate table.
package main

import (
	"context"
	"fmt"
	"os"

	"courier-rates/internal/core/config"
	"courier-rates/internal/core/logger"
	rateadapter "courier-rates/internal/features/rates/adapters"
	"courier-rates/internal/features/rates/ports"

	"github.com/spf13/cobra"
)

// openRepository is swapped in tests to share one in-memory store across commands.
var openRepository = rateadapter.OpenRepository

// cli carries state shared by every subcommand.
type cli struct {
	configPath string
	cfg        *config.AppConfig
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "ratectl",
		Short:         "Manage the courier rate table",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			c.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", ".", "Directory holding the .env file")

	root.AddCommand(
		newSeedCmd(c),
		newImportCmd(c),
		newExportCmd(c),
		newQuoteCmd(c),
	)
	return root
}

// withRepo opens the configured rate store for the duration of fn.
func (c *cli) withRepo(ctx context.Context, fn func(ports.RateRepository) error) error {
	repo, closeRepo, err := openRepository(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer closeRepo()
	return fn(repo)
}

// requirePersistentStore rejects commands whose writes would vanish with the process.
func (c *cli) requirePersistentStore() error {
	if c.cfg.Rates.Store == config.StoreMemory {
		return fmt.Errorf("RATE_STORE=%s does not outlive ratectl; set RATE_STORE=%s and DB_DSN", config.StoreMemory, config.StorePostgres)
	}
	return nil
}

func main() {
	defer logger.Sync()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
