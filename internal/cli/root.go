package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ott-manager.app/api/internal/catalog"
	"ott-manager.app/api/internal/config"
	"ott-manager.app/api/internal/logger"
	"ott-manager.app/api/internal/version"
	"ott-manager.app/api/storage"
)

const appName = "ott-manager"

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand starts the HTTP server.
func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Streaming subscription catalog API",
		Long:          "Serves a read-only catalog of streaming subscriptions with filters, spend totals and status badges.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				logger.SetLevel(logger.ParseLevel(logLevel))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(
		newServeCmd(),
		newListCmd(),
		newSummaryCmd(),
		newSeedCmd(),
		newValidateCmd(),
	)

	return cmd
}

// loadCatalog reads the configured source once and validates it.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	src, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s catalog source: %w", cfg.CatalogSource, err)
	}
	defer src.Close()

	return readCatalog(ctx, src)
}

func readCatalog(ctx context.Context, src storage.Source) (*catalog.Catalog, error) {
	subs, err := src.LoadSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	deps, err := src.LoadDeployments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployments: %w", err)
	}

	cat, err := catalog.New(subs, deps)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}

func catalogFromEnv(ctx context.Context) (*catalog.Catalog, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	return loadCatalog(ctx, cfg)
}
