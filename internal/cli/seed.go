package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ott-manager.app/api/internal/logger"
	"ott-manager.app/api/storage"
)

func newSeedCmd() *cobra.Command {
	var (
		from     string
		database string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a catalog file, or the bundled sample, into the SQLite database",
		Long: `Seed replaces the SQLite catalog with the records from --from, or with
the bundled sample catalog when --from is omitted. The catalog is
validated before anything is written. Run it while the server is stopped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if database == "" {
				database = os.Getenv("DATABASE_URL")
			}
			if database == "" {
				return fmt.Errorf("--database or DATABASE_URL is required")
			}

			var (
				src storage.Source
				err error
			)
			if from == "" {
				src, err = storage.NewSampleStorage()
			} else {
				src, err = storage.NewFileStorage(from)
			}
			if err != nil {
				return err
			}
			defer src.Close()

			cat, err := readCatalog(cmd.Context(), src)
			if err != nil {
				return err
			}

			db, err := storage.NewSQLiteStorage(database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Seed(cmd.Context(), cat.Records(), cat.Deployments()); err != nil {
				return err
			}

			logger.Info("Catalog seeded", map[string]interface{}{
				"database":      database,
				"subscriptions": cat.Len(),
				"deployments":   len(cat.Deployments()),
			})
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d subscriptions and %d deployments into %s\n",
				cat.Len(), len(cat.Deployments()), database)
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Catalog file (.json, .yaml, .yml); defaults to the bundled sample")
	cmd.Flags().StringVar(&database, "database", "", "SQLite database path; defaults to DATABASE_URL")

	return cmd
}
