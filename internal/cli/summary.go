package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ott-manager.app/api/internal/catalog"
	"ott-manager.app/api/internal/presentation"
	"ott-manager.app/api/models"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print active spend and record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalogFromEnv(cmd.Context())
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), cat.Records())
		},
	}
}

func printSummary(w io.Writer, records []models.Subscription) error {
	b := catalog.Summarize(records)

	fmt.Fprintf(w, "Active spend: %s\n", presentation.FormatPrice(b.TotalActiveSpend, ""))
	fmt.Fprintf(w, "Total apps:   %d\n", b.Total)
	for _, s := range models.SubscriptionStatuses {
		fmt.Fprintf(w, "  %-8s %d\n", s, b.ByStatus[s])
	}
	_, err := fmt.Fprintf(w, "Categories:   %d\n", len(b.ByCategory))
	return err
}
