package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"ott-manager.app/api/internal/catalog"
	"ott-manager.app/api/internal/logger"
	"ott-manager.app/api/internal/presentation"
	"ott-manager.app/api/models"
)

// ANSI palette indices for badge color tokens.
var badgeColors = map[string]lipgloss.Color{
	presentation.ColorGreen:  lipgloss.Color("2"),
	presentation.ColorRed:    lipgloss.Color("1"),
	presentation.ColorBlue:   lipgloss.Color("4"),
	presentation.ColorYellow: lipgloss.Color("3"),
	presentation.ColorGray:   lipgloss.Color("8"),
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func newListCmd() *cobra.Command {
	var (
		category string
		status   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog filtered by category and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalogFromEnv(cmd.Context())
			if err != nil {
				return err
			}

			filter, ok := catalog.ParseStatusFilter(status)
			if !ok {
				logger.Warn("Unrecognized status filter, showing all", map[string]interface{}{
					"status": status,
				})
			}

			records := catalog.Filter(cat.Records(), category, filter)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return printSubscriptions(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().StringVar(&category, "category", catalog.All, "Category to show, or all")
	cmd.Flags().StringVar(&status, "status", catalog.All, "Status to show (all, active, expired, trial)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")

	return cmd
}

func printSubscriptions(w io.Writer, records []models.Subscription) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No apps found")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CATEGORY", "PRICE", "STATUS", "RENEWS", "RATING")

	for _, r := range records {
		renews := ""
		if r.IsActive() {
			renews = r.NextRenewal
		}
		t.Row(
			r.ID,
			r.Name,
			r.Category,
			presentation.FormatPrice(r.Price, r.BillingCycle),
			string(r.Status),
			renews,
			fmt.Sprintf("%.1f", r.Rating),
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		style := lipgloss.NewStyle().Padding(0, 1)
		if col == 4 && row >= 0 && row < len(records) {
			badge := presentation.ClassifySubscription(string(records[row].Status))
			style = style.Foreground(badgeColors[badge.Color])
		}
		return style
	})

	_, err := fmt.Fprintln(w, t.String())
	return err
}
