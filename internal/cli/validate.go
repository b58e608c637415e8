package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"ott-manager.app/api/internal/catalog"
	"ott-manager.app/api/storage"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog file and report every violation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := storage.NewFileStorage(args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			subs, err := src.LoadSubscriptions(cmd.Context())
			if err != nil {
				return err
			}
			deps, err := src.LoadDeployments(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := catalog.Validate(subs, deps); err != nil {
				var merr *multierror.Error
				if errors.As(err, &merr) {
					for _, e := range merr.Errors {
						fmt.Fprintf(out, "  - %v\n", e)
					}
					return fmt.Errorf("%s: %d violation(s)", args[0], len(merr.Errors))
				}
				return err
			}

			_, err = fmt.Fprintf(out, "%s: %d subscriptions, %d deployments, OK\n", args[0], len(subs), len(deps))
			return err
		},
	}
}
