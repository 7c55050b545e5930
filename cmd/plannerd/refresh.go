package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tour-planner-backend/internal/catalog"
)

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the place catalog once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			appStore, closeDB, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			svc, err := catalog.NewService(a.cfg, appStore)
			if err != nil {
				return errors.Wrap(err, "failed to create catalog service")
			}
			n, err := svc.RefreshOnce(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "upserted %d places for %s\n", n, a.cfg.Planner.City)
			return nil
		},
	}
}
