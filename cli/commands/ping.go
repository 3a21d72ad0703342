package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/atlas/cli/internal/ui"
)

func newPingCommand(a *app) *cobra.Command {
	var minVersion string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the connection is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := a.db()
			if err != nil {
				return err
			}
			if err := db.Ping(ctx); err != nil {
				return err
			}

			v, err := db.ServerVersion(ctx)
			if err != nil {
				return err
			}
			ui.PrintSuccess("Connected (%s %s)", db.Driver(), v.String())

			if minVersion != "" {
				if err := db.CheckMinimumVersion(ctx, minVersion); err != nil {
					return err
				}
				ui.PrintSuccess("Server version is at least %s", minVersion)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&minVersion, "min-version", "", "fail if the server is older than this version")

	return cmd
}
