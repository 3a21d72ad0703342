package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/atlas/cli/internal/ui"
	"github.com/satishbabariya/atlas/cli/internal/version"
)

func newVersionCommand() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if full {
				fmt.Fprintln(ui.Out, info.FullString())
				return nil
			}
			fmt.Fprintln(ui.Out, info.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "print build details")

	return cmd
}
