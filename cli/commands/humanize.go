package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/atlas/cli/internal/filter"
	"github.com/satishbabariya/atlas/cli/internal/ui"
	"github.com/satishbabariya/atlas/query/compiler"
)

func newHumanizeCommand() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "humanize <sql> [params...]",
		Short: "Substitute parameters into a statement for reading",
		Long: `Substitute each ? of the statement with the matching parameter, quoted
for reading. Parameters are literals: 'text', 42, 1.5, TRUE, FALSE or NULL.

The output is for logs and debugging only; never execute it.`,
		Example: `  atlas humanize "SELECT * FROM users WHERE id = ? AND name = ?" 1 "'bob'"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make([]any, len(args)-1)
			for i, literal := range args[1:] {
				v, err := filter.ParseValue(literal)
				if err != nil {
					return err
				}
				params[i] = v
			}

			out := compiler.Humanize(args[0], params)
			if pretty {
				return ui.PrintSQLMarkdown(out)
			}
			fmt.Fprintln(ui.Out, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "render with syntax highlighting")

	return cmd
}
