package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/atlas/cli/internal/filter"
	"github.com/satishbabariya/atlas/cli/internal/ui"
	"github.com/satishbabariya/atlas/query/builder"
)

type deleteOptions struct {
	where  []string
	order  []string
	limit  int
	yes    bool
	dryRun bool
}

func newDeleteCommand(a *app) *cobra.Command {
	opts := &deleteOptions{}

	cmd := &cobra.Command{
		Use:     "delete <table>",
		Short:   "Build and run a DELETE statement",
		Example: `  atlas delete sessions --where "expires_at < '2024-01-01'" --dry-run`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var db builder.Database
			if !opts.dryRun {
				conn, err := a.db()
				if err != nil {
					return err
				}
				db = conn
			}

			q, err := buildDelete(db, args[0], opts)
			if err != nil {
				return err
			}
			if opts.dryRun {
				return printStatement(q)
			}

			if len(opts.where) == 0 {
				if err := a.confirmUnfiltered("DELETE", args[0], opts.yes); err != nil {
					return err
				}
			}

			res, err := q.Exec(cmd.Context())
			if err != nil {
				return err
			}
			affected, _ := res.RowsAffected()
			ui.PrintSuccess("Deleted %d row(s)", affected)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&opts.where, "where", "w", nil, "filter such as \"id = 1\" (repeatable)")
	cmd.Flags().StringSliceVar(&opts.order, "order", nil, "ORDER BY columns, `column[:asc|desc]`")
	cmd.Flags().IntVar(&opts.limit, "limit", -1, "maximum number of rows")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "do not ask before deleting every row")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the statement without running it")

	return cmd
}

func buildDelete(db builder.Database, table string, opts *deleteOptions) (*builder.Delete, error) {
	q := builder.NewDelete(db).From(table)

	where, err := filter.ParseAll(opts.where)
	if err != nil {
		return nil, err
	}
	for _, c := range where {
		q.WhereCondition(c)
	}

	for _, order := range opts.order {
		column, dir, err := parseOrder(order)
		if err != nil {
			return nil, err
		}
		q.Order(column, dir)
	}

	if opts.limit >= 0 {
		q.Limit(opts.limit)
	}
	return q, nil
}
