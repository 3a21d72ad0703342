package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/atlas/cli/internal/filter"
	"github.com/satishbabariya/atlas/cli/internal/ui"
	"github.com/satishbabariya/atlas/query/builder"
	"github.com/satishbabariya/atlas/runtime/client"
)

type selectOptions struct {
	columns  []string
	where    []string
	groupBy  []string
	having   []string
	order    []string
	limit    int
	offset   int
	distinct bool
	dryRun   bool
}

func newSelectCommand(a *app) *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select <table> [alias]",
		Short: "Build and run a SELECT statement",
		Example: `  atlas select users --columns id,name --where "age >= 18" --order name:desc --limit 10
  atlas select users --columns "COUNT(*) AS total" --group status --dry-run`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var db builder.Database
			if !opts.dryRun {
				conn, err := a.db()
				if err != nil {
					return err
				}
				db = conn
			}

			q, err := buildSelect(db, args, opts)
			if err != nil {
				return err
			}
			if opts.dryRun {
				return printStatement(q)
			}

			rows, err := q.Rows(cmd.Context())
			if err != nil {
				return err
			}
			columns, records, err := client.ScanMaps(rows)
			if err != nil {
				return err
			}
			if err := ui.PrintRows(columns, records); err != nil {
				return err
			}
			ui.PrintInfo("%d row(s)", len(records))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&opts.columns, "columns", nil, "columns to select, `name` or `name AS alias` (default *)")
	cmd.Flags().StringArrayVarP(&opts.where, "where", "w", nil, "filter such as \"age >= 18\" (repeatable)")
	cmd.Flags().StringSliceVar(&opts.groupBy, "group", nil, "GROUP BY columns")
	cmd.Flags().StringArrayVar(&opts.having, "having", nil, "HAVING filter (repeatable)")
	cmd.Flags().StringSliceVar(&opts.order, "order", nil, "ORDER BY columns, `column[:asc|desc]`")
	cmd.Flags().IntVar(&opts.limit, "limit", -1, "maximum number of rows")
	cmd.Flags().IntVar(&opts.offset, "offset", -1, "number of rows to skip")
	cmd.Flags().BoolVar(&opts.distinct, "distinct", false, "SELECT DISTINCT")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the statement without running it")

	return cmd
}

func buildSelect(db builder.Database, args []string, opts *selectOptions) (*builder.Select, error) {
	q := builder.NewSelect(db).From(args[0], args[1:]...)
	if opts.distinct {
		q.Distinct()
	}

	for _, column := range opts.columns {
		name, alias := parseColumn(column)
		if isExpression(name) {
			q.ColumnExpr(name, optional(alias)...)
		} else {
			q.Column(name, optional(alias)...)
		}
	}

	where, err := filter.ParseAll(opts.where)
	if err != nil {
		return nil, err
	}
	for _, c := range where {
		q.WhereCondition(c)
	}

	for _, column := range opts.groupBy {
		q.GroupBy(column)
	}

	having, err := filter.ParseAll(opts.having)
	if err != nil {
		return nil, err
	}
	for _, c := range having {
		q.HavingCondition(c)
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
	if opts.offset >= 0 {
		q.Offset(opts.offset)
	}
	return q, nil
}

// isExpression reports whether a column must be emitted verbatim, as for
// COUNT(*)
func isExpression(name string) bool {
	for _, r := range name {
		switch r {
		case '(', ')', ' ', '+', '-', '/':
			return true
		}
	}
	return false
}

func optional(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
