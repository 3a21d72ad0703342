package commands

import (
	"errors"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/atlas/cli/internal/filter"
	"github.com/satishbabariya/atlas/cli/internal/ui"
	"github.com/satishbabariya/atlas/query/builder"
)

type insertOptions struct {
	set      []string
	modifier string
	useSet   bool
	dryRun   bool
}

func newInsertCommand(a *app) *cobra.Command {
	opts := &insertOptions{}

	cmd := &cobra.Command{
		Use:   "insert <table>",
		Short: "Build and run an INSERT statement",
		Example: `  atlas insert users --set name="'alice'" --set age=30
  atlas insert users --set name="'bob'" --type IGNORE --assign --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var db builder.Database
			if !opts.dryRun {
				conn, err := a.db()
				if err != nil {
					return err
				}
				db = conn
			}

			q, err := buildInsert(db, args[0], opts)
			if err != nil {
				return err
			}
			if opts.dryRun {
				return printStatement(q)
			}

			res, err := q.Exec(cmd.Context())
			if err != nil {
				return err
			}
			affected, _ := res.RowsAffected()
			id, err := res.LastInsertId()
			if err != nil {
				ui.PrintSuccess("Inserted %d row(s)", affected)
				return nil
			}
			ui.PrintSuccess("Inserted %d row(s), last insert id %d", affected, id)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&opts.set, "set", "s", nil, "column value, `column=value` (repeatable)")
	cmd.Flags().StringVar(&opts.modifier, "type", "", "modifier after INSERT, such as IGNORE")
	cmd.Flags().BoolVar(&opts.useSet, "assign", false, "use the INSERT ... SET form (MySQL)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the statement without running it")

	return cmd
}

func buildInsert(db builder.Database, table string, opts *insertOptions) (*builder.Insert, error) {
	values, err := assignments(opts.set)
	if err != nil {
		return nil, err
	}

	q := builder.NewInsert(db).Into(table)
	if opts.modifier != "" {
		q.Type(opts.modifier)
	}

	if opts.useSet {
		return q.Set(values), nil
	}

	columns := slices.Sorted(maps.Keys(values))
	row := make([]any, len(columns))
	for i, column := range columns {
		row[i] = values[column]
	}
	return q.Columns(columns...).Values(row...), nil
}

// assignments parses the --set flags into column values
func assignments(flags []string) (map[string]any, error) {
	if len(flags) == 0 {
		return nil, errors.New("at least one --set column=value is required")
	}
	values := make(map[string]any, len(flags))
	for _, flag := range flags {
		column, v, err := filter.ParseAssignment(flag)
		if err != nil {
			return nil, err
		}
		values[column] = v
	}
	return values, nil
}
