// Package commands implements the atlas CLI commands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/atlas/cli/internal/config"
	"github.com/satishbabariya/atlas/cli/internal/ui"
	"github.com/satishbabariya/atlas/internal/debug"
	"github.com/satishbabariya/atlas/query/ast"
	"github.com/satishbabariya/atlas/runtime/client"
)

// ErrAborted is returned when a destructive statement is not confirmed
var ErrAborted = errors.New("aborted")

// app holds the state shared by the commands of one invocation
type app struct {
	configPath string
	connection string
	debug      bool

	cfg      *config.Config
	registry *client.Registry

	// confirm asks a yes/no question
	confirm func(message string) (bool, error)
}

// Execute is the main entry point for the CLI
func Execute(ctx context.Context) error {
	a := &app{confirm: surveyConfirm}
	defer a.close()

	if err := newRootCommand(a).ExecuteContext(ctx); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "atlas",
		Short: "Build and run parameterized SQL statements",
		Long: `atlas builds SELECT, INSERT, UPDATE and DELETE statements from flags,
shows the SQL with its bound parameters and runs it against a configured
MySQL or SQLite connection.

Connections are read from .atlas.yaml, ATLAS_* variables and DATABASE_URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: .atlas.yaml)")
	rootCmd.PersistentFlags().StringVarP(&a.connection, "connection", "c", "", "connection name (default: the configured default)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "log every statement")

	rootCmd.AddCommand(
		newVersionCommand(),
		newConfigCommand(a),
		newPingCommand(a),
		newHumanizeCommand(),
		newSelectCommand(a),
		newInsertCommand(a),
		newUpdateCommand(a),
		newDeleteCommand(a),
	)

	return rootCmd
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.debug {
		cfg.Debug = true
	}
	debug.Init(cfg.Debug)
	debug.Debug("config loaded", "connections", cfg.Names(), "default", cfg.Default)

	a.cfg = cfg
	return nil
}

// db opens the selected connection
func (a *app) db() (*client.DB, error) {
	if a.registry == nil {
		r, err := a.cfg.Registry()
		if err != nil {
			return nil, err
		}
		a.registry = r
	}
	return a.registry.Instance(a.connection)
}

func (a *app) close() {
	if a.registry != nil {
		if err := a.registry.Close(); err != nil {
			debug.Warn("failed to close connections", "error", err)
		}
		a.registry = nil
	}
}

func surveyConfirm(message string) (bool, error) {
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// confirmUnfiltered asks before a statement without WHERE touches every row
func (a *app) confirmUnfiltered(verb, table string, yes bool) error {
	if yes {
		return nil
	}
	ok, err := a.confirm(fmt.Sprintf("%s without --where affects every row of %s. Continue?", verb, table))
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

// statement is what the statement commands print in dry-run mode
type statement interface {
	Build() (string, []any, error)
	Humanize() string
}

func printStatement(s statement) error {
	query, params, err := s.Build()
	if err != nil {
		return err
	}

	ui.PrintSection("SQL")
	ui.PrintSQL(query)
	ui.PrintSection("Parameters")
	ui.PrintParameters(params)
	ui.PrintSection("Statement")
	ui.PrintSQL(s.Humanize())
	return nil
}

// parseOrder parses `column` or `column:asc|desc`
func parseOrder(s string) (string, ast.Dir, error) {
	column, dir, found := strings.Cut(s, ":")
	if column == "" {
		return "", ast.DirNone, fmt.Errorf("invalid order %q", s)
	}
	if !found {
		return column, ast.DirNone, nil
	}
	switch strings.ToUpper(dir) {
	case string(ast.Asc):
		return column, ast.Asc, nil
	case string(ast.Desc):
		return column, ast.Desc, nil
	}
	return "", ast.DirNone, fmt.Errorf("invalid order direction %q: expected asc or desc", dir)
}

// parseColumn parses `name` or `name AS alias`
func parseColumn(s string) (string, string) {
	s = strings.TrimSpace(s)
	if i := strings.Index(strings.ToUpper(s), " AS "); i > 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+4:])
	}
	return s, ""
}
