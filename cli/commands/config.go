package commands

import (
	"github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/atlas/cli/internal/ui"
)

func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "List the configured connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.Connections) == 0 {
				ui.PrintWarning("No connections configured. Create .atlas.yaml or set DATABASE_URL.")
				return nil
			}

			rows := make([][]string, 0, len(a.cfg.Connections))
			for _, name := range a.cfg.Names() {
				conn := a.cfg.Connections[name]
				def := ""
				if name == a.cfg.Default {
					def = "*"
				}
				rows = append(rows, []string{def, name, conn.Driver, redactDSN(conn.Driver, conn.DSN)})
			}
			return ui.PrintTable([]string{"", "NAME", "DRIVER", "DSN"}, rows)
		},
	}
}

// redactDSN hides the password of a MySQL DSN
func redactDSN(driver, dsn string) string {
	if driver != "mysql" && driver != "mariadb" {
		return dsn
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil || cfg.Passwd == "" {
		return dsn
	}
	cfg.Passwd = "****"
	return cfg.FormatDSN()
}
