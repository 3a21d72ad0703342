package config

import (
	"os"
	"testing"
	"time"

	"github.com/satishbabariya/atlas/runtime/client"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYAML = `
default: primary
debug: true
connections:
  primary:
    driver: mysql
    dsn: root:secret@tcp(127.0.0.1:3306)/app
    max_open_conns: 10
    max_idle_conns: 2
    conn_max_lifetime: 1h
  local:
    driver: sqlite3
    dsn: ":memory:"
    cache_statements: true
`

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	previous := AppFs
	fs := afero.NewMemMapFs()
	AppFs = fs
	t.Cleanup(func() { AppFs = previous })

	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	t.Setenv("DATABASE_DRIVER", "")
	require.NoError(t, os.Unsetenv("DATABASE_DRIVER"))
	return fs
}

func TestLoad_File(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/atlas.yaml", []byte(configYAML), 0o644))

	cfg, err := Load("/etc/atlas.yaml")
	require.NoError(t, err)

	assert.Equal(t, "primary", cfg.Default)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"local", "primary"}, cfg.Names())

	primary := cfg.Connections["primary"]
	assert.Equal(t, "mysql", primary.Driver)
	assert.Equal(t, "root:secret@tcp(127.0.0.1:3306)/app", primary.DSN)
	assert.Equal(t, 10, primary.MaxOpenConns)
	assert.Equal(t, 2, primary.MaxIdleConns)
	assert.Equal(t, time.Hour, primary.ConnMaxLifetime)
	// Unset keys keep the defaults
	assert.Equal(t, client.DefaultConfig().ConnMaxIdleTime, primary.ConnMaxIdleTime)

	local := cfg.Connections["local"]
	assert.Equal(t, "sqlite3", local.Driver)
	assert.Equal(t, ":memory:", local.DSN)
	assert.True(t, local.CacheStatements)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	useMemFs(t)

	_, err := Load("/nowhere/atlas.yaml")
	assert.Error(t, err)
}

func TestLoad_Dotenv(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("DATABASE_URL=root@/from_env\nDATABASE_DRIVER=mysql\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	require.Contains(t, cfg.Connections, client.DefaultConnection)
	conn := cfg.Connections[client.DefaultConnection]
	assert.Equal(t, "root@/from_env", conn.DSN)
	assert.Equal(t, "mysql", conn.Driver)

	// .env.local wins over .env
	require.NoError(t, afero.WriteFile(fs, ".env.local", []byte("DATABASE_URL=root@/from_local\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "root@/from_local", cfg.Connections[client.DefaultConnection].DSN)
}

func TestLoad_EnvironmentOverridesDefaultConnection(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/atlas.yaml", []byte(configYAML), 0o644))
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("DATABASE_URL=root@/ignored\n"), 0o644))
	t.Setenv("DATABASE_URL", "root@/from_process")

	cfg, err := Load("/etc/atlas.yaml")
	require.NoError(t, err)

	primary := cfg.Connections["primary"]
	assert.Equal(t, "root@/from_process", primary.DSN)
	assert.Equal(t, 10, primary.MaxOpenConns)
	assert.Equal(t, ":memory:", cfg.Connections["local"].DSN)
}

func TestLoad_Nothing(t *testing.T) {
	useMemFs(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, client.DefaultConnection, cfg.Default)
	assert.Empty(t, cfg.Connections)

	_, err = cfg.Registry()
	assert.ErrorIs(t, err, ErrNoConnections)
}

func TestRegistry(t *testing.T) {
	cfg := &Config{
		Default: "local",
		Debug:   true,
		Connections: map[string]client.Config{
			"local": {Driver: "sqlite3", DSN: ":memory:"},
		},
	}

	r, err := cfg.Registry()
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "local", r.DefaultName())
	conn, ok := r.Configuration("local")
	require.True(t, ok)
	assert.True(t, conn.Debug)

	db, err := r.Instance("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", db.Driver())
}
