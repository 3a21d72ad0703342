// Package config loads the connections used by the atlas CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/satishbabariya/atlas/runtime/client"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem the configuration and .env files are read from
var AppFs = afero.NewOsFs()

// ErrNoConnections is returned when neither the config file nor the
// environment names a database.
var ErrNoConnections = errors.New("no connections configured")

// Config holds the application configuration
type Config struct {
	// Default is the connection used when none is named.
	Default string
	// Debug turns on statement logging for every connection.
	Debug bool
	// Connections maps a connection name to its settings.
	Connections map[string]client.Config
}

// Load reads the configuration. With an empty path the file .atlas.yaml is
// searched in the working directory, the home directory and
// ~/.config/atlas; a missing file is not an error. Values may be
// overridden with ATLAS_* variables, and DATABASE_URL replaces the DSN of
// the default connection. .env and .env.local are read first, .env.local
// winning over the process environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".atlas")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "atlas"))
		}
	}

	v.SetEnvPrefix("ATLAS")
	v.AutomaticEnv()

	v.SetDefault("default", client.DefaultConnection)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	env, err := loadDotenv()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Default:     v.GetString("default"),
		Debug:       v.GetBool("debug"),
		Connections: make(map[string]client.Config),
	}

	for name := range v.GetStringMap("connections") {
		conn := client.DefaultConfig()
		if err := v.UnmarshalKey("connections."+name, &conn); err != nil {
			return nil, fmt.Errorf("failed to decode connection %q: %w", name, err)
		}
		cfg.Connections[name] = conn
	}

	if url, ok := env.lookup("DATABASE_URL"); ok && url != "" {
		conn, exists := cfg.Connections[cfg.Default]
		if !exists {
			conn = client.DefaultConfig()
		}
		conn.DSN = url
		if driver, ok := env.lookup("DATABASE_DRIVER"); ok && driver != "" {
			conn.Driver = driver
		}
		cfg.Connections[cfg.Default] = conn
	}

	return cfg, nil
}

// Names returns the connection names in sorted order
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Connections))
	for name := range c.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry builds a connection registry from the configuration. The
// connections are opened lazily by the registry.
func (c *Config) Registry() (*client.Registry, error) {
	if len(c.Connections) == 0 {
		return nil, ErrNoConnections
	}

	r := client.NewRegistry()
	for name, conn := range c.Connections {
		conn.Debug = conn.Debug || c.Debug
		r.Configure(name, conn)
	}
	r.SetDefaultName(c.Default)
	return r, nil
}

// dotenv holds the variables of .env and .env.local
type dotenv struct {
	base  map[string]string
	local map[string]string
}

// lookup resolves key with the priority .env.local, process environment, .env
func (d dotenv) lookup(key string) (string, bool) {
	if v, ok := d.local[key]; ok {
		return v, true
	}
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := d.base[key]
	return v, ok
}

func loadDotenv() (dotenv, error) {
	base, err := readDotenv(".env")
	if err != nil {
		return dotenv{}, err
	}
	local, err := readDotenv(".env.local")
	if err != nil {
		return dotenv{}, err
	}
	return dotenv{base: base, local: local}, nil
}

func readDotenv(name string) (map[string]string, error) {
	if _, err := AppFs.Stat(name); err != nil {
		return nil, nil
	}
	data, err := afero.ReadFile(AppFs, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return values, nil
}
