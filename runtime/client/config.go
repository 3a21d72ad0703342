package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrUnsupportedDriver = errors.New("unsupported driver")
	ErrInvalidConfig     = errors.New("invalid connection config")
)

// Config holds the settings of one database connection.
type Config struct {
	// Driver is "mysql" or "sqlite3".
	Driver string `mapstructure:"driver"`
	// DSN is the driver specific data source name.
	DSN string `mapstructure:"dsn"`
	// MaxOpenConns is the maximum number of open connections (0 = unlimited).
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// ConnMaxLifetime is the maximum lifetime of a connection.
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// ConnMaxIdleTime is the maximum idle time of a connection.
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	// CacheStatements keeps prepared statements around, keyed by SQL text.
	CacheStatements bool `mapstructure:"cache_statements"`
	// Debug logs every statement through LoggingMiddleware on the
	// internal/debug logger, which only emits once debug.Init(true) ran.
	Debug bool `mapstructure:"debug"`
}

// DefaultConfig returns a MySQL configuration with sensible pool settings.
func DefaultConfig() Config {
	return Config{
		Driver:          "mysql",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}
}

// Validate checks the driver, the DSN and the pool settings
func (c Config) Validate() error {
	driver := driverName(c.Driver)
	if driver == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("%w: empty dsn", ErrInvalidConfig)
	}
	if driver == "mysql" {
		if _, err := mysql.ParseDSN(c.DSN); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		return fmt.Errorf("%w: negative connection limit", ErrInvalidConfig)
	}
	if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("%w: max_idle_conns %d exceeds max_open_conns %d", ErrInvalidConfig, c.MaxIdleConns, c.MaxOpenConns)
	}
	return nil
}

// driverName maps accepted driver names to registered database/sql drivers
func driverName(driver string) string {
	switch driver {
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return ""
	}
}
