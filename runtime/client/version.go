package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

var ErrVersionTooOld = errors.New("database server version too old")

var versionQueries = map[string]string{
	"mysql":   "SELECT VERSION()",
	"sqlite3": "SELECT sqlite_version()",
}

// ServerVersion queries the version of the database server
func (c *DB) ServerVersion(ctx context.Context) (*version.Version, error) {
	query, ok := versionQueries[c.driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.driver)
	}

	var raw string
	if err := c.db.QueryRowContext(ctx, query).Scan(&raw); err != nil {
		return nil, fmt.Errorf("failed to query server version: %w", err)
	}
	return parseServerVersion(raw)
}

// CheckMinimumVersion fails with ErrVersionTooOld if the server is older than minimum
func (c *DB) CheckMinimumVersion(ctx context.Context, minimum string) error {
	required, err := version.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum version %q: %w", minimum, err)
	}

	current, err := c.ServerVersion(ctx)
	if err != nil {
		return err
	}

	if current.LessThan(required) {
		return fmt.Errorf("%w: %s < %s", ErrVersionTooOld, current, required)
	}
	return nil
}

// parseServerVersion drops vendor suffixes such as 8.0.36-0ubuntu0.22.04.1
// or 10.11.6-MariaDB before parsing.
func parseServerVersion(raw string) (*version.Version, error) {
	raw, _, _ = strings.Cut(strings.TrimSpace(raw), "-")
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server version %q: %w", raw, err)
	}
	return v, nil
}
