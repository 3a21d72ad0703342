package client

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrUnknownConnection = errors.New("unknown connection")

// DefaultConnection is the name Instance uses when none is given
const DefaultConnection = "default"

// Registry holds named connection configurations and opens each connection
// once, on first use. It is safe for concurrent use.
type Registry struct {
	mu          sync.Mutex
	defaultName string
	configs     map[string]Config
	instances   map[string]*DB
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		defaultName: DefaultConnection,
		configs:     make(map[string]Config),
		instances:   make(map[string]*DB),
	}
}

// Configure stores the configuration of a named connection. An already
// opened connection of that name keeps its old configuration until the
// registry is closed.
func (r *Registry) Configure(name string, cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[name] = cfg
}

// Configuration returns the configuration of a named connection
func (r *Registry) Configuration(name string) (Config, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[name]
	return cfg, ok
}

// Names returns the configured connection names, sorted
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SetDefaultName changes the connection Instance opens without a name
func (r *Registry) SetDefaultName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultName = name
}

// DefaultName returns the name of the default connection
func (r *Registry) DefaultName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.defaultName
}

// Instance returns the connection of the given name, or of the default name
// when name is empty. Each name is opened once; later calls return the same DB.
func (r *Registry) Instance(name string) (*DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		name = r.defaultName
	}
	if db, ok := r.instances[name]; ok {
		return db, nil
	}

	cfg, ok := r.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnection, name)
	}

	db, err := Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection %q: %w", name, err)
	}
	r.instances[name] = db
	return db, nil
}

// Close closes every opened connection
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, db := range r.instances {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection %q: %w", name, err))
		}
	}
	r.instances = make(map[string]*DB)
	return errors.Join(errs...)
}
