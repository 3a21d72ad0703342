package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "mysql", cfg.Driver)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 10*time.Minute, cfg.ConnMaxIdleTime)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "mysql",
			cfg:  Config{Driver: "mysql", DSN: "root:secret@tcp(127.0.0.1:3306)/app?parseTime=true"},
		},
		{
			name: "mariadb alias",
			cfg:  Config{Driver: "mariadb", DSN: "root@/app"},
		},
		{
			name: "sqlite",
			cfg:  Config{Driver: "sqlite", DSN: "file:test.db"},
		},
		{
			name:    "unknown driver",
			cfg:     Config{Driver: "postgres", DSN: "postgres://localhost"},
			wantErr: ErrUnsupportedDriver,
		},
		{
			name:    "empty dsn",
			cfg:     Config{Driver: "sqlite3"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "malformed mysql dsn",
			cfg:     Config{Driver: "mysql", DSN: "not a dsn"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative pool size",
			cfg:     Config{Driver: "sqlite3", DSN: ":memory:", MaxOpenConns: -1},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "more idle than open",
			cfg:     Config{Driver: "sqlite3", DSN: ":memory:", MaxOpenConns: 2, MaxIdleConns: 3},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(Config{Driver: "oracle", DSN: "x"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	assert.Equal(t, DefaultConnection, r.DefaultName())

	r.Configure("default", memoryConfig())
	r.Configure("test", memoryConfig())
	assert.Equal(t, []string{"default", "test"}, r.Names())

	cfg, ok := r.Configuration("test")
	require.True(t, ok)
	assert.Equal(t, memoryConfig(), cfg)

	_, ok = r.Configuration("missing")
	assert.False(t, ok)

	def, err := r.Instance("")
	require.NoError(t, err)
	test, err := r.Instance("test")
	require.NoError(t, err)

	assert.NotSame(t, def, test)

	again, err := r.Instance("default")
	require.NoError(t, err)
	assert.Same(t, def, again)

	r.SetDefaultName("test")
	assert.Equal(t, "test", r.DefaultName())
	byDefault, err := r.Instance("")
	require.NoError(t, err)
	assert.Same(t, test, byDefault)

	_, err = r.Instance("missing")
	assert.ErrorIs(t, err, ErrUnknownConnection)

	r.Configure("broken", Config{Driver: "oracle"})
	_, err = r.Instance("broken")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)

	require.NoError(t, r.Close())

	reopened, err := r.Instance("test")
	require.NoError(t, err)
	assert.NotSame(t, test, reopened)
}

func TestRegistry_ConcurrentInstance(t *testing.T) {
	r := NewRegistry()
	defer r.Close()
	r.Configure("default", memoryConfig())

	const workers = 16
	var (
		wg   sync.WaitGroup
		dbs  = make([]*DB, workers)
		errs = make([]error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dbs[i], errs[i] = r.Instance("default")
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, dbs[0], dbs[i])
	}
}
