package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/planner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{name: "defaults", args: nil, want: options{}},
		{name: "config and migrate", args: []string{"-config", "planner.yaml", "-migrate", "up"},
			want: options{configPath: "planner.yaml", migrate: "up"}},
		{name: "unknown flag", args: []string{"-verbose"}, wantErr: true},
		{name: "stray argument", args: []string{"serve"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFlags(tc.args, io.Discard)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	t.Parallel()
	_, err := parseFlags([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestLoadAppConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  log_level: debug
storage:
  backend: memory
`), 0o600))

	cfg, err := loadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, config.BackendMemory, cfg.Storage.Backend)

	_, err = loadAppConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunMigrationsNeedsDatabase(t *testing.T) {
	t.Parallel()

	cfg := testConfig("")
	err := runMigrations(context.Background(), cfg, "up", discardLogger())
	assert.ErrorIs(t, err, config.ErrDatabaseURLRequired)

	err = runMigrations(context.Background(), cfg, "create", discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown migration command "create"`)
}
