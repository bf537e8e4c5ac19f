package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/planner/internal/config"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		configured string
		debug      bool
		info       bool
		warn       bool
	}{
		{"debug", true, true, true},
		{"INFO", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, false},
		{"bogus", false, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.configured, func(t *testing.T) {
			restoreDefault(t)
			buf := &logger.TestLogBuffer{}

			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.configured}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Same(t, l, slog.Default())

			ctx := context.Background()
			assert.Equal(t, tc.debug, l.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tc.info, l.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tc.warn, l.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestSetupWritesJSON(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, buf)
	require.NoError(t, err)

	l.Info("plan loaded", "subjects", 12)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plan loaded", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.EqualValues(t, 12, entries[0]["subjects"])
}

func TestFromContext(t *testing.T) {
	restoreDefault(t)

	def, defBuf := logger.NewTestLogger()
	slog.SetDefault(def)

	logger.FromContext(context.Background()).Info("no logger in context")
	assert.Contains(t, defBuf.String(), "no logger in context")

	ctx, buf := logger.NewTestContext()
	ctx = logger.WithRequestID(ctx, "req-42")
	logger.FromContext(ctx).Info("with request")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0]["request_id"])
	assert.NotContains(t, defBuf.String(), "with request")
}

func TestFromContextOrDefault(t *testing.T) {
	fallback, buf := logger.NewTestLogger()

	//nolint:staticcheck // a nil context must not panic
	assert.Same(t, fallback, logger.FromContextOrDefault(nil, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))

	stored, _ := logger.NewTestLogger()
	ctx := logger.WithLogger(context.Background(), stored)
	assert.Same(t, stored, logger.FromContextOrDefault(ctx, fallback))

	assert.Empty(t, buf.String())
	assert.Equal(t, "", logger.RequestIDFromContext(context.Background()))
}
