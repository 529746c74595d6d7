package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"INFO", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		log, err := New(&Config{Level: "info", Format: "json", Output: "stdout"})
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("console format", func(t *testing.T) {
		log, err := New(&Config{Level: "debug", Format: "console", Output: "stderr"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log, err := New(&Config{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		log.Info("written to file")
		require.NoError(t, Sync(log))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "written to file")
	})

	t.Run("unwritable file path falls back to stdout", func(t *testing.T) {
		log, err := New(&Config{Level: "info", Format: "json", Output: "/nonexistent-dir/app.log"})
		require.NoError(t, err)
		require.NotNil(t, log)
	})
}

func TestNewForEnvironment(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		log, err := NewForEnvironment("production")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("development", func(t *testing.T) {
		log, err := NewForEnvironment("development")
		require.NoError(t, err)
		require.NotNil(t, log)
	})
}

func TestDefaultConfigs(t *testing.T) {
	dev := DefaultConfig()
	assert.Equal(t, "console", dev.Format)

	prod := ProductionConfig()
	assert.Equal(t, "json", prod.Format)
	assert.Equal(t, "stdout", prod.Output)
}
