package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("slog filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New("slog", "warn", &buf)
		require.NoError(t, err)

		log.Info(context.Background(), "hidden")
		log.Warn(context.Background(), "shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("zap backend", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New("zap", "debug", &buf)
		require.NoError(t, err)
		require.IsType(t, &ZapLogger{}, log)

		log.Debug(context.Background(), "zap-line", "k", "v")
		assert.Contains(t, buf.String(), "zap-line")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := New("logrus", "info", &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New("slog", "loud", &bytes.Buffer{})
		require.Error(t, err)
	})
}
