package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/logger"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String()
}

func TestInitJSONLoggerProducesJSON(t *testing.T) {
	out := captureStdout(t, func() {
		logger.InitJSONLogger(false)
		slog.Info("product stored", slog.String("image", "/uploads/1.png"))
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "product stored", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "/uploads/1.png", entry["image"])
}

func TestInitJSONLoggerDebugLevel(t *testing.T) {
	out := captureStdout(t, func() {
		logger.InitJSONLogger(false)
		slog.Debug("hidden")
	})
	assert.Empty(t, out, "debug entries are dropped at info level")

	out = captureStdout(t, func() {
		logger.InitJSONLogger(true)
		slog.Debug("visible")
	})
	assert.Contains(t, out, "visible")
}
