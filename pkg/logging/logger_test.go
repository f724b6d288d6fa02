package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Format: "json", Component: "seed"}, &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	l.WithContext(ctx).WithError(errors.New("boom")).WithDuration(1500 * time.Millisecond).Info("hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "hello", lines[0]["msg"])
	assert.Equal(t, "seed", lines[0]["component"])
	assert.Equal(t, "req-1", lines[0]["request_id"])
	assert.Equal(t, "boom", lines[0]["error"])
	assert.Equal(t, float64(1500), lines[0]["duration_ms"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Format: "json", Level: "warn"}, &buf)

	l.Info("dropped")
	l.DBQueryLog("find", "pokemons", time.Millisecond, nil)
	l.DBQueryLog("insert", "pokemons", time.Millisecond, errors.New("dup"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "DB operation failed", lines[0]["msg"])
	assert.Equal(t, "insert", lines[0]["operation"])
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Format: "json"}, &buf).Named("api")

	l.HTTPRequestLog("GET", "/api/v2/pokemon", 200, 3*time.Millisecond, "127.0.0.1")
	l.SeedLog("fetched", slog.Int("count", 3))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "api", lines[0]["component"])
	assert.Equal(t, float64(200), lines[0]["status"])
	assert.Equal(t, "fetched", lines[1]["step"])
	assert.Equal(t, float64(3), lines[1]["count"])
}

func TestLogger_WithoutRequestID(t *testing.T) {
	l := Discard()
	assert.Same(t, l, l.WithContext(context.Background()))
	assert.Same(t, l, l.WithError(nil))
}
