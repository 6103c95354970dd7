package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l, c, err := New(Options{Level: "debug", Console: &buf})
	require.NoError(t, err)
	defer c.Close()

	cl := Component(l, "effects")
	cl.Debug().Str("scene", "party").Msg("pass")
	out := buf.String()
	assert.Contains(t, out, "pass")
	assert.Contains(t, out, "component=")
	assert.Contains(t, out, "effects")
	assert.Contains(t, out, "party")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := New(Options{Level: "warn", Console: &buf})
	require.NoError(t, err)

	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestBadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestFileOutputIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenestrip.log")
	l, c, err := New(Options{File: path, Console: os.Stderr})
	require.NoError(t, err)

	cl := Component(l, "tui")
	cl.Info().Msg("started")
	require.NoError(t, c.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var ev map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &ev))
	assert.Equal(t, "tui", ev["component"])
	assert.Equal(t, "started", ev["message"])
	assert.Contains(t, ev, "time")
}

func TestNoSinkDiscards(t *testing.T) {
	l, _, err := New(Options{})
	require.NoError(t, err)
	l.Error().Msg("nowhere")
}
