package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-scenestrip/internal/led"
	"github.com/coreman2200/funtimes-scenestrip/internal/scene"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
driver: screen
count: 12
brightness: 0
start_scene: Party
classifier:
  rules:
    - keywords: ["disco"]
      scene: party
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, led.DriverScreen, c.Driver)
	assert.Equal(t, 12, c.Count)
	assert.Equal(t, 0, c.Brightness, "explicit zero overrides the default")
	assert.Equal(t, 5, c.Speed)
	assert.Equal(t, 18, c.GPIO)
	assert.Equal(t, "GRB", c.ColorOrder)
	assert.Equal(t, scene.Party, c.Scene())
	require.Len(t, c.Classifier.Rules, 1)
	assert.Equal(t, scene.Party, c.Classifier.Rules[0].Scene)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "count: [1, 2"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"driver", func(c *Config) { c.Driver = "dmx" }, "driver"},
		{"count", func(c *Config) { c.Count = 0 }, "count"},
		{"order", func(c *Config) { c.ColorOrder = "RRB" }, "RRB"},
		{"scene", func(c *Config) { c.StartScene = "disco" }, "start_scene"},
		{"brightness", func(c *Config) { c.Brightness = 9 }, "brightness"},
		{"speed", func(c *Config) { c.Speed = 0 }, "speed"},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"rule", func(c *Config) { c.Classifier.Rules = []scene.Rule{{Scene: scene.Off}} }, "classifier.rules[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := Default()
	c.Count = -1
	c.Speed = 11
	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "count")
	assert.Contains(t, err.Error(), "speed")
}

func TestSaveRoundTripsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, Default()))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLEDConfig(t *testing.T) {
	c := Default()
	c.SPI.Port = "/dev/spidev0.1"
	lc := c.LED()

	assert.Equal(t, led.DriverSPI, lc.Driver)
	assert.Equal(t, 60, lc.Count)
	assert.Equal(t, led.GRB, lc.Order)
	assert.Equal(t, "/dev/spidev0.1", lc.SPIPort)
	assert.Equal(t, 2500, lc.SPIFreqKHz)
}
