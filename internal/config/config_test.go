package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"canvas": { "width": 1024, "vertexRadius": 8 },
		"export": { "fileName": "shapes" },
		"colors": { "polygon": "#00ff00" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	s, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 1024, s.Canvas.Width)
	assert.Equal(t, 600, s.Canvas.Height)
	assert.Equal(t, 8.0, s.Canvas.VertexRadius)
	assert.Equal(t, "shapes", s.Export.FileName)
	assert.Equal(t, ".txt", s.Export.Extension)
	assert.Equal(t, "#00ff00", s.Colors.Polygon)
	assert.Equal(t, "", s.Colors.ActivePolygon)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	s, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, 800, s.Canvas.Width)
	assert.Equal(t, 600, s.Canvas.Height)
	assert.Equal(t, 5.0, s.Canvas.VertexRadius)
	assert.Equal(t, "polygons", s.Export.FileName)
	assert.Equal(t, ".txt", s.Export.Extension)
	assert.Equal(t, 1200, s.Window.Width)
	assert.Equal(t, 800, s.Window.Height)
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{not json`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("CLICKSHAPES_LOGLEVEL", "warn")
	t.Setenv("CLICKSHAPES_CANVAS_WIDTH", "640")

	require.NoError(t, Load(t.TempDir()))

	s, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, 640, s.Canvas.Width)
}
