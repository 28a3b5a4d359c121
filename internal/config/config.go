// Package config loads editor settings through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the optional config file looked up in the config directory.
const FileName = "clickshapes.cfg.json"

// Settings is the typed view of the loaded configuration.
type Settings struct {
	LogLevel string `mapstructure:"logLevel"`

	Canvas struct {
		Width        int     `mapstructure:"width"`
		Height       int     `mapstructure:"height"`
		VertexRadius float64 `mapstructure:"vertexRadius"`
	} `mapstructure:"canvas"`

	Export struct {
		FileName  string `mapstructure:"fileName"`
		Extension string `mapstructure:"extension"`
	} `mapstructure:"export"`

	Window struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"window"`

	// Colors are optional "#RRGGBB" overrides for the canvas
	Colors struct {
		Backdrop       string `mapstructure:"backdrop"`
		Polygon        string `mapstructure:"polygon"`
		ActivePolygon  string `mapstructure:"activePolygon"`
		SelectedVertex string `mapstructure:"selectedVertex"`
	} `mapstructure:"colors"`
}

// Load sets default values and reads the config file from configDir if
// one exists. Environment variables prefixed with CLICKSHAPES_ override both.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("canvas.width", 800)
	viper.SetDefault("canvas.height", 600)
	viper.SetDefault("canvas.vertexRadius", 5.0)

	viper.SetDefault("export.fileName", "polygons")
	viper.SetDefault("export.extension", ".txt")

	viper.SetDefault("window.width", 1200)
	viper.SetDefault("window.height", 800)

	viper.SetDefault("colors.backdrop", "")
	viper.SetDefault("colors.polygon", "")
	viper.SetDefault("colors.activePolygon", "")
	viper.SetDefault("colors.selectedVertex", "")

	viper.SetEnvPrefix("CLICKSHAPES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Get decodes the current configuration.
func Get() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("error decoding config: %w", err)
	}
	return s, nil
}
