// Package main provides the entry point for the ClickShapes application.
package main

import (
	"flag"
	"os"

	"clickshapes/internal/app"
	"clickshapes/internal/config"
	"clickshapes/internal/image"
	"clickshapes/internal/logging"
	"clickshapes/internal/project"
	"clickshapes/internal/version"
	"clickshapes/ui/mainwindow"
	"clickshapes/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	configDir := flag.String("config", prefs.ConfigDir(), "Directory containing "+config.FileName)
	imagePath := flag.String("image", "", "Background image to open")
	polygonsPath := flag.String("polygons", "", "Polygons file to import")
	flag.Parse()

	boot := logging.NewConsole(logging.ParseLevel(os.Getenv("CLICKSHAPES_LOGLEVEL")))
	if err := config.Load(*configDir); err != nil {
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}
	settings, err := config.Get()
	if err != nil {
		boot.Fatal().Err(err).Msg("Failed to decode configuration")
	}

	log := logging.NewConsole(logging.ParseLevel(settings.LogLevel))
	log.Info().Str("version", version.String()).Msg("Starting")

	state := app.NewState()
	state.SetLogger(logging.Component(log, "editor"))
	state.SetCanvasSize(settings.Canvas.Width, settings.Canvas.Height)

	fyneApp := fyneapp.NewWithID("io.github.clickshapes")
	fyneApp.Settings().SetTheme(&app.ClickShapesTheme{})

	win := mainwindow.New(fyneApp, state, settings, prefs.Load(), logging.Component(log, "ui"))

	if *imagePath != "" {
		if !image.IsSupportedFormat(*imagePath) {
			log.Error().Str("path", *imagePath).Strs("formats", image.SupportedFormats()).Msg("Unsupported background image format")
		} else if bg, err := image.Load(*imagePath); err != nil {
			log.Error().Err(err).Msg("Failed to load background image")
		} else {
			state.SetBackground(bg)
		}
	}
	if *polygonsPath != "" {
		if polygons, err := project.ReadFile(*polygonsPath); err != nil {
			log.Error().Err(err).Msg("Failed to import polygons")
		} else {
			state.ReplacePolygons(polygons)
		}
	}

	win.ShowAndRun()
}
