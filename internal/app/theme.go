package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Editor colours shared by the canvas and the theme.
var (
	ColorPolygon        = color.NRGBA{R: 0x1E, G: 0x88, B: 0xE5, A: 0xFF}
	ColorActivePolygon  = color.NRGBA{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF}
	ColorVertex         = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorSelectedVertex = color.NRGBA{R: 0xFF, G: 0xD5, B: 0x00, A: 0xFF}
	ColorFloatingVertex = color.NRGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 0xFF}
	ColorCanvasBackdrop = color.NRGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF}
)

// ClickShapesTheme tweaks the default theme for the editor.
type ClickShapesTheme struct{}

var _ fyne.Theme = (*ClickShapesTheme)(nil)

func (t *ClickShapesTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return ColorActivePolygon
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xFF, G: 0xD5, B: 0x00, A: 0x80}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *ClickShapesTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ClickShapesTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ClickShapesTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameScrollBar {
		return 14
	}
	return theme.DefaultTheme().Size(name)
}
