package mainwindow

import (
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"clickshapes/internal/app"
	"clickshapes/internal/config"
	"clickshapes/pkg/geometry"
	"clickshapes/ui/prefs"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, "background.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))))
	return path
}

func newTestWindow(t *testing.T, p *prefs.Prefs) (*MainWindow, *app.State) {
	t.Helper()
	state := app.NewState()
	settings := config.Settings{}
	settings.Canvas.VertexRadius = 5
	mw := New(test.NewTempApp(t), state, settings, p, zerolog.Nop())
	return mw, state
}

func TestRestoreAndClearImage(t *testing.T) {
	dir := t.TempDir()
	p := prefs.LoadFrom(dir)
	p.SetString(prefs.KeyLastImage, writePNG(t, dir, 64, 32))

	mw, state := newTestWindow(t, p)
	snap := state.Snapshot()
	require.NotNil(t, snap.Background, "last image restored at startup")
	assert.Equal(t, 64, snap.CanvasWidth)

	mw.onClearImage()
	assert.Nil(t, state.Snapshot().Background)
	assert.Empty(t, p.String(prefs.KeyLastImage))

	require.NoError(t, p.Save())
	_, state = newTestWindow(t, prefs.LoadFrom(dir))
	assert.Nil(t, state.Snapshot().Background, "cleared image stays cleared")
}

func TestRestoreLastImage_UnsupportedFormatForgotten(t *testing.T) {
	p := prefs.LoadFrom(t.TempDir())
	p.SetString(prefs.KeyLastImage, "notes.txt")

	_, state := newTestWindow(t, p)
	assert.Nil(t, state.Snapshot().Background)
	assert.Empty(t, p.String(prefs.KeyLastImage))
}

func TestUpdatePointer(t *testing.T) {
	mw, state := newTestWindow(t, prefs.LoadFrom(t.TempDir()))
	state.ReplacePolygons([][]geometry.Point2D{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
	})

	mw.updatePointer(geometry.Point2D{X: 3, Y: 4})
	assert.Equal(t, "3, 4 in Polygon0", mw.pointer.Text)

	mw.updatePointer(geometry.Point2D{X: 30, Y: 4})
	assert.Equal(t, "30, 4", mw.pointer.Text)
}
