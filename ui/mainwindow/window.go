// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"io"

	"clickshapes/internal/app"
	"clickshapes/internal/config"
	"clickshapes/internal/image"
	"clickshapes/internal/project"
	"clickshapes/internal/version"
	"clickshapes/pkg/geometry"
	"clickshapes/ui/canvas"
	"clickshapes/ui/dialogs"
	"clickshapes/ui/panels"
	"clickshapes/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	settings  config.Settings
	prefs     *prefs.Prefs
	log       zerolog.Logger
	canvas    *canvas.EditorCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	pointer   *widget.Label
	zoomLabel *widget.Label

	deletePolygonItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, settings config.Settings, p *prefs.Prefs, log zerolog.Logger) *MainWindow {
	win := fyneApp.NewWindow(version.AppName)

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		settings: settings,
		prefs:    p,
		log:      log,
	}

	state.SetConfirmer(dialogs.Confirmer(win))

	mw.setupUI()
	mw.setupMenus()
	mw.setupKeys()
	mw.setupEventHandlers()
	mw.restoreLastImage()

	mw.Resize(fyne.NewSize(float32(settings.Window.Width), float32(settings.Window.Height)))
	mw.SetOnClosed(func() {
		mw.prefs.SetFloat(prefs.KeyZoom, mw.canvas.GetZoom())
		if err := mw.prefs.Save(); err != nil {
			mw.log.Warn().Err(err).Str("path", mw.prefs.Path()).Msg("Failed to save preferences")
		}
	})

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewEditorCanvas(mw.state, mw.settings.Canvas.VertexRadius)
	colors := mw.settings.Colors
	style, err := canvas.DefaultStyle(mw.settings.Canvas.VertexRadius).WithColors(canvas.Colors{
		Backdrop:       colors.Backdrop,
		Polygon:        colors.Polygon,
		ActivePolygon:  colors.ActivePolygon,
		SelectedVertex: colors.SelectedVertex,
	})
	if err != nil {
		mw.log.Warn().Err(err).Msg("Ignoring invalid colour settings")
	} else {
		mw.canvas.SetStyle(style)
	}
	mw.canvas.SetZoom(mw.prefs.FloatWithFallback(prefs.KeyZoom, 1.0))

	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.sidePanel.Image().OnLoad(mw.onLoadImage)
	mw.sidePanel.Image().OnClear(mw.onClearImage)

	mw.statusBar = widget.NewLabel("Ready")
	mw.pointer = widget.NewLabel("")
	mw.zoomLabel = widget.NewLabel("")
	mw.updateZoomLabel(mw.canvas.GetZoom())

	mw.canvas.OnZoomChange(mw.updateZoomLabel)
	mw.canvas.OnPointer(mw.updatePointer)

	canvasArea := container.NewBorder(
		mw.createToolbar(),
		nil,
		nil,
		nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(mw.sidePanel.Container(), canvasArea)
	split.SetOffset(0.25)

	status := container.NewBorder(nil, nil, nil, container.NewHBox(mw.pointer, mw.zoomLabel), mw.statusBar)
	mw.SetContent(container.NewBorder(nil, container.NewPadded(status), nil, nil, split))
}

// createToolbar creates the toolbar with editing and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("New Polygon", mw.onNewPolygon),
		widget.NewButton("Load Image", mw.onLoadImage),
		widget.NewButton("Import", mw.onImportPolygons),
		widget.NewButton("Export", mw.onExportPolygons),
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.onZoomOut),
		widget.NewButton("+", mw.onZoomIn),
		widget.NewButton("Fit", mw.onFitToWindow),
		widget.NewButton("1:1", mw.onActualSize),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load Image...", mw.onLoadImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Polygons...", mw.onImportPolygons),
		fyne.NewMenuItem("Export Polygons...", mw.onExportPolygons),
		fyne.NewMenuItem("Export WKT...", mw.onExportWKT),
	)

	mw.deletePolygonItem = fyne.NewMenuItem("Delete Polygon", mw.state.DeletePolygon)
	mw.deletePolygonItem.Disabled = true

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("New Polygon", mw.onNewPolygon),
		mw.deletePolygonItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Canvas Size...", mw.onCanvasSize),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.onFitToWindow),
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupKeys maps editing keys onto the editor.
func (mw *MainWindow) setupKeys() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.state.DeleteKey()
		case fyne.KeyEscape:
			mw.state.EscapeKey()
		}
	})
}

// setupEventHandlers registers for editor events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventPolygonOfInterestChanged, func(data interface{}) {
		mw.deletePolygonItem.Disabled = !mw.state.CanDeletePolygon()
		if menu := mw.MainMenu(); menu != nil {
			menu.Refresh()
		}
		if p, ok := data.(*app.Polygon); ok && p != nil {
			mw.updateStatus("Editing " + p.Name)
		}
	})

	mw.state.On(app.EventPolygonClosed, func(data interface{}) {
		if p, ok := data.(*app.Polygon); ok {
			mw.updateStatus(fmt.Sprintf("Closed %s with %d vertices", p.Name, len(p.Vertices)))
		}
	})

	mw.state.On(app.EventDiagnostic, func(data interface{}) {
		if d, ok := data.(app.Diagnostic); ok {
			mw.updateStatus("Warning: " + d.String())
		}
	})

	mw.state.On(app.EventBackgroundChanged, func(data interface{}) {
		if bg, ok := data.(*image.Background); ok && bg != nil {
			mw.SetTitle(version.AppName + " - " + bg.Path)
			return
		}
		mw.SetTitle(version.AppName)
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// updatePointer shows the pointer position and the polygon under it.
func (mw *MainWindow) updatePointer(p geometry.Point2D) {
	text := fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
	if poly := mw.state.PolygonUnder(p); poly != nil {
		text += " in " + poly.Name
	}
	mw.pointer.SetText(text)
}

func (mw *MainWindow) updateZoomLabel(zoom float64) {
	mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
}

// getLastDir returns the remembered directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir(key string) fyne.ListableURI {
	dir := mw.prefs.Dir(key)
	if dir == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return listable
}

// restoreLastImage reloads the previous background, if it is still readable.
func (mw *MainWindow) restoreLastImage() {
	path := mw.prefs.String(prefs.KeyLastImage)
	if path == "" {
		return
	}
	if !image.IsSupportedFormat(path) {
		mw.log.Warn().Str("path", path).Msg("Forgetting unsupported background image")
		mw.prefs.SetString(prefs.KeyLastImage, "")
		return
	}
	bg, err := image.Load(path)
	if err != nil {
		mw.log.Warn().Err(err).Str("path", path).Msg("Could not restore background image")
		return
	}
	mw.state.SetBackground(bg)
}

// Menu action handlers

func (mw *MainWindow) onNewPolygon() {
	mw.state.NewPolygon()
}

func (mw *MainWindow) onLoadImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()

		bg, err := image.Load(path)
		if err != nil {
			mw.log.Error().Err(err).Str("path", path).Msg("Failed to load image")
			dialog.ShowError(err, mw.Window)
			return
		}

		mw.prefs.RememberDir(prefs.KeyImageDir, path)
		mw.prefs.SetString(prefs.KeyLastImage, path)
		mw.state.SetBackground(bg)
		mw.updateStatus(fmt.Sprintf("Loaded %s (%d × %d)", path, bg.Width(), bg.Height()))
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(image.SupportedFormats()))
	if loc := mw.getLastDir(prefs.KeyImageDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// onClearImage drops the background and stops it being restored next start.
func (mw *MainWindow) onClearImage() {
	mw.state.SetBackground(nil)
	mw.prefs.SetString(prefs.KeyLastImage, "")
	mw.updateStatus("Background cleared")
}

func (mw *MainWindow) onImportPolygons() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()

		data, err := io.ReadAll(reader)
		if err == nil {
			var polygons [][]geometry.Point2D
			polygons, err = project.Import(data)
			if err == nil {
				mw.prefs.RememberDir(prefs.KeyPolygonDir, path)
				mw.state.ReplacePolygons(polygons)
				mw.log.Info().Str("path", path).Int("count", len(polygons)).Msg("Polygons imported")
				return
			}
		}
		mw.log.Error().Err(err).Str("path", path).Msg("Failed to import polygons")
		dialog.ShowError(fmt.Errorf("import %s: %w", path, err), mw.Window)
	}, mw.Window)

	if loc := mw.getLastDir(prefs.KeyPolygonDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPolygons() {
	polygons := mw.state.ExportData()
	data, err := project.Export(polygons)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}

	mw.saveFile(project.FileName(mw.settings.Export.FileName, mw.settings.Export.Extension), func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}, func(path string) {
		mw.log.Debug().Str("path", path).Msg("Polygons JSON exported")
		mw.updateStatus(fmt.Sprintf("Exported %d polygons to %s", len(polygons), path))
	})
}

func (mw *MainWindow) onExportWKT() {
	polygons := mw.state.ExportData()
	var skipped int

	mw.saveFile(project.FileName(mw.settings.Export.FileName, ".wkt"), func(w io.Writer) error {
		var err error
		skipped, err = project.WriteWKT(w, polygons)
		return err
	}, func(path string) {
		msg := fmt.Sprintf("Exported WKT to %s", path)
		if skipped > 0 {
			msg += fmt.Sprintf(" (%d polygons with fewer than 3 vertices skipped)", skipped)
		}
		mw.updateStatus(msg)
	})
}

// saveFile asks for a destination, then streams write into it.
func (mw *MainWindow) saveFile(name string, write func(io.Writer) error, done func(path string)) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()

		err = write(writer)
		if cerr := writer.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			mw.log.Error().Err(err).Str("path", path).Msg("Failed to write file")
			dialog.ShowError(fmt.Errorf("write %s: %w", path, err), mw.Window)
			return
		}
		mw.prefs.RememberDir(prefs.KeyPolygonDir, path)
		done(path)
	}, mw.Window)

	fd.SetFileName(name)
	if loc := mw.getLastDir(prefs.KeyPolygonDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onCanvasSize() {
	snap := mw.state.Snapshot()
	dialogs.NewCanvasSizeDialog(snap.CanvasWidth, snap.CanvasHeight, mw.Window, mw.state.SetCanvasSize).Show()
}

func (mw *MainWindow) onZoomIn() {
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onFitToWindow() {
	mw.canvas.FitToWindow()
}

func (mw *MainWindow) onActualSize() {
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+version.AppName,
		fmt.Sprintf("%s v%s\n\n"+
			"Click to place vertices, click the first vertex to close a polygon.\n"+
			"Select a vertex to drag it, Delete removes it, Escape deselects.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.AppName, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
