// Command selectivityapp is the desktop selectivity graph: three entry fields (pMax, perm, x1)
// under a chart that is re-rendered on every keystroke. With -screenshot it renders one chart
// to a PNG and exits without opening a window.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tkok3/AMS/cmd/selectivityapp/uihelpers"
	"github.com/tkok3/AMS/src/config"
	"github.com/tkok3/AMS/src/graph"
	"github.com/tkok3/AMS/src/input"
	"github.com/tkok3/AMS/src/logging"
	"github.com/tkok3/AMS/src/selectivity"
)

// preference keys
const (
	prefPMax = "pmax"
	prefPerm = "perm"
	prefX1   = "x1"
)

type uiState struct {
	app    fyne.App
	window fyne.Window
	model  *chartModel

	pmaxEntry *widget.Entry
	permEntry *widget.Entry
	x1Entry   *widget.Entry
	warning   *widget.Label
	imgCanvas *canvas.Image
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var (
		configPath string
		shotPath   string
		logLevel   string
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML configuration file (optional)")
	flag.StringVar(&shotPath, "screenshot", "", "Render the chart to this PNG path and exit (no window)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error), overrides log_level")
	pmax := flag.Float64("pmax", 0, "Screenshot mode: max pressure ratio exponent (default from config)")
	perm := flag.Float64("perm", 0, "Screenshot mode: relative permeability (default from config)")
	x1 := flag.Float64("x1", 0, "Screenshot mode: feed mole fraction of component 1 (default from config)")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.SetLogLevel(cfg.LogLevel)

	if shotPath != "" {
		in := cfg.Desktop.Defaults
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "pmax":
				in.PMaxExponent = *pmax
			case "perm":
				in.RelativePermeability = *perm
			case "x1":
				in.MoleFraction = *x1
			}
		})
		if err := RunScreenshotMode(shotPath, in, cfg.Chart.Width, cfg.Chart.Dark); err != nil {
			fmt.Fprintf(os.Stderr, "screenshot: %v\n", err)
			os.Exit(1)
		}
		logging.Infof("wrote %s", shotPath)
		return
	}

	runApp(cfg)
}

func runApp(cfg *config.Config) {
	a := app.NewWithID("com.ams.selectivity")
	if cfg.Chart.Dark {
		a.Settings().SetTheme(&darkTheme{})
	}
	w := a.NewWindow("Selectivity Graph App")
	w.Resize(fyne.NewSize(float32(cfg.Chart.Width)+40, float32(cfg.Chart.Height)+160))

	state := &uiState{
		app:    a,
		window: w,
		model:  newChartModel(cfg.Chart.Width, cfg.Chart.Dark),
	}
	start := loadPrefs(state, cfg.Desktop.Defaults)
	if err := state.model.Set(start); err != nil {
		// stored values no longer render; fall back to the configured defaults
		logging.Warnf("stored parameters rejected (%v), using defaults", err)
		start = cfg.Desktop.Defaults
		if err := state.model.Set(start); err != nil {
			logging.Errorf("default parameters rejected: %v", err)
		}
	}

	state.imgCanvas = canvas.NewImageFromImage(state.model.img)
	state.imgCanvas.FillMode = canvas.ImageFillContain
	cw, ch := uihelpers.ComputeChartDimensions(cfg.Chart.Width)
	state.imgCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(ch)))

	state.warning = widget.NewLabel("")
	state.warning.Importance = widget.DangerImportance
	state.warning.Wrapping = fyne.TextWrapWord

	state.pmaxEntry = newParamEntry(start.PMaxExponent)
	state.permEntry = newParamEntry(start.RelativePermeability)
	state.x1Entry = newParamEntry(start.MoleFraction)
	for _, e := range []*widget.Entry{state.pmaxEntry, state.permEntry, state.x1Entry} {
		e.OnChanged = func(string) { onParamsChanged(state) }
	}

	fields := container.NewHBox(
		labeledEntry(input.FieldPMax, state.pmaxEntry),
		labeledEntry(input.FieldPerm, state.permEntry),
		labeledEntry(input.FieldX1, state.x1Entry),
	)
	content := container.NewBorder(nil, container.NewVBox(fields, state.warning), nil, nil, state.imgCanvas)
	w.SetContent(container.NewPadded(content))
	buildMenus(state)

	// redraw on width changes; canvas size has no change callback
	done := make(chan struct{})
	w.SetOnClosed(func() { close(done) })
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		prevW := 0
		for {
			select {
			case <-done:
				return
			case <-t.C:
				c := w.Canvas()
				if c == nil {
					continue
				}
				curW := int(c.Size().Width) - 40
				if curW == prevW || curW <= 0 {
					continue
				}
				prevW = curW
				fyne.Do(func() { onResize(state, curW) })
			}
		}
	}()

	w.ShowAndRun()
}

func newParamEntry(v float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(uihelpers.FormatParam(v))
	return e
}

func labeledEntry(field string, e *widget.Entry) fyne.CanvasObject {
	label := widget.NewLabel(uihelpers.FieldLabel(field))
	return container.NewHBox(label, container.NewGridWrap(fyne.NewSize(150, e.MinSize().Height), e))
}

func onParamsChanged(state *uiState) {
	err := state.model.Update(state.pmaxEntry.Text, state.permEntry.Text, state.x1Entry.Text)
	if err != nil {
		logging.Debugf("parameters rejected: %v", err)
		state.warning.SetText(uihelpers.StatusMessage(err))
		return
	}
	state.warning.SetText("")
	state.imgCanvas.Image = state.model.img
	state.imgCanvas.Refresh()
	savePrefs(state)
}

func onResize(state *uiState, width int) {
	changed, err := state.model.Resize(width)
	if err != nil {
		logging.Warnf("resize redraw: %v", err)
		return
	}
	if changed {
		state.imgCanvas.Image = state.model.img
		state.imgCanvas.Refresh()
	}
}

func buildMenus(state *uiState) {
	exportItem := fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state) })
	fileMenu := fyne.NewMenu("File",
		exportItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { exportChartPNG(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { exportChartPNG(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// export PNG
func exportChartPNG(state *uiState) {
	if state.model == nil || state.model.img == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	img := state.model.img
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := graph.EncodePNG(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(exportFileName(state.model.last))
	fs.Show()
}

func exportFileName(in selectivity.Input) string {
	return fmt.Sprintf("selectivity_pmax%s_perm%s_x%s.png",
		uihelpers.FormatParam(in.PMaxExponent),
		uihelpers.FormatParam(in.RelativePermeability),
		uihelpers.FormatParam(in.MoleFraction))
}

func savePrefs(state *uiState) {
	prefs := state.app.Preferences()
	prefs.SetFloat(prefPMax, state.model.last.PMaxExponent)
	prefs.SetFloat(prefPerm, state.model.last.RelativePermeability)
	prefs.SetFloat(prefX1, state.model.last.MoleFraction)
}

func loadPrefs(state *uiState, defaults selectivity.Input) selectivity.Input {
	prefs := state.app.Preferences()
	return selectivity.Input{
		PMaxExponent:         prefs.FloatWithFallback(prefPMax, defaults.PMaxExponent),
		RelativePermeability: prefs.FloatWithFallback(prefPerm, defaults.RelativePermeability),
		MoleFraction:         prefs.FloatWithFallback(prefX1, defaults.MoleFraction),
	}
}
