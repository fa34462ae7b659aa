// Package graph turns selectivity results into the two-panel figure shown by the dashboard and
// the desktop app: permeate concentration (log x, linear y in [0,1]) next to selectivity (log-log,
// y shown over [1e-3, 1]). Log axes are drawn by plotting log10 values with decade tick labels.
package graph

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tkok3/AMS/src/logging"
	"github.com/tkok3/AMS/src/selectivity"
)

const (
	// SelectivityMinExp and SelectivityMaxExp bound the displayed selectivity decades.
	SelectivityMinExp = -3.0
	SelectivityMaxExp = 0.0

	titleHeight = 40
	panelGap    = 12
)

// Figure is the graph data for one parameter set. Slices are index-aligned.
type Figure struct {
	Params        selectivity.Input `json:"params"`
	PressureRatio []float64         `json:"pressure_ratio"`
	Concentration []float64         `json:"permeate_concentration"`
	Component2    []float64         `json:"permeate_concentration_2"`
	Selectivity   []float64         `json:"selectivity"`
}

// BuildFigure computes both curves and the selectivity ratio. Domain errors are returned as-is.
func BuildFigure(in selectivity.Input) (*Figure, error) {
	res, sel, err := selectivity.ComputeWithSelectivity(in)
	if err != nil {
		return nil, err
	}
	return &Figure{
		Params:        in,
		PressureRatio: res.Sweep,
		Concentration: res.Curves[0],
		Component2:    res.Curves[1],
		Selectivity:   sel,
	}, nil
}

// Options controls figure rendering.
type Options struct {
	Width  int
	Height int
	Title  string
	Dark   bool
}

// DefaultOptions matches the desktop app's figure size.
func DefaultOptions() Options {
	return Options{Width: 1000, Height: 520, Title: "Selectivity Graph"}
}

type palette struct {
	bg, fg, grid, line1, line2 drawing.Color
}

func paletteFor(dark bool) palette {
	if dark {
		return palette{
			bg:    drawing.Color{R: 18, G: 18, B: 18, A: 255},
			fg:    drawing.Color{R: 230, G: 230, B: 230, A: 255},
			grid:  drawing.Color{R: 60, G: 60, B: 60, A: 255},
			line1: drawing.ColorFromHex("4ea3e0"),
			line2: drawing.ColorFromHex("f0a04b"),
		}
	}
	return palette{
		bg:    drawing.ColorWhite,
		fg:    drawing.Color{R: 40, G: 40, B: 40, A: 255},
		grid:  drawing.Color{R: 225, G: 225, B: 225, A: 255},
		line1: drawing.ColorFromHex("1f77b4"),
		line2: drawing.ColorFromHex("d62728"),
	}
}

// panelSize splits the figure into two side-by-side panels below the title strip.
func panelSize(o Options) (int, int) {
	return (o.Width - panelGap) / 2, o.Height - titleHeight
}

func (o Options) validate() error {
	pw, ph := panelSize(o)
	if pw < 100 || ph < 100 {
		return fmt.Errorf("graph: figure %dx%d too small", o.Width, o.Height)
	}
	return nil
}

// Render draws the figure as an image of exactly opts.Width x opts.Height pixels.
func Render(fig *Figure, opts Options) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "graph render")
	if fig == nil || len(fig.PressureRatio) < 2 {
		return nil, fmt.Errorf("graph: figure needs at least two samples")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	pal := paletteFor(opts.Dark)
	pw, ph := panelSize(opts)
	xs := Log10(fig.PressureRatio)
	xMin, xMax := xs[0], xs[len(xs)-1]

	conc := chart.Chart{
		Title:      "Permeate concentration",
		TitleStyle: chart.Style{FontColor: pal.fg, FontSize: 13},
		Width:      pw,
		Height:     ph,
		Background: chart.Style{Padding: chart.Box{Top: 36, Left: 16, Right: 16, Bottom: 12}, FillColor: pal.bg},
		Canvas:     chart.Style{FillColor: pal.bg},
		XAxis:      logXAxis(pal, xMin, xMax),
		YAxis: chart.YAxis{
			Name:           "y [-]",
			NameStyle:      chart.Style{FontColor: pal.fg},
			Style:          chart.Style{FontColor: pal.fg, StrokeColor: pal.fg},
			Range:          &chart.ContinuousRange{Min: 0, Max: 1},
			Ticks:          LinearTicks(0, 1, 6),
			GridMajorStyle: chart.Style{StrokeColor: pal.grid, StrokeWidth: 1},
			GridMinorStyle: chart.Style{StrokeColor: pal.grid, StrokeWidth: 1},
		},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    "Compound 1",
			XValues: xs,
			YValues: fig.Concentration,
			Style:   chart.Style{StrokeColor: pal.line1, StrokeWidth: 2},
		}},
	}
	sel := chart.Chart{
		Title:      "Selectivity",
		TitleStyle: chart.Style{FontColor: pal.fg, FontSize: 13},
		Width:      pw,
		Height:     ph,
		Background: chart.Style{Padding: chart.Box{Top: 36, Left: 16, Right: 16, Bottom: 12}, FillColor: pal.bg},
		Canvas:     chart.Style{FillColor: pal.bg},
		XAxis:      logXAxis(pal, xMin, xMax),
		YAxis: chart.YAxis{
			Name:           "Selectivity [-]",
			NameStyle:      chart.Style{FontColor: pal.fg},
			Style:          chart.Style{FontColor: pal.fg, StrokeColor: pal.fg},
			Range:          &chart.ContinuousRange{Min: SelectivityMinExp, Max: SelectivityMaxExp},
			Ticks:          DecadeTicks(SelectivityMinExp, SelectivityMaxExp),
			GridMajorStyle: chart.Style{StrokeColor: pal.grid, StrokeWidth: 1},
			GridMinorStyle: chart.Style{StrokeColor: pal.grid, StrokeWidth: 1},
		},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    "Selectivity",
			XValues: xs,
			YValues: ClampLog10(fig.Selectivity, SelectivityMinExp, SelectivityMaxExp),
			Style:   chart.Style{StrokeColor: pal.line2, StrokeWidth: 2},
		}},
	}

	left, err := renderChart(conc)
	if err != nil {
		return nil, fmt.Errorf("render concentration panel: %w", err)
	}
	right, err := renderChart(sel)
	if err != nil {
		return nil, fmt.Errorf("render selectivity panel: %w", err)
	}

	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(out, out.Bounds(), image.NewUniform(pal.bg), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, titleHeight, pw, titleHeight+ph), left, left.Bounds().Min, draw.Src)
	draw.Draw(out, image.Rect(pw+panelGap, titleHeight, 2*pw+panelGap, titleHeight+ph), right, right.Bounds().Min, draw.Src)
	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultOptions().Title
	}
	drawTitle(out, title, ParamsLabel(fig.Params), pal.fg)
	return out, nil
}

func logXAxis(pal palette, min, max float64) chart.XAxis {
	return chart.XAxis{
		Name:           "Pressure ratio [-]",
		NameStyle:      chart.Style{FontColor: pal.fg},
		Style:          chart.Style{FontColor: pal.fg, StrokeColor: pal.fg},
		Range:          &chart.ContinuousRange{Min: min, Max: max},
		Ticks:          DecadeTicks(min, max),
		GridMajorStyle: chart.Style{StrokeColor: pal.grid, StrokeWidth: 1},
		GridMinorStyle: chart.Style{StrokeColor: pal.grid, StrokeWidth: 1},
	}
}

func renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// ParamsLabel formats the three inputs for the title strip.
func ParamsLabel(in selectivity.Input) string {
	return fmt.Sprintf("pMax=%g  perm=%g  x1=%g", in.PMaxExponent, in.RelativePermeability, in.MoleFraction)
}

// drawTitle writes the title and the parameter line centred in the strip above the panels.
func drawTitle(dst *image.RGBA, title, sub string, fg color.Color) {
	face := basicfont.Face7x13
	src := image.NewUniform(fg)
	w := dst.Bounds().Dx()
	for i, line := range []string{title, sub} {
		dr := &font.Drawer{Dst: dst, Src: src, Face: face}
		tw := dr.MeasureString(line).Ceil()
		x := (w - tw) / 2
		if x < 4 {
			x = 4
		}
		y := 16 + i*16
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(line)
	}
}

// RenderPNG renders the figure and encodes it as PNG.
func RenderPNG(fig *Figure, opts Options) ([]byte, error) {
	img, err := Render(fig, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}
