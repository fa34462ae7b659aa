package main

import (
	"image"
	"time"

	"github.com/tkok3/AMS/cmd/selectivityapp/uihelpers"
	"github.com/tkok3/AMS/src/graph"
	"github.com/tkok3/AMS/src/logging"
	"github.com/tkok3/AMS/src/selectivity"
)

// chartModel owns the last valid parameters and the image rendered from them.
// It never touches fyne so the entry/redraw rules can be tested headlessly.
type chartModel struct {
	width int
	dark  bool
	last  selectivity.Input
	img   image.Image
	valid bool
}

func newChartModel(width int, dark bool) *chartModel {
	return &chartModel{width: width, dark: dark}
}

// Update parses the three entry texts and re-renders. On any error the previous image and
// parameters are kept.
func (m *chartModel) Update(pmax, perm, x1 string) error {
	in, err := uihelpers.ParseParams(pmax, perm, x1)
	if err != nil {
		return err
	}
	return m.Set(in)
}

// Set renders in directly.
func (m *chartModel) Set(in selectivity.Input) error {
	img, err := renderChart(in, m.width, m.dark)
	if err != nil {
		return err
	}
	m.last, m.img, m.valid = in, img, true
	return nil
}

// Resize re-renders the last valid parameters at a new canvas width. It reports whether the
// effective chart width changed.
func (m *chartModel) Resize(rawW int) (bool, error) {
	w, _ := uihelpers.ComputeChartDimensions(rawW)
	cur, _ := uihelpers.ComputeChartDimensions(m.width)
	m.width = rawW
	if w == cur || !m.valid {
		return false, nil
	}
	img, err := renderChart(m.last, rawW, m.dark)
	if err != nil {
		return false, err
	}
	m.img = img
	return true, nil
}

func renderChart(in selectivity.Input, rawW int, dark bool) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "renderChart")
	fig, err := graph.BuildFigure(in)
	if err != nil {
		return nil, err
	}
	w, h := uihelpers.ComputeChartDimensions(rawW)
	opts := graph.DefaultOptions()
	opts.Width, opts.Height, opts.Dark = w, h, dark
	return graph.Render(fig, opts)
}
