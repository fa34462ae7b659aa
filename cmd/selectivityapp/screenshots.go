package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tkok3/AMS/src/graph"
	"github.com/tkok3/AMS/src/selectivity"
)

// RunScreenshotMode renders the chart for in and writes it as a PNG to outPath.
// It runs headlessly without creating a UI window.
func RunScreenshotMode(outPath string, in selectivity.Input, width int, dark bool) error {
	if outPath == "" {
		outPath = "selectivity.png"
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}
	img, err := renderChart(in, width, dark)
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	if err := graph.EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return f.Close()
}
