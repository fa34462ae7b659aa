package main

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tkok3/AMS/src/selectivity"
)

func TestRunScreenshotMode_WritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shots", "chart.png")
	in := selectivity.Input{PMaxExponent: 3, RelativePermeability: 300, MoleFraction: 0.01}
	if err := RunScreenshotMode(out, in, 1200, true); err != nil {
		t.Fatalf("RunScreenshotMode: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 624 {
		t.Fatalf("unexpected size %v", b)
	}
}

func TestRunScreenshotMode_DomainError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	err := RunScreenshotMode(out, selectivity.Input{PMaxExponent: 3, RelativePermeability: 300, MoleFraction: 1}, 1000, false)
	if !errors.Is(err, selectivity.ErrDomain) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("no file should be written on error")
	}
}
