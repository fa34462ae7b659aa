package graph

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"testing"

	"github.com/tkok3/AMS/src/selectivity"
)

var reference = selectivity.Input{PMaxExponent: 4, RelativePermeability: 300, MoleFraction: 0.01}

func TestBuildFigure(t *testing.T) {
	fig, err := BuildFigure(reference)
	if err != nil {
		t.Fatalf("BuildFigure: %v", err)
	}
	n := selectivity.Samples
	if len(fig.PressureRatio) != n || len(fig.Concentration) != n || len(fig.Component2) != n || len(fig.Selectivity) != n {
		t.Fatalf("unexpected lengths: %d %d %d %d", len(fig.PressureRatio), len(fig.Concentration), len(fig.Component2), len(fig.Selectivity))
	}
	for i := range fig.Selectivity {
		if fig.Selectivity[i] != fig.Concentration[i]/fig.Component2[i] {
			t.Fatalf("selectivity mismatch at %d", i)
		}
	}
	if fig.Params != reference {
		t.Fatalf("params not recorded: %+v", fig.Params)
	}
}

func TestBuildFigure_DomainErrors(t *testing.T) {
	for _, in := range []selectivity.Input{
		{PMaxExponent: 4, RelativePermeability: 1, MoleFraction: 0.01},
		{PMaxExponent: 4, RelativePermeability: 300, MoleFraction: 1},
	} {
		fig, err := BuildFigure(in)
		if fig != nil {
			t.Fatalf("%+v: partial figure returned", in)
		}
		if !errors.Is(err, selectivity.ErrDomain) {
			t.Fatalf("%+v: want domain error got %v", in, err)
		}
	}
}

func TestRender_SizeAndContent(t *testing.T) {
	fig, err := BuildFigure(reference)
	if err != nil {
		t.Fatalf("BuildFigure: %v", err)
	}
	for _, dark := range []bool{false, true} {
		opts := Options{Width: 900, Height: 420, Title: "Selectivity Graph", Dark: dark}
		img, err := Render(fig, opts)
		if err != nil {
			t.Fatalf("Render(dark=%v): %v", dark, err)
		}
		b := img.Bounds()
		if b.Dx() != 900 || b.Dy() != 420 {
			t.Fatalf("size %dx%d want 900x420", b.Dx(), b.Dy())
		}
		if uniform(img) {
			t.Fatalf("rendered image is blank (dark=%v)", dark)
		}
	}
}

func TestRenderPNG_Decodes(t *testing.T) {
	fig, err := BuildFigure(selectivity.Input{PMaxExponent: 3, RelativePermeability: 300, MoleFraction: 0})
	if err != nil {
		t.Fatalf("BuildFigure: %v", err)
	}
	data, err := RenderPNG(fig, DefaultOptions())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != DefaultOptions().Width || cfg.Height != DefaultOptions().Height {
		t.Fatalf("png %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRender_Rejects(t *testing.T) {
	if _, err := Render(nil, DefaultOptions()); err == nil {
		t.Fatalf("nil figure should fail")
	}
	fig, _ := BuildFigure(reference)
	if _, err := Render(fig, Options{Width: 50, Height: 50}); err == nil {
		t.Fatalf("tiny figure should fail")
	}
}

func TestDecadeTicks(t *testing.T) {
	ticks := DecadeTicks(-1, 4)
	if len(ticks) != 6 {
		t.Fatalf("want 6 ticks got %d", len(ticks))
	}
	wantLabels := []string{"0.1", "1", "10", "100", "1000", "10000"}
	for i, tk := range ticks {
		if tk.Label != wantLabels[i] || tk.Value != float64(i-1) {
			t.Fatalf("tick %d = %+v want %s", i, tk, wantLabels[i])
		}
	}
	frac := DecadeTicks(-1, 3.5)
	if last := frac[len(frac)-1]; last.Value != 3 {
		t.Fatalf("fractional upper bound should stop at last whole decade, got %+v", last)
	}
	narrow := DecadeTicks(-1, -0.5)
	if len(narrow) != 2 || narrow[1].Value != -0.5 || narrow[1].Label != "0.316" {
		t.Fatalf("narrow span ticks %+v", narrow)
	}
	if DecadeTicks(2, 1) != nil {
		t.Fatalf("inverted span should give no ticks")
	}
	sel := DecadeTicks(SelectivityMinExp, SelectivityMaxExp)
	if len(sel) != 4 || sel[0].Label != "0.001" || sel[3].Label != "1" {
		t.Fatalf("selectivity ticks %+v", sel)
	}
}

func TestFormatDecade(t *testing.T) {
	cases := map[float64]string{-3: "0.001", 0: "1", 2: "100", 5: "1e5", -5: "1e-5"}
	for in, want := range cases {
		if got := FormatDecade(in); got != want {
			t.Fatalf("FormatDecade(%v)=%q want %q", in, got, want)
		}
	}
}

func TestLinearTicks(t *testing.T) {
	ticks := LinearTicks(0, 1, 6)
	want := []string{"0", "0.20", "0.40", "0.60", "0.80", "1.00"}
	if len(ticks) != len(want) {
		t.Fatalf("len %d", len(ticks))
	}
	for i, tk := range ticks {
		if tk.Label != want[i] {
			t.Fatalf("tick %d label %q want %q", i, tk.Label, want[i])
		}
	}
	if ticks[5].Value != 1 {
		t.Fatalf("last tick %v", ticks[5].Value)
	}
	if LinearTicks(0, 1, 1) != nil || LinearTicks(1, 0, 4) != nil {
		t.Fatalf("invalid inputs should give nil")
	}
	if got := FormatLinear(123.4); got != "123" {
		t.Fatalf("FormatLinear(123.4)=%q", got)
	}
	if got := FormatLinear(12.34); got != "12.3" {
		t.Fatalf("FormatLinear(12.34)=%q", got)
	}
}

func TestClampLog10(t *testing.T) {
	got := ClampLog10([]float64{0, 1e-5, 0.01, 1, 50, -2}, -3, 0)
	want := []float64{-3, -3, -2, 0, 0, -3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("index %d: %v want %v", i, got[i], want[i])
		}
	}
}

func TestParamsLabel(t *testing.T) {
	if got := ParamsLabel(reference); got != "pMax=4  perm=300  x1=0.01" {
		t.Fatalf("label %q", got)
	}
}

func uniform(img image.Image) bool {
	b := img.Bounds()
	r0, g0, b0, _ := img.At(b.Min.X, b.Min.Y).RGBA()
	for y := b.Min.Y; y < b.Max.Y; y += 3 {
		for x := b.Min.X; x < b.Max.X; x += 3 {
			r, g, bb, _ := img.At(x, y).RGBA()
			if r != r0 || g != g0 || bb != b0 {
				return false
			}
		}
	}
	return true
}
