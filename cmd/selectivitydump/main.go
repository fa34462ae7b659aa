// Command selectivitydump prints the selectivity sweep for one parameter set as TSV or JSON and
// can write the chart PNG alongside.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tkok3/AMS/src/graph"
	"github.com/tkok3/AMS/src/logging"
	"github.com/tkok3/AMS/src/selectivity"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("selectivitydump", flag.ContinueOnError)
	var in selectivity.Input
	var format, pngPath, logLevel string
	var width, height int
	fs.Float64Var(&in.PMaxExponent, "pmax", 4, "Max pressure ratio exponent (sweep ends at 10^pmax)")
	fs.Float64Var(&in.RelativePermeability, "perm", 300, "Relative permeability (> 1)")
	fs.Float64Var(&in.MoleFraction, "x1", 0.01, "Feed mole fraction of component 1 in [0, 1]")
	fs.StringVar(&format, "format", "tsv", "Output format: tsv|json")
	fs.StringVar(&pngPath, "png", "", "Also write the chart to this PNG path")
	fs.IntVar(&width, "width", 1200, "PNG width in pixels")
	fs.IntVar(&height, "height", 520, "PNG height in pixels")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !logging.ValidLevel(logLevel) {
		return fmt.Errorf("unknown log level %q", logLevel)
	}
	logging.SetLogLevel(logLevel)
	if format != "tsv" && format != "json" {
		return fmt.Errorf("unknown format %q (want tsv or json)", format)
	}

	fig, err := graph.BuildFigure(in)
	if err != nil {
		return err
	}
	if err := dump(stdout, fig, format); err != nil {
		return err
	}
	if pngPath == "" {
		return nil
	}
	opts := graph.DefaultOptions()
	opts.Width, opts.Height = width, height
	data, err := graph.RenderPNG(fig, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(pngPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", pngPath, err)
	}
	logging.Infof("wrote %s (%d bytes)", pngPath, len(data))
	return nil
}

func dump(w io.Writer, fig *graph.Figure, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fig)
	}
	if _, err := fmt.Fprintln(w, "p\ty1\ty2\tselectivity"); err != nil {
		return err
	}
	for i, p := range fig.PressureRatio {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", num(p), num(fig.Concentration[i]), num(fig.Component2[i]), num(fig.Selectivity[i]))
		if err != nil {
			return err
		}
	}
	return nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }
