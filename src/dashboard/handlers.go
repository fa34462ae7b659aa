package dashboard

import (
	"net/http"
	"time"

	"github.com/tkok3/AMS/src/config"
	"github.com/tkok3/AMS/src/graph"
	"github.com/tkok3/AMS/src/input"
	"github.com/tkok3/AMS/src/logging"
)

type pageData struct {
	Title   string
	PMax    string
	Perm    string
	X1      string
	Sliders config.SliderConfig
	Width   int
	Height  int
	Dark    bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cfg := s.Config()
	d := cfg.Web.Defaults
	data := pageData{
		Title:   "Interactive Selectivity Graph",
		PMax:    input.Format(d.PMaxExponent),
		Perm:    input.Format(d.RelativePermeability),
		X1:      input.Format(d.MoleFraction),
		Sliders: cfg.Sliders,
		Width:   cfg.Chart.Width,
		Height:  cfg.Chart.Height,
		Dark:    cfg.Chart.Dark,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		logging.Errorf("[%s] render index: %v", RequestID(r.Context()), err)
	}
}

func (s *Server) figure(r *http.Request, cfg *config.Config) (*graph.Figure, error) {
	in, err := parseParams(r.URL.Query(), cfg.Web.Defaults)
	if err != nil {
		return nil, err
	}
	fig, err := graph.BuildFigure(in)
	if err != nil {
		return nil, err
	}
	s.metrics.observeComputation(OutcomeOK)
	return fig, nil
}

func (s *Server) handleCurves(w http.ResponseWriter, r *http.Request) {
	fig, err := s.figure(r, s.Config())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	cfg := s.Config()
	width, height, err := parseSize(r.URL.Query(), cfg.Chart.Width, cfg.Chart.Height)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	fig, err := s.figure(r, cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start := time.Now()
	png, err := graph.RenderPNG(fig, graph.Options{Width: width, Height: height, Title: "Selectivity Graph", Dark: cfg.Chart.Dark})
	s.metrics.observeRender(time.Since(start))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		logging.Debugf("[%s] write png: %v", RequestID(r.Context()), err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
