package dashboard

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tkok3/AMS/src/config"
	"github.com/tkok3/AMS/src/graph"
	"github.com/tkok3/AMS/src/selectivity"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Chart.Width = 700
	cfg.Chart.Height = 360
	s, err := NewServer(ServerConfig{Config: cfg})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestIndexPage(t *testing.T) {
	_, ts := newTestServer(t)
	resp := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	for _, want := range []string{"Interactive Selectivity Graph", `id="x1"`, `id="perm"`, `max="1000"`, `value="0.01"`, `value="300"`, "/api/chart.png"} {
		if !strings.Contains(page, want) {
			t.Fatalf("index page missing %q", want)
		}
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
	if nf := get(t, ts.URL+"/nope"); nf.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown path status %d", nf.StatusCode)
	}
}

func TestCurvesAPI(t *testing.T) {
	s, ts := newTestServer(t)
	resp := get(t, ts.URL+"/api/curves?pmax=4&perm=300&x1=0.01")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var fig graph.Figure
	if err := json.NewDecoder(resp.Body).Decode(&fig); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fig.PressureRatio) != selectivity.Samples || len(fig.Selectivity) != selectivity.Samples {
		t.Fatalf("unexpected lengths %d/%d", len(fig.PressureRatio), len(fig.Selectivity))
	}
	if fig.PressureRatio[0] != 0.1 || fig.PressureRatio[selectivity.Samples-1] != 10000 {
		t.Fatalf("sweep endpoints %v..%v", fig.PressureRatio[0], fig.PressureRatio[selectivity.Samples-1])
	}
	if got := testutil.ToFloat64(s.Metrics().computations.WithLabelValues(OutcomeOK)); got != 1 {
		t.Fatalf("ok computations %v want 1", got)
	}
}

func TestCurvesAPI_UsesDefaults(t *testing.T) {
	s, ts := newTestServer(t)
	var fig graph.Figure
	resp := get(t, ts.URL+"/api/curves")
	if err := json.NewDecoder(resp.Body).Decode(&fig); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fig.Params != config.DefaultWebParams {
		t.Fatalf("params %+v want defaults", fig.Params)
	}

	cfg := config.Default()
	cfg.Web.Defaults = selectivity.Input{PMaxExponent: 2, RelativePermeability: 50, MoleFraction: 0.4}
	s.SetConfig(cfg)
	resp = get(t, ts.URL+"/api/curves?x1=0.2")
	fig = graph.Figure{}
	if err := json.NewDecoder(resp.Body).Decode(&fig); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := selectivity.Input{PMaxExponent: 2, RelativePermeability: 50, MoleFraction: 0.2}
	if fig.Params != want {
		t.Fatalf("params %+v want %+v", fig.Params, want)
	}
}

func TestCurvesAPI_Errors(t *testing.T) {
	s, ts := newTestServer(t)
	cases := []struct {
		query  string
		status int
		kind   string
	}{
		{"perm=abc", http.StatusBadRequest, "input"},
		{"x1=NaN", http.StatusBadRequest, "input"},
		{"perm=1", http.StatusUnprocessableEntity, "domain"},
		{"x1=1.5", http.StatusUnprocessableEntity, "domain"},
		{"x1=1", http.StatusUnprocessableEntity, "domain"},
	}
	for _, c := range cases {
		resp := get(t, ts.URL+"/api/curves?"+c.query)
		if resp.StatusCode != c.status {
			t.Fatalf("%s: status %d want %d", c.query, resp.StatusCode, c.status)
		}
		var body errorBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode: %v", c.query, err)
		}
		if body.Kind != c.kind || body.Error == "" {
			t.Fatalf("%s: body %+v", c.query, body)
		}
	}
	if got := testutil.ToFloat64(s.Metrics().computations.WithLabelValues(OutcomeInputError)); got != 2 {
		t.Fatalf("input errors %v want 2", got)
	}
	if got := testutil.ToFloat64(s.Metrics().computations.WithLabelValues(OutcomeDomainError)); got != 3 {
		t.Fatalf("domain errors %v want 3", got)
	}
	if got := testutil.ToFloat64(s.Metrics().requests.WithLabelValues("curves", "422")); got != 3 {
		t.Fatalf("422 requests %v want 3", got)
	}
}

func TestChartPNG(t *testing.T) {
	s, ts := newTestServer(t)
	resp := get(t, ts.URL+"/api/chart.png?pmax=3&perm=300&x1=0.01&w=640&h=320")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	cfg, err := png.DecodeConfig(resp.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 640 || cfg.Height != 320 {
		t.Fatalf("png %dx%d", cfg.Width, cfg.Height)
	}
	if n := testutil.CollectAndCount(s.Metrics().renderSeconds); n != 1 {
		t.Fatalf("render histogram series %d", n)
	}

	// size falls back to config and is clamped
	resp = get(t, ts.URL+"/api/chart.png?w=10")
	cfg, err = png.DecodeConfig(resp.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != minChartWidth || cfg.Height != 360 {
		t.Fatalf("clamped png %dx%d", cfg.Width, cfg.Height)
	}

	if bad := get(t, ts.URL+"/api/chart.png?w=wide"); bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad width status %d", bad.StatusCode)
	}
	if bad := get(t, ts.URL+"/api/chart.png?h=tall"); bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad height status %d", bad.StatusCode)
	}
	// size errors happen before any computation
	if got := testutil.ToFloat64(s.Metrics().computations.WithLabelValues(OutcomeInputError)); got != 0 {
		t.Fatalf("input_error computations %v want 0 after size errors", got)
	}
	if got := testutil.ToFloat64(s.Metrics().requests.WithLabelValues("chart", "400")); got != 2 {
		t.Fatalf("chart 400 requests %v want 2", got)
	}
	if bad := get(t, ts.URL+"/api/chart.png?perm=1"); bad.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("domain error status %d", bad.StatusCode)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(t)
	resp := get(t, ts.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status %d", resp.StatusCode)
	}
	get(t, ts.URL+"/api/curves")
	resp = get(t, ts.URL+"/metrics")
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "ams_dashboard_computations_total") {
		t.Fatalf("metrics output missing computations counter:\n%s", body)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	_, ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("request id %q", got)
	}
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Web.ListenAddress = "127.0.0.1:0"
	s, err := NewServer(ServerConfig{Config: cfg})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
