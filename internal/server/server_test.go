package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChicagoDave/netviability/internal/observability"
	"github.com/ChicagoDave/netviability/pkg/output"
	"github.com/ChicagoDave/netviability/pkg/spec"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestServer(t *testing.T) (*Server, *spec.Config) {
	t.Helper()
	cfg := spec.Default()
	cfg.BasePath = t.TempDir()
	cfg.DecisionOptions = []string{"technology_options"}
	return New(cfg, nil, nil, 0), cfg
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestOptions(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/api/options")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string][]spec.Option
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got["technology_options"]) == 0 {
		t.Errorf("options = %v, want technology_options only", got)
	}
}

func TestParameters(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/api/parameters")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got spec.Parameters
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Countries["CIV"].ARPU.High != 8 {
		t.Errorf("CIV high ARPU = %v, want 8", got.Countries["CIV"].ARPU.High)
	}
	if got.Global.ReturnPeriod != 10 {
		t.Errorf("return period = %d, want 10", got.Global.ReturnPeriod)
	}
}

func TestResults(t *testing.T) {
	s, cfg := newTestServer(t)
	if err := os.MkdirAll(cfg.Paths().Results(), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfg.Paths().Results(), "national_mno_results_technology_options.csv")
	err := output.WriteCSV(path, output.Rendered{
		Header: []string{"GID_0", "total_mno_revenue"},
		Rows:   [][]string{{"CIV", "1200"}, {"MLI", "800"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := get(t, s.Handler(), "/api/results/national_mno_results?decision_option=technology_options")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var got struct {
		Table   string              `json:"table"`
		Columns []string            `json:"columns"`
		Rows    []map[string]string `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Table != "national_mno_results" || len(got.Columns) != 2 {
		t.Errorf("table %q columns %v", got.Table, got.Columns)
	}
	if len(got.Rows) != 2 || got.Rows[1]["GID_0"] != "MLI" || got.Rows[0]["total_mno_revenue"] != "1200" {
		t.Errorf("rows = %v", got.Rows)
	}
}

func TestResultsErrors(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	cases := []struct {
		target string
		status int
	}{
		{"/api/results/no_such_table", http.StatusNotFound},
		{"/api/results/national_mno_results?decision_option=bogus", http.StatusBadRequest},
		{"/api/results/national_mno_results", http.StatusNotFound},
		{"/api/results/regional_annual_demand?decision_option=technology_options", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := get(t, h, tc.target)
		if rec.Code != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.target, rec.Code, tc.status)
		}
		if !strings.Contains(rec.Body.String(), "error") {
			t.Errorf("%s: body = %s", tc.target, rec.Body)
		}
	}
}

func TestMetricsServesRunTextfile(t *testing.T) {
	s, cfg := newTestServer(t)
	h := s.Handler()

	rec := get(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "netviability_") {
		t.Errorf("metrics before any run:\n%s", rec.Body)
	}

	metrics, err := observability.NewPipelineCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	metrics.IncOptions("technology_options")
	metrics.SetStateSubsidy("CIV", "technology_options", 1500)
	if err := os.MkdirAll(cfg.Paths().Processed(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := metrics.WriteTextfile(cfg.MetricsPath()); err != nil {
		t.Fatal(err)
	}

	rec = get(t, h, "/metrics")
	body := rec.Body.String()
	for _, want := range []string{
		`netviability_options_total{decision_option="technology_options"} 1`,
		`netviability_state_subsidy{country="CIV",decision_option="technology_options"} 1500`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics body missing %s:\n%s", want, body)
		}
	}
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{output.DemandTable, "decile_market_cost_results"} {
		if !strings.Contains(body, name) {
			t.Errorf("index missing %s", name)
		}
	}
	if rec := get(t, s.Handler(), "/nothing"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}
