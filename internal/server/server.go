package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ChicagoDave/netviability/internal/logging"
	"github.com/ChicagoDave/netviability/internal/observability"
	"github.com/ChicagoDave/netviability/pkg/output"
	"github.com/ChicagoDave/netviability/pkg/spec"
	"github.com/prometheus/client_golang/prometheus"
)

// AllOptions selects the combined tables written after every decision option.
const AllOptions = "all_options"

// Server is the local read-only results browser.
type Server struct {
	cfg     *spec.Config
	metrics prometheus.Gatherer
	log     logging.Logger
	port    int
}

// New creates a server over the results of the given configuration. Metrics
// come from the given gatherer, or from the run's textfile when it is nil.
func New(cfg *spec.Config, metrics prometheus.Gatherer, log logging.Logger, port int) *Server {
	if log == nil {
		log = logging.Noop()
	}
	if metrics == nil {
		metrics = observability.TextfileGatherer(cfg.MetricsPath())
	}
	return &Server{cfg: cfg, metrics: metrics, log: log, port: port}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("GET /api/parameters", s.handleParameters)
	mux.HandleFunc("GET /api/results/{table}", s.handleResults)
	mux.Handle("GET /metrics", observability.Handler(s.metrics))
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return mux
}

// Start launches the HTTP server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	s.log.Info(ctx, "results browser starting",
		logging.String("url", "http://localhost"+addr),
		logging.String("results", s.cfg.Paths().Results()),
	)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>netviability</title></head>
<body style="font-family:system-ui;margin:2em">
<h1>netviability results</h1>
<ul>
<li><a href="/api/options">/api/options</a></li>
<li><a href="/api/parameters">/api/parameters</a></li>
<li><a href="/metrics">/metrics</a></li>
</ul>
<h2>Tables</h2>
<ul>
`)
	for _, name := range tableNames() {
		fmt.Fprintf(w, "<li><a href=\"/api/results/%s\">%s</a></li>\n", name, name)
	}
	fmt.Fprint(w, "</ul>\n</body></html>")
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	opts := map[string][]spec.Option{}
	for _, name := range s.cfg.SelectedDecisionOptions() {
		opts[name] = s.cfg.Parameters.Options[name]
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleParameters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Parameters)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	table, ok := output.TableByName(r.PathValue("table"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown table %q", r.PathValue("table")))
		return
	}
	decision := r.URL.Query().Get("decision_option")
	if decision == "" {
		decision = AllOptions
	}
	if _, known := s.cfg.Parameters.Options[decision]; !known && decision != AllOptions {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown decision option %q", decision))
		return
	}

	path := filepath.Join(s.cfg.Paths().Results(), table.FileName(decision))
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s has not been written", table.FileName(decision)))
		return
	}
	rendered, err := output.ReadCSV(path)
	if err != nil {
		s.log.Error(r.Context(), "reading results", logging.String("path", path), logging.Err(err))
		writeError(w, http.StatusInternalServerError, "could not read results")
		return
	}

	rows := make([]map[string]string, 0, len(rendered.Rows))
	for _, rec := range rendered.Rows {
		row := make(map[string]string, len(rendered.Header))
		for i, col := range rendered.Header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"table":           table.Name,
		"decision_option": decision,
		"columns":         rendered.Header,
		"rows":            rows,
	})
}

func tableNames() []string {
	names := []string{output.DemandTable}
	for _, t := range output.Tables {
		names = append(names, t.Name)
	}
	return names
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
