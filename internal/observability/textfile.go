package observability

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/rotisserie/eris"
)

// Handler exposes a /metrics handler over the given gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// TextfileGatherer gathers the metric families written by WriteTextfile. The
// file is re-read on every gather so a later run shows up without a restart;
// a missing file gathers nothing.
func TextfileGatherer(path string) prometheus.Gatherer {
	return prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, eris.Wrapf(err, "opening metrics textfile %s", path)
		}
		defer f.Close()

		var parser expfmt.TextParser
		families, err := parser.TextToMetricFamilies(f)
		if err != nil {
			return nil, eris.Wrapf(err, "parsing metrics textfile %s", path)
		}
		out := make([]*dto.MetricFamily, 0, len(families))
		for _, mf := range families {
			out = append(out, mf)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
		return out, nil
	})
}
