package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rotisserie/eris"
)

// Region outcomes.
const (
	OutcomeModelled = "modelled"
	OutcomeSkipped  = "skipped"
)

// PipelineCollector bundles the Prometheus metrics of a modelling run.
type PipelineCollector struct {
	gatherer prometheus.Gatherer

	Regions       *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	StateSubsidy  *prometheus.GaugeVec
	Options       *prometheus.CounterVec
}

// NewPipelineCollector registers pipeline metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewPipelineCollector(reg prometheus.Registerer) (*PipelineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	regions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netviability_regions_total",
		Help: "Regions processed, labeled by country, decision option and outcome.",
	}, []string{"country", "decision_option", "outcome"}), "netviability_regions_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "netviability_stage_duration_seconds",
		Help:    "Time spent in each pipeline stage per option pass.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"stage"}), "netviability_stage_duration_seconds")
	if err != nil {
		return nil, err
	}

	subsidy, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "netviability_state_subsidy",
		Help: "Required state subsidy summed over the regions of the latest option pass.",
	}, []string{"country", "decision_option"}), "netviability_state_subsidy")
	if err != nil {
		return nil, err
	}

	options, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netviability_options_total",
		Help: "Scenario and strategy passes completed per decision option.",
	}, []string{"decision_option"}), "netviability_options_total")
	if err != nil {
		return nil, err
	}

	return &PipelineCollector{
		gatherer:      gatherer,
		Regions:       regions,
		StageDuration: durations,
		StateSubsidy:  subsidy,
		Options:       options,
	}, nil
}

// ObserveRegions counts regions for a country and decision option.
func (c *PipelineCollector) ObserveRegions(country, decisionOption, outcome string, n int) {
	if c == nil || c.Regions == nil || n <= 0 {
		return
	}
	c.Regions.WithLabelValues(country, decisionOption, outcome).Add(float64(n))
}

// ObserveStage records how long a stage took.
func (c *PipelineCollector) ObserveStage(stage string, d time.Duration) {
	if c == nil || c.StageDuration == nil {
		return
	}
	c.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// SetStateSubsidy records the latest subsidy total.
func (c *PipelineCollector) SetStateSubsidy(country, decisionOption string, v float64) {
	if c == nil || c.StateSubsidy == nil {
		return
	}
	c.StateSubsidy.WithLabelValues(country, decisionOption).Set(v)
}

// IncOptions counts a completed option pass.
func (c *PipelineCollector) IncOptions(decisionOption string) {
	if c == nil || c.Options == nil {
		return
	}
	c.Options.WithLabelValues(decisionOption).Inc()
}

// Gatherer returns the gatherer the collector's metrics are registered with.
func (c *PipelineCollector) Gatherer() prometheus.Gatherer {
	if c == nil || c.gatherer == nil {
		return prometheus.DefaultGatherer
	}
	return c.gatherer
}

// WriteTextfile dumps the current metrics in the Prometheus text format.
func (c *PipelineCollector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return eris.Wrapf(err, "writing metrics to %s", path)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, eris.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, eris.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, eris.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
