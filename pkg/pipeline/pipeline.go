// Package pipeline drives the model: for every decision option, country,
// scenario/strategy option and confidence level it runs demand, supply, cost
// and assessment over a fresh copy of the region table, then writes the
// pooled results.
package pipeline

import (
	"context"
	"time"

	"github.com/ChicagoDave/netviability/internal/logging"
	"github.com/ChicagoDave/netviability/internal/observability"
	"github.com/ChicagoDave/netviability/pkg/assess"
	"github.com/ChicagoDave/netviability/pkg/cost"
	"github.com/ChicagoDave/netviability/pkg/demand"
	"github.com/ChicagoDave/netviability/pkg/inputs"
	"github.com/ChicagoDave/netviability/pkg/output"
	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
	"github.com/ChicagoDave/netviability/pkg/supply"
	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Stage names used for timing.
const (
	StageDemand = "demand"
	StageSupply = "supply"
	StageCost   = "cost"
	StageAssess = "assess"
	StageWrite  = "write"
)

// Totals summarises one option pass over one country.
type Totals struct {
	DecisionOption string  `json:"decision_option"`
	Country        string  `json:"country"`
	Scenario       string  `json:"scenario"`
	Strategy       string  `json:"strategy"`
	Confidence     int     `json:"confidence"`
	Regions        int     `json:"regions"`
	Skipped        int     `json:"skipped"`
	Revenue        float64 `json:"revenue"`
	NetworkCost    float64 `json:"network_cost"`
	TotalCost      float64 `json:"total_cost"`
	StateSubsidy   float64 `json:"state_subsidy"`
}

// Result is what a run produced.
type Result struct {
	RunID  string   `json:"run_id"`
	Totals []Totals `json:"totals"`
	Files  []string `json:"files"`
}

// Runner holds the read-only run context.
type Runner struct {
	Config  *spec.Config
	Log     logging.Logger
	Metrics *observability.PipelineCollector
	// Write controls whether result tables are written. Summaries run without it.
	Write bool

	capacity  *inputs.CapacityLookup
	countries map[string]*inputs.Country
}

// New returns a runner that writes results.
func New(cfg *spec.Config, log logging.Logger, metrics *observability.PipelineCollector) *Runner {
	if log == nil {
		log = logging.Noop()
	}
	return &Runner{Config: cfg, Log: log, Metrics: metrics, Write: true, countries: map[string]*inputs.Country{}}
}

// UseInputs preloads tables so the runner does not read them from disk.
func (r *Runner) UseInputs(capacity inputs.CapacityLookup, countries ...*inputs.Country) {
	r.capacity = &capacity
	if r.countries == nil {
		r.countries = map[string]*inputs.Country{}
	}
	for _, c := range countries {
		r.countries[c.ISO3] = c
	}
}

// Run executes every selected decision option.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	ctx, log := logging.WithRunLogger(ctx, r.Log)
	runID := logging.RunIDFromContext(ctx)

	ctx, span := observability.Tracer().Start(ctx, "pipeline.run", trace.WithAttributes(attribute.String("run_id", runID)))
	defer span.End()

	res, err := r.run(ctx, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	res.RunID = runID
	return res, nil
}

func (r *Runner) run(ctx context.Context, log logging.Logger) (*Result, error) {
	cfg := r.Config
	paths := cfg.Paths()
	if err := r.loadCapacity(paths); err != nil {
		return nil, err
	}

	res := &Result{}
	var writer *output.Writer
	if r.Write {
		writer = output.NewWriter(paths.Results(), cfg.Workbook)
	}

	decisions := cfg.SelectedDecisionOptions()
	countries := cfg.SelectedCountries()
	log.Info(ctx, "run started",
		logging.Int("decision_options", len(decisions)),
		logging.Int("countries", len(countries)),
		logging.String("base_path", cfg.BasePath),
	)

	for _, decision := range decisions {
		var records []output.Record
		var demandRows []demand.YearRow
		for _, iso3 := range countries {
			recs, rows, totals, err := r.runCountry(ctx, log, decision, iso3)
			if err != nil {
				return nil, err
			}
			records = append(records, recs...)
			demandRows = append(demandRows, rows...)
			res.Totals = append(res.Totals, totals...)
		}
		if writer == nil {
			continue
		}
		start := time.Now()
		files, err := writer.WriteOption(decision, records, demandRows)
		if err != nil {
			return nil, err
		}
		r.Metrics.ObserveStage(StageWrite, time.Since(start))
		res.Files = append(res.Files, files...)
		log.Info(ctx, "decision option written", logging.String("decision_option", decision), logging.Int("files", len(files)))
	}

	if writer != nil {
		files, err := writer.WriteAllOptions()
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, files...)
	}
	return res, nil
}

func (r *Runner) runCountry(ctx context.Context, log logging.Logger, decision, iso3 string) ([]output.Record, []demand.YearRow, []Totals, error) {
	ctx, span := observability.Tracer().Start(ctx, "pipeline.country", trace.WithAttributes(
		attribute.String("country", iso3),
		attribute.String("decision_option", decision),
	))
	defer span.End()

	params, ok := r.Config.Parameters.Countries[iso3]
	if !ok {
		return nil, nil, nil, eris.Wrapf(spec.ErrParameterMiss, "no parameters for country %s", iso3)
	}
	country, err := r.loadCountry(iso3)
	if err != nil {
		span.RecordError(err)
		return nil, nil, nil, err
	}
	log = log.With(logging.String("country", iso3), logging.String("decision_option", decision))

	var records []output.Record
	var rows []demand.YearRow
	var totals []Totals
	for _, opt := range r.Config.Parameters.Options[decision] {
		parsed, err := opt.Parse()
		if err != nil {
			return nil, nil, nil, err
		}
		for _, confidence := range r.Config.Parameters.Global.Confidence {
			pass, err := r.RunOption(ctx, country, params, parsed, confidence)
			if err != nil {
				return nil, nil, nil, eris.Wrapf(err, "%s %s %s", iso3, opt.Scenario, opt.Strategy)
			}
			for _, reg := range pass.Regions {
				records = append(records, output.NewRecord(reg, opt, confidence))
			}
			rows = append(rows, pass.Rows...)

			t := pass.Totals(decision, iso3, opt, confidence)
			totals = append(totals, t)

			r.Metrics.ObserveRegions(iso3, decision, observability.OutcomeModelled, t.Regions)
			r.Metrics.ObserveRegions(iso3, decision, observability.OutcomeSkipped, t.Skipped)
			r.Metrics.SetStateSubsidy(iso3, decision, t.StateSubsidy)
			r.Metrics.IncOptions(decision)
			for _, s := range pass.Skipped {
				log.Debug(ctx, "region skipped", logging.String("region", s.ID), logging.Float("area_km2", s.AreaKm2))
			}
			log.Info(ctx, "option modelled",
				logging.String("scenario", opt.Scenario),
				logging.String("strategy", opt.Strategy),
				logging.Int("confidence", confidence),
				logging.Int("regions", t.Regions),
				logging.Float("state_subsidy", t.StateSubsidy),
			)
		}
	}
	return records, rows, totals, nil
}

// Pass is the outcome of one option and confidence level over one country.
type Pass struct {
	Regions []*region.Region
	Skipped []*region.Region
	Rows    []demand.YearRow
}

// Totals sums the pass.
func (p *Pass) Totals(decision, iso3 string, opt spec.Option, confidence int) Totals {
	t := Totals{
		DecisionOption: decision,
		Country:        iso3,
		Scenario:       opt.Scenario,
		Strategy:       opt.Strategy,
		Confidence:     confidence,
		Regions:        len(p.Regions),
		Skipped:        len(p.Skipped),
	}
	for _, reg := range p.Regions {
		t.Revenue += reg.Demand.TotalMNORevenue
		t.NetworkCost += reg.Groups.NetworkCost
		t.TotalCost += reg.Assessment.TotalMNOCost
		t.StateSubsidy += reg.Assessment.RequiredStateSubsidy
	}
	return t
}

// RunOption runs every stage for one country, option and confidence level on
// a fresh copy of the country's region table.
func (r *Runner) RunOption(ctx context.Context, country *inputs.Country, params spec.CountryParameters, opt spec.ParsedOption, confidence int) (*Pass, error) {
	_, span := observability.Tracer().Start(ctx, "pipeline.option", trace.WithAttributes(
		attribute.String("country", country.ISO3),
		attribute.String("scenario", opt.Raw.Scenario),
		attribute.String("strategy", opt.Raw.Strategy),
		attribute.Int("confidence", confidence),
	))
	defer span.End()

	if r.capacity == nil {
		return nil, eris.New("capacity lookup not loaded")
	}
	global := r.Config.Parameters.Global
	regions := region.FreshTable(country.Regions)

	start := time.Now()
	dem, err := demand.Estimate(regions, demand.Inputs{
		Global:      global,
		Country:     params,
		Option:      opt,
		Confidence:  confidence,
		Timesteps:   global.Timesteps(),
		Penetration: country.Penetration,
		Smartphones: country.Smartphones,
	})
	if err != nil {
		return nil, r.fail(span, err)
	}
	r.Metrics.ObserveStage(StageDemand, time.Since(start))
	modelled := dem.Regions

	start = time.Now()
	if err := supply.Estimate(modelled, supply.Inputs{
		Country:    params,
		Strategy:   opt.Strategy,
		Confidence: confidence,
		Capacity:   *r.capacity,
	}); err != nil {
		return nil, r.fail(span, err)
	}
	r.Metrics.ObserveStage(StageSupply, time.Since(start))

	start = time.Now()
	if err := cost.Estimate(modelled, cost.Inputs{
		Global:   global,
		Country:  params,
		Strategy: opt.Strategy,
		Costs:    r.Config.Parameters.Costs,
		Core:     country.Core,
	}); err != nil {
		return nil, r.fail(span, err)
	}
	r.Metrics.ObserveStage(StageCost, time.Since(start))

	start = time.Now()
	if err := assess.Estimate(modelled, assess.Inputs{
		Global:   global,
		Country:  params,
		Strategy: opt.Strategy,
	}); err != nil {
		return nil, r.fail(span, err)
	}
	r.Metrics.ObserveStage(StageAssess, time.Since(start))

	output.AssignDeciles(modelled)
	span.SetAttributes(attribute.Int("regions", len(modelled)))
	return &Pass{Regions: modelled, Skipped: dem.Skipped, Rows: dem.Rows}, nil
}

func (r *Runner) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (r *Runner) loadCapacity(paths spec.Paths) error {
	if r.capacity != nil {
		return nil
	}
	lut, err := inputs.LoadCapacity(paths.CapacityLookup())
	if err != nil {
		return err
	}
	r.capacity = &lut
	return nil
}

func (r *Runner) loadCountry(iso3 string) (*inputs.Country, error) {
	if c, ok := r.countries[iso3]; ok {
		return c, nil
	}
	c, err := inputs.LoadCountry(r.Config.Paths(), iso3)
	if err != nil {
		return nil, err
	}
	if r.countries == nil {
		r.countries = map[string]*inputs.Country{}
	}
	r.countries[iso3] = c
	return c, nil
}
