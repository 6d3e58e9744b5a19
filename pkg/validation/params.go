package validation

import (
	"fmt"

	"github.com/ChicagoDave/netviability/pkg/cost"
	"github.com/ChicagoDave/netviability/pkg/spec"
)

var geotypes = []string{"urban", "suburban", "rural"}

// ValidateConfig checks the merged parameter dictionaries of a run
// configuration. Only selected countries and decision options are checked.
func ValidateConfig(cfg *spec.Config) *Report {
	r := NewReport()

	validateFilters(cfg, r)
	validateGlobal(cfg.Parameters.Global, r)

	var strategies []spec.Strategy
	for _, name := range cfg.SelectedDecisionOptions() {
		strategies = append(strategies, validateOptions(name, cfg.Parameters.Options[name], r)...)
	}
	validateCatalog(cfg.Parameters.Costs, strategies, r)
	for _, iso3 := range cfg.SelectedCountries() {
		r.Merge(validateCountry(iso3, cfg.Parameters.Countries[iso3], strategies))
	}

	if r.Valid {
		r.AddInfo(Result{
			Level:   LevelSchema,
			Message: fmt.Sprintf("%d countries, %d options checked", len(cfg.SelectedCountries()), len(strategies)),
		})
	}
	return r
}

func validateFilters(cfg *spec.Config, r *Report) {
	for _, iso3 := range cfg.Countries {
		if _, ok := cfg.Parameters.Countries[iso3]; !ok {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("country %q has no parameters", iso3),
				Path:        "countries",
				ActualValue: iso3,
				Suggestions: cfg.Parameters.CountryCodes(),
			})
		}
	}
	for _, name := range cfg.DecisionOptions {
		if _, ok := cfg.Parameters.Options[name]; !ok {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("decision option %q is not defined", name),
				Path:        "decision_options",
				ActualValue: name,
				Suggestions: cfg.Parameters.DecisionOptionNames(),
			})
		}
	}
}

func validateGlobal(g spec.GlobalParameters, r *Report) {
	positive := []struct {
		path  string
		value float64
	}{
		{"global.overbooking_factor", g.OverbookingFactor},
		{"global.return_period", float64(g.ReturnPeriod)},
		{"global.sectorization", g.Sectorization},
		{"global.local_node_spacing_km2", g.LocalNodeSpacingKm2},
		{"global.cots_processing_split_urban", g.CotsProcessingSplitUrban},
		{"global.cots_processing_split_suburban", g.CotsProcessingSplitSuburban},
		{"global.cots_processing_split_rural", g.CotsProcessingSplitRural},
		{"global.low_latency_switch_split", g.LowLatencySwitchSplit},
		{"global.rack_split", g.RackSplit},
		{"global.cloud_power_supply_converter_split", g.CloudPowerSupplyConverterSplit},
		{"global.cloud_backhaul_split", g.CloudBackhaulSplit},
	}
	for _, p := range positive {
		if p.value <= 0 {
			r.AddError(Result{
				Level:       LevelParameter,
				Message:     p.path + " must be greater than 0",
				Path:        p.path,
				ActualValue: p.value,
				Expected:    "> 0",
			})
		}
	}

	if g.DiscountRate < 0 {
		r.AddError(Result{
			Level:       LevelParameter,
			Message:     "discount rate must be non-negative",
			Path:        "global.discount_rate",
			ActualValue: g.DiscountRate,
			Expected:    ">= 0",
		})
	}
	if len(g.Confidence) == 0 {
		r.AddError(Result{
			Level:    LevelParameter,
			Message:  "at least one confidence level is required",
			Path:     "global.confidence",
			Expected: "non-empty list",
		})
	}
	for _, c := range g.Confidence {
		if c <= 0 || c >= 100 {
			r.AddError(Result{
				Level:       LevelParameter,
				Message:     fmt.Sprintf("confidence level %d is outside (0, 100)", c),
				Path:        "global.confidence",
				ActualValue: c,
				Expected:    "1..99",
			})
		}
	}
	if g.EndYear < g.StartYear {
		r.AddError(Result{
			Level:       LevelParameter,
			Message:     fmt.Sprintf("end year %d is before start year %d", g.EndYear, g.StartYear),
			Path:        "global.end_year",
			ActualValue: g.EndYear,
			Expected:    fmt.Sprintf(">= %d", g.StartYear),
		})
	}
}

// validateOptions parses every option and returns the strategies that parsed.
func validateOptions(name string, opts []spec.Option, r *Report) []spec.Strategy {
	if len(opts) == 0 {
		r.AddError(Result{
			Level:    LevelOption,
			Message:  fmt.Sprintf("decision option %q has no options", name),
			Path:     "options." + name,
			Expected: "at least one scenario/strategy pair",
		})
		return nil
	}
	var out []spec.Strategy
	for i, opt := range opts {
		parsed, err := opt.Parse()
		if err != nil {
			r.AddError(Result{
				Level:       LevelOption,
				Message:     err.Error(),
				Path:        fmt.Sprintf("options.%s[%d]", name, i),
				ActualValue: opt.Scenario + " " + opt.Strategy,
			})
			continue
		}
		out = append(out, parsed.Strategy)
	}
	return out
}

func validateCatalog(costs spec.Costs, strategies []spec.Strategy, r *Report) {
	seen := map[spec.Core]bool{}
	for _, st := range strategies {
		if seen[st.Core] {
			continue
		}
		seen[st.Core] = true
		for _, key := range cost.CatalogKeys(st.Core) {
			if v, ok := costs[key]; !ok {
				r.AddError(Result{
					Level:   LevelParameter,
					Message: fmt.Sprintf("cost catalog has no entry %q", key),
					Path:    "costs." + key,
				})
			} else if v < 0 {
				r.AddError(Result{
					Level:       LevelParameter,
					Message:     fmt.Sprintf("cost %q must be non-negative", key),
					Path:        "costs." + key,
					ActualValue: v,
					Expected:    ">= 0",
				})
			}
		}
	}
}

func validateCountry(iso3 string, c spec.CountryParameters, strategies []spec.Strategy) *Report {
	r := newCountryReport(iso3)
	path := "countries." + iso3

	if c.ARPU.High <= 0 || c.ARPU.Medium <= 0 || c.ARPU.Low <= 0 {
		r.AddError(Result{
			Level:       LevelParameter,
			Message:     iso3 + ": every ARPU tier must be greater than 0",
			Path:        path + ".arpu",
			ActualValue: c.ARPU,
			Expected:    "> 0",
		})
	}

	lum := c.Luminosity
	switch {
	case lum.High < lum.Medium:
		r.AddError(Result{
			Level:       LevelParameter,
			Message:     fmt.Sprintf("%s: luminosity high threshold %g is below medium %g", iso3, lum.High, lum.Medium),
			Path:        path + ".luminosity",
			ActualValue: lum,
			Expected:    "high >= medium",
		})
	case lum.High == lum.Medium:
		r.AddWarning(Result{
			Level:       LevelParameter,
			Message:     iso3 + ": luminosity thresholds are equal, the medium ARPU tier is never used",
			Path:        path + ".luminosity",
			ActualValue: lum,
		})
	}

	validateNetworks(iso3, c, strategies, r)

	for _, gen := range []spec.Generation{spec.Gen4G, spec.Gen5G} {
		if _, err := c.Bands(gen); err != nil {
			r.AddError(Result{
				Level:   LevelParameter,
				Message: err.Error(),
				Path:    path + ".frequencies." + string(gen),
			})
		}
	}

	f := c.Financials
	percents := []struct {
		name  string
		value float64
	}{
		{"proportion_of_sites", c.ProportionOfSites},
		{"financials.wacc", f.WACC},
		{"financials.profit_margin", f.ProfitMargin},
		{"financials.spectrum_cost_low", f.SpectrumCostLow},
		{"financials.tax_low", f.TaxLow},
		{"financials.tax_baseline", f.TaxBaseline},
		{"financials.tax_high", f.TaxHigh},
		{"financials.administration_percentage_of_network_cost", f.AdministrationPercentOfNetwork},
	}
	for _, p := range percents {
		if p.value < 0 || p.value > 100 {
			r.AddError(Result{
				Level:       LevelParameter,
				Message:     fmt.Sprintf("%s: %s must be a percentage", iso3, p.name),
				Path:        path + "." + p.name,
				ActualValue: p.value,
				Expected:    "0..100",
			})
		}
	}
	if f.SpectrumCostHigh < 0 {
		r.AddError(Result{
			Level:       LevelParameter,
			Message:     iso3 + ": spectrum_cost_high must be non-negative",
			Path:        path + ".financials.spectrum_cost_high",
			ActualValue: f.SpectrumCostHigh,
			Expected:    ">= 0",
		})
	}
	if f.WACC > 50 {
		r.AddWarning(Result{
			Level:       LevelParameter,
			Message:     fmt.Sprintf("%s: WACC of %g%% is unusually high", iso3, f.WACC),
			Path:        path + ".financials.wacc",
			ActualValue: f.WACC,
		})
	}
	return r
}

// validateNetworks checks that every sharing and networks keyword used by the
// options has an operator count in every geotype.
func validateNetworks(iso3 string, c spec.CountryParameters, strategies []spec.Strategy, r *Report) {
	checked := map[string]bool{}
	for _, st := range strategies {
		for _, policy := range []string{string(st.Sharing), string(st.Networks)} {
			if checked[policy] {
				continue
			}
			checked[policy] = true
			for _, g := range geotypes {
				if _, err := c.NetworkCount(policy, g); err != nil {
					r.AddError(Result{
						Level:   LevelParameter,
						Message: err.Error(),
						Path:    "countries." + iso3 + ".networks." + policy + "_" + g,
					})
				}
			}
		}
	}
}
