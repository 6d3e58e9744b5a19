package spec

import "sort"

// Config is the top-level project configuration for a modelling run.
type Config struct {
	BasePath        string        `yaml:"base_path" json:"base_path"`
	Countries       []string      `yaml:"countries" json:"countries"`
	DecisionOptions []string      `yaml:"decision_options" json:"decision_options"`
	Workbook        bool          `yaml:"workbook" json:"workbook"`
	MetricsFile     string        `yaml:"metrics_file" json:"metrics_file"`
	Logging         LoggingConfig `yaml:"logging" json:"logging"`
	Tracing         TracingConfig `yaml:"tracing" json:"tracing"`
	Parameters      Parameters    `yaml:"parameters" json:"parameters"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" json:"enabled"`
	Exporter    string  `yaml:"exporter" json:"exporter"`
	Endpoint    string  `yaml:"endpoint" json:"endpoint"`
	SampleRatio float64 `yaml:"sample_ratio" json:"sample_ratio"`
	File        string  `yaml:"file" json:"file"`
}

// Parameters holds every read-only dictionary the model consults.
type Parameters struct {
	Global    GlobalParameters             `yaml:"global" json:"global"`
	Costs     Costs                        `yaml:"costs" json:"costs"`
	Countries map[string]CountryParameters `yaml:"countries" json:"countries"`
	Options   map[string][]Option          `yaml:"options" json:"options"`
}

// CountryCodes returns the ISO3 codes of all configured countries in sorted order.
func (p Parameters) CountryCodes() []string {
	codes := make([]string, 0, len(p.Countries))
	for code := range p.Countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DecisionOptionNames returns the configured decision options in sorted order.
func (p Parameters) DecisionOptionNames() []string {
	names := make([]string, 0, len(p.Options))
	for name := range p.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type GlobalParameters struct {
	OverbookingFactor     float64 `yaml:"overbooking_factor" json:"overbooking_factor"`
	ReturnPeriod          int     `yaml:"return_period" json:"return_period"`
	DiscountRate          float64 `yaml:"discount_rate" json:"discount_rate"`
	OpexPercentageOfCapex float64 `yaml:"opex_percentage_of_capex" json:"opex_percentage_of_capex"`
	Sectorization         float64 `yaml:"sectorization" json:"sectorization"`
	Confidence            []int   `yaml:"confidence" json:"confidence"`
	LocalNodeSpacingKm2   float64 `yaml:"local_node_spacing_km2" json:"local_node_spacing_km2"`
	StartYear             int     `yaml:"start_year" json:"start_year"`
	EndYear               int     `yaml:"end_year" json:"end_year"`

	CotsProcessingSplitUrban       float64 `yaml:"cots_processing_split_urban" json:"cots_processing_split_urban"`
	CotsProcessingSplitSuburban    float64 `yaml:"cots_processing_split_suburban" json:"cots_processing_split_suburban"`
	CotsProcessingSplitRural       float64 `yaml:"cots_processing_split_rural" json:"cots_processing_split_rural"`
	LowLatencySwitchSplit          float64 `yaml:"low_latency_switch_split" json:"low_latency_switch_split"`
	RackSplit                      float64 `yaml:"rack_split" json:"rack_split"`
	CloudPowerSupplyConverterSplit float64 `yaml:"cloud_power_supply_converter_split" json:"cloud_power_supply_converter_split"`
	CloudBackhaulSplit             float64 `yaml:"cloud_backhaul_split" json:"cloud_backhaul_split"`
}

// Timesteps returns the modelled years from StartYear to EndYear inclusive.
func (g GlobalParameters) Timesteps() []int {
	if g.EndYear < g.StartYear {
		return nil
	}
	years := make([]int, 0, g.EndYear-g.StartYear+1)
	for y := g.StartYear; y <= g.EndYear; y++ {
		years = append(years, y)
	}
	return years
}

// CotsProcessingSplit returns how many sites share one COTS processing unit
// in the given canonical geotype.
func (g GlobalParameters) CotsProcessingSplit(geotype string) float64 {
	switch geotype {
	case "urban":
		return g.CotsProcessingSplitUrban
	case "suburban":
		return g.CotsProcessingSplitSuburban
	default:
		return g.CotsProcessingSplitRural
	}
}

// Costs is the unit price catalog keyed by asset name.
type Costs map[string]float64

// Price returns the unit price for an asset or ErrParameterMiss.
func (c Costs) Price(asset string) (float64, error) {
	v, ok := c[asset]
	if !ok {
		return 0, parameterMiss("cost catalog has no entry %q", asset)
	}
	return v, nil
}

type CountryParameters struct {
	ISO3              string                 `yaml:"iso3" json:"iso3"`
	Name              string                 `yaml:"name" json:"name"`
	RegionalLevel     int                    `yaml:"regional_level" json:"regional_level"`
	Luminosity        LuminosityThresholds   `yaml:"luminosity" json:"luminosity"`
	ARPU              ARPUTiers              `yaml:"arpu" json:"arpu"`
	Networks          map[string]float64     `yaml:"networks" json:"networks"`
	Frequencies       map[string][]Frequency `yaml:"frequencies" json:"frequencies"`
	ProportionOfSites float64                `yaml:"proportion_of_sites" json:"proportion_of_sites"`
	Financials        Financials             `yaml:"financials" json:"financials"`
}

// NetworkCount returns the operator count for a policy keyword and canonical geotype.
func (c CountryParameters) NetworkCount(policy, geotype string) (float64, error) {
	key := policy + "_" + geotype
	n, ok := c.Networks[key]
	if !ok {
		return 0, parameterMiss("%s: no network count for %q", c.ISO3, key)
	}
	if n <= 0 {
		return 0, parameterMiss("%s: network count for %q must be positive", c.ISO3, key)
	}
	return n, nil
}

// Bands returns the parsed spectrum bands for a generation.
func (c CountryParameters) Bands(generation Generation) ([]Band, error) {
	freqs, ok := c.Frequencies[string(generation)]
	if !ok || len(freqs) == 0 {
		return nil, parameterMiss("%s: no frequencies for generation %s", c.ISO3, generation)
	}
	bands := make([]Band, 0, len(freqs))
	for _, f := range freqs {
		b, err := ParseBand(f)
		if err != nil {
			return nil, err
		}
		bands = append(bands, b)
	}
	return bands, nil
}

type LuminosityThresholds struct {
	High   float64 `yaml:"high" json:"high"`
	Medium float64 `yaml:"medium" json:"medium"`
}

type ARPUTiers struct {
	High   float64 `yaml:"high" json:"high"`
	Medium float64 `yaml:"medium" json:"medium"`
	Low    float64 `yaml:"low" json:"low"`
}

// Select picks the ARPU tier for a mean nighttime-light radiance per km².
func (a ARPUTiers) Select(luminosity float64, t LuminosityThresholds) float64 {
	switch {
	case luminosity >= t.High:
		return a.High
	case luminosity >= t.Medium:
		return a.Medium
	default:
		return a.Low
	}
}

// Frequency is a spectrum band with its channel layout encoded as "NxM".
type Frequency struct {
	FrequencyMHz int    `yaml:"frequency" json:"frequency"`
	Bandwidth    string `yaml:"bandwidth" json:"bandwidth"`
}

type Financials struct {
	WACC                              float64 `yaml:"wacc" json:"wacc"`
	ProfitMargin                      float64 `yaml:"profit_margin" json:"profit_margin"`
	SpectrumCoverageBaselineUSDMHzPop float64 `yaml:"spectrum_coverage_baseline_usd_mhz_pop" json:"spectrum_coverage_baseline_usd_mhz_pop"`
	SpectrumCapacityBaselineUSDMHzPop float64 `yaml:"spectrum_capacity_baseline_usd_mhz_pop" json:"spectrum_capacity_baseline_usd_mhz_pop"`
	SpectrumCostLow                   float64 `yaml:"spectrum_cost_low" json:"spectrum_cost_low"`
	SpectrumCostHigh                  float64 `yaml:"spectrum_cost_high" json:"spectrum_cost_high"`
	TaxLow                            float64 `yaml:"tax_low" json:"tax_low"`
	TaxBaseline                       float64 `yaml:"tax_baseline" json:"tax_baseline"`
	TaxHigh                           float64 `yaml:"tax_high" json:"tax_high"`
	AdministrationPercentOfNetwork    float64 `yaml:"administration_percentage_of_network_cost" json:"administration_percentage_of_network_cost"`
}

// Option is one scenario and strategy pair from a decision-option matrix.
type Option struct {
	Scenario string `yaml:"scenario" json:"scenario"`
	Strategy string `yaml:"strategy" json:"strategy"`
}

// ParsedOption is an Option whose scenario and strategy have been decoded.
type ParsedOption struct {
	Raw      Option
	Scenario Scenario
	Strategy Strategy
}

// Parse decodes both halves of the option.
func (o Option) Parse() (ParsedOption, error) {
	sc, err := ParseScenario(o.Scenario)
	if err != nil {
		return ParsedOption{}, err
	}
	st, err := ParseStrategy(o.Strategy)
	if err != nil {
		return ParsedOption{}, err
	}
	return ParsedOption{Raw: o, Scenario: sc, Strategy: st}, nil
}
