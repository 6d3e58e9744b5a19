// Package region defines the unit of modelling: one administrative sub-region
// read from the regional table, plus the values each pipeline stage computes.
package region

// Region is one row of the regional input table. Input columns carry csv tags;
// everything the pipeline derives lives in the embedded Computed appendix.
type Region struct {
	Country             string  `csv:"GID_0"`
	ID                  string  `csv:"GID_id"`
	MeanLuminosityKm2   float64 `csv:"mean_luminosity_km2"`
	Population          float64 `csv:"population"`
	AreaKm2             float64 `csv:"area_km2"`
	PopulationKm2       float64 `csv:"population_km2"`
	SitesEstimatedTotal float64 `csv:"sites_estimated_total"`
	Sites4G             float64 `csv:"sites_4G"`
	BackhaulFiber       float64 `csv:"backhaul_fiber"`
	BackhaulMicrowave   float64 `csv:"backhaul_microwave"`

	Geotype Geotype `csv:"-"`

	Computed `csv:"-"`
}

// Computed is appended to a Region as it moves through the pipeline.
type Computed struct {
	Demand     Demand
	Supply     Supply
	Assets     map[string]float64
	Groups     CostGroups
	Assessment Assessment
	Market     map[string]float64
	Decile     int
}

type Demand struct {
	ARPU                 float64
	PopulationWithPhones float64
	PhonesOnNetwork      float64
	SmartphonesOnNetwork float64
	DemandMbpsKm2        float64
	TotalMNORevenue      float64
	RevenueKm2           float64
}

type Supply struct {
	SiteDensity   float64
	UpgradedSites int
	NewSites      int
	NewBackhaul   int
}

// AllSites is the number of sites that receive equipment.
func (s Supply) AllSites() int { return s.UpgradedSites + s.NewSites }

// CostGroups are the four high-level asset groups and their sum.
type CostGroups struct {
	RAN               float64
	BackhaulFronthaul float64
	Civils            float64
	Core              float64
	NetworkCost       float64
}

type Assessment struct {
	Administration        float64
	SpectrumCost          float64
	Tax                   float64
	ProfitMargin          float64
	TotalMNOCost          float64
	CostPerSmartphoneUser float64
	AvailableCrossSubsidy float64
	Deficit               float64
	UsedCrossSubsidy      float64
	RequiredStateSubsidy  float64
}

// Fresh returns a copy of the input record with an empty computed appendix.
// The geotype is re-derived so a fresh region is always ready for the pipeline.
func (r Region) Fresh() Region {
	out := r
	out.Computed = Computed{}
	out.Geotype = Classify(r.PopulationKm2)
	return out
}

// FreshTable copies a loaded region table for one pipeline pass.
func FreshTable(regions []Region) []*Region {
	out := make([]*Region, 0, len(regions))
	for _, r := range regions {
		fresh := r.Fresh()
		out = append(out, &fresh)
	}
	return out
}

// MNOFields lists the single-operator numeric fields in output order. The
// market aggregation scales each of these to the whole market.
var MNOFields = []string{
	"phones_on_network",
	"smartphones_on_network",
	"upgraded_sites",
	"new_sites",
	"new_backhaul",
	"total_mno_revenue",
	"ran",
	"backhaul_fronthaul",
	"civils",
	"core_network",
	"network_cost",
	"administration",
	"spectrum_cost",
	"tax",
	"profit_margin",
	"total_mno_cost",
	"available_cross_subsidy",
	"deficit",
	"used_cross_subsidy",
	"required_state_subsidy",
}

// MarketField maps a single-operator field name to its market-wide mirror.
func MarketField(name string) string {
	switch name {
	case "total_mno_revenue":
		return "total_market_revenue"
	case "total_mno_cost":
		return "total_market_cost"
	default:
		return "total_" + name
	}
}

// Fields returns the single-operator numeric fields keyed by column name.
func (r *Region) Fields() map[string]float64 {
	d, s, g, a := r.Demand, r.Supply, r.Groups, r.Assessment
	return map[string]float64{
		"phones_on_network":       d.PhonesOnNetwork,
		"smartphones_on_network":  d.SmartphonesOnNetwork,
		"upgraded_sites":          float64(s.UpgradedSites),
		"new_sites":               float64(s.NewSites),
		"new_backhaul":            float64(s.NewBackhaul),
		"total_mno_revenue":       d.TotalMNORevenue,
		"ran":                     g.RAN,
		"backhaul_fronthaul":      g.BackhaulFronthaul,
		"civils":                  g.Civils,
		"core_network":            g.Core,
		"network_cost":            g.NetworkCost,
		"administration":          a.Administration,
		"spectrum_cost":           a.SpectrumCost,
		"tax":                     a.Tax,
		"profit_margin":           a.ProfitMargin,
		"total_mno_cost":          a.TotalMNOCost,
		"available_cross_subsidy": a.AvailableCrossSubsidy,
		"deficit":                 a.Deficit,
		"used_cross_subsidy":      a.UsedCrossSubsidy,
		"required_state_subsidy":  a.RequiredStateSubsidy,
	}
}
