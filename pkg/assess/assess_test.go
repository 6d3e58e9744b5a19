package assess

import (
	"math"
	"testing"

	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func bands4G() []spec.Band {
	return []spec.Band{
		{FrequencyMHz: 800, Channels: 2, ChannelMHz: 10},
		{FrequencyMHz: 1800, Channels: 2, ChannelMHz: 10},
	}
}

func TestSpectrumCost(t *testing.T) {
	fin := spec.Financials{
		SpectrumCoverageBaselineUSDMHzPop: 1,
		SpectrumCapacityBaselineUSDMHzPop: 1,
		SpectrumCostLow:                   50,
		SpectrumCostHigh:                  50,
	}
	tests := []struct {
		policy spec.Policy
		want   float64
	}{
		{spec.PolicyBaseline, 400000},
		{spec.PolicyLow, 200000},
		{spec.PolicyHigh, 600000},
	}
	for _, tt := range tests {
		if got := SpectrumCost(bands4G(), 10000, fin, tt.policy); !near(got, tt.want) {
			t.Errorf("SpectrumCost(%s) = %v, want %v", tt.policy, got, tt.want)
		}
	}
}

func TestSpectrumCostSplitsCoverageAndCapacity(t *testing.T) {
	fin := spec.Financials{SpectrumCoverageBaselineUSDMHzPop: 2, SpectrumCapacityBaselineUSDMHzPop: 0.5}
	// 800 MHz is coverage, 1800 MHz capacity.
	want := 2*20*100.0 + 0.5*20*100
	if got := SpectrumCost(bands4G(), 100, fin, spec.PolicyBaseline); !near(got, want) {
		t.Errorf("SpectrumCost = %v, want %v", got, want)
	}
}

func TestAdministration(t *testing.T) {
	// 10% of 1000 per year over two years at 10%: 100 + 100/1.1.
	if got := Administration(1000, 10, 10, 2); !near(got, 100+100/1.1) {
		t.Errorf("Administration = %v, want %v", got, 100+100/1.1)
	}
	if got := Administration(0, 10, 10, 2); got != 0 {
		t.Errorf("Administration of zero cost = %v, want 0", got)
	}
}

func TestTaxRate(t *testing.T) {
	fin := spec.Financials{TaxLow: 10, TaxBaseline: 25, TaxHigh: 40}
	for policy, want := range map[spec.Policy]float64{spec.PolicyLow: 10, spec.PolicyBaseline: 25, spec.PolicyHigh: 40} {
		if got := TaxRate(fin, policy); got != want {
			t.Errorf("TaxRate(%s) = %v, want %v", policy, got, want)
		}
	}
}

func regionWith(id string, revenue, cost float64) *region.Region {
	r := region.Region{ID: id, PopulationKm2: 6000}.Fresh()
	r.Demand.TotalMNORevenue = revenue
	r.Assessment.TotalMNOCost = cost
	return &r
}

func TestAllocateCrossSubsidy(t *testing.T) {
	a := regionWith("A", 20000, 14700)
	b := regionWith("B", 12000, 15600)
	AllocateCrossSubsidy([]*region.Region{a, b})

	if a.Assessment.AvailableCrossSubsidy != 5300 || a.Assessment.Deficit != 0 {
		t.Errorf("A available, deficit = %v, %v; want 5300, 0", a.Assessment.AvailableCrossSubsidy, a.Assessment.Deficit)
	}
	if b.Assessment.UsedCrossSubsidy != 3600 {
		t.Errorf("B used = %v, want 3600", b.Assessment.UsedCrossSubsidy)
	}
	if b.Assessment.RequiredStateSubsidy != 0 {
		t.Errorf("B state subsidy = %v, want 0", b.Assessment.RequiredStateSubsidy)
	}
}

func TestAllocateCrossSubsidySmallestDeficitFirst(t *testing.T) {
	rich := regionWith("rich", 1000, 0)
	big := regionWith("big", 0, 900)
	small := regionWith("small", 0, 300)
	regions := []*region.Region{big, rich, small}
	AllocateCrossSubsidy(regions)

	if small.Assessment.UsedCrossSubsidy != 300 {
		t.Errorf("small used = %v, want 300", small.Assessment.UsedCrossSubsidy)
	}
	if big.Assessment.UsedCrossSubsidy != 700 {
		t.Errorf("big used = %v, want 700", big.Assessment.UsedCrossSubsidy)
	}
	if big.Assessment.RequiredStateSubsidy != 200 {
		t.Errorf("big state subsidy = %v, want 200", big.Assessment.RequiredStateSubsidy)
	}
	if regions[0] != big {
		t.Error("allocation reordered the caller's slice")
	}

	used, available := 0.0, 0.0
	for _, r := range regions {
		used += r.Assessment.UsedCrossSubsidy
		available += r.Assessment.AvailableCrossSubsidy
		if r.Assessment.UsedCrossSubsidy > r.Assessment.Deficit {
			t.Errorf("%s used %v exceeds deficit %v", r.ID, r.Assessment.UsedCrossSubsidy, r.Assessment.Deficit)
		}
		if r.Assessment.RequiredStateSubsidy < 0 {
			t.Errorf("%s state subsidy negative", r.ID)
		}
	}
	if used > available {
		t.Errorf("used %v exceeds available %v", used, available)
	}
	// Exhausted budget: cost = revenue + used + subsidy.
	a := big.Assessment
	if !near(a.TotalMNOCost, big.Demand.TotalMNORevenue+a.UsedCrossSubsidy+a.RequiredStateSubsidy) {
		t.Errorf("big cost %v not covered exactly", a.TotalMNOCost)
	}
}

func TestAggregateMarket(t *testing.T) {
	r := regionWith("A", 300060, 1000)
	r.Demand.PhonesOnNetwork = 1667
	r.Supply.NewSites = 4
	country := spec.CountryParameters{ISO3: "CIV", Networks: map[string]float64{"baseline_urban": 3, "srn_urban": 1}}

	if err := AggregateMarket([]*region.Region{r}, country, spec.PolicyBaseline); err != nil {
		t.Fatalf("AggregateMarket: %v", err)
	}
	if got := r.Market["total_market_revenue"]; got != 900180 {
		t.Errorf("total_market_revenue = %v, want 900180", got)
	}
	if got := r.Market["total_phones_on_network"]; got != 5001 {
		t.Errorf("total_phones_on_network = %v, want 5001", got)
	}
	if got := r.Market["total_market_cost"]; got != 3000 {
		t.Errorf("total_market_cost = %v, want 3000", got)
	}
	if len(r.Market) != len(region.MNOFields) {
		t.Errorf("market fields = %d, want %d", len(r.Market), len(region.MNOFields))
	}

	if err := AggregateMarket([]*region.Region{r}, country, spec.PolicySRN); err != nil {
		t.Fatalf("AggregateMarket: %v", err)
	}
	if got := r.Market["total_new_sites"]; got != 4 {
		t.Errorf("single rural network total_new_sites = %v, want 4", got)
	}
}

func TestEstimate(t *testing.T) {
	r := regionWith("A", 1e6, 0)
	r.Population = 100
	r.Groups.NetworkCost = 1000
	r.Demand.SmartphonesOnNetwork = 10
	in := Inputs{
		Global: spec.GlobalParameters{DiscountRate: 0, ReturnPeriod: 1},
		Country: spec.CountryParameters{
			ISO3:        "CIV",
			Networks:    map[string]float64{"baseline_urban": 2},
			Frequencies: map[string][]spec.Frequency{"4G": {{FrequencyMHz: 800, Bandwidth: "1x5"}}},
			Financials: spec.Financials{
				ProfitMargin:                      20,
				SpectrumCoverageBaselineUSDMHzPop: 0.1,
				TaxBaseline:                       30,
				AdministrationPercentOfNetwork:    10,
			},
		},
		Strategy: spec.Strategy{Generation: spec.Gen4G, Networks: spec.PolicyBaseline, Spectrum: spec.PolicyBaseline, Tax: spec.PolicyBaseline},
	}
	if err := Estimate([]*region.Region{r}, in); err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	a := r.Assessment
	// 1000 network + 100 admin + 50 spectrum + 300 tax + 200 profit.
	if !near(a.TotalMNOCost, 1650) {
		t.Errorf("total_mno_cost = %v, want 1650", a.TotalMNOCost)
	}
	if !near(a.CostPerSmartphoneUser, 165) {
		t.Errorf("cost_per_smartphone_user = %v, want 165", a.CostPerSmartphoneUser)
	}
	if a.RequiredStateSubsidy != 0 || a.Deficit != 0 {
		t.Errorf("profitable region has deficit %v, subsidy %v", a.Deficit, a.RequiredStateSubsidy)
	}
	if r.Market["total_network_cost"] != 2000 {
		t.Errorf("total_network_cost = %v, want 2000", r.Market["total_network_cost"])
	}
}
