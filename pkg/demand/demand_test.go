package demand

import (
	"math"
	"testing"

	"github.com/ChicagoDave/netviability/pkg/inputs"
	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
	"github.com/rotisserie/eris"
)

func fixtureRegion() *region.Region {
	r := region.Region{
		Country:             "CIV",
		ID:                  "CIV.1_1",
		Population:          10000,
		AreaKm2:             2,
		PopulationKm2:       5000,
		MeanLuminosityKm2:   26.7,
		SitesEstimatedTotal: 100,
	}.Fresh()
	return &r
}

func fixtureInputs(t *testing.T, years ...int) Inputs {
	t.Helper()
	opt, err := spec.Option{Scenario: "S1_100_50_10", Strategy: "4G_epc_microwave_baseline_baseline_baseline_baseline"}.Parse()
	if err != nil {
		t.Fatal(err)
	}
	pen := inputs.Penetration{}
	smart := inputs.SmartphonePenetration{"urban": {}, "rural": {}}
	for _, y := range years {
		pen[y] = 50
		smart["urban"][y] = 50
		smart["rural"][y] = 20
	}
	return Inputs{
		Global: spec.GlobalParameters{DiscountRate: 5, OverbookingFactor: 100, ReturnPeriod: 2},
		Country: spec.CountryParameters{
			ISO3:       "CIV",
			Luminosity: spec.LuminosityThresholds{High: 5, Medium: 1},
			ARPU:       spec.ARPUTiers{High: 15, Medium: 5, Low: 2},
			Networks:   map[string]float64{"baseline_urban": 3, "baseline_suburban": 3, "baseline_rural": 3},
		},
		Option:      opt,
		Confidence:  50,
		Timesteps:   years,
		Penetration: pen,
		Smartphones: smart,
	}
}

func TestEstimateSingleYear(t *testing.T) {
	r := fixtureRegion()
	res, err := Estimate([]*region.Region{r}, fixtureInputs(t, 2020))
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if len(res.Regions) != 1 || len(res.Rows) != 1 {
		t.Fatalf("regions = %d, rows = %d; want 1, 1", len(res.Regions), len(res.Rows))
	}
	d := r.Demand
	checks := []struct {
		name      string
		got, want float64
	}{
		{"population_with_phones", d.PopulationWithPhones, 5000},
		{"phones_on_network", d.PhonesOnNetwork, 1667},
		{"smartphones_on_network", d.SmartphonesOnNetwork, 833},
		{"total_mno_revenue", d.TotalMNORevenue, 300060},
		{"demand_mbps_km2", d.DemandMbpsKm2, 208},
		{"revenue_km2", d.RevenueKm2, 150030},
		{"arpu", d.ARPU, 15},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestEstimateDiscountsLaterYears(t *testing.T) {
	r := fixtureRegion()
	res, err := Estimate([]*region.Region{r}, fixtureInputs(t, 2020, 2021))
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Rows))
	}
	if r.Demand.TotalMNORevenue != 585831 {
		t.Errorf("total_mno_revenue = %v, want 585831", r.Demand.TotalMNORevenue)
	}
	if math.Abs(r.Demand.ARPU-15/1.05) > 1e-9 {
		t.Errorf("arpu = %v, want last-year discounted %v", r.Demand.ARPU, 15/1.05)
	}
	if res.Rows[1].Year != 2021 || res.Rows[1].Geotype != "suburban 1" {
		t.Errorf("second row = %+v", res.Rows[1])
	}
	if r.Demand.DemandMbpsKm2 != 208 {
		t.Errorf("demand_mbps_km2 = %v, want 208", r.Demand.DemandMbpsKm2)
	}
}

func TestEstimateSkipsEmptyRegions(t *testing.T) {
	empty := fixtureRegion()
	empty.AreaKm2 = 0
	res, err := Estimate([]*region.Region{empty, fixtureRegion()}, fixtureInputs(t, 2020))
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if len(res.Skipped) != 1 || len(res.Regions) != 1 {
		t.Errorf("skipped = %d, modelled = %d; want 1, 1", len(res.Skipped), len(res.Regions))
	}
	if empty.Demand.TotalMNORevenue != 0 {
		t.Errorf("skipped region revenue = %v, want 0", empty.Demand.TotalMNORevenue)
	}
}

func TestEstimateMissingPenetrationYear(t *testing.T) {
	in := fixtureInputs(t, 2020)
	in.Timesteps = []int{2020, 2021}
	_, err := Estimate([]*region.Region{fixtureRegion()}, in)
	if !eris.Is(err, spec.ErrLookupMiss) {
		t.Errorf("err = %v, want lookup miss", err)
	}
}

func TestEstimateMissingNetworkCount(t *testing.T) {
	in := fixtureInputs(t, 2020)
	delete(in.Country.Networks, "baseline_suburban")
	_, err := Estimate([]*region.Region{fixtureRegion()}, in)
	if !eris.Is(err, spec.ErrParameterMiss) {
		t.Errorf("err = %v, want parameter miss", err)
	}
}
