package cost

import (
	"math"
	"testing"

	"github.com/ChicagoDave/netviability/pkg/inputs"
	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
	"github.com/rotisserie/eris"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func fixtureRegion() *region.Region {
	r := region.Region{ID: "R1", AreaKm2: 2, PopulationKm2: 6000, Population: 12000}.Fresh()
	r.Supply = region.Supply{SiteDensity: 2, UpgradedSites: 4, NewSites: 2, NewBackhaul: 3}
	return &r
}

func fixtureInputs(t *testing.T, tag string) Inputs {
	t.Helper()
	strategy, err := spec.ParseStrategy(tag)
	if err != nil {
		t.Fatal(err)
	}
	costs := spec.Costs{}
	for k, v := range spec.DefaultParameters().Costs {
		costs[k] = v
	}
	return Inputs{
		Global: spec.GlobalParameters{
			ReturnPeriod:                   1,
			Sectorization:                  3,
			LocalNodeSpacingKm2:            1,
			CotsProcessingSplitUrban:       2,
			LowLatencySwitchSplit:          4,
			RackSplit:                      4,
			CloudPowerSupplyConverterSplit: 4,
			CloudBackhaulSplit:             16,
		},
		Country: spec.CountryParameters{
			ISO3: "CIV",
			Networks: map[string]float64{
				"baseline_urban": 2, "passive_urban": 2, "active_urban": 2, "shared_urban": 2,
			},
		},
		Strategy: strategy,
		Costs:    costs,
		Core: inputs.NewCoreLookup(map[inputs.CoreKey]float64{
			{Asset: inputs.AssetCoreNode, Region: "R1", Source: inputs.SourceExisting}: 1,
			{Asset: inputs.AssetRegionalNode, Region: "R1", Source: inputs.SourceNew}:  1,
			{Asset: inputs.AssetCoreEdge, Region: "R1", Source: inputs.SourceNew}:      600,
			{Asset: inputs.AssetRegionalEdge, Region: "R1", Source: inputs.SourceNew}:  300,
		}),
	}
}

func TestEstimateRegionNoSites(t *testing.T) {
	r := fixtureRegion()
	r.Supply = region.Supply{}
	b, err := EstimateRegion(r, fixtureInputs(t, "4G_epc_microwave_baseline_baseline_baseline_baseline"))
	if err != nil {
		t.Fatalf("EstimateRegion: %v", err)
	}
	if b.Groups.NetworkCost != 0 {
		t.Errorf("network_cost = %v, want 0", b.Groups.NetworkCost)
	}
	if len(b.Assets) != len(Assets) {
		t.Errorf("assets = %d, want every asset zeroed", len(b.Assets))
	}
}

func TestEstimateRegion4GMicrowave(t *testing.T) {
	in := fixtureInputs(t, "4G_epc_microwave_baseline_baseline_baseline_baseline")
	b, err := EstimateRegion(fixtureRegion(), in)
	if err != nil {
		t.Fatalf("EstimateRegion: %v", err)
	}
	c := in.Costs
	checks := []struct {
		asset string
		want  float64
	}{
		{SectorAntenna, c["sector_antenna"] * 3 * 6},
		// Only the antenna scales with sectorization.
		{RemoteRadioUnit, c["remote_radio_unit"] * 6},
		{IOFronthaul, c["io_fronthaul"] * 6},
		{Processing, c["processing"] * 6},
		{Tower, c["tower"] * 2},
		{Installation, c["installation"] * 6},
		{SiteRental, c["site_rental_urban"] * 6},
		// Two nodes in 2 km² sit 500 m apart: a small link for each of 3 new backhauls.
		{Backhaul, c["microwave_small"] * 3},
		{RegionalEdge, 0},
		{RegionalNode, 0},
		{CoreEdge, 600 * c["core_edge"]},
		{CoreNode, 0},
		{Fronthaul, 0},
		{CotsProcessing, 0},
	}
	for _, tt := range checks {
		if got := b.Assets[tt.asset]; !near(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.asset, got, tt.want)
		}
	}
	g := b.Groups
	if !near(g.NetworkCost, g.RAN+g.BackhaulFronthaul+g.Civils+g.Core) {
		t.Errorf("network_cost %v != sum of groups", g.NetworkCost)
	}
	if !near(g.Core, 600*c["core_edge"]) {
		t.Errorf("core = %v, want %v", g.Core, 600*c["core_edge"])
	}
}

func TestEstimateRegionFiberIncludesRegionalAssets(t *testing.T) {
	in := fixtureInputs(t, "4G_epc_fiber_baseline_baseline_baseline_baseline")
	b, err := EstimateRegion(fixtureRegion(), in)
	if err != nil {
		t.Fatalf("EstimateRegion: %v", err)
	}
	c := in.Costs
	if want := 500 * c["fiber_urban_m"] * 3; !near(b.Assets[Backhaul], want) {
		t.Errorf("backhaul = %v, want %v", b.Assets[Backhaul], want)
	}
	if want := 300 * c["regional_edge"]; !near(b.Assets[RegionalEdge], want) {
		t.Errorf("regional_edge = %v, want %v", b.Assets[RegionalEdge], want)
	}
	if want := c["regional_node_epc"]; !near(b.Assets[RegionalNode], want) {
		t.Errorf("regional_node = %v, want %v", b.Assets[RegionalNode], want)
	}
}

func TestEstimateRegion5GSA(t *testing.T) {
	in := fixtureInputs(t, "5G_sa_fiber_baseline_baseline_baseline_baseline")
	b, err := EstimateRegion(fixtureRegion(), in)
	if err != nil {
		t.Fatalf("EstimateRegion: %v", err)
	}
	c := in.Costs
	spacing := math.Sqrt(0.5) / 2 * 1000
	checks := []struct {
		asset string
		want  float64
	}{
		{CotsProcessing, c["cots_processing"] * 3 * 6},
		{LowLatencySwitch, c["low_latency_switch"] * 2 * 6},
		{CloudBackhaul, c["cloud_backhaul"]},
		{Fronthaul, spacing * c["fiber_urban_m"] * 6},
		{LocalNode, 2 * c["local_node"]},
		{Processing, 0},
		{BBUCabinet, 0},
		{RegionalNode, c["regional_node_sa"]},
		{CoreNode, 0},
	}
	for _, tt := range checks {
		if got := b.Assets[tt.asset]; !near(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.asset, got, tt.want)
		}
	}
}

func TestEstimateRegionDiscounting(t *testing.T) {
	in := fixtureInputs(t, "4G_epc_microwave_baseline_baseline_baseline_baseline")
	in.Global.DiscountRate = 10
	in.Global.ReturnPeriod = 2
	in.Global.OpexPercentageOfCapex = 10
	in.Country.Financials.WACC = 10
	b, err := EstimateRegion(fixtureRegion(), in)
	if err != nil {
		t.Fatalf("EstimateRegion: %v", err)
	}
	c := in.Costs
	// capex only
	if want := c["tower"] * 1.1 * 2; !near(b.Assets[Tower], want) {
		t.Errorf("tower = %v, want %v", b.Assets[Tower], want)
	}
	// opex only: two years at 10%
	if want := c["power"] * (1 + 1/1.1) * 1.1 * 6; !near(b.Assets[Power], want) {
		t.Errorf("power = %v, want %v", b.Assets[Power], want)
	}
	// capex plus opex at 10% of capex
	p := c["router"]
	if want := (p + 0.1*p*(1+1/1.1)) * 1.1 * 6; !near(b.Assets[Router], want) {
		t.Errorf("router = %v, want %v", b.Assets[Router], want)
	}
}

func TestSharingBaselineIgnoresNetworkCount(t *testing.T) {
	tag := "4G_epc_fiber_baseline_baseline_baseline_baseline"
	in := fixtureInputs(t, tag)
	before, err := EstimateRegion(fixtureRegion(), in)
	if err != nil {
		t.Fatal(err)
	}
	in.Country.Networks["baseline_urban"] = 4
	after, err := EstimateRegion(fixtureRegion(), in)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range Assets {
		if !near(before.Assets[a], after.Assets[a]) {
			t.Errorf("%s changed with network count: %v -> %v", a, before.Assets[a], after.Assets[a])
		}
	}
}

func TestSharingSharedHalvesWhenNetworksDouble(t *testing.T) {
	in := fixtureInputs(t, "4G_epc_fiber_shared_baseline_baseline_baseline")
	before, err := EstimateRegion(fixtureRegion(), in)
	if err != nil {
		t.Fatal(err)
	}
	in.Country.Networks["shared_urban"] = 4
	after, err := EstimateRegion(fixtureRegion(), in)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range Assets {
		if !near(after.Assets[a], before.Assets[a]/2) {
			t.Errorf("%s = %v, want half of %v", a, after.Assets[a], before.Assets[a])
		}
	}
}

func TestSharingPassiveDividesCivilsOnly(t *testing.T) {
	base := fixtureInputs(t, "4G_epc_fiber_baseline_baseline_baseline_baseline")
	passive := fixtureInputs(t, "4G_epc_fiber_passive_baseline_baseline_baseline")
	b0, err := EstimateRegion(fixtureRegion(), base)
	if err != nil {
		t.Fatal(err)
	}
	b1, err := EstimateRegion(fixtureRegion(), passive)
	if err != nil {
		t.Fatal(err)
	}
	if !near(b1.Assets[Tower], b0.Assets[Tower]/2) {
		t.Errorf("tower = %v, want %v", b1.Assets[Tower], b0.Assets[Tower]/2)
	}
	if !near(b1.Assets[SectorAntenna], b0.Assets[SectorAntenna]) {
		t.Errorf("sector_antenna shared under passive sharing")
	}
	if !near(b1.Assets[CoreNode], b0.Assets[CoreNode]) || !near(b1.Assets[CoreEdge], b0.Assets[CoreEdge]) {
		t.Errorf("core assets shared under passive sharing")
	}
}

func TestSharingActiveDividesRANAndBackhaul(t *testing.T) {
	base := fixtureInputs(t, "4G_epc_microwave_baseline_baseline_baseline_baseline")
	active := fixtureInputs(t, "4G_epc_microwave_active_baseline_baseline_baseline")
	b0, err := EstimateRegion(fixtureRegion(), base)
	if err != nil {
		t.Fatal(err)
	}
	b1, err := EstimateRegion(fixtureRegion(), active)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range []string{SectorAntenna, Power, Backhaul, Tower} {
		if b0.Assets[a] == 0 {
			t.Fatalf("%s is zero in the baseline fixture", a)
		}
		if !near(b1.Assets[a], b0.Assets[a]/2) {
			t.Errorf("%s = %v, want %v", a, b1.Assets[a], b0.Assets[a]/2)
		}
	}
	for _, a := range []string{CoreNode, CoreEdge, Router} {
		if !near(b1.Assets[a], b0.Assets[a]) {
			t.Errorf("%s = %v, want %v unshared", a, b1.Assets[a], b0.Assets[a])
		}
	}
}

func TestEstimateRegion5GNSAUsesFourGStructure(t *testing.T) {
	in := fixtureInputs(t, "5G_nsa_fiber_baseline_baseline_baseline_baseline")
	b, err := EstimateRegion(fixtureRegion(), in)
	if err != nil {
		t.Fatalf("EstimateRegion: %v", err)
	}
	c := in.Costs
	checks := []struct {
		asset string
		want  float64
	}{
		{Processing, c["processing"] * 6},
		{BBUCabinet, c["bbu_cabinet"] * 6},
		{CotsProcessing, 0},
		{LowLatencySwitch, 0},
		{Fronthaul, 0},
		{LocalNode, 0},
		{RegionalNode, c["regional_node_nsa"]},
		{CoreNode, 0},
	}
	for _, tt := range checks {
		if got := b.Assets[tt.asset]; !near(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.asset, got, tt.want)
		}
	}
}

func TestEstimateRegionErrors(t *testing.T) {
	in := fixtureInputs(t, "4G_epc_fiber_baseline_baseline_baseline_baseline")
	delete(in.Costs, "router")
	if _, err := EstimateRegion(fixtureRegion(), in); !eris.Is(err, spec.ErrParameterMiss) {
		t.Errorf("missing price err = %v, want parameter miss", err)
	}

	in = fixtureInputs(t, "4G_epc_fiber_baseline_baseline_baseline_baseline")
	in.Core = inputs.NewCoreLookup(map[inputs.CoreKey]float64{
		{Asset: inputs.AssetCoreNode, Region: "R1", Source: inputs.SourceNew}: 1,
	})
	if _, err := EstimateRegion(fixtureRegion(), in); !eris.Is(err, spec.ErrLookupMiss) {
		t.Errorf("missing asset kind err = %v, want lookup miss", err)
	}
}

func TestBackhaulDistanceWithoutNodes(t *testing.T) {
	in := fixtureInputs(t, "4G_epc_microwave_baseline_baseline_baseline_baseline")
	r := fixtureRegion()
	r.ID = "R2"
	r.AreaKm2 = 400
	b, err := EstimateRegion(r, in)
	if err != nil {
		t.Fatal(err)
	}
	// sqrt(400 km²) is 20 km: a medium link.
	if want := in.Costs["microwave_medium"] * 3; !near(b.Assets[Backhaul], want) {
		t.Errorf("backhaul = %v, want %v", b.Assets[Backhaul], want)
	}
}

func TestMicrowaveAsset(t *testing.T) {
	tests := []struct {
		distance float64
		want     string
	}{
		{0, "microwave_small"},
		{14999, "microwave_small"},
		{15000, "microwave_medium"},
		{29999, "microwave_medium"},
		{30000, "microwave_large"},
	}
	for _, tt := range tests {
		if got := MicrowaveAsset(tt.distance); got != tt.want {
			t.Errorf("MicrowaveAsset(%v) = %q, want %q", tt.distance, got, tt.want)
		}
	}
}

func TestAmortise(t *testing.T) {
	if got := Amortise(100, 0); got != 0 {
		t.Errorf("Amortise(100, 0) = %v, want 0", got)
	}
	if got := Amortise(100, 0.5); got != 50 {
		t.Errorf("Amortise(100, 0.5) = %v, want 50", got)
	}
	if got := Amortise(100, 4); got != 25 {
		t.Errorf("Amortise(100, 4) = %v, want 25", got)
	}
}

func TestTypeOf(t *testing.T) {
	if TypeOf(SiteRental) != OpexOnly || TypeOf(Tower) != CapexOnly || TypeOf(Router) != CapexAndOpex {
		t.Error("unexpected cost types")
	}
	if OpexOnly.String() != "opex" {
		t.Errorf("OpexOnly = %q", OpexOnly.String())
	}
}

func TestCatalogKeysPresentInDefaults(t *testing.T) {
	costs := spec.DefaultParameters().Costs
	for _, core := range []spec.Core{spec.CoreEPC, spec.CoreNSA, spec.CoreSA} {
		for _, k := range CatalogKeys(core) {
			if _, err := costs.Price(k); err != nil {
				t.Errorf("%s: %v", core, err)
			}
		}
	}
	keys := CatalogKeys(spec.CoreSA)
	for _, k := range keys {
		if k == Backhaul || k == SiteRental {
			t.Errorf("CatalogKeys contains unpriced asset %q", k)
		}
	}
}
