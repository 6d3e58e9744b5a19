// Package cost builds the discounted per-asset network cost of each region
// from its site counts, the strategy's site structures and the sharing policy.
package cost

import (
	"math"

	"github.com/ChicagoDave/netviability/pkg/finance"
	"github.com/ChicagoDave/netviability/pkg/inputs"
	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
)

// Inputs are the read-only parameters for one option.
type Inputs struct {
	Global   spec.GlobalParameters
	Country  spec.CountryParameters
	Strategy spec.Strategy
	Costs    spec.Costs
	Core     inputs.CoreLookup
}

// Breakdown is the discounted cost of one region by asset and by group.
type Breakdown struct {
	Assets map[string]float64 `json:"assets"`
	Groups region.CostGroups  `json:"groups"`
}

// Estimate fills the Assets and Groups appendix of every region.
func Estimate(regions []*region.Region, in Inputs) error {
	for _, r := range regions {
		b, err := EstimateRegion(r, in)
		if err != nil {
			return err
		}
		r.Assets = b.Assets
		r.Groups = b.Groups
	}
	return nil
}

// EstimateRegion prices every site of a region. Upgraded sites use the
// brownfield structure and new sites the greenfield one; backhaul is charged
// only for the sites that need a new link.
func EstimateRegion(r *region.Region, in Inputs) (*Breakdown, error) {
	b := &Breakdown{Assets: make(map[string]float64, len(Assets))}
	for _, a := range Assets {
		b.Assets[a] = 0
	}
	allSites := r.Supply.AllSites()
	if allSites <= 0 {
		return b, nil
	}

	networks, err := in.Country.NetworkCount(string(in.Strategy.Sharing), r.Geotype.Class)
	if err != nil {
		return nil, err
	}
	shared := sharedAssets(in.Strategy.Sharing)

	ctx := &siteContext{region: r, in: in, allSites: allSites}
	structure := siteStructure(in.Strategy)

	for _, asset := range structure {
		unit, err := ctx.unitCost(asset)
		if err != nil {
			return nil, err
		}
		unit = discount(asset, unit, in.Global, in.Country.Financials.WACC)
		if shared[asset] {
			unit /= networks
		}

		var sites int
		switch {
		case asset == Backhaul:
			sites = min(r.Supply.NewBackhaul, allSites)
		case greenfieldOnly[asset]:
			sites = r.Supply.NewSites
		default:
			sites = allSites
		}
		b.Assets[asset] = unit * float64(sites)
	}

	b.Groups = Group(b.Assets)
	return b, nil
}

// Group sums per-asset costs into the four reporting groups, adding assets in
// catalogue order so the float sums are reproducible.
func Group(assets map[string]float64) region.CostGroups {
	var g region.CostGroups
	for _, asset := range Assets {
		v := assets[asset]
		switch {
		case ranGroup[asset]:
			g.RAN += v
		case backhaulGroup[asset]:
			g.BackhaulFronthaul += v
		case civilsGroup[asset]:
			g.Civils += v
		case coreGroup[asset]:
			g.Core += v
		}
	}
	g.NetworkCost = g.RAN + g.BackhaulFronthaul + g.Civils + g.Core
	return g
}

func siteStructure(s spec.Strategy) []string {
	if s.Generation == spec.Gen5G && s.Core == spec.CoreSA {
		return structure5GSA
	}
	return structure4G
}

func sharedAssets(s spec.Sharing) map[string]bool {
	switch s {
	case spec.SharingPassive:
		return passiveShared
	case spec.SharingActive:
		return activeShared
	case spec.SharingShared:
		return allShared
	default:
		return nil
	}
}

func discount(asset string, unit float64, g spec.GlobalParameters, wacc float64) float64 {
	switch TypeOf(asset) {
	case CapexOnly:
		return finance.Capex(unit, wacc)
	case OpexOnly:
		return finance.Opex(unit, g.DiscountRate, g.ReturnPeriod, wacc)
	default:
		return finance.CapexAndOpex(unit, g.OpexPercentageOfCapex, g.DiscountRate, g.ReturnPeriod, wacc)
	}
}

// Amortise spreads a region-level cost across its sites.
func Amortise(value float64, sites float64) float64 {
	switch {
	case sites <= 0:
		return 0
	case sites < 1:
		return value * sites
	default:
		return value / sites
	}
}

// MeanSpacingM is the mean distance in meters between points laid out at the
// given density per km².
func MeanSpacingM(densityKm2 float64) float64 {
	if densityKm2 <= 0 {
		return 0
	}
	return math.Sqrt(1/densityKm2) / 2 * 1000
}
