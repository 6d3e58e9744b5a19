// Package assess overlays administration, spectrum, tax and profit on each
// region's network cost, allocates the cross-subsidy budget and scales
// single-operator figures to the whole market.
package assess

import (
	"math"
	"sort"

	"github.com/ChicagoDave/netviability/pkg/finance"
	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
)

// Inputs are the read-only parameters for one option.
type Inputs struct {
	Global   spec.GlobalParameters
	Country  spec.CountryParameters
	Strategy spec.Strategy
}

// Estimate runs the per-region overlays, then the cross-subsidy allocation
// and the market aggregation over the whole set.
func Estimate(regions []*region.Region, in Inputs) error {
	bands, err := in.Country.Bands(in.Strategy.Generation)
	if err != nil {
		return err
	}
	fin := in.Country.Financials
	for _, r := range regions {
		network := r.Groups.NetworkCost
		a := &r.Assessment
		a.Administration = Administration(network, fin.AdministrationPercentOfNetwork, in.Global.DiscountRate, in.Global.ReturnPeriod)
		a.SpectrumCost = SpectrumCost(bands, r.Population, fin, in.Strategy.Spectrum)
		a.Tax = network * TaxRate(fin, in.Strategy.Tax) / 100
		a.ProfitMargin = network * fin.ProfitMargin / 100
		a.TotalMNOCost = network + a.Administration + a.SpectrumCost + a.Tax + a.ProfitMargin
		if a.TotalMNOCost > 0 && r.Demand.SmartphonesOnNetwork > 0 {
			a.CostPerSmartphoneUser = a.TotalMNOCost / r.Demand.SmartphonesOnNetwork
		}
	}
	AllocateCrossSubsidy(regions)
	return AggregateMarket(regions, in.Country, in.Strategy.Networks)
}

// Administration is the discounted stream of an annual administration cost
// set as a percentage of network cost.
func Administration(networkCost, percent, discountRate float64, years int) float64 {
	return finance.AnnualStream(networkCost*percent/100, discountRate, years)
}

// SpectrumCost prices every band at its coverage or capacity baseline per MHz
// per head of population, adjusted by the spectrum policy.
func SpectrumCost(bands []spec.Band, population float64, fin spec.Financials, policy spec.Policy) float64 {
	total := 0.0
	for _, b := range bands {
		price := fin.SpectrumCapacityBaselineUSDMHzPop
		if b.Coverage() {
			price = fin.SpectrumCoverageBaselineUSDMHzPop
		}
		switch policy {
		case spec.PolicyLow:
			price *= fin.SpectrumCostLow / 100
		case spec.PolicyHigh:
			price *= 1 + fin.SpectrumCostHigh/100
		}
		total += price * b.TotalMHz() * population
	}
	return total
}

// TaxRate selects the tax percentage for a tax policy.
func TaxRate(fin spec.Financials, policy spec.Policy) float64 {
	switch policy {
	case spec.PolicyLow:
		return fin.TaxLow
	case spec.PolicyHigh:
		return fin.TaxHigh
	default:
		return fin.TaxBaseline
	}
}

// AllocateCrossSubsidy pools the surplus of profitable regions and spends it
// on deficits, smallest first. Whatever remains uncovered is the state subsidy.
func AllocateCrossSubsidy(regions []*region.Region) {
	budget := 0.0
	for _, r := range regions {
		a := &r.Assessment
		diff := r.Demand.TotalMNORevenue - a.TotalMNOCost
		if diff > 0 {
			a.AvailableCrossSubsidy, a.Deficit = diff, 0
		} else {
			a.AvailableCrossSubsidy, a.Deficit = 0, math.Abs(diff)
		}
		budget += a.AvailableCrossSubsidy
	}

	ordered := append([]*region.Region(nil), regions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Assessment.Deficit < ordered[j].Assessment.Deficit
	})

	for _, r := range ordered {
		a := &r.Assessment
		switch {
		case a.Deficit == 0:
			a.UsedCrossSubsidy = 0
		case budget >= a.Deficit:
			a.UsedCrossSubsidy = a.Deficit
			budget -= a.Deficit
		default:
			a.UsedCrossSubsidy = budget
			budget = 0
		}
		a.RequiredStateSubsidy = math.Max(0, a.TotalMNOCost-(r.Demand.TotalMNORevenue+a.UsedCrossSubsidy))
	}
}

// AggregateMarket scales every single-operator field by the operator count of
// the networks policy, i.e. divides by a market share of 100/N percent.
func AggregateMarket(regions []*region.Region, country spec.CountryParameters, networks spec.Policy) error {
	for _, r := range regions {
		n, err := country.NetworkCount(string(networks), r.Geotype.Class)
		if err != nil {
			return err
		}
		share := 100 / n
		fields := r.Fields()
		r.Market = make(map[string]float64, len(region.MNOFields))
		for _, name := range region.MNOFields {
			r.Market[region.MarketField(name)] = finance.Round(fields[name] / share * 100)
		}
	}
	return nil
}
