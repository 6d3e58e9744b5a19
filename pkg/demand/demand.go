// Package demand estimates per-region phone counts, busy-hour traffic density
// and discounted revenue over the modelled timesteps.
package demand

import (
	"github.com/ChicagoDave/netviability/pkg/finance"
	"github.com/ChicagoDave/netviability/pkg/inputs"
	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const monthsPerYear = 12

// Inputs are the read-only parameters for one option and confidence level.
type Inputs struct {
	Global      spec.GlobalParameters
	Country     spec.CountryParameters
	Option      spec.ParsedOption
	Confidence  int
	Timesteps   []int
	Penetration inputs.Penetration
	Smartphones inputs.SmartphonePenetration
}

// YearRow is one region's demand in one timestep.
type YearRow struct {
	Country               string  `csv:"GID_0"`
	Region                string  `csv:"GID_id"`
	Scenario              string  `csv:"scenario"`
	Strategy              string  `csv:"strategy"`
	Confidence            int     `csv:"confidence"`
	Year                  int     `csv:"year"`
	Population            float64 `csv:"population"`
	AreaKm2               float64 `csv:"area_km2"`
	PopulationKm2         float64 `csv:"population_km2"`
	Geotype               string  `csv:"geotype"`
	ARPUDiscountedMonthly float64 `csv:"arpu_discounted_monthly"`
	Penetration           float64 `csv:"penetration"`
	PopulationWithPhones  float64 `csv:"population_with_phones"`
	PhonesOnNetwork       float64 `csv:"phones_on_network"`
	SmartphonePenetration float64 `csv:"smartphone_penetration"`
	SmartphonesOnNetwork  float64 `csv:"smartphones_on_network"`
	Revenue               float64 `csv:"revenue"`
	DemandMbpsKm2         float64 `csv:"demand_mbps_km2"`
}

// Result holds the regions that were modelled and the per-year rows behind them.
type Result struct {
	Regions []*region.Region
	Skipped []*region.Region
	Rows    []YearRow
}

// Estimate fills the Demand appendix of every region with positive area.
// Regions with area_km2 <= 0 are returned in Skipped and left untouched.
func Estimate(regions []*region.Region, in Inputs) (*Result, error) {
	res := &Result{}
	if len(in.Timesteps) == 0 {
		return res, nil
	}
	for _, r := range regions {
		if r.AreaKm2 <= 0 {
			res.Skipped = append(res.Skipped, r)
			continue
		}
		rows, err := estimateRegion(r, in)
		if err != nil {
			return nil, err
		}
		res.Regions = append(res.Regions, r)
		res.Rows = append(res.Rows, rows...)
	}
	return res, nil
}

func estimateRegion(r *region.Region, in Inputs) ([]YearRow, error) {
	class := r.Geotype.Class
	networks, err := in.Country.NetworkCount(string(in.Option.Strategy.Sharing), class)
	if err != nil {
		return nil, err
	}
	arpu := in.Country.ARPU.Select(r.MeanLuminosityKm2, in.Country.Luminosity)
	target := in.Option.Scenario.Target(class)
	t0 := in.Timesteps[0]

	rows := make([]YearRow, 0, len(in.Timesteps))
	revenue := make([]float64, 0, len(in.Timesteps))
	traffic := make([]float64, 0, len(in.Timesteps))

	for _, year := range in.Timesteps {
		pen, err := in.Penetration.At(year)
		if err != nil {
			return nil, err
		}
		smartPen, err := in.Smartphones.At(r.Geotype.SmartphoneClass(), year)
		if err != nil {
			return nil, err
		}

		withPhones := r.Population * pen / 100
		perNetwork := withPhones / networks
		phones := finance.Round(perNetwork)
		smartphones := finance.Round(perNetwork * smartPen / 100)

		arpuDiscounted := finance.Discounted(arpu, in.Global.DiscountRate, year-t0)
		yearRevenue := arpuDiscounted * phones * monthsPerYear
		yearTraffic := finance.SafeDiv(smartphones*target/in.Global.OverbookingFactor, r.AreaKm2)

		revenue = append(revenue, yearRevenue)
		traffic = append(traffic, yearTraffic)

		r.Demand.ARPU = arpuDiscounted
		r.Demand.PopulationWithPhones = withPhones
		r.Demand.PhonesOnNetwork = phones
		r.Demand.SmartphonesOnNetwork = smartphones

		rows = append(rows, YearRow{
			Country:               r.Country,
			Region:                r.ID,
			Scenario:              in.Option.Raw.Scenario,
			Strategy:              in.Option.Raw.Strategy,
			Confidence:            in.Confidence,
			Year:                  year,
			Population:            r.Population,
			AreaKm2:               r.AreaKm2,
			PopulationKm2:         r.PopulationKm2,
			Geotype:               r.Geotype.Label,
			ARPUDiscountedMonthly: arpuDiscounted,
			Penetration:           pen,
			PopulationWithPhones:  withPhones,
			PhonesOnNetwork:       phones,
			SmartphonePenetration: smartPen,
			SmartphonesOnNetwork:  smartphones,
			Revenue:               yearRevenue,
			DemandMbpsKm2:         yearTraffic,
		})
	}

	r.Demand.DemandMbpsKm2 = finance.Round(stat.Mean(traffic, nil))
	r.Demand.TotalMNORevenue = finance.Round(floats.Sum(revenue))
	r.Demand.RevenueKm2 = finance.Round(finance.SafeDiv(r.Demand.TotalMNORevenue, r.AreaKm2))
	return rows, nil
}
