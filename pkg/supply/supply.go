// Package supply turns demand density into the physical network a region
// needs: site density, upgraded and new sites, and new backhaul links.
package supply

import (
	"math"
	"sort"
	"strconv"

	"github.com/ChicagoDave/netviability/pkg/inputs"
	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
)

// AntennaType is the only antenna class the capacity lookup is queried for.
const AntennaType = "macro"

// Inputs are the read-only parameters for one option and confidence level.
type Inputs struct {
	Country    spec.CountryParameters
	Strategy   spec.Strategy
	Confidence int
	Capacity   inputs.CapacityLookup
}

// Estimate fills the Supply appendix of every region.
func Estimate(regions []*region.Region, in Inputs) error {
	bands, err := in.Country.Bands(in.Strategy.Generation)
	if err != nil {
		return err
	}
	curves := map[string][]DensityCapacity{}
	for _, r := range regions {
		class := r.Geotype.Class
		curve, ok := curves[class]
		if !ok {
			curve, err = CapacityCurve(in.Capacity, bands, class, in.Strategy.Generation, in.Confidence)
			if err != nil {
				return err
			}
			curves[class] = curve
		}

		density := FindSiteDensity(r.Demand.DemandMbpsKm2, curve)
		upgraded, newSites := EstimateSiteUpgrades(r, density, in.Strategy.Generation, in.Country.ProportionOfSites)
		r.Supply = region.Supply{
			SiteDensity:   density,
			UpgradedSites: upgraded,
			NewSites:      newSites,
		}
		r.Supply.NewBackhaul = EstimateBackhaulUpgrades(r, r.Supply.AllSites(), in.Strategy.Backhaul)
	}
	return nil
}

// DensityCapacity is one point of the summed capacity curve, in Mbps/km².
type DensityCapacity = inputs.DensityCapacity

// CapacityCurve sums, for every site density present in any band's lookup
// curve, the per-MHz capacity of each band times its channel width. The result
// is sorted ascending by density.
func CapacityCurve(lut inputs.CapacityLookup, bands []spec.Band, geotype string, gen spec.Generation, confidence int) ([]DensityCapacity, error) {
	total := map[float64]float64{}
	for _, b := range bands {
		curve, err := lut.Curve(inputs.CapacityKey{
			Environment: geotype,
			AntType:     AntennaType,
			Frequency:   strconv.Itoa(b.FrequencyMHz),
			Generation:  string(gen),
			Confidence:  strconv.Itoa(confidence),
		})
		if err != nil {
			return nil, err
		}
		for _, p := range curve {
			total[p.SitesPerKm2] += p.CapacityMbpsKm2 * b.ChannelMHz
		}
	}
	out := make([]DensityCapacity, 0, len(total))
	for d, c := range total {
		out = append(out, DensityCapacity{SitesPerKm2: d, CapacityMbpsKm2: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SitesPerKm2 < out[j].SitesPerKm2 })
	return out, nil
}

// FindSiteDensity returns the lowest site density whose capacity meets the
// demand, interpolating linearly between adjacent curve points. Demand beyond
// the curve is capped at the densest point.
func FindSiteDensity(demand float64, curve []DensityCapacity) float64 {
	if len(curve) == 0 {
		return 0
	}
	first, last := curve[0], curve[len(curve)-1]
	if demand >= last.CapacityMbpsKm2 {
		return last.SitesPerKm2
	}
	if demand <= first.CapacityMbpsKm2 {
		return first.SitesPerKm2
	}
	for i := 0; i < len(curve)-1; i++ {
		lo, hi := curve[i], curve[i+1]
		if lo.CapacityMbpsKm2 <= demand && demand < hi.CapacityMbpsKm2 {
			return lo.SitesPerKm2 + (hi.SitesPerKm2-lo.SitesPerKm2)*
				(demand-lo.CapacityMbpsKm2)/(hi.CapacityMbpsKm2-lo.CapacityMbpsKm2)
		}
	}
	return last.SitesPerKm2
}

// EstimateSiteUpgrades splits the sites a region needs into brownfield
// upgrades of the operator's existing sites and greenfield builds.
func EstimateSiteUpgrades(r *region.Region, density float64, gen spec.Generation, proportionOfSites float64) (upgraded, newSites int) {
	required := int(math.Ceil(density * r.AreaKm2))
	existing := int(math.Floor(r.SitesEstimatedTotal * proportionOfSites / 100))
	existing4G := int(math.Ceil(r.Sites4G * proportionOfSites / 100))
	netOff4G := gen == spec.Gen4G && existing4G > 0

	if required > existing {
		newSites = required - existing
		switch {
		case existing <= 0:
			upgraded = 0
		case netOff4G:
			upgraded = max(0, existing-existing4G)
		default:
			upgraded = existing
		}
		return upgraded, newSites
	}

	if netOff4G {
		return max(0, required-existing4G), 0
	}
	return required, 0
}

// EstimateBackhaulUpgrades returns how many sites need a new backhaul link.
// Under a microwave strategy an existing fiber link also counts.
func EstimateBackhaulUpgrades(r *region.Region, allSites int, medium spec.Backhaul) int {
	existing := r.BackhaulFiber
	if medium == spec.BackhaulMicrowave {
		existing += r.BackhaulMicrowave
	}
	return max(0, allSites-int(math.Floor(existing)))
}
