package cost

import (
	"math"

	"github.com/ChicagoDave/netviability/pkg/inputs"
	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
)

// siteContext prices one undiscounted unit of each asset for a region.
type siteContext struct {
	region   *region.Region
	in       Inputs
	allSites int
}

func (c *siteContext) price(key string) (float64, error) {
	return c.in.Costs.Price(key)
}

func (c *siteContext) geotype() string { return c.region.Geotype.Class }

func (c *siteContext) unitCost(asset string) (float64, error) {
	g := c.in.Global
	sites := float64(c.allSites)

	switch asset {
	case SectorAntenna:
		p, err := c.price(asset)
		return p * g.Sectorization, err
	case CotsProcessing:
		return c.splitCost(asset, g.CotsProcessingSplit(c.geotype()))
	case LowLatencySwitch:
		return c.splitCost(asset, g.LowLatencySwitchSplit)
	case Rack:
		return c.splitCost(asset, g.RackSplit)
	case CloudPowerSupplyConverter:
		return c.splitCost(asset, g.CloudPowerSupplyConverterSplit)
	case CloudBackhaul:
		v, err := c.splitCost(asset, g.CloudBackhaulSplit)
		return Amortise(v, sites), err
	case SiteRental:
		return c.price(SiteRental + "_" + c.geotype())
	case Fronthaul:
		return c.fiberCost(MeanSpacingM(c.region.Supply.SiteDensity))
	case Backhaul:
		return c.backhaulCost()
	case LocalNode:
		p, err := c.price(LocalNode)
		if err != nil || g.LocalNodeSpacingKm2 <= 0 {
			return 0, err
		}
		return Amortise(c.region.AreaKm2/g.LocalNodeSpacingKm2*p, sites), nil
	case RegionalEdge:
		if c.in.Strategy.Backhaul == spec.BackhaulMicrowave {
			return 0, nil
		}
		return c.coreCost(inputs.AssetRegionalEdge, RegionalEdge)
	case RegionalNode:
		if c.in.Strategy.Backhaul == spec.BackhaulMicrowave {
			return 0, nil
		}
		return c.coreCost(inputs.AssetRegionalNode, RegionalNode+"_"+string(c.in.Strategy.Core))
	case CoreEdge:
		return c.coreCost(inputs.AssetCoreEdge, CoreEdge)
	case CoreNode:
		return c.coreCost(inputs.AssetCoreNode, CoreNode+"_"+string(c.in.Strategy.Core))
	default:
		return c.price(asset)
	}
}

// splitCost prices the ceil(all_sites/split) shared units an asset needs.
func (c *siteContext) splitCost(asset string, split float64) (float64, error) {
	p, err := c.price(asset)
	if err != nil || split <= 0 {
		return 0, err
	}
	return p * math.Ceil(float64(c.allSites)/split), nil
}

func (c *siteContext) fiberCost(distanceM float64) (float64, error) {
	p, err := c.price("fiber_" + c.geotype() + "_m")
	if err != nil {
		return 0, err
	}
	return distanceM * p, nil
}

func (c *siteContext) backhaulCost() (float64, error) {
	distance, err := c.backhaulDistanceM()
	if err != nil {
		return 0, err
	}
	if c.in.Strategy.Backhaul == spec.BackhaulFiber {
		return c.fiberCost(distance)
	}
	return c.price(MicrowaveAsset(distance))
}

// backhaulDistanceM is the mean distance from a site to the nearest
// aggregation node, or the region's width when it has no nodes.
func (c *siteContext) backhaulDistanceM() (float64, error) {
	nodes := 0.0
	for _, asset := range []string{inputs.AssetCoreNode, inputs.AssetRegionalNode} {
		for _, source := range []string{inputs.SourceExisting, inputs.SourceNew} {
			v, err := c.in.Core.Value(asset, c.region.ID, source)
			if err != nil {
				return 0, err
			}
			nodes += v
		}
	}
	area := c.region.AreaKm2
	if nodes > 0 && area > 0 {
		return MeanSpacingM(nodes / area), nil
	}
	return math.Sqrt(math.Max(area, 0)) * 1000, nil
}

// coreCost amortises the region's new core or regional units across its sites.
func (c *siteContext) coreCost(asset, priceKey string) (float64, error) {
	quantity, err := c.in.Core.Value(asset, c.region.ID, inputs.SourceNew)
	if err != nil {
		return 0, err
	}
	p, err := c.price(priceKey)
	if err != nil {
		return 0, err
	}
	return Amortise(quantity*p, float64(c.allSites)), nil
}

// MicrowaveAsset returns the catalog key of the microwave link sized for a distance.
func MicrowaveAsset(distanceM float64) string {
	switch {
	case distanceM < MicrowaveSmallMaxM:
		return "microwave_small"
	case distanceM < MicrowaveMediumMaxM:
		return "microwave_medium"
	default:
		return "microwave_large"
	}
}

// CatalogKeys lists every cost catalog entry the builder may price for a core
// type: plain assets, per-geotype site rental and fiber, the three microwave
// link sizes, and the core-specific node prices.
func CatalogKeys(core spec.Core) []string {
	var keys []string
	for _, a := range Assets {
		switch a {
		case Fronthaul, Backhaul, SiteRental, RegionalNode, CoreNode:
			continue
		}
		keys = append(keys, a)
	}
	for _, g := range []string{"urban", "suburban", "rural"} {
		keys = append(keys, SiteRental+"_"+g, "fiber_"+g+"_m")
	}
	keys = append(keys, "microwave_small", "microwave_medium", "microwave_large")
	keys = append(keys, RegionalNode+"_"+string(core), CoreNode+"_"+string(core))
	return keys
}
