package inputs

import (
	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
)

// Country bundles the per-country input tables.
type Country struct {
	ISO3        string
	Regions     []region.Region
	Penetration Penetration
	Smartphones SmartphonePenetration
	Core        CoreLookup
}

// LoadCountry reads every per-country table under the intermediate directory.
func LoadCountry(paths spec.Paths, iso3 string) (*Country, error) {
	regions, err := LoadRegions(paths.RegionalData(iso3))
	if err != nil {
		return nil, err
	}
	pen, err := LoadPenetration(paths.SubscriptionForecast(iso3))
	if err != nil {
		return nil, err
	}
	smart, err := LoadSmartphones(paths.SmartphoneForecast(iso3))
	if err != nil {
		return nil, err
	}
	core, err := LoadCore(paths.CoreLookup(iso3))
	if err != nil {
		return nil, err
	}
	return &Country{ISO3: iso3, Regions: regions, Penetration: pen, Smartphones: smart, Core: core}, nil
}
