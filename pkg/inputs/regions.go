package inputs

import (
	"github.com/ChicagoDave/netviability/pkg/region"
)

// regionAliases maps legacy column names onto the canonical regional columns.
var regionAliases = map[string]string{
	"sites_total": "sites_estimated_total",
}

// LoadRegions reads the regional table and classifies each region's geotype.
func LoadRegions(path string) ([]region.Region, error) {
	regions, err := decodeFile[region.Region](path, regionAliases)
	if err != nil {
		return nil, err
	}
	for i := range regions {
		regions[i].Geotype = region.Classify(regions[i].PopulationKm2)
	}
	return regions, nil
}
