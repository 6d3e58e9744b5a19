// Package output turns modelled regions into the grouped result tables and
// writes them as CSV files and an optional workbook.
package output

import (
	"strconv"

	"github.com/ChicagoDave/netviability/pkg/region"
	"github.com/ChicagoDave/netviability/pkg/spec"
)

// Record is one modelled region for one option and confidence level.
type Record struct {
	Country    string
	Region     string
	Geotype    string
	Scenario   string
	Strategy   string
	Confidence int
	Decile     int
	Values     map[string]float64
}

// NewRecord snapshots a region's input and computed fields.
func NewRecord(r *region.Region, opt spec.Option, confidence int) Record {
	values := map[string]float64{
		"population":               r.Population,
		"area_km2":                 r.AreaKm2,
		"population_km2":           r.PopulationKm2,
		"demand_mbps_km2":          r.Demand.DemandMbpsKm2,
		"site_density":             r.Supply.SiteDensity,
		"arpu":                     r.Demand.ARPU,
		"revenue_km2":              r.Demand.RevenueKm2,
		"population_with_phones":   r.Demand.PopulationWithPhones,
		"cost_per_smartphone_user": r.Assessment.CostPerSmartphoneUser,
	}
	for k, v := range r.Fields() {
		values[k] = v
	}
	for k, v := range r.Market {
		values[k] = v
	}
	for k, v := range r.Assets {
		values[k] = v
	}
	return Record{
		Country:    r.Country,
		Region:     r.ID,
		Geotype:    r.Geotype.Label,
		Scenario:   opt.Scenario,
		Strategy:   opt.Strategy,
		Confidence: confidence,
		Decile:     r.Decile,
		Values:     values,
	}
}

// Key returns an identity column's value.
func (rec Record) Key(column string) string {
	switch column {
	case "GID_0":
		return rec.Country
	case "GID_id":
		return rec.Region
	case "geotype":
		return rec.Geotype
	case "scenario":
		return rec.Scenario
	case "strategy":
		return rec.Strategy
	case "confidence":
		return strconv.Itoa(rec.Confidence)
	case "decile":
		return strconv.Itoa(rec.Decile)
	default:
		return ""
	}
}

type identity struct {
	country, region, scenario, strategy string
	confidence                          int
}

func (rec Record) identity() identity {
	return identity{rec.Country, rec.Region, rec.Scenario, rec.Strategy, rec.Confidence}
}

// Dedupe drops repeated regions, keeping the first occurrence.
func Dedupe(records []Record) []Record {
	seen := make(map[identity]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		id := rec.identity()
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, rec)
	}
	return out
}
