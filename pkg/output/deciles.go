package output

import (
	"math"
	"sort"

	"github.com/ChicagoDave/netviability/pkg/region"
)

// DecileBins is the number of population-density buckets.
const DecileBins = 11

// DecileEdges returns the ten interior quantile edges of the densities.
func DecileEdges(densities []float64) []float64 {
	if len(densities) == 0 {
		return nil
	}
	sorted := append([]float64(nil), densities...)
	sort.Float64s(sorted)
	edges := make([]float64, 0, DecileBins-1)
	for k := 1; k < DecileBins; k++ {
		edges = append(edges, linearQuantile(sorted, float64(k)/DecileBins))
	}
	return edges
}

// linearQuantile interpolates between the order statistics either side of
// (n-1)p, the estimator pandas and numpy use by default.
func linearQuantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	hi := math.Ceil(h)
	return sorted[int(lo)] + (h-lo)*(sorted[int(hi)]-sorted[int(lo)])
}

// DecileLabel maps a density to its bucket label: 100 for the sparsest
// bucket down to 0 for the densest. Ties share a bucket.
func DecileLabel(density float64, edges []float64) int {
	bin := 0
	for _, e := range edges {
		if e < density {
			bin++
		}
	}
	return 100 - 10*bin
}

// AssignDeciles labels every region of one country, option and confidence level.
func AssignDeciles(regions []*region.Region) {
	densities := make([]float64, len(regions))
	for i, r := range regions {
		densities[i] = r.PopulationKm2
	}
	edges := DecileEdges(densities)
	for _, r := range regions {
		r.Decile = DecileLabel(r.PopulationKm2, edges)
	}
}
