package inputs

import (
	"math"
	"sort"
	"strconv"

	"github.com/ChicagoDave/netviability/pkg/spec"
	"github.com/rotisserie/eris"
)

// CapacityKey is the primary key of the capacity lookup.
type CapacityKey struct {
	Environment string
	AntType     string
	Frequency   string // MHz
	Generation  string
	Confidence  string
}

// DensityCapacity is one point on a capacity curve.
type DensityCapacity struct {
	SitesPerKm2     float64
	CapacityMbpsKm2 float64
}

// CapacityLookup maps a key to its curve, sorted ascending by site density.
type CapacityLookup struct {
	curves map[CapacityKey][]DensityCapacity
}

// NewCapacityLookup builds a lookup from unsorted curves.
func NewCapacityLookup(curves map[CapacityKey][]DensityCapacity) CapacityLookup {
	out := make(map[CapacityKey][]DensityCapacity, len(curves))
	for k, c := range curves {
		sorted := append([]DensityCapacity(nil), c...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SitesPerKm2 < sorted[j].SitesPerKm2 })
		out[k] = sorted
	}
	return CapacityLookup{curves: out}
}

// Curve returns the curve for a key or ErrLookupMiss.
func (l CapacityLookup) Curve(k CapacityKey) ([]DensityCapacity, error) {
	c, ok := l.curves[k]
	if !ok {
		return nil, eris.Wrapf(spec.ErrLookupMiss, "capacity lookup has no curve for %s/%s/%s MHz/%s/%s",
			k.Environment, k.AntType, k.Frequency, k.Generation, k.Confidence)
	}
	return c, nil
}

// Len reports the number of curves.
func (l CapacityLookup) Len() int { return len(l.curves) }

type capacityRow struct {
	Environment     string  `csv:"environment"`
	AntType         string  `csv:"ant_type"`
	FrequencyGHz    float64 `csv:"frequency_GHz"`
	Generation      string  `csv:"generation"`
	Confidence      float64 `csv:"confidence_interval"`
	SitesPerKm2     float64 `csv:"sites_per_km2"`
	CapacityMbpsKm2 float64 `csv:"capacity_mbps_km2"`
}

// LoadCapacity reads the capacity lookup. Rows with non-positive capacity are dropped.
func LoadCapacity(path string) (CapacityLookup, error) {
	rows, err := decodeFile[capacityRow](path, nil)
	if err != nil {
		return CapacityLookup{}, err
	}
	curves := map[CapacityKey][]DensityCapacity{}
	for _, r := range rows {
		if r.CapacityMbpsKm2 <= 0 {
			continue
		}
		k := CapacityKey{
			Environment: r.Environment,
			AntType:     r.AntType,
			Frequency:   strconv.Itoa(int(math.Round(r.FrequencyGHz * 1000))),
			Generation:  r.Generation,
			Confidence:  strconv.FormatFloat(r.Confidence, 'f', -1, 64),
		}
		curves[k] = append(curves[k], DensityCapacity{SitesPerKm2: r.SitesPerKm2, CapacityMbpsKm2: r.CapacityMbpsKm2})
	}
	return NewCapacityLookup(curves), nil
}

// Core network asset kinds and their sources.
const (
	AssetCoreEdge     = "core_edge"
	AssetCoreNode     = "core_node"
	AssetRegionalEdge = "regional_edge"
	AssetRegionalNode = "regional_node"

	SourceExisting = "existing"
	SourceNew      = "new"
)

var coreAssets = map[string]bool{
	AssetCoreEdge: true, AssetCoreNode: true, AssetRegionalEdge: true, AssetRegionalNode: true,
}

// CoreKey is the primary key of the core lookup.
type CoreKey struct {
	Asset  string
	Region string
	Source string
}

// CoreLookup holds node counts and edge lengths (meters) per region.
type CoreLookup struct {
	values map[CoreKey]float64
	assets map[string]bool
}

// NewCoreLookup builds a lookup from explicit values.
func NewCoreLookup(values map[CoreKey]float64) CoreLookup {
	l := CoreLookup{values: make(map[CoreKey]float64, len(values)), assets: map[string]bool{}}
	for k, v := range values {
		l.values[k] = v
		l.assets[k.Asset] = true
	}
	return l
}

// Value returns the entry for an asset, region and source. A region without an
// entry yields 0; an asset kind absent from the whole table is ErrLookupMiss.
func (l CoreLookup) Value(asset, regionID, source string) (float64, error) {
	if !l.assets[asset] {
		return 0, eris.Wrapf(spec.ErrLookupMiss, "core lookup has no %s entries", asset)
	}
	return l.values[CoreKey{Asset: asset, Region: regionID, Source: source}], nil
}

type coreRow struct {
	Region string  `csv:"GID_id"`
	Asset  string  `csv:"asset"`
	Source string  `csv:"source"`
	Value  float64 `csv:"value"`
}

// LoadCore reads the core lookup.
func LoadCore(path string) (CoreLookup, error) {
	rows, err := decodeFile[coreRow](path, nil)
	if err != nil {
		return CoreLookup{}, err
	}
	values := make(map[CoreKey]float64, len(rows))
	for i, r := range rows {
		if !coreAssets[r.Asset] {
			return CoreLookup{}, eris.Wrapf(spec.ErrSchema, "%s row %d: unknown asset %q", path, i+2, r.Asset)
		}
		if r.Source != SourceExisting && r.Source != SourceNew {
			return CoreLookup{}, eris.Wrapf(spec.ErrSchema, "%s row %d: unknown source %q", path, i+2, r.Source)
		}
		values[CoreKey{Asset: r.Asset, Region: r.Region, Source: r.Source}] += r.Value
	}
	return NewCoreLookup(values), nil
}
