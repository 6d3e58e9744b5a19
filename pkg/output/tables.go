package output

import "github.com/ChicagoDave/netviability/pkg/region"

// Level is the aggregation level of a table.
type Level int

const (
	Regional Level = iota
	Decile
	National
)

// Table describes one result file.
type Table struct {
	Name   string
	Level  Level
	Market bool
	Values []string
}

// Keys returns the identity columns for the table's level.
func (t Table) Keys() []string {
	switch t.Level {
	case Regional:
		return []string{"GID_0", "GID_id", "geotype", "scenario", "strategy", "confidence", "decile"}
	case Decile:
		return []string{"GID_0", "scenario", "strategy", "confidence", "decile"}
	default:
		return []string{"GID_0", "scenario", "strategy", "confidence"}
	}
}

// Derived returns the ratio columns computed after grouping.
func (t Table) Derived() []string {
	return []string{"cost_per_network_user", "cost_per_smartphone_user", "private_cost", "government_cost", "societal_cost"}
}

// Header is the full column list.
func (t Table) Header() []string {
	h := append([]string{}, t.Keys()...)
	h = append(h, t.Values...)
	return append(h, t.Derived()...)
}

// FileName is the CSV name for a decision option.
func (t Table) FileName(decisionOption string) string {
	return t.Name + "_" + decisionOption + ".csv"
}

// DemandTable is the per-year regional demand table name.
const DemandTable = "regional_annual_demand"

// floatColumns keep four decimals; every other numeric column is an integer.
var floatColumns = map[string]bool{
	"area_km2":        true,
	"population_km2":  true,
	"demand_mbps_km2": true,
	"site_density":    true,
	"arpu":            true,
}

var (
	mnoResultColumns = []string{
		"phones_on_network", "smartphones_on_network", "upgraded_sites", "new_sites",
		"new_backhaul", "total_mno_revenue", "network_cost", "spectrum_cost", "tax",
		"total_mno_cost", "available_cross_subsidy", "deficit", "used_cross_subsidy",
		"required_state_subsidy",
	}
	mnoCostColumns = []string{
		"phones_on_network", "smartphones_on_network", "ran", "backhaul_fronthaul",
		"civils", "core_network", "network_cost", "administration", "spectrum_cost",
		"tax", "profit_margin", "total_mno_cost", "required_state_subsidy",
	}
	regionalColumns = []string{"population_km2", "demand_mbps_km2", "site_density", "arpu"}
)

// Tables lists every grouped result table in write order.
var Tables = buildTables()

func buildTables() []Table {
	grouped := []struct {
		level Level
		name  string
	}{
		{National, "national"},
		{Decile, "decile"},
	}
	var out []Table
	for _, market := range []bool{false, true} {
		kind := "mno"
		if market {
			kind = "market"
		}
		for _, g := range grouped {
			out = append(out,
				Table{Name: g.name + "_" + kind + "_results", Level: g.level, Market: market, Values: columns(market, mnoResultColumns)},
				Table{Name: g.name + "_" + kind + "_cost_results", Level: g.level, Market: market, Values: columns(market, mnoCostColumns)},
			)
		}
		regional := append(append([]string{}, regionalColumns...), region.MNOFields...)
		out = append(out, Table{Name: "regional_" + kind + "_results", Level: Regional, Market: market, Values: columns(market, regional)})
	}
	return out
}

// columns prefixes every table with population and area, then maps the
// single-operator columns to their market mirrors when needed.
func columns(market bool, names []string) []string {
	out := []string{"population", "area_km2"}
	for _, n := range names {
		if market && isMNOField(n) {
			n = region.MarketField(n)
		}
		out = append(out, n)
	}
	return out
}

func isMNOField(name string) bool {
	for _, f := range region.MNOFields {
		if f == name {
			return true
		}
	}
	return false
}

// TableByName finds a table, including the demand table.
func TableByName(name string) (Table, bool) {
	if name == DemandTable {
		return Table{Name: DemandTable, Level: Regional}, true
	}
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
