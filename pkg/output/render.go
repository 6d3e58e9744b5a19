package output

import (
	"strconv"
	"strings"

	"github.com/ChicagoDave/netviability/pkg/finance"
)

// Rendered is a table ready to be written: a header and formatted rows.
type Rendered struct {
	Header []string
	Rows   [][]string
}

type group struct {
	keys   []string
	values map[string]float64
}

// Render projects, groups and formats records for one table. Grouped levels
// sum values over their identity keys in first-seen order.
func Render(t Table, records []Record) Rendered {
	keys := t.Keys()
	var groups []*group
	index := map[string]*group{}

	for _, rec := range Dedupe(records) {
		kv := make([]string, len(keys))
		for i, k := range keys {
			kv[i] = rec.Key(k)
		}
		id := strings.Join(kv, "\x00")
		g, ok := index[id]
		if !ok || t.Level == Regional {
			g = &group{keys: kv, values: make(map[string]float64, len(t.Values))}
			index[id] = g
			groups = append(groups, g)
		}
		for _, c := range t.Values {
			g.values[c] += rec.Values[c]
		}
	}

	out := Rendered{Header: t.Header()}
	for _, g := range groups {
		derive(g.values, t.Market)
		row := append([]string{}, g.keys...)
		for _, c := range t.Values {
			row = append(row, FormatValue(c, g.values[c]))
		}
		for _, c := range t.Derived() {
			row = append(row, FormatValue(c, g.values[c]))
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// derive adds the per-user and cost-bearer ratios computed from summed values.
func derive(v map[string]float64, market bool) {
	cost, phones, smartphones := "total_mno_cost", "phones_on_network", "smartphones_on_network"
	subsidy, spectrum, tax := "required_state_subsidy", "spectrum_cost", "tax"
	if market {
		cost, phones, smartphones = "total_market_cost", "total_phones_on_network", "total_smartphones_on_network"
		subsidy, spectrum, tax = "total_required_state_subsidy", "total_spectrum_cost", "total_tax"
	}
	v["cost_per_network_user"] = finance.SafeDiv(v[cost], v[phones])
	v["cost_per_smartphone_user"] = finance.SafeDiv(v[cost], v[smartphones])
	v["private_cost"] = v[cost]
	v["government_cost"] = v[subsidy] - (v[spectrum] + v[tax])
	v["societal_cost"] = v["private_cost"] + v["government_cost"]
}

// FormatValue writes float columns with four decimals and everything else
// as a half-to-even rounded integer.
func FormatValue(column string, v float64) string {
	if floatColumns[column] {
		return strconv.FormatFloat(finance.RoundTo(v, 4), 'f', 4, 64)
	}
	return strconv.FormatInt(finance.RoundInt(v), 10)
}

// WithOption prefixes every row with a decision_option column.
func (r Rendered) WithOption(decisionOption string) Rendered {
	out := Rendered{Header: append([]string{"decision_option"}, r.Header...)}
	for _, row := range r.Rows {
		out.Rows = append(out.Rows, append([]string{decisionOption}, row...))
	}
	return out
}
