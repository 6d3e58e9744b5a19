package region

import "strings"

// Geotype is the density class of a region. Class is the canonical token used
// by every lookup; Label keeps the numbered variant for reporting.
type Geotype struct {
	Class string
	Label string
}

func (g Geotype) String() string { return g.Label }

// densityLadder is ordered from densest to sparsest; the first threshold the
// density exceeds wins.
var densityLadder = []struct {
	above float64
	label string
}{
	{5000, "urban"},
	{1500, "suburban 1"},
	{1000, "suburban 2"},
	{500, "rural 1"},
	{100, "rural 2"},
	{50, "rural 3"},
	{10, "rural 4"},
}

// Classify derives the geotype from population per km².
func Classify(populationKm2 float64) Geotype {
	label := "rural 5"
	for _, step := range densityLadder {
		if populationKm2 > step.above {
			label = step.label
			break
		}
	}
	return Geotype{Class: strings.SplitN(label, " ", 2)[0], Label: label}
}

// SmartphoneClass collapses suburban into urban for the smartphone forecast.
func (g Geotype) SmartphoneClass() string {
	if g.Class == "rural" {
		return "rural"
	}
	return "urban"
}
