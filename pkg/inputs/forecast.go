package inputs

import (
	"github.com/ChicagoDave/netviability/pkg/spec"
	"github.com/rotisserie/eris"
)

type penetrationRow struct {
	Year        int     `csv:"year"`
	Penetration float64 `csv:"penetration"`
}

type smartphoneRow struct {
	SettlementType string  `csv:"settlement_type"`
	Year           int     `csv:"year"`
	Penetration    float64 `csv:"penetration"`
}

// Penetration maps a year to subscription penetration in percent.
type Penetration map[int]float64

// At returns the penetration for a year or ErrLookupMiss.
func (p Penetration) At(year int) (float64, error) {
	v, ok := p[year]
	if !ok {
		return 0, eris.Wrapf(spec.ErrLookupMiss, "no subscription penetration for %d", year)
	}
	return v, nil
}

// SmartphonePenetration maps settlement type (urban|rural) and year to percent.
type SmartphonePenetration map[string]map[int]float64

// At returns the smartphone share for a settlement type and year or ErrLookupMiss.
func (s SmartphonePenetration) At(settlement string, year int) (float64, error) {
	v, ok := s[settlement][year]
	if !ok {
		return 0, eris.Wrapf(spec.ErrLookupMiss, "no smartphone penetration for %s %d", settlement, year)
	}
	return v, nil
}

// LoadPenetration reads the subscription forecast (year, penetration).
func LoadPenetration(path string) (Penetration, error) {
	rows, err := decodeFile[penetrationRow](path, nil)
	if err != nil {
		return nil, err
	}
	out := make(Penetration, len(rows))
	for _, r := range rows {
		out[r.Year] = r.Penetration
	}
	return out, nil
}

// LoadSmartphones reads the smartphone forecast (settlement_type, year, penetration).
func LoadSmartphones(path string) (SmartphonePenetration, error) {
	rows, err := decodeFile[smartphoneRow](path, nil)
	if err != nil {
		return nil, err
	}
	out := SmartphonePenetration{}
	for i, r := range rows {
		if r.SettlementType != "urban" && r.SettlementType != "rural" {
			return nil, eris.Wrapf(spec.ErrSchema, "%s row %d: settlement_type %q must be urban or rural", path, i+2, r.SettlementType)
		}
		if out[r.SettlementType] == nil {
			out[r.SettlementType] = map[int]float64{}
		}
		out[r.SettlementType][r.Year] = r.Penetration
	}
	return out, nil
}
