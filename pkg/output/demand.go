package output

import (
	"strconv"

	"github.com/ChicagoDave/netviability/pkg/demand"
	"github.com/ChicagoDave/netviability/pkg/finance"
	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// Fixed4 encodes a float with four decimals.
type Fixed4 float64

// MarshalCSV implements csvutil.Marshaler.
func (f Fixed4) MarshalCSV() ([]byte, error) {
	return strconv.AppendFloat(nil, finance.RoundTo(float64(f), 4), 'f', 4, 64), nil
}

type demandRow struct {
	Country               string `csv:"GID_0"`
	Region                string `csv:"GID_id"`
	Scenario              string `csv:"scenario"`
	Strategy              string `csv:"strategy"`
	Confidence            int    `csv:"confidence"`
	Year                  int    `csv:"year"`
	Population            int64  `csv:"population"`
	AreaKm2               Fixed4 `csv:"area_km2"`
	PopulationKm2         Fixed4 `csv:"population_km2"`
	Geotype               string `csv:"geotype"`
	ARPUDiscountedMonthly Fixed4 `csv:"arpu_discounted_monthly"`
	Penetration           Fixed4 `csv:"penetration"`
	PopulationWithPhones  int64  `csv:"population_with_phones"`
	PhonesOnNetwork       int64  `csv:"phones_on_network"`
	SmartphonePenetration Fixed4 `csv:"smartphone_penetration"`
	SmartphonesOnNetwork  int64  `csv:"smartphones_on_network"`
	Revenue               int64  `csv:"revenue"`
	DemandMbpsKm2         Fixed4 `csv:"demand_mbps_km2"`
}

func newDemandRow(y demand.YearRow) demandRow {
	return demandRow{
		Country:               y.Country,
		Region:                y.Region,
		Scenario:              y.Scenario,
		Strategy:              y.Strategy,
		Confidence:            y.Confidence,
		Year:                  y.Year,
		Population:            finance.RoundInt(y.Population),
		AreaKm2:               Fixed4(y.AreaKm2),
		PopulationKm2:         Fixed4(y.PopulationKm2),
		Geotype:               y.Geotype,
		ARPUDiscountedMonthly: Fixed4(y.ARPUDiscountedMonthly),
		Penetration:           Fixed4(y.Penetration),
		PopulationWithPhones:  finance.RoundInt(y.PopulationWithPhones),
		PhonesOnNetwork:       finance.RoundInt(y.PhonesOnNetwork),
		SmartphonePenetration: Fixed4(y.SmartphonePenetration),
		SmartphonesOnNetwork:  finance.RoundInt(y.SmartphonesOnNetwork),
		Revenue:               finance.RoundInt(y.Revenue),
		DemandMbpsKm2:         Fixed4(y.DemandMbpsKm2),
	}
}

// rowCollector receives encoded records in memory.
type rowCollector struct {
	rows [][]string
}

func (c *rowCollector) Write(record []string) error {
	c.rows = append(c.rows, append([]string(nil), record...))
	return nil
}

// RenderDemand encodes the per-year demand rows.
func RenderDemand(rows []demand.YearRow) (Rendered, error) {
	c := &rowCollector{}
	enc := csvutil.NewEncoder(c)
	header, err := csvutil.Header(demandRow{}, "csv")
	if err != nil {
		return Rendered{}, eris.Wrap(err, "demand header")
	}
	enc.AutoHeader = false
	for _, y := range rows {
		if err := enc.Encode(newDemandRow(y)); err != nil {
			return Rendered{}, eris.Wrapf(err, "encoding demand row %s %d", y.Region, y.Year)
		}
	}
	return Rendered{Header: header, Rows: c.rows}, nil
}
