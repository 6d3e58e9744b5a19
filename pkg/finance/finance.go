// Package finance holds the discounting and rounding arithmetic shared by the
// cost builder and the assessor.
package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// DiscountFactor returns 1/(1+rate/100)^years.
func DiscountFactor(ratePercent float64, years int) float64 {
	return 1 / math.Pow(1+ratePercent/100, float64(years))
}

// Discounted returns value discounted by (1+rate/100)^years.
func Discounted(value, ratePercent float64, years int) float64 {
	return value * DiscountFactor(ratePercent, years)
}

// AnnualStream is the present value of a constant annual amount paid at the
// start of each of the given years: Σ_{i=0..years-1} value/(1+r)^i.
func AnnualStream(value, ratePercent float64, years int) float64 {
	total := 0.0
	for i := 0; i < years; i++ {
		total += Discounted(value, ratePercent, i)
	}
	return total
}

// WACCUplift applies the (1 + wacc/100) financing uplift.
func WACCUplift(value, waccPercent float64) float64 {
	return value * (1 + waccPercent/100)
}

// CapexAndOpex is capex plus the discounted annual opex stream, where opex is
// a percentage of capex, uplifted by WACC.
func CapexAndOpex(capex, opexPercent, ratePercent float64, years int, waccPercent float64) float64 {
	opex := capex * opexPercent / 100
	return WACCUplift(capex+AnnualStream(opex, ratePercent, years), waccPercent)
}

// Capex uplifts a one-off capital cost by WACC.
func Capex(capex, waccPercent float64) float64 {
	return WACCUplift(capex, waccPercent)
}

// Opex is the discounted stream of an annual operating cost, uplifted by WACC.
func Opex(opex, ratePercent float64, years int, waccPercent float64) float64 {
	return WACCUplift(AnnualStream(opex, ratePercent, years), waccPercent)
}

// Round rounds half to even, matching the rounding used for every written value.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).RoundBank(0).Float64()
	return f
}

// RoundTo rounds half to even at the given number of decimal places.
func RoundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).RoundBank(places).Float64()
	return f
}

// RoundInt rounds half to even and returns an int64.
func RoundInt(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).RoundBank(0).IntPart()
}

// SafeDiv returns num/den, or 0 when den is not positive.
func SafeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
