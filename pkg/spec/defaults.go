package spec

// Built-in scenario tags: per-user Mbps for urban, suburban and rural regions.
var defaultScenarios = []string{"S1_25_10_2", "S2_200_50_5", "S3_400_100_10"}

// DefaultParameters returns the built-in dictionaries. Each call returns a
// fresh copy so callers may overlay configuration onto it.
func DefaultParameters() Parameters {
	return Parameters{
		Global:    defaultGlobal(),
		Costs:     defaultCosts(),
		Countries: defaultCountries(),
		Options:   defaultOptions(),
	}
}

func defaultGlobal() GlobalParameters {
	return GlobalParameters{
		OverbookingFactor:     100,
		ReturnPeriod:          10,
		DiscountRate:          5,
		OpexPercentageOfCapex: 10,
		Sectorization:         3,
		Confidence:            []int{50},
		LocalNodeSpacingKm2:   40,
		StartYear:             2020,
		EndYear:               2030,

		CotsProcessingSplitUrban:       2,
		CotsProcessingSplitSuburban:    4,
		CotsProcessingSplitRural:       16,
		LowLatencySwitchSplit:          4,
		RackSplit:                      4,
		CloudPowerSupplyConverterSplit: 4,
		CloudBackhaulSplit:             16,
	}
}

// Unit prices in USD. Fiber and edges are per meter; power and site rental are annual.
func defaultCosts() Costs {
	return Costs{
		"sector_antenna":                     1500,
		"remote_radio_unit":                  4000,
		"io_fronthaul":                       1500,
		"processing":                         1500,
		"io_s1_x2":                           1500,
		"control_unit":                       1500,
		"cooling_fans":                       250,
		"distributed_power_supply_converter": 250,
		"bbu_cabinet":                        500,
		"cots_processing":                    500,
		"io_n2_n3":                           1500,
		"low_latency_switch":                 500,
		"rack":                               500,
		"cloud_power_supply_converter":       1000,
		"cloud_backhaul":                     10000,
		"power":                              3000,
		"power_generator_battery_system":     5000,
		"tower":                              10000,
		"civil_materials":                    5000,
		"transportation":                     5000,
		"installation":                       5000,
		"site_rental_urban":                  9600,
		"site_rental_suburban":               4000,
		"site_rental_rural":                  2000,
		"router":                             2000,
		"microwave_small":                    10000,
		"microwave_medium":                   20000,
		"microwave_large":                    40000,
		"fiber_urban_m":                      25,
		"fiber_suburban_m":                   15,
		"fiber_rural_m":                      10,
		"local_node":                         50000,
		"regional_edge":                      15,
		"regional_node_epc":                  100000,
		"regional_node_nsa":                  150000,
		"regional_node_sa":                   200000,
		"core_edge":                          20,
		"core_node_epc":                      250000,
		"core_node_nsa":                      400000,
		"core_node_sa":                       500000,
	}
}

func defaultNetworks(baseline float64) map[string]float64 {
	return map[string]float64{
		"baseline_urban":    baseline,
		"baseline_suburban": baseline,
		"baseline_rural":    baseline,
		"passive_urban":     baseline,
		"passive_suburban":  baseline,
		"passive_rural":     baseline,
		"active_urban":      baseline,
		"active_suburban":   baseline,
		"active_rural":      baseline,
		"shared_urban":      baseline,
		"shared_suburban":   baseline,
		"shared_rural":      baseline,
		"srn_urban":         baseline,
		"srn_suburban":      baseline,
		"srn_rural":         1,
	}
}

func defaultFrequencies() map[string][]Frequency {
	return map[string][]Frequency{
		"4G": {
			{FrequencyMHz: 800, Bandwidth: "2x10"},
			{FrequencyMHz: 1800, Bandwidth: "2x10"},
		},
		"5G": {
			{FrequencyMHz: 700, Bandwidth: "2x10"},
			{FrequencyMHz: 3500, Bandwidth: "1x50"},
		},
	}
}

func country(iso3, name string, level int, lum LuminosityThresholds, arpu ARPUTiers, networks, proportion float64, fin Financials) CountryParameters {
	return CountryParameters{
		ISO3:              iso3,
		Name:              name,
		RegionalLevel:     level,
		Luminosity:        lum,
		ARPU:              arpu,
		Networks:          defaultNetworks(networks),
		Frequencies:       defaultFrequencies(),
		ProportionOfSites: proportion,
		Financials:        fin,
	}
}

func defaultCountries() map[string]CountryParameters {
	fin := func(wacc, coverage, capacity, taxBaseline float64) Financials {
		return Financials{
			WACC:                              wacc,
			ProfitMargin:                      20,
			SpectrumCoverageBaselineUSDMHzPop: coverage,
			SpectrumCapacityBaselineUSDMHzPop: capacity,
			SpectrumCostLow:                   50,
			SpectrumCostHigh:                  50,
			TaxLow:                            10,
			TaxBaseline:                       taxBaseline,
			TaxHigh:                           taxBaseline + 10,
			AdministrationPercentOfNetwork:    20,
		}
	}
	lum := LuminosityThresholds{High: 5, Medium: 1}

	countries := []CountryParameters{
		country("CIV", "Cote d'Ivoire", 2, lum, ARPUTiers{High: 8, Medium: 3, Low: 2}, 3, 30, fin(10, 0.08, 0.04, 30)),
		country("MLI", "Mali", 2, lum, ARPUTiers{High: 8, Medium: 3, Low: 2}, 3, 30, fin(12, 0.08, 0.04, 30)),
		country("SEN", "Senegal", 2, lum, ARPUTiers{High: 8, Medium: 3, Low: 2}, 3, 30, fin(11, 0.08, 0.04, 30)),
		country("KEN", "Kenya", 2, lum, ARPUTiers{High: 10, Medium: 4, Low: 2}, 3, 40, fin(10, 0.13, 0.08, 25)),
		country("TZA", "Tanzania", 2, lum, ARPUTiers{High: 8, Medium: 3, Low: 2}, 4, 30, fin(12, 0.10, 0.05, 30)),
		country("UGA", "Uganda", 2, lum, ARPUTiers{High: 8, Medium: 3, Low: 2}, 3, 30, fin(14, 0.10, 0.05, 30)),
	}
	out := make(map[string]CountryParameters, len(countries))
	for _, c := range countries {
		out[c.ISO3] = c
	}
	return out
}

func cross(scenarios, strategies []string) []Option {
	opts := make([]Option, 0, len(scenarios)*len(strategies))
	for _, st := range strategies {
		for _, sc := range scenarios {
			opts = append(opts, Option{Scenario: sc, Strategy: st})
		}
	}
	return opts
}

func defaultOptions() map[string][]Option {
	return map[string][]Option{
		"technology_options": cross(defaultScenarios, []string{
			"4G_epc_microwave_baseline_baseline_baseline_baseline",
			"4G_epc_fiber_baseline_baseline_baseline_baseline",
			"5G_nsa_microwave_baseline_baseline_baseline_baseline",
			"5G_nsa_fiber_baseline_baseline_baseline_baseline",
			"5G_sa_fiber_baseline_baseline_baseline_baseline",
		}),
		"business_model_options": cross(defaultScenarios, []string{
			"4G_epc_microwave_baseline_baseline_baseline_baseline",
			"4G_epc_microwave_passive_baseline_baseline_baseline",
			"4G_epc_microwave_active_baseline_baseline_baseline",
			"4G_epc_microwave_shared_baseline_baseline_baseline",
		}),
		"policy_options": cross(defaultScenarios, []string{
			"4G_epc_microwave_baseline_baseline_low_baseline",
			"4G_epc_microwave_baseline_baseline_high_baseline",
			"4G_epc_microwave_baseline_baseline_baseline_low",
			"4G_epc_microwave_baseline_baseline_baseline_high",
		}),
		"mixed_options": cross(defaultScenarios, []string{
			"4G_epc_microwave_shared_srn_baseline_baseline",
			"4G_epc_microwave_shared_srn_low_low",
			"5G_nsa_microwave_shared_srn_baseline_baseline",
			"5G_nsa_microwave_shared_srn_low_low",
		}),
	}
}
