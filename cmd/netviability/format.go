package main

import (
	"fmt"

	"github.com/ChicagoDave/netviability/pkg/pipeline"
	"github.com/ChicagoDave/netviability/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printSummary(country, decision string, totals []pipeline.Totals) {
	title := fmt.Sprintf("%s national totals (%s)", country, decision)
	fmt.Println(title)
	for range title {
		fmt.Print("=")
	}
	fmt.Println()
	fmt.Println()

	fmt.Printf("%-14s %-52s %4s %12s %12s %12s %12s\n",
		"Scenario", "Strategy", "CI", "Revenue", "Network", "Total cost", "Subsidy")
	fmt.Printf("%-14s %-52s %4s %12s %12s %12s %12s\n",
		"--------------", "----------------------------------------------------", "----",
		"------------", "------------", "------------", "------------")

	var subsidy float64
	for _, t := range totals {
		fmt.Printf("%-14s %-52s %4d %12s %12s %12s %12s\n",
			t.Scenario, t.Strategy, t.Confidence,
			formatMoney(t.Revenue), formatMoney(t.NetworkCost), formatMoney(t.TotalCost), formatMoney(t.StateSubsidy))
		subsidy += t.StateSubsidy
	}

	if len(totals) > 0 {
		fmt.Println()
		fmt.Printf("  Regions modelled:       %d\n", totals[0].Regions)
		fmt.Printf("  Regions skipped:        %d\n", totals[0].Skipped)
		fmt.Printf("  Mean state subsidy:     $%s\n", formatMoney(subsidy/float64(len(totals))))
	}
}

func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	if v >= 1_000_000_000 {
		return fmt.Sprintf("%s%.2fB", sign, v/1_000_000_000)
	}
	if v >= 1_000_000 {
		return fmt.Sprintf("%s%.2fM", sign, v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%s%.0fK", sign, v/1_000)
	}
	return fmt.Sprintf("%s%.0f", sign, v)
}
