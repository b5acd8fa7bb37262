package main

import (
	"fmt"
	"math"
	"os"

	"github.com/ngodron/power-sim-MTB/pkg/analysis"
	"github.com/ngodron/power-sim-MTB/pkg/config"
	"github.com/ngodron/power-sim-MTB/pkg/export"
	"github.com/ngodron/power-sim-MTB/pkg/genetics"
	"github.com/ngodron/power-sim-MTB/pkg/randomizer"
	"github.com/ngodron/power-sim-MTB/pkg/scenarios"
	"github.com/ngodron/power-sim-MTB/pkg/simulator"
	"github.com/ngodron/power-sim-MTB/pkg/visualization"
)

func main() {
	parser := config.NewParser()
	cfg, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Simulation.ShowHelp {
		return
	}

	printConfigSummary(*cfg)

	arch, err := genetics.New(genetics.Spec{
		CausalLoci: cfg.CausalLoci,
		TotalLoci:  cfg.TotalLoci,
		ClassFreqs: cfg.ClassFreqs,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Determine which scenarios to run
	var scenariosToRun []scenarios.Scenario
	if cfg.Simulation.Scenario == "all" {
		allScenarios := scenarios.GenerateAll(*cfg)
		scenariosToRun = []scenarios.Scenario{
			allScenarios["susceptible"],
			allScenarios["combined"],
		}
	} else {
		scenario, exists := scenarios.GetByName(cfg.Simulation.Scenario, *cfg)
		if !exists {
			fmt.Fprintf(os.Stderr, "Unknown scenario: %s\n", cfg.Simulation.Scenario)
			os.Exit(1)
		}
		scenariosToRun = []scenarios.Scenario{scenario}
	}

	source := randomizer.NewSource(cfg.Seed)
	runner := simulator.NewRunner(arch, *cfg, source)

	var combinedTable simulator.ReplicateTable
	var results []analysis.Result

	for _, scenario := range scenariosToRun {
		sigma2, err := arch.NoiseVariance(scenario.Heritability)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\n=== Scenario: %s ===\n", scenario.Name)
		fmt.Printf("Description: %s\n", scenario.Description)
		fmt.Printf("Cohort size: %d, target h2: %.2f, noise sigma: %.3f\n",
			scenario.CohortSize, scenario.Heritability, math.Sqrt(sigma2))

		table, err := runner.RunScenario(scenario.Tag, scenario.CohortSize, math.Sqrt(sigma2))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
			os.Exit(1)
		}

		result, err := analysis.Summarize(scenario.Name, cfg.CausalLoci, table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
			os.Exit(1)
		}

		combinedTable = append(combinedTable, table...)
		results = append(results, result)
	}

	analysis.PrintResults(results)

	if cfg.Simulation.CSVPath != "" {
		if err := export.WriteCSV(cfg.Simulation.CSVPath, combinedTable); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReplicate table written to %s\n", cfg.Simulation.CSVPath)
	}

	if cfg.Simulation.XLSXPath != "" {
		if err := export.WriteXLSX(cfg.Simulation.XLSXPath, combinedTable); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Replicate table written to %s\n", cfg.Simulation.XLSXPath)
	}

	if cfg.Simulation.EnableGraphs {
		chartGenerator := visualization.NewGenerator()
		chartGenerator.GenerateChartsForResults(results)
	}
}

// printConfigSummary prints the configuration being used
func printConfigSummary(cfg config.Config) {
	fmt.Printf("Running MTB GWAS Power Simulation with configuration:\n")
	fmt.Printf("  Causal Loci: %d of %d tested\n", cfg.CausalLoci, cfg.TotalLoci)
	fmt.Printf("  Frequency Classes: %v\n", cfg.ClassFreqs)
	fmt.Printf("  Alpha: %.3f (Bonferroni threshold %.2e)\n", cfg.Alpha, cfg.Alpha/float64(cfg.TotalLoci))
	fmt.Printf("  FDR Threshold: %.2f\n", cfg.FDRThreshold)
	fmt.Printf("  Replicates per Scenario: %d\n", cfg.Replicates)
	fmt.Printf("  Master Seed: %d\n", cfg.Seed)
	fmt.Printf("  Workers: %d\n", cfg.Workers)
	fmt.Printf("  Susceptible Cohort: %d individuals, h2 %.2f\n", cfg.Susceptible.Size, cfg.Susceptible.Heritability)
	fmt.Printf("  Combined Cohort: %d individuals, h2 %.2f\n", cfg.Combined.Size, cfg.Combined.Heritability)
	fmt.Printf("  Scenario: %s\n", cfg.Simulation.Scenario)
	fmt.Printf("  Generate Charts: %t\n", cfg.Simulation.EnableGraphs)
	fmt.Println()
}
