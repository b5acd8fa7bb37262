package config

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Config holds the parameters of the power analysis
type Config struct {
	CausalLoci   int       // Number of causal loci carrying a real effect
	TotalLoci    int       // Total loci tested genome-wide (Bonferroni/FDR denominator)
	ClassFreqs   []float64 // Minor allele frequency per class; causal loci split evenly across classes
	Alpha        float64   // Family-wise significance level before Bonferroni division
	FDRThreshold float64   // q-value threshold for Benjamini-Hochberg detection
	Replicates   int       // Simulated datasets per scenario
	Seed         int64     // Master random seed (fixes the whole run)
	Workers      int       // Concurrent replicate workers

	Susceptible CohortConfig // Susceptible-only scenario
	Combined    CohortConfig // Susceptible-and-resistant scenario

	Simulation SimulationConfig
}

// CohortConfig holds the per-scenario cohort parameters
type CohortConfig struct {
	Size         int     // Number of individuals in the cohort
	Heritability float64 // Target h2, fraction of phenotypic variance that is genetic
}

// SimulationConfig holds runtime configuration for a simulation run
type SimulationConfig struct {
	Scenario     string // Scenario to run: susceptible, combined, or all
	EnableGraphs bool   // Render detection charts (PNG files)
	CSVPath      string // Optional path for the replicate table as CSV
	XLSXPath     string // Optional path for the replicate table as XLSX
	ShowHelp     bool
}

// Default returns a configuration with sensible defaults: the 15-locus,
// 4000-site architecture with rare/uncommon/common frequency classes
func Default() Config {
	return Config{
		CausalLoci:   15,
		TotalLoci:    4000,
		ClassFreqs:   []float64{0.10, 0.25, 0.50},
		Alpha:        0.05,
		FDRThreshold: 0.5,
		Replicates:   1000,
		Seed:         42,
		Workers:      runtime.NumCPU(),
		Susceptible: CohortConfig{
			Size:         407,
			Heritability: 0.30,
		},
		Combined: CohortConfig{
			Size:         814,
			Heritability: 0.15,
		},
		Simulation: SimulationConfig{
			Scenario:     "all",
			EnableGraphs: false,
			ShowHelp:     false,
		},
	}
}

// Parser handles command-line flag parsing
type Parser struct {
	config     *Config
	classFreqs string
	flagSet    *flag.FlagSet
}

// NewParser creates a new configuration parser
func NewParser() *Parser {
	config := Default()

	return &Parser{
		config:  &config,
		flagSet: flag.NewFlagSet("powersim", flag.ExitOnError),
	}
}

// RegisterFlags registers all command-line flags
func (p *Parser) RegisterFlags() {
	c := p.config

	// Architecture flags
	p.flagSet.IntVar(&c.CausalLoci, "causal-loci", c.CausalLoci, "Number of causal loci")
	p.flagSet.IntVar(&c.TotalLoci, "total-loci", c.TotalLoci, "Total loci tested genome-wide")
	p.flagSet.StringVar(&p.classFreqs, "class-freqs", formatFreqs(c.ClassFreqs),
		"Comma-separated minor allele frequency per class")

	// Multiple-testing flags
	p.flagSet.Float64Var(&c.Alpha, "alpha", c.Alpha, "Significance level before Bonferroni division")
	p.flagSet.Float64Var(&c.FDRThreshold, "fdr-threshold", c.FDRThreshold, "Benjamini-Hochberg q-value threshold")

	// Run control flags
	p.flagSet.IntVar(&c.Replicates, "replicates", c.Replicates, "Simulated datasets per scenario")
	p.flagSet.Int64Var(&c.Seed, "seed", c.Seed, "Master random seed")
	p.flagSet.IntVar(&c.Workers, "workers", c.Workers, "Concurrent replicate workers")

	// Scenario flags
	p.flagSet.IntVar(&c.Susceptible.Size, "susceptible-size", c.Susceptible.Size, "Susceptible-only cohort size")
	p.flagSet.Float64Var(&c.Susceptible.Heritability, "susceptible-h2", c.Susceptible.Heritability, "Susceptible-only target heritability")
	p.flagSet.IntVar(&c.Combined.Size, "combined-size", c.Combined.Size, "Susceptible-and-resistant cohort size")
	p.flagSet.Float64Var(&c.Combined.Heritability, "combined-h2", c.Combined.Heritability, "Susceptible-and-resistant target heritability")

	// Simulation configuration flags
	p.flagSet.StringVar(&c.Simulation.Scenario, "scenario", c.Simulation.Scenario, "Scenario to run: susceptible, combined, or all")
	p.flagSet.BoolVar(&c.Simulation.EnableGraphs, "graph", c.Simulation.EnableGraphs, "Render detection charts (PNG files)")
	p.flagSet.StringVar(&c.Simulation.CSVPath, "csv", c.Simulation.CSVPath, "Write the replicate table to a CSV file")
	p.flagSet.StringVar(&c.Simulation.XLSXPath, "xlsx", c.Simulation.XLSXPath, "Write the replicate table to an XLSX file")
	p.flagSet.BoolVar(&c.Simulation.ShowHelp, "help", c.Simulation.ShowHelp, "Show detailed help and parameter explanations")
}

// Parse parses command-line arguments and returns the configuration
func (p *Parser) Parse(args []string) (*Config, error) {
	p.RegisterFlags()

	if err := p.flagSet.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if p.config.Simulation.ShowHelp {
		p.ShowDetailedHelp()
		return p.config, nil
	}

	freqs, err := parseFreqs(p.classFreqs)
	if err != nil {
		return nil, fmt.Errorf("invalid class frequencies: %w", err)
	}
	p.config.ClassFreqs = freqs

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return p.config, nil
}

// Validate validates the configuration parameters
func (p *Parser) Validate() error {
	c := p.config

	if c.CausalLoci <= 0 {
		return fmt.Errorf("causal loci count (%d) must be positive", c.CausalLoci)
	}

	if c.CausalLoci > c.TotalLoci {
		return fmt.Errorf("causal loci count (%d) must not exceed total loci (%d)", c.CausalLoci, c.TotalLoci)
	}

	if len(c.ClassFreqs) == 0 {
		return fmt.Errorf("at least one frequency class is required")
	}

	if c.CausalLoci%len(c.ClassFreqs) != 0 {
		return fmt.Errorf("causal loci count (%d) must divide evenly across %d frequency classes",
			c.CausalLoci, len(c.ClassFreqs))
	}

	for i, f := range c.ClassFreqs {
		if f <= 0 || f >= 1 {
			return fmt.Errorf("class frequency %d (%.3f) must be between 0 and 1 exclusive", i, f)
		}
	}

	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha (%.3f) must be between 0 and 1 exclusive", c.Alpha)
	}

	if c.FDRThreshold <= 0 || c.FDRThreshold > 1 {
		return fmt.Errorf("FDR threshold (%.3f) must be in (0, 1]", c.FDRThreshold)
	}

	if c.Replicates <= 0 {
		return fmt.Errorf("replicate count (%d) must be positive", c.Replicates)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("worker count (%d) must be positive", c.Workers)
	}

	for _, cohort := range []struct {
		name string
		cfg  CohortConfig
	}{
		{"susceptible", c.Susceptible},
		{"combined", c.Combined},
	} {
		if cohort.cfg.Size <= 0 {
			return fmt.Errorf("%s cohort size (%d) must be positive", cohort.name, cohort.cfg.Size)
		}
		if cohort.cfg.Heritability <= 0 || cohort.cfg.Heritability >= 1 {
			return fmt.Errorf("%s heritability (%.3f) must be between 0 and 1 exclusive",
				cohort.name, cohort.cfg.Heritability)
		}
	}

	validScenarios := []string{"all", "susceptible", "combined"}
	isValid := false
	for _, valid := range validScenarios {
		if c.Simulation.Scenario == valid {
			isValid = true
			break
		}
	}
	if !isValid {
		return fmt.Errorf("invalid scenario '%s', must be one of: %v", c.Simulation.Scenario, validScenarios)
	}

	return nil
}

func parseFreqs(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	freqs := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse frequency %q: %w", part, err)
		}
		freqs = append(freqs, f)
	}
	return freqs, nil
}

func formatFreqs(freqs []float64) string {
	parts := make([]string, len(freqs))
	for i, f := range freqs {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// ShowDetailedHelp displays comprehensive help information
func (p *Parser) ShowDetailedHelp() {
	fmt.Println("MTB GWAS Power Simulation - CLI Reference")
	fmt.Println("================================================================================")
	fmt.Println()

	fmt.Println("OVERVIEW:")
	fmt.Println("  Monte Carlo power analysis for additive polygenic association studies.")
	fmt.Println("  Each replicate draws a cohort genotype matrix, synthesizes a phenotype")
	fmt.Println("  calibrated to the target heritability, tests every causal locus with")
	fmt.Println("  Welch's t-test and counts detections under Bonferroni and FDR correction.")
	fmt.Println()

	fmt.Println("ARCHITECTURE PARAMETERS:")
	fmt.Printf("  -causal-loci=%d              Causal loci carrying a real effect\n", p.config.CausalLoci)
	fmt.Printf("  -total-loci=%d             Loci tested genome-wide\n", p.config.TotalLoci)
	fmt.Printf("  -class-freqs=%s    MAF per frequency class (rare/uncommon/common)\n", formatFreqs(p.config.ClassFreqs))
	fmt.Println("                               Causal loci are split evenly across classes;")
	fmt.Println("                               effect sizes ramp 1..loci/classes within each class")
	fmt.Println()

	fmt.Println("MULTIPLE-TESTING PARAMETERS:")
	fmt.Printf("  -alpha=%.2f                  Significance level (Bonferroni threshold is alpha/total-loci)\n", p.config.Alpha)
	fmt.Printf("  -fdr-threshold=%.2f          Benjamini-Hochberg q-value cutoff\n", p.config.FDRThreshold)
	fmt.Println()

	fmt.Println("SCENARIOS:")
	fmt.Printf("  -susceptible-size=%d        Susceptible-only cohort size\n", p.config.Susceptible.Size)
	fmt.Printf("  -susceptible-h2=%.2f         Susceptible-only target heritability\n", p.config.Susceptible.Heritability)
	fmt.Printf("  -combined-size=%d           Susceptible-and-resistant cohort size\n", p.config.Combined.Size)
	fmt.Printf("  -combined-h2=%.2f            Susceptible-and-resistant target heritability\n", p.config.Combined.Heritability)
	fmt.Println("  -scenario=all                Scenario to run: susceptible, combined, or all")
	fmt.Println()

	fmt.Println("RUN CONTROL:")
	fmt.Printf("  -replicates=%d             Simulated datasets per scenario\n", p.config.Replicates)
	fmt.Printf("  -seed=%d                     Master random seed (fixes the whole run)\n", p.config.Seed)
	fmt.Printf("  -workers=%d                   Concurrent replicate workers\n", p.config.Workers)
	fmt.Println()

	fmt.Println("OUTPUT:")
	fmt.Println("  -csv=<file>                  Write the replicate table as CSV")
	fmt.Println("  -xlsx=<file>                 Write the replicate table as XLSX")
	fmt.Println("  -graph                       Render detection histograms and the")
	fmt.Println("                               cumulative power comparison chart (PNG)")
	fmt.Println()

	fmt.Println("EXAMPLES:")
	fmt.Println("  powersim                                    # Both scenarios, defaults")
	fmt.Println("  powersim -scenario=susceptible -graph       # One scenario with charts")
	fmt.Println("  powersim -replicates=5000 -seed=7 -csv=power.csv")
	fmt.Println("  powersim -susceptible-h2=0.5 -combined-h2=0.25")
}
