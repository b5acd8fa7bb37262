package simulator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngodron/power-sim-MTB/pkg/config"
	"github.com/ngodron/power-sim-MTB/pkg/genetics"
	"github.com/ngodron/power-sim-MTB/pkg/randomizer"
	"github.com/ngodron/power-sim-MTB/pkg/simulator"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.CausalLoci = 6
	cfg.TotalLoci = 200
	cfg.ClassFreqs = []float64{0.1, 0.5}
	cfg.Replicates = 50
	cfg.Workers = 4
	return cfg
}

func buildArchitecture(t *testing.T, cfg config.Config) *genetics.Architecture {
	t.Helper()
	arch, err := genetics.New(genetics.Spec{
		CausalLoci: cfg.CausalLoci,
		TotalLoci:  cfg.TotalLoci,
		ClassFreqs: cfg.ClassFreqs,
	})
	require.NoError(t, err)
	return arch
}

func TestRunScenarioReproducible(t *testing.T) {
	cfg := smallConfig()
	arch := buildArchitecture(t, cfg)

	sigma2, err := arch.NoiseVariance(0.3)
	require.NoError(t, err)
	sigma := math.Sqrt(sigma2)

	first, err := simulator.NewRunner(arch, cfg, randomizer.NewSource(99)).
		RunScenario("susceptible", 300, sigma)
	require.NoError(t, err)

	second, err := simulator.NewRunner(arch, cfg, randomizer.NewSource(99)).
		RunScenario("susceptible", 300, sigma)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestRunScenarioRowInvariants(t *testing.T) {
	cfg := smallConfig()
	arch := buildArchitecture(t, cfg)

	sigma2, err := arch.NoiseVariance(0.3)
	require.NoError(t, err)

	table, err := simulator.NewRunner(arch, cfg, randomizer.NewSource(11)).
		RunScenario("susceptible", 300, math.Sqrt(sigma2))
	require.NoError(t, err)
	require.Len(t, table, cfg.Replicates)

	for i, row := range table {
		assert.Equal(t, "susceptible", row.Dataset, "row %d", i)
		assert.GreaterOrEqual(t, row.MinP, 0.0, "row %d", i)
		assert.LessOrEqual(t, row.MinP, row.MaxP, "row %d", i)
		assert.LessOrEqual(t, row.MaxP, 1.0, "row %d", i)
		assert.LessOrEqual(t, row.BonfTrue, cfg.CausalLoci, "row %d", i)
		assert.LessOrEqual(t, row.FDRTrue, row.FDRDetect, "row %d", i)
		assert.LessOrEqual(t, row.FDRDetect, cfg.TotalLoci, "row %d", i)
		assert.LessOrEqual(t, row.FDRTrue, cfg.CausalLoci, "row %d", i)
		assert.GreaterOrEqual(t, row.H2, 0.0, "row %d", i)
	}
}

// Regression guard for the reference scenario: partial power, neither 0%
// nor 100% detection.
func TestRunScenarioPartialPower(t *testing.T) {
	cfg := config.Default()
	arch := buildArchitecture(t, cfg)

	sigma2, err := arch.NoiseVariance(0.30)
	require.NoError(t, err)

	table, err := simulator.NewRunner(arch, cfg, randomizer.NewSource(cfg.Seed)).
		RunScenario("susceptible", 407, math.Sqrt(sigma2))
	require.NoError(t, err)
	require.Len(t, table, 1000)

	var total float64
	for _, row := range table {
		total += float64(row.BonfTrue)
	}
	mean := total / float64(len(table))

	assert.Greater(t, mean, 0.0)
	assert.Less(t, mean, float64(cfg.CausalLoci))
}

// With all effect sizes zeroed there is no true signal: Bonferroni and FDR
// true-detection counts must stay at chance level.
func TestRunScenarioKnownNull(t *testing.T) {
	cfg := smallConfig()
	cfg.Replicates = 400

	arch := buildArchitecture(t, cfg)
	for i := range arch.Effects {
		arch.Effects[i] = 0
	}

	table, err := simulator.NewRunner(arch, cfg, randomizer.NewSource(17)).
		RunScenario("null", 300, 1.0)
	require.NoError(t, err)

	var bonfTotal, fdrTrueTotal float64
	for _, row := range table {
		bonfTotal += float64(row.BonfTrue)
		fdrTrueTotal += float64(row.FDRTrue)
	}

	assert.LessOrEqual(t, bonfTotal/float64(len(table)), 0.02)
	assert.LessOrEqual(t, fdrTrueTotal/float64(len(table)), 1.0)
}

func TestRunScenarioRejectsInvalidParameters(t *testing.T) {
	cfg := smallConfig()
	arch := buildArchitecture(t, cfg)
	runner := simulator.NewRunner(arch, cfg, randomizer.NewSource(1))

	_, err := runner.RunScenario("susceptible", 0, 1.0)
	assert.Error(t, err)

	_, err = runner.RunScenario("susceptible", 100, -1.0)
	assert.Error(t, err)

	cfg.Replicates = 0
	runner = simulator.NewRunner(arch, cfg, randomizer.NewSource(1))
	_, err = runner.RunScenario("susceptible", 100, 1.0)
	assert.Error(t, err)
}
