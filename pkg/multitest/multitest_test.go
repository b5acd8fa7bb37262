package multitest_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngodron/power-sim-MTB/pkg/multitest"
)

func TestBenjaminiHochbergKnownVector(t *testing.T) {
	// Classic step-up example: p*m/rank = 0.05 for every entry
	pvals := []float64{0.01, 0.02, 0.03, 0.04, 0.05}
	qvals := multitest.BenjaminiHochberg(pvals)

	require.Len(t, qvals, 5)
	for i, q := range qvals {
		assert.InDelta(t, 0.05, q, 1e-12, "position %d", i)
	}
}

func TestBenjaminiHochbergPreservesInputOrder(t *testing.T) {
	pvals := []float64{0.9, 0.001, 0.5}
	qvals := multitest.BenjaminiHochberg(pvals)

	require.Len(t, qvals, 3)
	// 0.001 -> 0.001*3/1 = 0.003 at its own position
	assert.InDelta(t, 0.003, qvals[1], 1e-12)
	// 0.5 -> min(0.5*3/2, q of 0.9) = 0.75
	assert.InDelta(t, 0.75, qvals[2], 1e-12)
	// 0.9 -> 0.9*3/3 = 0.9
	assert.InDelta(t, 0.9, qvals[0], 1e-12)
}

func TestBenjaminiHochbergCapsAtOne(t *testing.T) {
	qvals := multitest.BenjaminiHochberg([]float64{0.8, 0.9, 0.99})
	for _, q := range qvals {
		assert.LessOrEqual(t, q, 1.0)
	}
}

func TestBenjaminiHochbergEmpty(t *testing.T) {
	assert.Nil(t, multitest.BenjaminiHochberg(nil))
}

func TestEvaluateBonferroniCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// alpha/N = 0.05/100 = 5e-4
	pvals := []float64{1e-5, 4e-4, 6e-4, 0.2}
	counts := multitest.Evaluate(rng, pvals, 100, 0.05, 0.5)

	assert.Equal(t, 2, counts.BonfTrue)
}

func TestEvaluateCountBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	pvals := []float64{1e-9, 1e-7, 0.01, 0.3, 0.9}
	totalLoci := 400

	for i := 0; i < 50; i++ {
		counts := multitest.Evaluate(rng, pvals, totalLoci, 0.05, 0.5)

		assert.LessOrEqual(t, counts.BonfTrue, len(pvals))
		assert.LessOrEqual(t, counts.FDRTrue, counts.FDRDetect)
		assert.LessOrEqual(t, counts.FDRDetect, totalLoci)
		assert.LessOrEqual(t, counts.FDRTrue, len(pvals))
	}
}

func TestEvaluateThresholdMonotonicity(t *testing.T) {
	pvals := []float64{1e-6, 0.002, 0.04, 0.3}
	totalLoci := 200

	// Same null fill for both thresholds: reseed between calls
	low := multitest.Evaluate(rand.New(rand.NewSource(7)), pvals, totalLoci, 0.05, 0.1)
	high := multitest.Evaluate(rand.New(rand.NewSource(7)), pvals, totalLoci, 0.05, 0.6)

	assert.GreaterOrEqual(t, high.FDRDetect, low.FDRDetect)
	assert.GreaterOrEqual(t, high.FDRTrue, low.FDRTrue)
}

func TestEvaluateStrongSignalDetected(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	// Overwhelming causal signal should survive both corrections
	pvals := []float64{1e-12, 1e-11, 1e-10}
	counts := multitest.Evaluate(rng, pvals, 4000, 0.05, 0.5)

	assert.Equal(t, 3, counts.BonfTrue)
	assert.Equal(t, 3, counts.FDRTrue)
	assert.GreaterOrEqual(t, counts.FDRDetect, 3)
}
