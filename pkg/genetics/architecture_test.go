package genetics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngodron/power-sim-MTB/pkg/genetics"
)

func TestNewBuildsRampPerClass(t *testing.T) {
	arch, err := genetics.New(genetics.Spec{
		CausalLoci: 6,
		TotalLoci:  100,
		ClassFreqs: []float64{0.1, 0.5},
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.1, 0.1, 0.1, 0.5, 0.5, 0.5}, arch.Freqs)
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, arch.Effects)
	assert.Equal(t, 6, arch.Size())
}

func TestNewIsDeterministic(t *testing.T) {
	spec := genetics.Spec{CausalLoci: 15, TotalLoci: 4000, ClassFreqs: []float64{0.1, 0.25, 0.5}}

	a, err := genetics.New(spec)
	require.NoError(t, err)
	b, err := genetics.New(spec)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestNewRejectsInvalidSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec genetics.Spec
	}{
		{"zero loci", genetics.Spec{CausalLoci: 0, TotalLoci: 10, ClassFreqs: []float64{0.5}}},
		{"more causal than total", genetics.Spec{CausalLoci: 20, TotalLoci: 10, ClassFreqs: []float64{0.5}}},
		{"no classes", genetics.Spec{CausalLoci: 10, TotalLoci: 100}},
		{"uneven partition", genetics.Spec{CausalLoci: 10, TotalLoci: 100, ClassFreqs: []float64{0.1, 0.2, 0.3}}},
		{"frequency at zero", genetics.Spec{CausalLoci: 2, TotalLoci: 100, ClassFreqs: []float64{0, 0.5}}},
		{"frequency at one", genetics.Spec{CausalLoci: 2, TotalLoci: 100, ClassFreqs: []float64{0.5, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := genetics.New(tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestGeneticVariance(t *testing.T) {
	arch, err := genetics.New(genetics.Spec{
		CausalLoci: 2,
		TotalLoci:  10,
		ClassFreqs: []float64{0.5},
	})
	require.NoError(t, err)

	// betas 1 and 2 at f=0.5: 1*0.25 + 4*0.25 = 1.25
	assert.InDelta(t, 1.25, arch.GeneticVariance(), 1e-12)
	assert.GreaterOrEqual(t, arch.GeneticVariance(), 0.0)
}

func TestNoiseVarianceCalibration(t *testing.T) {
	arch, err := genetics.New(genetics.Spec{
		CausalLoci: 15,
		TotalLoci:  4000,
		ClassFreqs: []float64{0.1, 0.25, 0.5},
	})
	require.NoError(t, err)

	vg := arch.GeneticVariance()

	sigma2, err := arch.NoiseVariance(0.30)
	require.NoError(t, err)
	assert.InDelta(t, (1-0.30)/0.30*vg, sigma2, 1e-12)
	assert.GreaterOrEqual(t, sigma2, 0.0)

	vt, err := arch.TotalVariance(0.30)
	require.NoError(t, err)
	assert.InDelta(t, vg+sigma2, vt, 1e-12)

	// Realized heritability of the calibration itself: vg / vt == h2
	assert.InDelta(t, 0.30, vg/vt, 1e-12)
}

func TestNoiseVarianceRejectsHeritabilityBounds(t *testing.T) {
	arch, err := genetics.New(genetics.Spec{
		CausalLoci: 3,
		TotalLoci:  10,
		ClassFreqs: []float64{0.5},
	})
	require.NoError(t, err)

	for _, h2 := range []float64{0, 1, -0.1, 1.5, math.Inf(1)} {
		_, err := arch.NoiseVariance(h2)
		assert.Error(t, err, "h2=%v", h2)
	}
}
