package simulator

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// Synthesize computes the additive phenotype for a cohort. The genetic
// signal for individual k is the sum of effects[j] over the loci k carries;
// the observed phenotype adds i.i.d. Normal(0, sigma^2) noise on top.
// Both vectors are returned so callers can compute realized heritability.
func Synthesize(rng *rand.Rand, genotypes GenotypeMatrix, effects []float64, sigma float64) (phenotype, signal []float64) {
	size := genotypes.Individuals()
	phenotype = make([]float64, size)
	signal = make([]float64, size)

	for k, row := range genotypes {
		var yg float64
		for j, g := range row {
			if g == 1 {
				yg += effects[j]
			}
		}
		signal[k] = yg
		phenotype[k] = yg + rng.NormFloat64()*sigma
	}

	return phenotype, signal
}

// RealizedHeritability returns var(signal)/var(phenotype) for one replicate.
// A degenerate phenotype with zero variance yields 0 rather than NaN.
func RealizedHeritability(signal, phenotype []float64) float64 {
	vt := stat.Variance(phenotype, nil)
	if vt == 0 {
		return 0
	}
	return stat.Variance(signal, nil) / vt
}
