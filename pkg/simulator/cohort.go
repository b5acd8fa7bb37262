package simulator

import (
	"math/rand"
)

// GenotypeMatrix holds one cohort's genotypes: one row per individual, one
// 0/1 column per causal locus
type GenotypeMatrix [][]uint8

// Individuals returns the cohort size
func (g GenotypeMatrix) Individuals() int {
	return len(g)
}

// Loci returns the number of causal loci per individual
func (g GenotypeMatrix) Loci() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// DrawCohort samples a fresh genotype matrix for a cohort of the given size.
// Entry [k][j] is an independent Bernoulli draw with success probability
// freqs[j]; loci are independent of each other and of other individuals
// (linkage equilibrium).
func DrawCohort(rng *rand.Rand, freqs []float64, size int) GenotypeMatrix {
	matrix := make(GenotypeMatrix, size)
	for k := range matrix {
		row := make([]uint8, len(freqs))
		for j, f := range freqs {
			if rng.Float64() < f {
				row[j] = 1
			}
		}
		matrix[k] = row
	}
	return matrix
}
